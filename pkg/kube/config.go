// Copyright 2019 Tad Lebeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package kube binds typed Kubernetes resource objects to remote CRUD operations.
package kube

import (
	"context"
	"time"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/aaaaalbert/kubernetes-py/pkg/util"
	logging "github.com/op/go-logging"
)

// Transport performs the REST calls on behalf of a Controller.
// Errors carrying a server response should implement cluster.Error.
type Transport interface {
	Create(ctx context.Context, rt cluster.ResourceType, body []byte) ([]byte, error)
	Get(ctx context.Context, rt cluster.ResourceType, name string) ([]byte, error)
	Update(ctx context.Context, rt cluster.ResourceType, name string, body []byte) ([]byte, error)
	List(ctx context.Context, rt cluster.ResourceType) ([][]byte, error)
	Delete(ctx context.Context, rt cluster.ResourceType, name string) ([]byte, error)
}

var _ = Transport(&cluster.K8s{})

// Readiness polling defaults
const (
	ReadyWaitTimeout  = 60 * time.Second
	ReadyPollInterval = 1 * time.Second
)

// Config is shared by all controllers created from it
type Config struct {
	Transport Transport
	// Log receives controller messages. Nil disables logging.
	Log *logging.Logger
	// Clock is used by readiness polling
	Clock        util.Clock
	PollTimeout  time.Duration
	PollInterval time.Duration
}

// NewConfig returns a Config with the default polling budget and the real clock
func NewConfig(t Transport, log *logging.Logger) *Config {
	return &Config{
		Transport:    t,
		Log:          log,
		Clock:        util.RealClock(),
		PollTimeout:  ReadyWaitTimeout,
		PollInterval: ReadyPollInterval,
	}
}

func (c *Config) clock() util.Clock {
	if c.Clock == nil {
		return util.RealClock()
	}
	return c.Clock
}

func (c *Config) pollTimeout() time.Duration {
	if c.PollTimeout <= 0 {
		return ReadyWaitTimeout
	}
	return c.PollTimeout
}

func (c *Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return ReadyPollInterval
	}
	return c.PollInterval
}

func (c *Config) debugf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Debugf(format, args...)
	}
}

func (c *Config) warningf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Warningf(format, args...)
	}
}
