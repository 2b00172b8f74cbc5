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


package fake

import (
	"context"
	"time"

	"github.com/aaaaalbert/kubernetes-py/pkg/util"
)

// Clock fakes util.Clock. Sleep advances T by the requested duration.
type Clock struct {
	T           time.Time
	Sleeps      []time.Duration
	RetSleepErr error
}

var _ = util.Clock(&Clock{})

// Now fakes its namesake
func (c *Clock) Now() time.Time {
	return c.T
}

// Sleep fakes its namesake
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	c.Sleeps = append(c.Sleeps, d)
	if c.RetSleepErr != nil {
		return c.RetSleepErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.T = c.T.Add(d)
	return nil
}
