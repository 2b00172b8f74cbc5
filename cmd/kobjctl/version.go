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


package main

import (
	"context"
	"fmt"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
)

func initVersion() {
	parser.AddCommand("version", "Show the API server version", "Show the API server version and whether it is supported", &versionCmd{})
}

// versionChecker is satisfied by *cluster.K8s
type versionChecker interface {
	CheckServerVersion(ctx context.Context) (*cluster.K8sAPIVer, error)
}

type versionCmd struct{}

const (
	hVerVersion   = "Version"
	hVerPlatform  = "Platform"
	hVerSupported = "Supported"
)

func (c *versionCmd) Execute(args []string) error {
	vc, ok := appCtx.Transport.(versionChecker)
	if !ok {
		return fmt.Errorf("transport does not report the server version")
	}
	ver, err := vc.CheckServerVersion(appCtx.ctx)
	if ver == nil {
		return err
	}
	supported := "yes"
	if err != nil {
		supported = err.Error()
	}
	switch appCtx.OutputFormat {
	case "json":
		return appCtx.EmitJSON(ver)
	case "yaml":
		return appCtx.EmitYAML(ver)
	}
	cols := []string{hVerVersion, hVerPlatform, hVerSupported}
	return emitRows(cols, []map[string]string{{
		hVerVersion:   ver.GitVersion,
		hVerPlatform:  ver.Platform,
		hVerSupported: supported,
	}})
}
