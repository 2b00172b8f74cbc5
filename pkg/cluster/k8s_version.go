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


package cluster

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver"
)

// ServerVersion returns the version reported by the API server
func (c *K8s) ServerVersion(ctx context.Context) (*K8sAPIVer, error) {
	ver := &K8sAPIVer{}
	if err := c.K8sClientGetJSON(ctx, "/version", ver); err != nil {
		return nil, err
	}
	return ver, nil
}

// CheckServerVersion fetches the server version and verifies that it satisfies K8sSupportedVersionsConstraint.
// Pre-release and build metadata of the server version are ignored.
func (c *K8s) CheckServerVersion(ctx context.Context) (*K8sAPIVer, error) {
	ver, err := c.ServerVersion(ctx)
	if err != nil {
		return nil, err
	}
	if err = CheckVersion(ver.GitVersion); err != nil {
		return ver, err
	}
	return ver, nil
}

// CheckVersion verifies that the version string satisfies K8sSupportedVersionsConstraint
func CheckVersion(version string) error {
	sv, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid server version %q: %s", version, err.Error())
	}
	release, _ := semver.NewVersion(fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch()))
	c, _ := semver.NewConstraint(K8sSupportedVersionsConstraint)
	if !c.Check(release) {
		return fmt.Errorf("server version %s does not satisfy %q", version, K8sSupportedVersionsConstraint)
	}
	return nil
}
