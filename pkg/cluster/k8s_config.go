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
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// K8sConfig contains the data needed to reach and authenticate to a Kubernetes API server
type K8sConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Token              string `yaml:"token"`
	TokenFile          string `yaml:"tokenFile"`
	CaFile             string `yaml:"caFile"`
	CaCert             []byte `yaml:"-"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	TimeoutSecs        int    `yaml:"timeoutSecs"`
}

// Validate checks that the config can be used to make a client
func (cfg *K8sConfig) Validate() error {
	if cfg.Host == "" || cfg.Port <= 0 {
		return fmt.Errorf("kubernetes host and port are required")
	}
	if cfg.TimeoutSecs < 0 {
		return fmt.Errorf("invalid timeout %d", cfg.TimeoutSecs)
	}
	return nil
}

var k8sSASecretPath = K8sSASecretPath

// InClusterConfig returns the config of a pod running in the cluster: the server address comes
// from the environment, the credentials from the mounted service account.
func InClusterConfig() (*K8sConfig, error) {
	cfg := &K8sConfig{}
	cfg.Host = os.Getenv(K8sEnvServerHost)
	p := os.Getenv(K8sEnvServerPort)
	if cfg.Host == "" || p == "" {
		return nil, fmt.Errorf("%s or %s not set", K8sEnvServerHost, K8sEnvServerPort)
	}
	pNum, err := strconv.Atoi(p)
	if err != nil || pNum <= 0 {
		return nil, fmt.Errorf("invalid %s value", K8sEnvServerPort)
	}
	cfg.Port = pNum
	token, err := ioutil.ReadFile(path.Join(k8sSASecretPath, "token"))
	if err != nil {
		return nil, err
	}
	cfg.Token = strings.TrimSpace(string(token))
	if cfg.CaCert, err = ioutil.ReadFile(path.Join(k8sSASecretPath, "ca.crt")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config file. Token and CA contents may be given inline or by file name.
func LoadConfigFile(fileName string) (*K8sConfig, error) {
	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	cfg := &K8sConfig{}
	if err = yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %s", fileName, err.Error())
	}
	if cfg.Token == "" && cfg.TokenFile != "" {
		var b []byte
		if b, err = ioutil.ReadFile(cfg.TokenFile); err != nil {
			return nil, err
		}
		cfg.Token = strings.TrimSpace(string(b))
	}
	if cfg.CaFile != "" {
		if cfg.CaCert, err = ioutil.ReadFile(cfg.CaFile); err != nil {
			return nil, err
		}
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
