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
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/aaaaalbert/kubernetes-py/pkg/util"
	"github.com/op/go-logging"
)

// K8s is the kubernetes REST client
type K8s struct {
	timeout    time.Duration
	debugLog   *logging.Logger
	cfg        *K8sConfig
	transport  *http.Transport
	httpClient *http.Client
	shp        string
	mux        sync.Mutex
}

// K8s constants
const (
	K8sSupportedVersionsConstraint = ">= 1.13.0"
	K8sEnvServerHost               = "KUBERNETES_SERVICE_HOST"
	K8sEnvServerPort               = "KUBERNETES_SERVICE_PORT"
	K8sSASecretPath                = "/var/run/secrets/kubernetes.io/serviceaccount"
	K8sDefaultTimeoutSecs          = 30
	K8sAPIVersion                  = "v1"
)

var k8sSuccessCodes = []int{http.StatusOK, http.StatusCreated, http.StatusAccepted}

// NewK8s returns a client for the API server described by the config
func NewK8s(cfg *K8sConfig) (*K8s, error) {
	if cfg == nil {
		return nil, fmt.Errorf("missing kubernetes config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &K8s{cfg: cfg}
	if cfg.TimeoutSecs > 0 {
		c.SetTimeout(cfg.TimeoutSecs)
	}
	return c, nil
}

// SetTimeout sets the timeout of each HTTP request. It must be called before the first request.
func (c *K8s) SetTimeout(secs int) {
	c.timeout = time.Duration(secs) * time.Second
}

// SetDebugLogger sets the logger used to trace requests
func (c *K8s) SetDebugLogger(log *logging.Logger) {
	c.debugLog = log
}

func (c *K8s) dbg(fmt string, args ...interface{}) {
	if c.debugLog != nil {
		c.debugLog.Debugf(fmt, args...)
	}
}

// makeClient sets the timeout and returns a client
func (c *K8s) makeClient(timeout time.Duration) *http.Client {
	cfg := &tls.Config{InsecureSkipVerify: c.cfg.InsecureSkipVerify}
	if len(c.cfg.CaCert) > 0 {
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(c.cfg.CaCert)
		cfg.RootCAs = caCertPool
	}
	c.transport = &http.Transport{TLSClientConfig: cfg}
	return &http.Client{
		Transport: c.transport,
		Timeout:   timeout,
	}
}

// K8sClientDo makes an authenticated call to the Kubernetes service.
// All calls insert the bearer token when one is configured.
// If the Accept header is not set it will be set to application/json.
func (c *K8s) K8sClientDo(ctx context.Context, req *http.Request) (*http.Response, error) {
	c.mux.Lock()
	if c.httpClient == nil {
		if c.timeout == 0 {
			c.SetTimeout(K8sDefaultTimeoutSecs)
		}
		c.httpClient = c.makeClient(c.timeout)
	}
	client := c.httpClient
	c.mux.Unlock()
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return client.Do(req.WithContext(ctx))
}

// K8sGetSchemeHostPort returns a string with scheme://host:port
func (c *K8s) K8sGetSchemeHostPort() string {
	if c.shp == "" {
		c.shp = fmt.Sprintf("https://%s:%d", c.cfg.Host, c.cfg.Port)
	}
	return c.shp
}

// K8sClientRequest makes a call with an optional JSON body and returns the raw response body.
// Non-success responses are returned as an Error decoded from the Status body when possible.
func (c *K8s) K8sClientRequest(ctx context.Context, method, path string, inBody []byte) ([]byte, error) {
	p := c.K8sGetSchemeHostPort() + path
	c.dbg("%s %s", method, p)
	var rdr io.Reader
	if inBody != nil {
		c.dbg("Request Body: %s", inBody)
		rdr = bytes.NewReader(inBody)
	}
	req, err := http.NewRequest(method, p, rdr)
	if err != nil {
		return nil, err
	}
	if inBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.K8sClientDo(ctx, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	c.dbg("%s ⇒ %d body: %s", path, res.StatusCode, body)
	if !util.Contains(k8sSuccessCodes, res.StatusCode) {
		return nil, newK8sErrorFromBody(body, res.StatusCode)
	}
	return body, nil
}

// K8sClientGetJSON makes a GET call for an application/json response and
// unmarshals the result to the provided object
func (c *K8s) K8sClientGetJSON(ctx context.Context, path string, v interface{}) error {
	body, err := c.K8sClientRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, v); err != nil {
		switch e := err.(type) {
		case *json.UnmarshalTypeError:
			c.dbg("%s ⇒ unmarshal err %s", path, e.Error())
		}
	}
	return err
}

type k8sError struct {
	Message string // message
	Reason  StatusReason
	Code    int
}

var _ = Error(&k8sError{})

func (e *k8sError) Error() string {
	return e.Message
}

func (e *k8sError) ObjectExists() bool {
	return e.Reason == StatusReasonAlreadyExists
}

func (e *k8sError) NotFound() bool {
	return e.Reason == StatusReasonNotFound || (e.Reason == StatusReasonUnknown && e.Code == http.StatusNotFound)
}

func (e *k8sError) Conflict() bool {
	return e.Reason == StatusReasonConflict || (e.Reason == StatusReasonUnknown && e.Code == http.StatusConflict)
}

func (e *k8sError) StatusCode() int {
	return e.Code
}

func (e *k8sError) StatusReason() StatusReason {
	return e.Reason
}

// NewK8sError returns an Error with the given reason and HTTP status code
func NewK8sError(msg string, reason StatusReason, code int) error {
	return &k8sError{Message: msg, Reason: reason, Code: code}
}

func newK8sErrorFromBody(body []byte, code int) error {
	var status K8sStatus
	if e := json.Unmarshal(body, &status); e == nil && status.Kind == "Status" {
		if status.Code == 0 {
			status.Code = code
		}
		return &k8sError{Message: status.Message, Reason: status.Reason, Code: status.Code}
	}
	return &k8sError{Message: string(body), Reason: StatusReasonUnknown, Code: code}
}
