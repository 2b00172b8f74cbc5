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
	"net/http"
)

// Create posts a new object to the collection of the resource type and returns the response body
func (c *K8s) Create(ctx context.Context, rt ResourceType, body []byte) ([]byte, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	return c.K8sClientRequest(ctx, http.MethodPost, rt.CollectionPath(), body)
}

// Get fetches a named object
func (c *K8s) Get(ctx context.Context, rt ResourceType, name string) ([]byte, error) {
	if err := c.checkNamed(rt, name); err != nil {
		return nil, err
	}
	return c.K8sClientRequest(ctx, http.MethodGet, rt.ObjectPath(name), nil)
}

// Update replaces a named object
func (c *K8s) Update(ctx context.Context, rt ResourceType, name string, body []byte) ([]byte, error) {
	if err := c.checkNamed(rt, name); err != nil {
		return nil, err
	}
	return c.K8sClientRequest(ctx, http.MethodPut, rt.ObjectPath(name), body)
}

// Delete removes a named object. The response is either the deleted object or a Status
func (c *K8s) Delete(ctx context.Context, rt ResourceType, name string) ([]byte, error) {
	if err := c.checkNamed(rt, name); err != nil {
		return nil, err
	}
	return c.K8sClientRequest(ctx, http.MethodDelete, rt.ObjectPath(name), nil)
}

// List returns the raw items of the collection of the resource type
func (c *K8s) List(ctx context.Context, rt ResourceType) ([][]byte, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	res := &K8sListRes{}
	if err := c.K8sClientGetJSON(ctx, rt.CollectionPath(), res); err != nil {
		return nil, err
	}
	items := make([][]byte, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, []byte(item))
	}
	return items, nil
}

func (c *K8s) checkNamed(rt ResourceType, name string) error {
	if err := rt.Validate(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%s name is required", rt)
	}
	return nil
}
