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
	"fmt"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
)

// Transport fakes kube.Transport
type Transport struct {
	// Calls records "<Method> <Kind> [<name>]" for each call
	Calls []string

	// Create
	InCreateRT    cluster.ResourceType
	InCreateBody  []byte
	RetCreateBody []byte
	RetCreateErr  error
	CntCreate     int

	// Get
	InGetRT   cluster.ResourceType
	InGetName string
	// RetGetBodies are returned by successive calls; the last entry repeats
	RetGetBodies [][]byte
	RetGetErr    error
	CntGet       int

	// Update
	InUpdateRT    cluster.ResourceType
	InUpdateName  string
	InUpdateBody  []byte
	RetUpdateBody []byte
	RetUpdateErr  error
	CntUpdate     int

	// List
	InListRT     cluster.ResourceType
	RetListItems [][]byte
	RetListErr   error
	CntList      int

	// Delete
	InDeleteRT    cluster.ResourceType
	InDeleteName  string
	RetDeleteBody []byte
	RetDeleteErr  error
	CntDelete     int
}

func (t *Transport) record(method string, rt cluster.ResourceType, name string) {
	s := fmt.Sprintf("%s %s", method, rt.Kind)
	if name != "" {
		s += " " + name
	}
	t.Calls = append(t.Calls, s)
}

// Create fakes its namesake
func (t *Transport) Create(ctx context.Context, rt cluster.ResourceType, body []byte) ([]byte, error) {
	t.record("Create", rt, "")
	t.CntCreate++
	t.InCreateRT = rt
	t.InCreateBody = body
	return t.RetCreateBody, t.RetCreateErr
}

// Get fakes its namesake
func (t *Transport) Get(ctx context.Context, rt cluster.ResourceType, name string) ([]byte, error) {
	t.record("Get", rt, name)
	t.CntGet++
	t.InGetRT = rt
	t.InGetName = name
	if t.RetGetErr != nil {
		return nil, t.RetGetErr
	}
	if len(t.RetGetBodies) == 0 {
		return nil, nil
	}
	i := t.CntGet - 1
	if i >= len(t.RetGetBodies) {
		i = len(t.RetGetBodies) - 1
	}
	return t.RetGetBodies[i], nil
}

// Update fakes its namesake
func (t *Transport) Update(ctx context.Context, rt cluster.ResourceType, name string, body []byte) ([]byte, error) {
	t.record("Update", rt, name)
	t.CntUpdate++
	t.InUpdateRT = rt
	t.InUpdateName = name
	t.InUpdateBody = body
	return t.RetUpdateBody, t.RetUpdateErr
}

// List fakes its namesake
func (t *Transport) List(ctx context.Context, rt cluster.ResourceType) ([][]byte, error) {
	t.record("List", rt, "")
	t.CntList++
	t.InListRT = rt
	return t.RetListItems, t.RetListErr
}

// Delete fakes its namesake
func (t *Transport) Delete(ctx context.Context, rt cluster.ResourceType, name string) ([]byte, error) {
	t.record("Delete", rt, name)
	t.CntDelete++
	t.InDeleteRT = rt
	t.InDeleteName = name
	return t.RetDeleteBody, t.RetDeleteErr
}
