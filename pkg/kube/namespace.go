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


package kube

import (
	"context"
	"strings"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/aaaaalbert/kubernetes-py/pkg/object"
	"k8s.io/apimachinery/pkg/util/validation"
)

// Namespace phases
const (
	NamespacePhaseActive      = "Active"
	NamespacePhaseTerminating = "Terminating"
)

// NamespaceSchema describes the Namespace resource
var NamespaceSchema = &Schema{
	Type:     cluster.NamespaceType,
	Validate: validateNamespace,
}

func validateNamespace(o object.Object) error {
	if errs := validation.IsDNS1123Label(o.Name()); len(errs) > 0 {
		return object.NewFieldError("metadata.name", o.Name(), strings.Join(errs, "; "))
	}
	return nil
}

// Namespace is a typed Namespace controller
type Namespace struct {
	*Controller
}

// NamespaceStatus is a snapshot of the server reported namespace status
type NamespaceStatus struct {
	Phase string
}

// NewNamespace returns a Namespace controller. The name is optional.
func NewNamespace(cfg *Config, name string) (*Namespace, error) {
	c, err := NewController(cfg, NamespaceSchema, name)
	if err != nil {
		return nil, err
	}
	return &Namespace{Controller: c}, nil
}

// NewNamespaceFromObject returns a Namespace controller over a parsed document
func NewNamespaceFromObject(cfg *Config, o object.Object) (*Namespace, error) {
	c, err := NewControllerFromObject(cfg, NamespaceSchema, o)
	if err != nil {
		return nil, err
	}
	return &Namespace{Controller: c}, nil
}

// Label returns the value of a label and whether it is present
func (ns *Namespace) Label(key string) (string, bool) {
	return ns.model.Label(key)
}

// Annotation returns the value of an annotation and whether it is present
func (ns *Namespace) Annotation(key string) (string, bool) {
	return ns.model.Annotation(key)
}

// SetLabel sets a label
func (ns *Namespace) SetLabel(key, value string) error {
	return ns.Edit(func(b *object.Builder) {
		b.SetLabel(key, value)
	})
}

// SetAnnotation sets an annotation
func (ns *Namespace) SetAnnotation(key, value string) error {
	return ns.Edit(func(b *object.Builder) {
		b.SetAnnotation(key, value)
	})
}

// Finalizers returns a copy of spec.finalizers
func (ns *Namespace) Finalizers() []string {
	return ns.model.StringSlice(object.KeySpec, "finalizers")
}

// SetFinalizers replaces spec.finalizers
func (ns *Namespace) SetFinalizers(finalizers []string) error {
	return ns.Edit(func(b *object.Builder) {
		b.Set(append([]string{}, finalizers...), object.KeySpec, "finalizers")
	})
}

// Status returns the server reported status
func (ns *Namespace) Status() NamespaceStatus {
	return NamespaceStatus{Phase: ns.model.Phase()}
}

// Phase returns status.phase
func (ns *Namespace) Phase() string {
	return ns.model.Phase()
}

// List returns all namespaces
func (ns *Namespace) List(ctx context.Context) ([]*Namespace, error) {
	return ListNamespaces(ctx, ns.cfg)
}

// ListNamespaces returns all namespaces in server order
func ListNamespaces(ctx context.Context, cfg *Config) ([]*Namespace, error) {
	list, err := List(ctx, cfg, NamespaceSchema)
	if err != nil {
		return nil, err
	}
	ret := make([]*Namespace, 0, len(list))
	for _, c := range list {
		ret = append(ret, &Namespace{Controller: c})
	}
	return ret, nil
}

// GetNamespaceByName returns the named namespace or nil if it does not exist
func GetNamespaceByName(ctx context.Context, cfg *Config, name string) (*Namespace, error) {
	c, err := GetByName(ctx, cfg, NamespaceSchema, name)
	if err != nil || c == nil {
		return nil, err
	}
	return &Namespace{Controller: c}, nil
}
