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
	"fmt"

	"github.com/aaaaalbert/kubernetes-py/pkg/object"
)

// Controller binds one resource document to the remote CRUD operations of its schema.
// The document is replaced wholesale by every successful remote call.
// A Controller is not safe for concurrent use.
type Controller struct {
	cfg    *Config
	schema *Schema
	model  object.Object
}

// NewController returns a controller over an empty document of the schema type.
// The name is optional.
func NewController(cfg *Config, schema *Schema, name string) (*Controller, error) {
	if err := checkConfig(cfg, schema); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, schema: schema, model: schema.NewModel()}
	if name != "" {
		if err := c.SetName(name); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewControllerFromObject returns a controller over an existing document, e.g. a parsed manifest.
// The document kind must match the schema; a missing apiVersion is filled in.
func NewControllerFromObject(cfg *Config, schema *Schema, o object.Object) (*Controller, error) {
	if err := checkConfig(cfg, schema); err != nil {
		return nil, err
	}
	if o.Kind() != schema.Type.Kind {
		return nil, newError(InvalidArgument, "load", o.Name(), "expected kind %s but got %q", schema.Type.Kind, o.Kind())
	}
	o, err := inheritType(schema, o)
	if err != nil {
		return nil, argumentError("load", schema.Type.Kind, err)
	}
	return &Controller{cfg: cfg, schema: schema, model: o}, nil
}

func checkConfig(cfg *Config, schema *Schema) error {
	if cfg == nil || cfg.Transport == nil {
		return newError(InvalidArgument, "init", "", "missing transport configuration")
	}
	if schema == nil {
		return newError(InvalidArgument, "init", "", "missing schema")
	}
	if err := schema.Type.Validate(); err != nil {
		return wrapError(InvalidArgument, "init", "", err)
	}
	return nil
}

// inheritType sets kind and apiVersion from the schema when the document lacks them, as list items do
func inheritType(schema *Schema, o object.Object) (object.Object, error) {
	if o.Kind() != "" && o.APIVersion() != "" {
		return o, nil
	}
	b := o.Edit()
	if o.Kind() == "" {
		b.Set(schema.Type.Kind, object.KeyKind)
	}
	if o.APIVersion() == "" {
		b.Set(schema.Type.APIVersion, object.KeyAPIVersion)
	}
	return b.Build()
}

// Config returns the controller configuration
func (c *Controller) Config() *Config {
	return c.cfg
}

// Schema returns the controller schema
func (c *Controller) Schema() *Schema {
	return c.schema
}

// Model returns the current document
func (c *Controller) Model() object.Object {
	return c.model
}

// Name returns metadata.name of the document
func (c *Controller) Name() string {
	return c.model.Name()
}

// SetName sets metadata.name of the document.
// Renaming a created object does not rename it on the server.
func (c *Controller) SetName(name string) error {
	return c.Edit(func(b *object.Builder) {
		b.SetName(name)
	})
}

// Edit applies changes to a copy of the document and replaces the document if they all succeed
func (c *Controller) Edit(fn func(b *object.Builder)) error {
	b := c.model.Edit()
	fn(b)
	o, err := b.Build()
	if err != nil {
		return argumentError("edit", c.resource(), err)
	}
	c.model = o
	return nil
}

func (c *Controller) resource() string {
	if name := c.model.Name(); name != "" {
		return fmt.Sprintf("%s %s", c.schema.Type.Kind, name)
	}
	return c.schema.Type.Kind
}

func (c *Controller) checkName(op string) error {
	if c.model.Name() == "" {
		return newError(InvalidArgument, op, c.resource(), "metadata.name is required")
	}
	return nil
}

func (c *Controller) validate(op string) error {
	if err := c.checkName(op); err != nil {
		return err
	}
	if c.schema.Validate != nil {
		if err := c.schema.Validate(c.model); err != nil {
			return argumentError(op, c.resource(), err)
		}
	}
	return nil
}

func (c *Controller) parse(op string, body []byte) (object.Object, error) {
	o, err := object.Parse(body)
	if err != nil {
		return object.Object{}, wrapError(TransportFailure, op, c.resource(), err)
	}
	return o, nil
}

// Create submits the document and then runs the schema post-create step, by default a Get.
// Server rejections including name conflicts are returned as RemoteRejected errors.
func (c *Controller) Create(ctx context.Context) error {
	if err := c.validate("create"); err != nil {
		return err
	}
	res, err := c.cfg.Transport.Create(ctx, c.schema.Type, c.model.Bytes())
	if err != nil {
		return transportError("create", c.resource(), err)
	}
	if o, err := object.Parse(res); err == nil && o.Name() == c.model.Name() {
		c.model = o
	}
	c.cfg.debugf("created %s", c.resource())
	if c.schema.PostCreate != nil {
		return c.schema.PostCreate(ctx, c)
	}
	return c.Get(ctx)
}

// Get fetches the object by name and replaces the document
func (c *Controller) Get(ctx context.Context) error {
	if err := c.checkName("get"); err != nil {
		return err
	}
	res, err := c.cfg.Transport.Get(ctx, c.schema.Type, c.model.Name())
	if err != nil {
		return transportError("get", c.resource(), err)
	}
	o, err := c.parse("get", res)
	if err != nil {
		return err
	}
	c.model = o
	return nil
}

// Update replaces the server object with the document and then fetches it.
// The document must carry the current resourceVersion or a Conflict error is returned.
func (c *Controller) Update(ctx context.Context) error {
	if err := c.validate("update"); err != nil {
		return err
	}
	if _, err := c.cfg.Transport.Update(ctx, c.schema.Type, c.model.Name(), c.model.Bytes()); err != nil {
		return transportError("update", c.resource(), err)
	}
	c.cfg.debugf("updated %s", c.resource())
	return c.Get(ctx)
}

// Delete removes the object. If the server returns the object, for example with a deletion
// timestamp while finalizers run, it replaces the document.
func (c *Controller) Delete(ctx context.Context) error {
	if err := c.checkName("delete"); err != nil {
		return err
	}
	res, err := c.cfg.Transport.Delete(ctx, c.schema.Type, c.model.Name())
	if err != nil {
		return transportError("delete", c.resource(), err)
	}
	if o, err := object.Parse(res); err == nil && o.Kind() != "Status" && o.Name() != "" {
		c.model = o
	}
	c.cfg.debugf("deleted %s", c.resource())
	return nil
}

// List returns a controller for each object of the controller's type
func (c *Controller) List(ctx context.Context) ([]*Controller, error) {
	return List(ctx, c.cfg, c.schema)
}

// List returns a controller for each object of the schema type, in server order.
// Each item is parsed independently; a single failure fails the call.
func List(ctx context.Context, cfg *Config, schema *Schema) ([]*Controller, error) {
	if err := checkConfig(cfg, schema); err != nil {
		return nil, err
	}
	items, err := cfg.Transport.List(ctx, schema.Type)
	if err != nil {
		return nil, transportError("list", schema.Type.Kind, err)
	}
	ret := make([]*Controller, 0, len(items))
	for i, item := range items {
		o, err := object.Parse(item)
		if err == nil {
			o, err = inheritType(schema, o)
		}
		if err != nil {
			return nil, newError(TransportFailure, "list", schema.Type.Kind, "item %d: %s", i, err.Error())
		}
		ret = append(ret, &Controller{cfg: cfg, schema: schema, model: o})
	}
	return ret, nil
}

// GetByName returns the named object or nil if it does not exist
func GetByName(ctx context.Context, cfg *Config, schema *Schema, name string) (*Controller, error) {
	if err := checkConfig(cfg, schema); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, newError(InvalidArgument, "get", schema.Type.Kind, "name is required")
	}
	if schema.Lookup == LookupList {
		list, err := List(ctx, cfg, schema)
		if err != nil {
			return nil, err
		}
		for _, c := range list {
			if c.Name() == name {
				return c, nil
			}
		}
		return nil, nil
	}
	c, err := NewController(cfg, schema, name)
	if err != nil {
		return nil, err
	}
	if err = c.Get(ctx); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
