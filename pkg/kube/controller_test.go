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
	"net/http"
	"testing"
	"time"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/aaaaalbert/kubernetes-py/pkg/kube/fake"
	"github.com/aaaaalbert/kubernetes-py/pkg/object"
	"github.com/aaaaalbert/kubernetes-py/pkg/testutils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var _ = Transport(&fake.Transport{})

var testEpoch = time.Date(2019, 4, 17, 20, 0, 0, 0, time.UTC)

func newTestConfig(t *testing.T) (*Config, *fake.Transport, *fake.Clock, *testutils.TestLogger) {
	tl := testutils.NewTestLogger(t)
	ft := &fake.Transport{}
	fc := &fake.Clock{T: testEpoch}
	cfg := NewConfig(ft, tl.Logger())
	cfg.Clock = fc
	return cfg, ft, fc, tl
}

func nsDoc(name, phase string) []byte {
	return []byte(fmt.Sprintf(`{"kind":"Namespace","apiVersion":"v1","metadata":{"name":%q,"uid":"uid-%s","resourceVersion":"7"},"spec":{"finalizers":["kubernetes"]},"status":{"phase":%q}}`, name, name, phase))
}

func nsItem(name string) []byte {
	return []byte(fmt.Sprintf(`{"metadata":{"name":%q}}`, name))
}

var errStatusNotFound = cluster.NewK8sError("not found", cluster.StatusReasonNotFound, http.StatusNotFound)

func TestNewController(t *testing.T) {
	assert := assert.New(t)
	cfg, _, _, tl := newTestConfig(t)
	defer tl.Flush()

	c, err := NewController(nil, NamespaceSchema, "ns")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)
	c, err = NewController(&Config{}, NamespaceSchema, "ns")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)
	c, err = NewController(cfg, nil, "ns")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)
	c, err = NewController(cfg, &Schema{Type: cluster.ResourceType{Kind: "X"}}, "ns")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)
	c, err = NewController(cfg, NamespaceSchema, "Bad_Name")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)

	c, err = NewController(cfg, NamespaceSchema, "")
	assert.NoError(err)
	assert.Equal("", c.Name())
	assert.Equal("Namespace", c.Model().Kind())
	assert.Equal("v1", c.Model().APIVersion())
	assert.Equal(cfg, c.Config())
	assert.Equal(NamespaceSchema, c.Schema())

	assert.NoError(c.SetName("ns-1"))
	assert.Equal("ns-1", c.Name())

	// a failed edit leaves the model unchanged
	before := c.Model()
	err = c.Edit(func(b *object.Builder) {
		b.SetLabel("ok", "v").SetLabel("bad key!", "v")
	})
	assert.True(IsInvalidArgument(err))
	assert.Equal(before, c.Model())
	_, ok := c.Model().Label("ok")
	assert.False(ok)

	// remote operations require a name
	c, _ = NewController(cfg, NamespaceSchema, "")
	ctx := context.Background()
	assert.True(IsInvalidArgument(c.Create(ctx)))
	assert.True(IsInvalidArgument(c.Get(ctx)))
	assert.True(IsInvalidArgument(c.Update(ctx)))
	assert.True(IsInvalidArgument(c.Delete(ctx)))
	assert.Regexp("metadata.name is required", c.Get(ctx))
}

func TestNewControllerFromObject(t *testing.T) {
	assert := assert.New(t)
	cfg, _, _, tl := newTestConfig(t)
	defer tl.Flush()

	o, err := object.ParseYAML([]byte("kind: Namespace\nmetadata:\n  name: team-a\n"))
	assert.NoError(err)
	c, err := NewControllerFromObject(cfg, NamespaceSchema, o)
	assert.NoError(err)
	assert.Equal("team-a", c.Name())
	assert.Equal("v1", c.Model().APIVersion())
	assert.Equal("", o.APIVersion())

	o, _ = object.ParseYAML([]byte("kind: Pod\nmetadata:\n  name: p\n"))
	c, err = NewControllerFromObject(cfg, NamespaceSchema, o)
	assert.True(IsInvalidArgument(err))
	assert.Regexp("expected kind Namespace", err)
	assert.Nil(c)

	c, err = NewControllerFromObject(nil, NamespaceSchema, o)
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)
}

func TestControllerCreate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg, ft, _, tl := newTestConfig(t)
	defer tl.Flush()

	c, err := NewController(cfg, NamespaceSchema, "ns-1")
	assert.NoError(err)
	ft.RetCreateBody = nsDoc("ns-1", "")
	ft.RetGetBodies = [][]byte{nsDoc("ns-1", "Active")}
	assert.NoError(c.Create(ctx))
	assert.Equal([]string{"Create Namespace", "Get Namespace ns-1"}, ft.Calls)
	assert.Equal(cluster.NamespaceType, ft.InCreateRT)
	sub, err := object.Parse(ft.InCreateBody)
	assert.NoError(err)
	assert.Equal("ns-1", sub.Name())
	assert.Equal("Namespace", sub.Kind())
	assert.Equal("Active", c.Model().Phase())
	assert.Equal("uid-ns-1", c.Model().UID())
	assert.Equal(1, tl.CountPattern("created Namespace ns-1"))

	// a custom post create step replaces the refresh
	called := 0
	schema := &Schema{Type: cluster.NamespaceType, PostCreate: func(ctx context.Context, c *Controller) error {
		called++
		return nil
	}}
	c, _ = NewController(cfg, schema, "ns-2")
	ft.Calls = nil
	ft.RetCreateBody = nsDoc("ns-2", "")
	assert.NoError(c.Create(ctx))
	assert.Equal(1, called)
	assert.Equal([]string{"Create Namespace"}, ft.Calls)
	assert.Equal("uid-ns-2", c.Model().UID())

	// schema validation runs before submission
	schema = &Schema{Type: cluster.NamespaceType, Validate: func(o object.Object) error {
		return fmt.Errorf("rejected locally")
	}}
	c, _ = NewController(cfg, schema, "ns-3")
	ft.Calls = nil
	err = c.Create(ctx)
	assert.True(IsInvalidArgument(err))
	assert.Regexp("rejected locally", err)
	assert.Empty(ft.Calls)
}

func TestControllerCreateErrors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg, ft, _, tl := newTestConfig(t)
	defer tl.Flush()

	tcs := []struct {
		err  error
		kind ErrorKind
	}{
		{cluster.NewK8sError("namespaces \"ns\" already exists", cluster.StatusReasonAlreadyExists, http.StatusConflict), RemoteRejected},
		{cluster.NewK8sError("invalid", cluster.StatusReasonInvalid, http.StatusUnprocessableEntity), RemoteRejected},
		{cluster.NewK8sError("forbidden", cluster.StatusReasonForbidden, http.StatusForbidden), RemoteRejected},
		{errors.Wrap(cluster.NewK8sError("stale", cluster.StatusReasonConflict, http.StatusConflict), "wrapped"), Conflict},
		{fmt.Errorf("connection refused"), TransportFailure},
	}
	for _, tc := range tcs {
		c, _ := NewController(cfg, NamespaceSchema, "ns")
		ft.Calls = nil
		ft.RetCreateErr = tc.err
		err := c.Create(ctx)
		assert.Equal(tc.kind, KindOf(err), "%s", tc.err)
		assert.Equal(errors.Cause(tc.err), errors.Cause(err), "%s", tc.err)
		assert.Equal([]string{"Create Namespace"}, ft.Calls, "not retried")
		assert.Equal("", c.Model().UID())
	}
	ft.RetCreateErr = nil

	// the refresh failing is returned
	c, _ := NewController(cfg, NamespaceSchema, "ns")
	ft.RetGetErr = errStatusNotFound
	assert.True(IsNotFound(c.Create(ctx)))
}

func TestControllerGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg, ft, _, tl := newTestConfig(t)
	defer tl.Flush()

	c, _ := NewController(cfg, NamespaceSchema, "ns-1")
	assert.NoError(c.Edit(func(b *object.Builder) { b.SetLabel("local", "only") }))
	ft.RetGetBodies = [][]byte{nsDoc("ns-1", "Active")}
	assert.NoError(c.Get(ctx))
	assert.Equal("ns-1", ft.InGetName)
	// replaced wholesale, not merged
	_, ok := c.Model().Label("local")
	assert.False(ok)
	assert.Equal("Active", c.Model().Phase())
	assert.JSONEq(string(nsDoc("ns-1", "Active")), string(c.Model().Bytes()))

	ft.RetGetBodies = [][]byte{[]byte("not json")}
	before := c.Model()
	err := c.Get(ctx)
	assert.Equal(TransportFailure, KindOf(err))
	assert.Equal(before, c.Model())

	ft.RetGetErr = errStatusNotFound
	err = c.Get(ctx)
	assert.True(IsNotFound(err))
	assert.Regexp("get Namespace ns-1: not found", err)
	ce, ok := errors.Cause(err).(cluster.Error)
	assert.True(ok)
	assert.Equal(http.StatusNotFound, ce.StatusCode())
}

func TestControllerUpdate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg, ft, _, tl := newTestConfig(t)
	defer tl.Flush()

	c, _ := NewController(cfg, NamespaceSchema, "ns-1")
	ft.RetGetBodies = [][]byte{nsDoc("ns-1", "Active")}
	assert.NoError(c.Get(ctx))
	assert.NoError(c.Edit(func(b *object.Builder) { b.SetLabel("env", "dev") }))
	ft.Calls = nil
	assert.NoError(c.Update(ctx))
	assert.Equal([]string{"Update Namespace ns-1", "Get Namespace ns-1"}, ft.Calls)
	sub, _ := object.Parse(ft.InUpdateBody)
	assert.Equal("7", sub.ResourceVersion())
	v, _ := sub.Label("env")
	assert.Equal("dev", v)
	assert.Equal(1, tl.CountPattern("updated Namespace ns-1"))

	ft.RetUpdateErr = cluster.NewK8sError("the object has been modified", cluster.StatusReasonConflict, http.StatusConflict)
	ft.Calls = nil
	err := c.Update(ctx)
	assert.True(IsConflict(err))
	assert.Equal([]string{"Update Namespace ns-1"}, ft.Calls)

	ft.RetUpdateErr = cluster.NewK8sError("conflict", cluster.StatusReasonUnknown, http.StatusConflict)
	assert.True(IsConflict(c.Update(ctx)))
}

func TestControllerDelete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg, ft, _, tl := newTestConfig(t)
	defer tl.Flush()

	c, _ := NewController(cfg, NamespaceSchema, "ns-1")
	ft.RetDeleteBody = nsDoc("ns-1", "Terminating")
	assert.NoError(c.Delete(ctx))
	assert.Equal("ns-1", ft.InDeleteName)
	assert.Equal("Terminating", c.Model().Phase())

	before := c.Model()
	ft.RetDeleteBody = []byte(`{"kind":"Status","apiVersion":"v1","status":"Success","details":{"name":"ns-1"}}`)
	assert.NoError(c.Delete(ctx))
	assert.Equal(before, c.Model())

	ft.RetDeleteBody = nil
	assert.NoError(c.Delete(ctx))
	assert.Equal(before, c.Model())

	ft.RetDeleteErr = errStatusNotFound
	assert.True(IsNotFound(c.Delete(ctx)))
}

func TestList(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg, ft, _, tl := newTestConfig(t)
	defer tl.Flush()

	ft.RetListItems = [][]byte{nsItem("b"), nsDoc("a", "Active"), nsItem("c")}
	list, err := List(ctx, cfg, NamespaceSchema)
	assert.NoError(err)
	assert.Len(list, 3)
	names := []string{}
	for _, c := range list {
		names = append(names, c.Name())
		assert.Equal("Namespace", c.Model().Kind())
		assert.Equal("v1", c.Model().APIVersion())
		assert.Equal(cfg, c.Config())
		assert.Equal(NamespaceSchema, c.Schema())
	}
	assert.Equal([]string{"b", "a", "c"}, names)
	assert.Equal(cluster.NamespaceType, ft.InListRT)

	// independent models
	assert.NoError(list[0].Edit(func(b *object.Builder) { b.SetLabel("k", "v") }))
	_, ok := list[1].Model().Label("k")
	assert.False(ok)

	c, _ := NewController(cfg, NamespaceSchema, "")
	list, err = c.List(ctx)
	assert.NoError(err)
	assert.Len(list, 3)

	// atomic
	ft.RetListItems = [][]byte{nsItem("a"), []byte("{"), nsItem("c")}
	list, err = List(ctx, cfg, NamespaceSchema)
	assert.Equal(TransportFailure, KindOf(err))
	assert.Regexp("item 1", err)
	assert.Nil(list)

	ft.RetListItems = [][]byte{}
	list, err = List(ctx, cfg, NamespaceSchema)
	assert.NoError(err)
	assert.NotNil(list)
	assert.Len(list, 0)

	ft.RetListErr = cluster.NewK8sError("forbidden", cluster.StatusReasonForbidden, http.StatusForbidden)
	list, err = List(ctx, cfg, NamespaceSchema)
	assert.True(IsRemoteRejected(err))
	assert.Nil(list)

	list, err = List(ctx, nil, NamespaceSchema)
	assert.True(IsInvalidArgument(err))
	assert.Nil(list)
}

func TestGetByName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg, ft, _, tl := newTestConfig(t)
	defer tl.Flush()

	// direct lookup
	ft.RetGetBodies = [][]byte{nsDoc("ns-1", "Active")}
	c, err := GetByName(ctx, cfg, NamespaceSchema, "ns-1")
	assert.NoError(err)
	assert.Equal("ns-1", c.Name())
	assert.Equal([]string{"Get Namespace ns-1"}, ft.Calls)

	ft.RetGetErr = errStatusNotFound
	c, err = GetByName(ctx, cfg, NamespaceSchema, "ns-1")
	assert.NoError(err)
	assert.Nil(c)

	ft.RetGetErr = fmt.Errorf("connection reset")
	c, err = GetByName(ctx, cfg, NamespaceSchema, "ns-1")
	assert.Equal(TransportFailure, KindOf(err))
	assert.Nil(c)
	ft.RetGetErr = nil

	c, err = GetByName(ctx, cfg, NamespaceSchema, "")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)
	c, err = GetByName(ctx, cfg, NamespaceSchema, "Not_Valid")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)
	c, err = GetByName(ctx, nil, NamespaceSchema, "x")
	assert.True(IsInvalidArgument(err))
	assert.Nil(c)

	// list lookup
	listSchema := &Schema{Type: cluster.NamespaceType, Lookup: LookupList}
	ft.Calls = nil
	ft.RetListItems = [][]byte{}
	c, err = GetByName(ctx, cfg, listSchema, "x")
	assert.NoError(err)
	assert.Nil(c)
	assert.Equal([]string{"List Namespace"}, ft.Calls)

	ft.RetListItems = [][]byte{nsItem("a"), nsItem("x"), nsItem("b")}
	c, err = GetByName(ctx, cfg, listSchema, "x")
	assert.NoError(err)
	assert.Equal("x", c.Name())

	ft.RetListItems = [][]byte{nsItem("a"), []byte(`{"metadata":{"name":"x","uid":"first"}}`), []byte(`{"metadata":{"name":"x","uid":"second"}}`)}
	c, err = GetByName(ctx, cfg, listSchema, "x")
	assert.NoError(err)
	assert.Equal("first", c.Model().UID())

	c, err = GetByName(ctx, cfg, listSchema, "missing")
	assert.NoError(err)
	assert.Nil(c)

	ft.RetListErr = fmt.Errorf("down")
	c, err = GetByName(ctx, cfg, listSchema, "x")
	assert.Error(err)
	assert.Nil(c)
}
