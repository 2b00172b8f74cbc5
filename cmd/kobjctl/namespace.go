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
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaaalbert/kubernetes-py/pkg/kube"
	"github.com/aaaaalbert/kubernetes-py/pkg/object"
	"github.com/aaaaalbert/kubernetes-py/pkg/util"
)

func initNamespace() {
	cmd, _ := parser.AddCommand("namespace", "Namespace commands", "Namespace Subcommands", &nsCmd{})
	cmd.Aliases = []string{"ns"}
	cmd.AddCommand("list", "List Namespaces", "List all namespaces in the cluster", &nsListCmd{})
	cmd.AddCommand("get", "Get a Namespace", "Fetch a namespace by name", &nsGetCmd{})
	cmd.AddCommand("create", "Create a Namespace", "Create a namespace in the cluster", &nsCreateCmd{})
	cmd.AddCommand("delete", "Delete a Namespace", "Delete a namespace from the cluster", &nsDeleteCmd{})
	cmd.AddCommand("label", "Label a Namespace", "Set labels on an existing namespace", &nsLabelCmd{})
}

type nsCmd struct {
	tableCols []string
}

const (
	hNSName    = "Name"
	hNSPhase   = "Phase"
	hNSLabels  = "Labels"
	hNSCreated = "Created"
)

var nsHeaders = map[string]string{
	hNSName:    "namespace name",
	hNSPhase:   "status phase",
	hNSLabels:  "labels",
	hNSCreated: "creation time",
}

var nsDefaultHeaders = []string{hNSName, hNSPhase, hNSLabels}

func (c *nsCmd) makeRecord(ns *kube.Namespace) map[string]string {
	created := ""
	if ts, ok := ns.Model().CreationTimestamp(); ok {
		created = ts.String()
	}
	return map[string]string{
		hNSName:    ns.Name(),
		hNSPhase:   ns.Phase(),
		hNSLabels:  util.JoinKeyValues(ns.Model().Labels(), ","),
		hNSCreated: created,
	}
}

func validateColumns(columns string, headers map[string]string, defaults []string) ([]string, error) {
	if matched, _ := regexp.MatchString("^\\s*$", columns); matched {
		return defaults, nil
	}
	cols := strings.Split(columns, ",")
	for _, col := range cols {
		if _, ok := headers[col]; !ok {
			return nil, fmt.Errorf("invalid column \"%s\"", col)
		}
	}
	return cols, nil
}

func (c *nsCmd) validateColumns(columns string) (err error) {
	c.tableCols, err = validateColumns(columns, nsHeaders, nsDefaultHeaders)
	return
}

func (c *nsCmd) Emit(data []*kube.Namespace) error {
	objs := make([]object.Object, len(data))
	for i, ns := range data {
		objs[i] = ns.Model()
	}
	if done, err := emitObjects(objs); done {
		return err
	}
	recs := make([]map[string]string, len(data))
	for i, ns := range data {
		recs[i] = c.makeRecord(ns)
	}
	return emitRows(c.tableCols, recs)
}

type nsListCmd struct {
	Columns string `long:"columns" description:"Comma separated list of column names"`
	nsCmd
}

func (c *nsListCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	res, err := kube.ListNamespaces(appCtx.ctx, appCtx.Config)
	if err != nil {
		return err
	}
	return c.Emit(res)
}

type nsGetCmd struct {
	Name    string `short:"n" long:"name" description:"Specify the namespace name" required:"yes"`
	Columns string `long:"columns" description:"Comma separated list of column names"`
	nsCmd
}

func (c *nsGetCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	ns, err := kube.GetNamespaceByName(appCtx.ctx, appCtx.Config, c.Name)
	if err != nil {
		return err
	}
	if ns == nil {
		return fmt.Errorf("namespace %q not found", c.Name)
	}
	return c.Emit([]*kube.Namespace{ns})
}

type nsCreateCmd struct {
	Name    string            `short:"n" long:"name" description:"Specify the namespace name" required:"yes"`
	Labels  map[string]string `short:"l" long:"label" description:"A label key:value pair. Repeat as needed"`
	Columns string            `long:"columns" description:"Comma separated list of column names"`
	nsCmd
}

func (c *nsCreateCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	ns, err := kube.NewNamespace(appCtx.Config, c.Name)
	if err != nil {
		return err
	}
	for _, k := range util.SortedStringKeys(c.Labels) {
		if err = ns.SetLabel(k, c.Labels[k]); err != nil {
			return err
		}
	}
	if err = ns.Create(appCtx.ctx); err != nil {
		return err
	}
	return c.Emit([]*kube.Namespace{ns})
}

type nsDeleteCmd struct {
	Name    string `short:"n" long:"name" description:"Specify the namespace name" required:"yes"`
	Columns string `long:"columns" description:"Comma separated list of column names"`
	nsCmd
}

func (c *nsDeleteCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	ns, err := kube.NewNamespace(appCtx.Config, c.Name)
	if err != nil {
		return err
	}
	if err = ns.Delete(appCtx.ctx); err != nil {
		return err
	}
	return c.Emit([]*kube.Namespace{ns})
}

type nsLabelCmd struct {
	Name    string            `short:"n" long:"name" description:"Specify the namespace name" required:"yes"`
	Labels  map[string]string `short:"l" long:"label" description:"A label key:value pair. Repeat as needed" required:"yes"`
	Columns string            `long:"columns" description:"Comma separated list of column names"`
	nsCmd
}

func (c *nsLabelCmd) Execute(args []string) error {
	if err := c.validateColumns(c.Columns); err != nil {
		return err
	}
	ns, err := kube.NewNamespace(appCtx.Config, c.Name)
	if err != nil {
		return err
	}
	if err = ns.Get(appCtx.ctx); err != nil {
		return err
	}
	for _, k := range util.SortedStringKeys(c.Labels) {
		if err = ns.SetLabel(k, c.Labels[k]); err != nil {
			return err
		}
	}
	if err = ns.Update(appCtx.ctx); err != nil {
		return err
	}
	return c.Emit([]*kube.Namespace{ns})
}
