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
	"io/ioutil"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/aaaaalbert/kubernetes-py/pkg/kube"
	"github.com/aaaaalbert/kubernetes-py/pkg/object"
)

func initApply() {
	parser.AddCommand("apply", "Create an object from a manifest", "Create a Namespace or PersistentVolume described by a YAML or JSON manifest", &applyCmd{})
}

type applyCmd struct {
	File string `short:"f" long:"filename" description:"The manifest file" required:"yes"`
}

func (c *applyCmd) Execute(args []string) error {
	b, err := ioutil.ReadFile(c.File)
	if err != nil {
		return err
	}
	o, err := object.ParseYAML(b)
	if err != nil {
		return fmt.Errorf("%s: %s", c.File, err.Error())
	}
	switch o.Kind() {
	case cluster.NamespaceType.Kind:
		ns, err := kube.NewNamespaceFromObject(appCtx.Config, o)
		if err != nil {
			return err
		}
		if err = ns.Create(appCtx.ctx); err != nil {
			return err
		}
		cmd := &nsCmd{tableCols: nsDefaultHeaders}
		return cmd.Emit([]*kube.Namespace{ns})
	case cluster.PersistentVolumeType.Kind:
		pv, err := kube.NewPersistentVolumeFromObject(appCtx.Config, o)
		if err != nil {
			return err
		}
		if err = pv.Create(appCtx.ctx); err != nil {
			return err
		}
		cmd := &pvCmd{tableCols: pvDefaultHeaders}
		return cmd.Emit([]*kube.PersistentVolume{pv})
	}
	return fmt.Errorf("%s: unsupported kind %q", c.File, o.Kind())
}
