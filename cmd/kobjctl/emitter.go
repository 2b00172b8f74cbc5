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
	"encoding/json"
	"fmt"

	"github.com/aaaaalbert/kubernetes-py/pkg/object"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"
)

// Emitter provides an abstraction of output emitters
type Emitter interface {
	// JSONEmitter is an interface that emits JSON
	EmitJSON(data interface{}) error
	// YAMLEmitter is an interface that emits YAML
	EmitYAML(data interface{}) error
	// TableEmitter is an interface that emits a table. The callback is optional.
	EmitTable(headers []string, data [][]string, customizeTable func(t *tablewriter.Table)) error
}

// StdoutEmitter emits output to stdout
type StdoutEmitter struct{}

// EmitJSON emits JSON to stdout
func (e *StdoutEmitter) EmitJSON(data interface{}) error {
	b, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(outputWriter, string(b))
	return nil
}

// EmitYAML emits YAML to stdout
func (e *StdoutEmitter) EmitYAML(data interface{}) error {
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(outputWriter, "%s", string(b))
	return nil
}

// EmitTable emits a table to stdout
func (e *StdoutEmitter) EmitTable(headers []string, data [][]string, customizeTable func(t *tablewriter.Table)) error {
	table := tablewriter.NewWriter(outputWriter)
	if len(headers) > 0 {
		table.SetHeader(headers)
		table.SetAutoFormatHeaders(false)
	}
	if customizeTable != nil {
		customizeTable(table)
	}
	table.AppendBulk(data)
	table.Render()
	return nil
}

// emitObjects emits documents as JSON or YAML, returning false for table output
func emitObjects(objs []object.Object) (bool, error) {
	switch appCtx.OutputFormat {
	case "json":
		docs := make([]json.RawMessage, 0, len(objs))
		for _, o := range objs {
			docs = append(docs, json.RawMessage(o.Bytes()))
		}
		return true, appCtx.EmitJSON(docs)
	case "yaml":
		docs := make([]interface{}, 0, len(objs))
		for _, o := range objs {
			y, err := o.YAML()
			if err != nil {
				return true, err
			}
			var v interface{}
			if err = yaml.Unmarshal(y, &v); err != nil {
				return true, err
			}
			docs = append(docs, v)
		}
		return true, appCtx.EmitYAML(docs)
	}
	return false, nil
}

// emitRows emits records as a table using the selected columns
func emitRows(cols []string, recs []map[string]string) error {
	rows := make([][]string, len(recs))
	for i, rec := range recs {
		row := make([]string, len(cols))
		for j, h := range cols {
			row[j] = rec[h]
		}
		rows[i] = row
	}
	return appCtx.EmitTable(cols, rows, nil)
}
