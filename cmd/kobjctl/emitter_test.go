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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/aaaaalbert/kubernetes-py/pkg/object"
	"github.com/olekukonko/tablewriter"
	"github.com/stretchr/testify/assert"
)

type TestEmitter struct {
	jsonData     interface{}
	yamlData     interface{}
	tableData    [][]string
	tableHeaders []string
}

func (e *TestEmitter) EmitJSON(data interface{}) error {
	e.jsonData = data
	return nil
}

func (e *TestEmitter) EmitYAML(data interface{}) error {
	e.yamlData = data
	return nil
}

func (e *TestEmitter) EmitTable(headers []string, data [][]string, customizeTable func(t *tablewriter.Table)) error {
	e.tableData = data
	e.tableHeaders = headers
	return nil
}

type failingMarshaler struct{}

func (f *failingMarshaler) MarshalYAML() (interface{}, error) {
	return nil, fmt.Errorf("failingMarshaler")
}

func TestStdoutEmitter(t *testing.T) {
	assert := assert.New(t)

	defer func() {
		outputWriter = os.Stdout
	}()
	var b bytes.Buffer
	outputWriter = &b

	// json ok
	type tE struct {
		Field1   int `json:"fieldOne"`
		Field2   string
		IsACamel bool
	}
	o := tE{2, "2humps", true}
	j := "{\n" +
		`    "fieldOne": 2,` + "\n" +
		`    "Field2": "2humps",` + "\n" +
		`    "IsACamel": true` + "\n" +
		"}\n"
	e := &StdoutEmitter{}

	err := e.EmitJSON(o)
	assert.Nil(err)
	assert.Equal(j, b.String())

	// json failure
	b.Reset()
	err = e.EmitJSON(&struct {
		N json.Number
	}{json.Number(`invalid`)})
	assert.NotNil(err)
	assert.Equal(0, b.Len())

	// yaml ok
	b.Reset()
	err = e.EmitYAML(o)
	assert.Nil(err)
	assert.Equal("field1: 2\nfield2: 2humps\nisacamel: true\n", b.String())

	// yaml error
	b.Reset()
	err = e.EmitYAML(&failingMarshaler{})
	assert.NotNil(err)
	assert.Equal(0, b.Len())

	// table
	b.Reset()
	err = e.EmitTable([]string{"Name", "Phase"}, [][]string{{"ns1", "Active"}}, func(t *tablewriter.Table) {
		t.SetBorder(false)
	})
	assert.Nil(err)
	assert.Regexp("Name.*Phase", b.String())
	assert.Regexp("ns1.*Active", b.String())
}

func TestEmitObjects(t *testing.T) {
	assert := assert.New(t)

	savedEmitter := appCtx.Emitter
	savedFormat := appCtx.OutputFormat
	defer func() {
		appCtx.Emitter = savedEmitter
		appCtx.OutputFormat = savedFormat
	}()
	te := &TestEmitter{}
	appCtx.Emitter = te

	o, err := object.Parse([]byte(`{"kind":"Namespace","apiVersion":"v1","metadata":{"name":"ns1"},"spec":{"n":10}}`))
	assert.NoError(err)

	appCtx.OutputFormat = "json"
	done, err := emitObjects([]object.Object{o})
	assert.True(done)
	assert.NoError(err)
	docs, ok := te.jsonData.([]json.RawMessage)
	assert.True(ok)
	assert.Len(docs, 1)
	assert.JSONEq(string(o.Bytes()), string(docs[0]))

	// yaml numbers are not quoted
	appCtx.OutputFormat = "yaml"
	done, err = emitObjects([]object.Object{o})
	assert.True(done)
	assert.NoError(err)
	ydocs, ok := te.yamlData.([]interface{})
	assert.True(ok)
	assert.Len(ydocs, 1)
	m, ok := ydocs[0].(map[interface{}]interface{})
	assert.True(ok)
	assert.Equal("Namespace", m["kind"])
	spec, ok := m["spec"].(map[interface{}]interface{})
	assert.True(ok)
	assert.Equal(10, spec["n"])

	appCtx.OutputFormat = "table"
	done, err = emitObjects([]object.Object{o})
	assert.False(done)
	assert.NoError(err)

	err = emitRows([]string{"B", "A"}, []map[string]string{{"A": "a1", "B": "b1"}, {"A": "a2"}})
	assert.NoError(err)
	assert.Equal([]string{"B", "A"}, te.tableHeaders)
	assert.Equal([][]string{{"b1", "a1"}, {"", "a2"}}, te.tableData)
}

func TestValidateColumns(t *testing.T) {
	assert := assert.New(t)

	cols, err := validateColumns("  ", nsHeaders, nsDefaultHeaders)
	assert.NoError(err)
	assert.Equal(nsDefaultHeaders, cols)

	cols, err = validateColumns(hNSCreated+","+hNSName, nsHeaders, nsDefaultHeaders)
	assert.NoError(err)
	assert.Equal([]string{hNSCreated, hNSName}, cols)

	cols, err = validateColumns("Name,Bogus", nsHeaders, nsDefaultHeaders)
	assert.Regexp(`invalid column "Bogus"`, err)
	assert.Nil(cols)
}
