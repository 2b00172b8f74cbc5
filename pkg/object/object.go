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


// Package object provides an immutable view of a Kubernetes resource document
// and a Builder that produces modified copies of it.
package object

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Jeffail/gabs"
	"github.com/ghodss/yaml"
	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/copystructure"
)

// Well known document paths
const (
	KeyKind       = "kind"
	KeyAPIVersion = "apiVersion"
	KeyMetadata   = "metadata"
	KeySpec       = "spec"
	KeyStatus     = "status"
)

// Object is a parsed Kubernetes resource document. The zero value is an empty document.
// Objects are never modified in place; use Edit to derive a new one.
type Object struct {
	doc *gabs.Container
}

// New returns a document with the given kind and apiVersion and empty metadata
func New(kind, apiVersion string) Object {
	return Object{doc: newContainer(map[string]interface{}{
		KeyKind:       kind,
		KeyAPIVersion: apiVersion,
		KeyMetadata:   map[string]interface{}{},
	})}
}

// Parse decodes a JSON document. Numbers are preserved as json.Number so that
// serializing the object reproduces the input values exactly.
func Parse(body []byte) (Object, error) {
	m, err := decodeMap(body)
	if err != nil {
		return Object{}, err
	}
	return Object{doc: newContainer(m)}, nil
}

// ParseYAML decodes a YAML (or JSON) manifest
func ParseYAML(body []byte) (Object, error) {
	j, err := yaml.YAMLToJSON(body)
	if err != nil {
		return Object{}, err
	}
	return Parse(j)
}

func decodeMap(body []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid resource document: %s", err.Error())
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid resource document: not a JSON object")
	}
	return m, nil
}

func newContainer(m map[string]interface{}) *gabs.Container {
	c, _ := gabs.Consume(m)
	return c
}

func (o Object) container() *gabs.Container {
	if o.doc == nil {
		return newContainer(map[string]interface{}{})
	}
	return o.doc
}

// Bytes returns the JSON encoding of the document
func (o Object) Bytes() []byte {
	return o.container().Bytes()
}

// YAML returns the YAML encoding of the document
func (o Object) YAML() ([]byte, error) {
	return yaml.JSONToYAML(o.Bytes())
}

// Kind returns the kind of the document
func (o Object) Kind() string {
	return o.String(KeyKind)
}

// APIVersion returns the apiVersion of the document
func (o Object) APIVersion() string {
	return o.String(KeyAPIVersion)
}

// Name returns metadata.name
func (o Object) Name() string {
	return o.String(KeyMetadata, "name")
}

// UID returns metadata.uid
func (o Object) UID() string {
	return o.String(KeyMetadata, "uid")
}

// ResourceVersion returns metadata.resourceVersion
func (o Object) ResourceVersion() string {
	return o.String(KeyMetadata, "resourceVersion")
}

// CreationTimestamp returns metadata.creationTimestamp if present and valid
func (o Object) CreationTimestamp() (strfmt.DateTime, bool) {
	s := o.String(KeyMetadata, "creationTimestamp")
	if s == "" {
		return strfmt.DateTime{}, false
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return strfmt.DateTime{}, false
	}
	return dt, true
}

// Label returns the value of a label and whether it is present
func (o Object) Label(key string) (string, bool) {
	s, ok := o.container().Search(KeyMetadata, "labels", key).Data().(string)
	return s, ok
}

// Annotation returns the value of an annotation and whether it is present
func (o Object) Annotation(key string) (string, bool) {
	s, ok := o.container().Search(KeyMetadata, "annotations", key).Data().(string)
	return s, ok
}

// Labels returns a copy of metadata.labels
func (o Object) Labels() map[string]string {
	return o.StringMap(KeyMetadata, "labels")
}

// Annotations returns a copy of metadata.annotations
func (o Object) Annotations() map[string]string {
	return o.StringMap(KeyMetadata, "annotations")
}

// Exists returns true if a value is present at the path
func (o Object) Exists(path ...string) bool {
	return o.container().Exists(path...)
}

// Get returns a deep copy of the value at the path, or nil
func (o Object) Get(path ...string) interface{} {
	v := o.container().Search(path...).Data()
	if v == nil {
		return nil
	}
	c, err := copystructure.Copy(v)
	if err != nil {
		return nil
	}
	return c
}

// String returns the string at the path, or the empty string
func (o Object) String(path ...string) string {
	s, _ := o.container().Search(path...).Data().(string)
	return s
}

// StringSlice returns a copy of the list of strings at the path.
// Non-string elements are skipped. A missing path returns nil.
func (o Object) StringSlice(path ...string) []string {
	l, ok := o.container().Search(path...).Data().([]interface{})
	if !ok {
		return nil
	}
	ret := make([]string, 0, len(l))
	for _, v := range l {
		if s, ok := v.(string); ok {
			ret = append(ret, s)
		}
	}
	return ret
}

// StringMap returns a copy of the string valued entries of the map at the path.
// A missing path returns nil.
func (o Object) StringMap(path ...string) map[string]string {
	m, ok := o.container().Search(path...).Data().(map[string]interface{})
	if !ok {
		return nil
	}
	ret := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			ret[k] = s
		}
	}
	return ret
}

// Map returns a deep copy of the map at the path, or nil
func (o Object) Map(path ...string) map[string]interface{} {
	m, _ := o.Get(path...).(map[string]interface{})
	return m
}

// Status returns a copy of the status map
func (o Object) Status() map[string]interface{} {
	return o.Map(KeyStatus)
}

// Phase returns status.phase
func (o Object) Phase() string {
	return o.String(KeyStatus, "phase")
}

// Decode unmarshals the value at the path into v
func (o Object) Decode(v interface{}, path ...string) error {
	b, err := json.Marshal(o.container().Search(path...).Data())
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Edit returns a Builder over a copy of the document
func (o Object) Edit() *Builder {
	b := &Builder{}
	m, err := deepCopy(o.container().Data())
	if err != nil {
		b.err = err
		m = map[string]interface{}{}
	}
	b.doc = newContainer(m)
	return b
}

func deepCopy(v interface{}) (map[string]interface{}, error) {
	c, err := copystructure.Copy(v)
	if err != nil {
		return nil, err
	}
	m, ok := c.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return m, nil
}
