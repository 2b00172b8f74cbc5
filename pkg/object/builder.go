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


package object

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Jeffail/gabs"
	"k8s.io/apimachinery/pkg/util/validation"
)

// FieldError reports an invalid value for a document field
type FieldError struct {
	Field  string
	Value  interface{}
	Detail string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Detail)
}

// NewFieldError returns a FieldError
func NewFieldError(field string, value interface{}, detail string) error {
	return &FieldError{Field: field, Value: value, Detail: detail}
}

// Builder accumulates changes to a private copy of a document.
// The first failing change is recorded and returned by Build; later changes are ignored.
type Builder struct {
	doc *gabs.Container
	err error
}

// Err returns the first recorded error
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func validationErr(field string, value interface{}, errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return NewFieldError(field, value, strings.Join(errs, "; "))
}

// SetName sets metadata.name, which must be a DNS-1123 subdomain
func (b *Builder) SetName(name string) *Builder {
	if err := validationErr("metadata.name", name, validation.IsDNS1123Subdomain(name)); err != nil {
		return b.fail(err)
	}
	return b.Set(name, KeyMetadata, "name")
}

// SetLabel sets a label. The key must be a qualified name and the value a valid label value.
func (b *Builder) SetLabel(key, value string) *Builder {
	if err := validationErr("label key", key, validation.IsQualifiedName(key)); err != nil {
		return b.fail(err)
	}
	if err := validationErr("label value", value, validation.IsValidLabelValue(value)); err != nil {
		return b.fail(err)
	}
	return b.Set(value, KeyMetadata, "labels", key)
}

// DeleteLabel removes a label if present
func (b *Builder) DeleteLabel(key string) *Builder {
	return b.Delete(KeyMetadata, "labels", key)
}

// SetAnnotation sets an annotation. The key must be a qualified name.
func (b *Builder) SetAnnotation(key, value string) *Builder {
	if err := validationErr("annotation key", key, validation.IsQualifiedName(key)); err != nil {
		return b.fail(err)
	}
	return b.Set(value, KeyMetadata, "annotations", key)
}

// DeleteAnnotation removes an annotation if present
func (b *Builder) DeleteAnnotation(key string) *Builder {
	return b.Delete(KeyMetadata, "annotations", key)
}

// Set stores a value at the path, creating intermediate maps as needed.
// The value is normalized through its JSON encoding so structs become plain maps.
func (b *Builder) Set(value interface{}, path ...string) *Builder {
	if b.err != nil {
		return b
	}
	if len(path) == 0 {
		return b.fail(fmt.Errorf("empty path"))
	}
	v, err := normalize(value)
	if err != nil {
		return b.fail(NewFieldError(strings.Join(path, "."), value, err.Error()))
	}
	if _, err = b.doc.Set(v, path...); err != nil {
		return b.fail(NewFieldError(strings.Join(path, "."), value, err.Error()))
	}
	return b
}

// Delete removes the value at the path. Missing paths are ignored.
func (b *Builder) Delete(path ...string) *Builder {
	if b.err != nil || len(path) == 0 {
		return b
	}
	b.doc.Delete(path...)
	return b
}

// Build returns a new Object holding a copy of the accumulated document
func (b *Builder) Build() (Object, error) {
	if b.err != nil {
		return Object{}, b.err
	}
	m, err := deepCopy(b.doc.Data())
	if err != nil {
		return Object{}, err
	}
	return Object{doc: newContainer(m)}, nil
}

func normalize(value interface{}) (interface{}, error) {
	switch value.(type) {
	case nil, string, bool, json.Number:
		return value, nil
	}
	body, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var v interface{}
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	if err = dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
