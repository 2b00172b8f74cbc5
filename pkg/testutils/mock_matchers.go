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


package testutils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/golang/mock/gomock"
)

type ctxDeadlineMatcher struct {
	expected  time.Time
	isTimeout bool
}

// NewCtxDeadlineMatcher matches a context with exactly the given deadline
func NewCtxDeadlineMatcher(deadline time.Time) gomock.Matcher {
	return &ctxDeadlineMatcher{expected: deadline}
}

// NewCtxTimeoutMatcher matches a context created with at least the given timeout.
// It must be called before the context under test is created.
func NewCtxTimeoutMatcher(timeout time.Duration) gomock.Matcher {
	return &ctxDeadlineMatcher{expected: time.Now().Add(timeout), isTimeout: true}
}

func (m *ctxDeadlineMatcher) Matches(x interface{}) bool {
	ctx, ok := x.(context.Context)
	if !ok {
		return false
	}
	dl, ok := ctx.Deadline()
	if !ok {
		return false
	}
	if m.isTimeout {
		return !dl.Before(m.expected)
	}
	return m.expected.Equal(dl)
}

func (m *ctxDeadlineMatcher) String() string {
	if m.isTimeout {
		return fmt.Sprintf("ctx deadline not before %s", m.expected)
	}
	return fmt.Sprintf("ctx deadline matches %s", m.expected)
}

type jsonField struct {
	path  []string
	value interface{}
}

// JSONFieldMatcher matches a JSON request body by the values at a set of paths
type JSONFieldMatcher struct {
	fields   []jsonField
	mismatch string
}

// NewJSONFieldMatcher returns a matcher with no expectations; it matches any JSON object
func NewJSONFieldMatcher() *JSONFieldMatcher {
	return &JSONFieldMatcher{}
}

// With adds the expected scalar value at path. Numbers are compared as float64.
func (m *JSONFieldMatcher) With(value interface{}, path ...string) *JSONFieldMatcher {
	m.fields = append(m.fields, jsonField{path: path, value: value})
	return m
}

// Matches is from gomock.Matcher
func (m *JSONFieldMatcher) Matches(x interface{}) bool {
	b, ok := x.([]byte)
	if !ok {
		m.mismatch = fmt.Sprintf("%T is not a []byte", x)
		return false
	}
	doc, err := gabs.ParseJSON(b)
	if err != nil {
		m.mismatch = err.Error()
		return false
	}
	for _, f := range m.fields {
		if got := doc.Search(f.path...).Data(); got != f.value {
			m.mismatch = fmt.Sprintf("%s is %v", strings.Join(f.path, "."), got)
			return false
		}
	}
	m.mismatch = ""
	return true
}

// String is from gomock.Matcher
func (m *JSONFieldMatcher) String() string {
	want := make([]string, len(m.fields))
	for i, f := range m.fields {
		want[i] = fmt.Sprintf("%s=%v", strings.Join(f.path, "."), f.value)
	}
	s := "JSON body with " + strings.Join(want, ", ")
	if m.mismatch != "" {
		s += " (" + m.mismatch + ")"
	}
	return s
}
