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
	"regexp"
	"testing"

	logging "github.com/op/go-logging"
)

// TestLogger captures go-logging output in memory so tests can inspect it and
// replay it through t.Log
type TestLogger struct {
	t       *testing.T
	logger  *logging.Logger
	lbe     *logging.MemoryBackend
	flushed uint64
}

// NewTestLogger returns a test logger recording at DEBUG level
func NewTestLogger(t *testing.T) *TestLogger {
	lbe := logging.InitForTesting(logging.DEBUG)
	logging.SetFormatter(logging.MustStringFormatter("%{id} %{shortfile} %{level} %{message}"))
	return &TestLogger{
		t:      t,
		lbe:    lbe,
		logger: logging.MustGetLogger(""),
	}
}

// Logger returns the logger
func (tl *TestLogger) Logger() *logging.Logger {
	return tl.logger
}

// Records returns every formatted record captured so far
func (tl *TestLogger) Records() []string {
	return tl.collect(0)
}

// Pending returns the formatted records not yet flushed
func (tl *TestLogger) Pending() []string {
	return tl.collect(tl.flushed)
}

// Flush sends the pending records to the test log
func (tl *TestLogger) Flush() {
	for n := tl.lbe.Head(); n != nil; n = n.Next() {
		if n.Record.ID > tl.flushed {
			tl.t.Log(n.Record.Formatted(2))
			tl.flushed = n.Record.ID
		}
	}
}

// CountPattern counts the pending records matching a pattern without flushing them
func (tl *TestLogger) CountPattern(rePattern string) int {
	re := regexp.MustCompile(rePattern)
	count := 0
	for _, s := range tl.Pending() {
		if re.MatchString(s) {
			count++
		}
	}
	return count
}

func (tl *TestLogger) collect(after uint64) []string {
	recs := []string{}
	for n := tl.lbe.Head(); n != nil; n = n.Next() {
		if n.Record.ID > after {
			recs = append(recs, n.Record.Formatted(2))
		}
	}
	return recs
}
