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


package util

import (
	"sort"
	"strings"
)

// SortedStringKeys returns the keys of a string map in sorted order.
func SortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JoinKeyValues renders a string map as "k=v" pairs in key order, separated by sep.
func JoinKeyValues(m map[string]string, sep string) string {
	pairs := make([]string, 0, len(m))
	for _, k := range SortedStringKeys(m) {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, sep)
}
