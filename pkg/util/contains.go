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
	"reflect"
)

// Contains reports whether item is an element of list, which must be a slice or array.
// Elements are compared with reflect.DeepEqual.
func Contains(list interface{}, item interface{}) bool {
	lV := reflect.ValueOf(list)
	switch lV.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return false
	}
	for i := 0; i < lV.Len(); i++ {
		if reflect.DeepEqual(lV.Index(i).Interface(), item) {
			return true
		}
	}
	return false
}
