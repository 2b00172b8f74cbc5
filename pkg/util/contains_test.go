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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert := assert.New(t)

	assert.True(Contains([]int{200, 201, 202}, 201))
	assert.False(Contains([]int{200, 201, 202}, 404))
	assert.True(Contains([]string{"ext4", "xfs"}, "xfs"))
	assert.False(Contains([]string{"ext4", "xfs"}, "btrfs"))
	assert.False(Contains([]string{}, "x"))
	assert.False(Contains(nil, "x"))
	assert.False(Contains("not a list", "n"))
	assert.True(Contains([2]string{"a", "b"}, "b"))

	type rm string
	assert.False(Contains([]rm{"Retain"}, "Retain"), "element type must match")
	assert.True(Contains([]rm{"Retain"}, rm("Retain")))
}
