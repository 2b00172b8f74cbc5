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


package kube

import (
	"context"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/aaaaalbert/kubernetes-py/pkg/object"
)

// LookupMode selects how GetByName finds an object
type LookupMode int

// LookupMode values
const (
	// LookupDirect fetches the object by name
	LookupDirect LookupMode = iota
	// LookupList lists the collection and returns the first exact name match
	LookupList
)

// PostCreateFunc runs after a successful create. It is responsible for refreshing the model.
type PostCreateFunc func(ctx context.Context, c *Controller) error

// Schema describes a resource type handled by a Controller
type Schema struct {
	Type cluster.ResourceType
	// Validate checks the model before it is submitted. Optional.
	Validate func(o object.Object) error
	// PostCreate replaces the default refresh after create. Optional.
	PostCreate PostCreateFunc
	Lookup     LookupMode
}

// NewModel returns an empty document of the schema type
func (s *Schema) NewModel() object.Object {
	return object.New(s.Type.Kind, s.Type.APIVersion)
}
