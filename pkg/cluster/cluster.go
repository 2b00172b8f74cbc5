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


package cluster

import (
	"fmt"
	"net/url"
	"strings"
)

// ResourceType identifies a kind of Kubernetes object and the REST collection that holds it.
// Only cluster scoped resources are addressed.
type ResourceType struct {
	Kind       string // e.g. PersistentVolume
	APIVersion string // v1 for the core group, otherwise group/version
	Resource   string // lower case plural collection name, e.g. persistentvolumes
}

// Core resource types
var (
	NamespaceType = ResourceType{
		Kind:       "Namespace",
		APIVersion: K8sAPIVersion,
		Resource:   "namespaces",
	}
	PersistentVolumeType = ResourceType{
		Kind:       "PersistentVolume",
		APIVersion: K8sAPIVersion,
		Resource:   "persistentvolumes",
	}
)

// Validate checks that the type can be turned into a REST path
func (rt ResourceType) Validate() error {
	if rt.Kind == "" || rt.APIVersion == "" || rt.Resource == "" {
		return fmt.Errorf("invalid resource type %q", rt.Kind)
	}
	return nil
}

// CollectionPath returns the path of the collection, e.g. /api/v1/persistentvolumes
func (rt ResourceType) CollectionPath() string {
	if strings.Contains(rt.APIVersion, "/") {
		return "/apis/" + rt.APIVersion + "/" + rt.Resource
	}
	return "/api/" + rt.APIVersion + "/" + rt.Resource
}

// ObjectPath returns the path of a named object in the collection
func (rt ResourceType) ObjectPath(name string) string {
	return rt.CollectionPath() + "/" + url.PathEscape(name)
}

func (rt ResourceType) String() string {
	return rt.Kind
}

// Error extends error and is returned by the K8s client for any non-success HTTP response
type Error interface {
	error
	ObjectExists() bool
	NotFound() bool
	Conflict() bool
	StatusCode() int
	StatusReason() StatusReason
}
