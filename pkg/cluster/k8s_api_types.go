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


// Using resources found at -
// https://github.com/kubernetes/apimachinery/blob/release-1.15/pkg/apis/meta/v1/types.go
//
// These are licensed under the Apache License, Version 2.0 (the "License")

package cluster

import (
	"encoding/json"
)

// TypeMeta contains K8s type meta information
type TypeMeta struct {
	// A string value representing the REST resource this object represents.
	// In CamelCase.
	Kind string `json:"kind,omitempty"`

	// APIVersion defines the version of the schema of an object.
	APIVersion string `json:"apiVersion,omitempty"`
}

// K8sListMeta describes metadata that synthetic resources must have, including lists and various status objects.
type K8sListMeta struct {
	// SelfLink is a URL representing this object.
	// Populated by the system.
	// Read-only.
	SelfLink string `json:"selfLink,omitempty"`

	// String that identifies the server's internal version of this object that
	// can be used by clients to determine when objects have changed.
	// Value must be treated as opaque by clients and passed unmodified back to the server.
	ResourceVersion string `json:"resourceVersion,omitempty"`

	// Continue may be set if the user set a limit on the number of items returned.
	Continue string `json:"continue,omitempty"`
}

// K8sListRes is the envelope of any collection response. Items are left undecoded.
type K8sListRes struct {
	TypeMeta `json:",inline"`
	ListMeta K8sListMeta       `json:"metadata,omitempty"`
	Items    []json.RawMessage `json:"items"`
}

// StatusReason is an enumeration of possible failure causes
type StatusReason string

const (
	// StatusReasonUnknown means the server has declined to indicate a specific reason.
	// Status code 500.
	StatusReasonUnknown StatusReason = ""

	// StatusReasonUnauthorized means the server can be reached and understood the request, but requires
	// the user to present appropriate authorization credentials.
	// Status code 401
	StatusReasonUnauthorized StatusReason = "Unauthorized"

	// StatusReasonForbidden means the server can be reached and understood the request, but refuses
	// to take any further action.
	// Status code 403
	StatusReasonForbidden StatusReason = "Forbidden"

	// StatusReasonNotFound means one or more resources required for this operation
	// could not be found.
	// Status code 404
	StatusReasonNotFound StatusReason = "NotFound"

	// StatusReasonAlreadyExists means the resource you are creating already exists.
	// Status code 409
	StatusReasonAlreadyExists StatusReason = "AlreadyExists"

	// StatusReasonConflict means the requested update operation cannot be completed
	// due to a conflict in the operation, typically a stale resourceVersion.
	// Status code 409
	StatusReasonConflict StatusReason = "Conflict"

	// StatusReasonInvalid means the requested create or update operation cannot be
	// completed due to invalid data provided as part of the request.
	// Status code 422
	StatusReasonInvalid StatusReason = "Invalid"

	// StatusReasonServerTimeout means the server can be reached and understood the request,
	// but cannot complete the action in a reasonable time.
	// Status code 500
	StatusReasonServerTimeout StatusReason = "ServerTimeout"
)

// K8sStatus is a return value for calls that don't return other objects
type K8sStatus struct {
	TypeMeta `json:",inline"`

	// Status of the operation.
	// One of: "Success" or "Failure".
	Status string `json:"status,omitempty"`
	// A human-readable description of the status of this operation.
	Message string `json:"message,omitempty"`
	// A machine-readable description of why this operation is in the
	// "Failure" status. A Reason clarifies an HTTP status code but does not override it.
	Reason StatusReason `json:"reason,omitempty"`
	// Suggested HTTP return code for this status, 0 if not set.
	Code int `json:"code,omitempty"`
}

// K8sAPIVer is used to decode the result of /version
type K8sAPIVer struct {
	Major, Minor, GitVersion, Platform string
}
