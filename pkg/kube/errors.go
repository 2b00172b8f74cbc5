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
	"fmt"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/pkg/errors"
)

// ErrorKind classifies the errors returned by this package
type ErrorKind string

// ErrorKind values
const (
	// InvalidArgument is returned for caller mistakes such as a bad volume type or a missing name
	InvalidArgument ErrorKind = "InvalidArgument"
	// UnsupportedForVariant is returned when a field is accessed on a volume source variant that lacks it
	UnsupportedForVariant ErrorKind = "UnsupportedForVariant"
	// NotFound is returned when the server has no object of the given name
	NotFound ErrorKind = "NotFound"
	// RemoteRejected is returned for all other non-success server responses
	RemoteRejected ErrorKind = "RemoteRejected"
	// Conflict is returned when an update carries a stale resourceVersion
	Conflict ErrorKind = "Conflict"
	// TimedOut is returned when readiness polling exceeds its budget
	TimedOut ErrorKind = "TimedOut"
	// TransportFailure is returned when no server response was obtained or it could not be decoded
	TransportFailure ErrorKind = "TransportFailure"
)

// Error is the error type returned by controllers and accessors
type Error struct {
	Kind     ErrorKind
	Op       string // create, get, update, delete, list, set or get of a field
	Resource string // Kind and name of the object
	Err      error
}

func (e *Error) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Resource, e.Err)
}

// Cause returns the underlying error
func (e *Error) Cause() error {
	return e.Err
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op, resource string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Resource: resource, Err: errors.Errorf(format, args...)}
}

func wrapError(kind ErrorKind, op, resource string, err error) *Error {
	return &Error{Kind: kind, Op: op, Resource: resource, Err: err}
}

// transportError classifies an error returned by the Transport
func transportError(op, resource string, err error) *Error {
	kind := TransportFailure
	if ce, ok := errors.Cause(err).(cluster.Error); ok {
		switch {
		case ce.NotFound():
			kind = NotFound
		case ce.Conflict():
			kind = Conflict
		default:
			kind = RemoteRejected
		}
	}
	return wrapError(kind, op, resource, err)
}

// argumentError classifies a local validation failure
func argumentError(op, resource string, err error) error {
	if KindOf(err) != "" {
		return err
	}
	return wrapError(InvalidArgument, op, resource, err)
}

type causer interface {
	Cause() error
}

// KindOf returns the kind of the outermost *Error in the cause chain, or the empty string
func KindOf(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return ""
}

// IsInvalidArgument returns true for InvalidArgument errors
func IsInvalidArgument(err error) bool {
	return KindOf(err) == InvalidArgument
}

// IsUnsupported returns true for UnsupportedForVariant errors
func IsUnsupported(err error) bool {
	return KindOf(err) == UnsupportedForVariant
}

// IsNotFound returns true for NotFound errors
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}

// IsConflict returns true for Conflict errors
func IsConflict(err error) bool {
	return KindOf(err) == Conflict
}

// IsRemoteRejected returns true for RemoteRejected errors
func IsRemoteRejected(err error) bool {
	return KindOf(err) == RemoteRejected
}

// IsTimedOut returns true for TimedOut errors
func IsTimedOut(err error) bool {
	return KindOf(err) == TimedOut
}
