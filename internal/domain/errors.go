// Package domain defines the error taxonomy shared by the policy, service and
// handler layers. Every failure carries a kind (machine-checkable) and a human
// message, so callers can tell "fix your input" from "you're not allowed" from
// "infrastructure problem".
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and for tests.
type Kind string

const (
	KindUnauthenticated     Kind = "unauthenticated"
	KindForbiddenRole       Kind = "forbidden_role"
	KindForbiddenOwnership  Kind = "forbidden_ownership"
	KindProtectedAdmin      Kind = "protected_admin"
	KindRestrictedOperation Kind = "restricted_operation"
	KindNotFound            Kind = "not_found"
	KindValidation          Kind = "validation_failed"
	KindConflict            Kind = "conflict_duplicate"
	KindStoreUnavailable    Kind = "store_unavailable"
)

// Error is the canonical error value. The first five kinds are policy
// failures: they are final and never retried. KindStoreUnavailable is the
// only kind a collaborator layer may retry transparently.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a plain domain error.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the kind from an error chain; empty when err carries none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err (or anything it wraps) has the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
