// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned by stores when a unique constraint is violated.
var ErrDuplicate = errors.New("duplicate key")

// ErrorKind is the stable, machine-readable class of a domain error.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation_error"
	KindAuthentication ErrorKind = "authentication_error"
	KindInvalidToken   ErrorKind = "invalid_token"
	KindForbidden      ErrorKind = "forbidden"
	KindNotFound       ErrorKind = "not_found"
	KindInternal       ErrorKind = "internal_error"
)

// InternalMessage is the only message clients see for internal errors.
const InternalMessage = "an internal error occurred"

// Error is a domain error carrying a kind and a client-safe message.
// Err holds the underlying cause, which is logged but never returned to
// clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed, missing or out-of-range input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewAuthenticationError reports failed credentials. The message is the
// same for unknown identifiers and wrong passwords.
func NewAuthenticationError() *Error {
	return &Error{Kind: KindAuthentication, Message: "invalid credentials"}
}

// NewInvalidTokenError reports a missing, malformed or expired token.
func NewInvalidTokenError(message string) *Error {
	return &Error{Kind: KindInvalidToken, Message: message}
}

// NewForbiddenError reports an authenticated caller acting on a resource
// they do not own.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewNotFoundError reports an identifier that does not resolve.
func NewNotFoundError(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: InternalMessage, Err: err}
}

// KindOf classifies any error. Errors that are not domain errors are
// internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
