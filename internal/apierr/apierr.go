// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apierr defines the closed set of error kinds the API can return.
// Every handler failure is one of these; the response package maps each
// kind to its HTTP status code. Anything else becomes a 500.
package apierr

import (
	"errors"
	"net/http"
)

// Kind classifies an API error.
type Kind int

const (
	KindValidation     Kind = iota // malformed or missing input
	KindAuthentication             // bad credentials, invalid or expired token
	KindAuthorization              // role or ownership denial
	KindNotFound                   // missing resource
	KindConflict                   // duplicate email
	KindInternal                   // unexpected failure
)

// Error is a tagged API error carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a 400 error for malformed input.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Authentication returns a 401 error for credential or token failures.
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }

// Authorization returns a 403 error for role or ownership denials.
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }

// NotFound returns a 404 error for a missing resource.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict returns a 409 error, used for duplicate emails.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Internal returns a 500 error. The message is still user-facing, so
// callers should keep details out of it and log the underlying error.
func Internal(msg string) *Error { return &Error{Kind: KindInternal, Message: msg} }

// From extracts an *Error from err, or nil if err is not one.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
