// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error taxonomy shared by the engine and the
// HTTP handlers. Every error that reaches a response is classified into a
// Kind, which fixes both the HTTP status code and the "error" label of the
// JSON envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the request-facing error class. Its string value is exactly the
// "error" field of the JSON envelope.
type Kind string

const (
	KindValidation Kind = "Bad Request"
	KindAuth       Kind = "Unauthorized"
	KindNotFound   Kind = "Not Found"
	KindConflict   Kind = "Conflict"
	KindStore      Kind = "Internal Server Error"
)

// Status maps the kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a human-readable message for the response body,
// and an optional wrapped cause that only surfaces in logs.
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

// Validation reports missing or malformed request input.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Auth reports a missing or invalid admin token.
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

// NotFound reports that no record exists at the requested key.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict reports a write that collides with an existing record.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Store wraps a failed store operation. The cause is preserved for logs
// but never sent to the client.
func Store(msg string, cause error) *Error {
	return &Error{Kind: KindStore, Message: msg, Err: cause}
}

// From coerces any error into an *Error. Errors that do not carry a kind
// are classified as store failures, so callers always have a status and
// label to report.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}
