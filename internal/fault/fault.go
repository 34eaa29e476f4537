// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Fixed client-facing messages.
const (
	ForbiddenMessage = "You are not authorized to perform this action."
	InternalMessage  = "Something went wrong, please try again later."
)

// Fault is a failure carrying the HTTP status it maps to and whether it is
// operational (an expected condition such as a bad request) or a programmer
// fault whose detail must not reach the caller.
type Fault struct {
	Message     string
	StatusCode  int
	Operational bool

	cause error
}

// New returns an operational fault with the given client-safe message.
func New(message string, statusCode int) *Fault {
	return &Fault{
		Message:     message,
		StatusCode:  statusCode,
		Operational: true,
	}
}

// Wrap returns an operational fault that keeps err as its cause.
func Wrap(err error, message string, statusCode int) *Fault {
	f := New(message, statusCode)
	f.cause = err
	return f
}

// Internal returns a non-operational 500 fault around err.
func Internal(err error) *Fault {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Fault{
		Message:    msg,
		StatusCode: http.StatusInternalServerError,
		cause:      err,
	}
}

// Forbidden is the fault produced by the role authorization gate.
func Forbidden() *Fault {
	return New(ForbiddenMessage, http.StatusForbidden)
}

// RouteNotFound is the fault produced when no route matches method and uri.
func RouteNotFound(method, uri string) *Fault {
	return New(fmt.Sprintf("Can not find %s with %s on this server", uri, method), http.StatusNotImplemented)
}

// FromPanic converts a recovered panic value into a non-operational fault.
func FromPanic(rec any) *Fault {
	if err, ok := rec.(error); ok {
		return Internal(fmt.Errorf("panic: %w", err))
	}
	return Internal(fmt.Errorf("panic: %v", rec))
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.cause != nil && f.cause.Error() != f.Message {
		return f.Message + ": " + f.cause.Error()
	}
	return f.Message
}

// Unwrap returns the cause of the fault, if any.
func (f *Fault) Unwrap() error {
	return f.cause
}

// Code returns the HTTP status of the fault, defaulting to 500.
func (f *Fault) Code() int {
	if f.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return f.StatusCode
}

// Status returns "fail" for client faults and "error" otherwise.
func (f *Fault) Status() string {
	if code := f.Code(); code >= 400 && code < 500 {
		return "fail"
	}
	return "error"
}

// PublicMessage is the message that may be sent to the caller.
func (f *Fault) PublicMessage() string {
	if !f.Operational {
		return InternalMessage
	}
	return f.Message
}

// As reports whether err is or wraps a *Fault and returns it.
func As(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) && f != nil {
		return f, true
	}
	return nil, false
}
