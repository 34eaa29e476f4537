// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package fault

import (
	"context"
	"net/http"
)

// Sink receives every failure produced while serving a request and is the
// only component that writes error responses.
type Sink interface {
	ServeError(w http.ResponseWriter, r *http.Request, err error)
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(w http.ResponseWriter, r *http.Request, err error)

// ServeError calls f(w, r, err).
func (f SinkFunc) ServeError(w http.ResponseWriter, r *http.Request, err error) {
	f(w, r, err)
}

type sinkCtxKey struct{}

// WithSink returns a copy of ctx whose failures are delivered to s.
func WithSink(ctx context.Context, s Sink) context.Context {
	return context.WithValue(ctx, sinkCtxKey{}, s)
}

// Forward hands err to the sink bound to the request. A nil err is ignored.
//
// Outside a funnelled request (no sink in the context) the fault is written
// as a bare status line, so a misassembled pipeline still answers.
func Forward(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	if s, ok := r.Context().Value(sinkCtxKey{}).(Sink); ok && s != nil {
		s.ServeError(w, r, err)
		return
	}

	code := http.StatusInternalServerError
	if f, ok := As(err); ok {
		code = f.Code()
	}
	http.Error(w, http.StatusText(code), code)
}

// HandlerFunc is an http handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP calls h and forwards a returned error to the request's sink.
func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		Forward(w, r, err)
	}
}
