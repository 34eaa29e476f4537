// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
)

// withErrorFunnel is the request boundary. It binds a per-request sink to
// the context, recovers panics from every inner stage and guarantees that
// at most one error response is written.
func (h *Handler) withErrorFunnel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fw := &funnelWriter{ResponseWriter: w}
		sink := &requestSink{handler: h, writer: fw}
		r = r.WithContext(fault.WithSink(r.Context(), sink))

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			sink.ServeError(fw, r, fault.FromPanic(rec))
		}()

		next.ServeHTTP(fw, r)
	})
}

// requestSink delivers the faults of a single request to the funnel.
type requestSink struct {
	handler *Handler
	writer  *funnelWriter

	mu     sync.Mutex
	served bool
}

func (s *requestSink) ServeError(w http.ResponseWriter, r *http.Request, err error) {
	f := asFault(err)
	log := s.handler.requestLogger(r)

	s.mu.Lock()
	alreadySent := s.served || s.writer.written()
	s.served = true
	s.mu.Unlock()

	if alreadySent {
		log.Warn().
			Err(err).
			Str("uri", r.URL.RequestURI()).
			Msg("error raised after the response was sent, ignoring")
		return
	}

	s.handler.serveError(w, r, f)
}

// serveError logs f and writes the JSON error body.
func (h *Handler) serveError(w http.ResponseWriter, r *http.Request, f *fault.Fault) {
	code := f.Code()

	log := h.requestLogger(r)
	event := log.Warn()
	if code >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Str("error_type", errorType(f)).
		Int("status", code).
		Str("method", r.Method).
		Str("uri", r.URL.RequestURI()).
		Err(f).
		Msg("request failed")

	resp := models.ErrorResponse{
		Status:  f.Status(),
		Message: f.PublicMessage(),
	}
	if _, err := utils.WriteJSON(w, resp, code); err != nil {
		log.Err(err).Msg("error writing error response")
	}
}

// requestLogger prefers the trace-scoped logger of the request.
func (h *Handler) requestLogger(r *http.Request) *logger.Logger {
	if logger.HasContextLogger(r.Context()) {
		return logger.FromRequest(r)
	}
	return h.logger
}

// errorType names the concrete type of the root cause.
func errorType(f *fault.Fault) string {
	if cause := f.Unwrap(); cause != nil {
		return fmt.Sprintf("%T", cause)
	}
	return fmt.Sprintf("%T", f)
}

// funnelWriter records whether the response header has been sent.
type funnelWriter struct {
	http.ResponseWriter

	mu          sync.Mutex
	wroteHeader bool
}

func (w *funnelWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	if w.wroteHeader {
		w.mu.Unlock()
		return
	}
	w.wroteHeader = true
	w.mu.Unlock()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *funnelWriter) Write(b []byte) (int, error) {
	if !w.written() {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *funnelWriter) written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wroteHeader
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *funnelWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
