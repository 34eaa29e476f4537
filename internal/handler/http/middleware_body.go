// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
)

const (
	invalidJSONMessage = "Invalid JSON body"
	invalidFormMessage = "Invalid form body"
	invalidGzipMessage = "Invalid gzip data"

	// multipartMemory is how much of a multipart body is held in memory
	// before parts spill to temporary files.
	multipartMemory = 32 << 20
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

type bodyCtxKey struct{}

// ParsedBody returns the decoded JSON body of r, if the body-parsing stage
// found one.
func ParsedBody(r *http.Request) (any, bool) {
	v, ok := r.Context().Value(bodyCtxKey{}).(*jsonBody)
	if !ok {
		return nil, false
	}
	return v.value, true
}

type jsonBody struct {
	value any
}

// withBodyParsing limits the body size, inflates gzip-encoded bodies and
// parses JSON, url-encoded and multipart payloads. The raw JSON bytes stay
// readable from r.Body for handlers.
func (h *Handler) withBodyParsing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.settings.MaxBodyBytes)

		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gzipReader := gzipReaderPool.Get().(*gzip.Reader)
			if err := gzipReader.Reset(r.Body); err != nil {
				gzipReaderPool.Put(gzipReader)
				fault.Forward(w, r, bodyFault(err, invalidGzipMessage))
				return
			}

			r.Body = &wrappedReadCloser{
				Reader: http.MaxBytesReader(w, gzipReader, h.settings.MaxBodyBytes),
				OnClose: func() {
					gzipReader.Close()
					gzipReaderPool.Put(gzipReader)
				},
			}
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
			r.ContentLength = -1
		}

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

		switch {
		case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				fault.Forward(w, r, bodyFault(err, invalidJSONMessage))
				return
			}
			_ = r.Body.Close()

			body := &jsonBody{}
			if len(bytes.TrimSpace(raw)) > 0 {
				dec := json.NewDecoder(bytes.NewReader(raw))
				dec.UseNumber()
				if err := dec.Decode(&body.value); err != nil || dec.More() {
					fault.Forward(w, r, fault.New(invalidJSONMessage, http.StatusBadRequest))
					return
				}
			}

			r = withRawBody(r, raw)
			r = r.WithContext(context.WithValue(r.Context(), bodyCtxKey{}, body))

		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				fault.Forward(w, r, bodyFault(err, invalidFormMessage))
				return
			}

		case mediaType == "multipart/form-data":
			if err := r.ParseMultipartForm(multipartMemory); err != nil {
				fault.Forward(w, r, bodyFault(err, invalidFormMessage))
				return
			}
			defer func() {
				if r.MultipartForm != nil {
					_ = r.MultipartForm.RemoveAll()
				}
			}()
		}

		next.ServeHTTP(w, r)
	})
}

// bodyFault maps a body read error to 413 when the limit was hit and to a
// 400 with message otherwise.
func bodyFault(err error, message string) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fault.Wrap(ErrRequestTooLarge, "Request entity too large", http.StatusRequestEntityTooLarge)
	}
	return fault.Wrap(err, message, http.StatusBadRequest)
}

// withRawBody replaces the body of r with raw.
func withRawBody(r *http.Request, raw []byte) *http.Request {
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.ContentLength = int64(len(raw))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(raw)), nil
	}
	return r
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}
