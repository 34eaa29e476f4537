// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"fmt"
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/rbac"
)

// StageKind identifies what a pipeline stage does, independent of its name.
type StageKind string

const (
	KindRealIP          StageKind = "real-ip"
	KindTraceID         StageKind = "trace-id"
	KindRequestLogging  StageKind = "request-logging"
	KindMetrics         StageKind = "metrics"
	KindBodyParsing     StageKind = "body-parsing"
	KindCORS            StageKind = "cors"
	KindSecurityHeaders StageKind = "security-headers"
	KindSanitize        StageKind = "sanitize"
	KindAuthContext     StageKind = "auth-context"
	KindCompression     StageKind = "compression"
	KindErrorFunnel     StageKind = "error-funnel"

	// Per-group kinds. They never appear in the global list.
	KindRateLimit StageKind = "rate-limit"
	KindRoleGate  StageKind = "role-gate"
)

// Stage is one declared step of the request pipeline.
type Stage struct {
	Name       string
	Kind       StageKind
	Middleware func(http.Handler) http.Handler
}

var requiredKinds = []StageKind{
	KindBodyParsing,
	KindCORS,
	KindSecurityHeaders,
	KindSanitize,
	KindAuthContext,
	KindCompression,
	KindErrorFunnel,
}

// orderedPairs lists kinds that must run before other kinds when both are
// present.
var orderedPairs = [][2]StageKind{
	{KindCORS, KindBodyParsing},
	{KindSecurityHeaders, KindBodyParsing},
	{KindBodyParsing, KindSanitize},
	{KindTraceID, KindRequestLogging},
	{KindSanitize, KindAuthContext},
}

// validateStages checks a declared global stage list before any router is
// built. Any violation is a startup error.
func validateStages(stages []Stage) error {
	index := make(map[StageKind]int, len(stages))
	funnels := 0

	for i, s := range stages {
		if s.Middleware == nil {
			return fmt.Errorf("%w: stage %q has no middleware", ErrInvalidPipeline, s.Name)
		}
		switch s.Kind {
		case KindRateLimit, KindRoleGate:
			return fmt.Errorf("%w: %s stage %q cannot be global", ErrInvalidPipeline, s.Kind, s.Name)
		case KindErrorFunnel:
			funnels++
		}
		if _, dup := index[s.Kind]; dup && s.Kind != KindErrorFunnel {
			return fmt.Errorf("%w: stage kind %s declared twice", ErrInvalidPipeline, s.Kind)
		}
		index[s.Kind] = i
	}

	for _, kind := range requiredKinds {
		if _, ok := index[kind]; !ok {
			return fmt.Errorf("%w: missing %s stage", ErrInvalidPipeline, kind)
		}
	}

	if funnels != 1 {
		return fmt.Errorf("%w: expected exactly one error funnel, got %d", ErrInvalidPipeline, funnels)
	}
	if stages[len(stages)-1].Kind != KindErrorFunnel {
		return fmt.Errorf("%w: error funnel must be declared last", ErrInvalidPipeline)
	}

	for _, pair := range orderedPairs {
		before, okBefore := index[pair[0]]
		after, okAfter := index[pair[1]]
		if okBefore && okAfter && before > after {
			return fmt.Errorf("%w: %s must run before %s", ErrInvalidPipeline, pair[0], pair[1])
		}
	}

	return nil
}

// globalStages declares the pipeline every request passes through, in
// execution order. The error funnel is declared last and installed as the
// outermost boundary.
func (h *Handler) globalStages() []Stage {
	return []Stage{
		{Name: "real-ip", Kind: KindRealIP, Middleware: h.withRealIP},
		{Name: "trace-id", Kind: KindTraceID, Middleware: h.withTraceID},
		{Name: "request-logging", Kind: KindRequestLogging, Middleware: h.withLogging},
		{Name: "metrics", Kind: KindMetrics, Middleware: h.metrics.withMetrics},
		{Name: "cors", Kind: KindCORS, Middleware: h.withCORS()},
		{Name: "security-headers", Kind: KindSecurityHeaders, Middleware: withSecurityHeaders},
		{Name: "body-parsing", Kind: KindBodyParsing, Middleware: h.withBodyParsing},
		{Name: "sanitize", Kind: KindSanitize, Middleware: withSanitize},
		{Name: "auth-context", Kind: KindAuthContext, Middleware: h.withAuthContext},
		{Name: "compression", Kind: KindCompression, Middleware: withGZip},
		{Name: "error-funnel", Kind: KindErrorFunnel, Middleware: h.withErrorFunnel},
	}
}

// groupStages returns the stages mounted in front of one route group:
// the rate limiter first when the group is listed, then the role gate when
// the group declares roles.
func (h *Handler) groupStages(name string, roles []string) []Stage {
	var stages []Stage
	if h.rateLimited(name) {
		stages = append(stages, Stage{Name: "rate-limit", Kind: KindRateLimit, Middleware: h.withRateLimit})
	}
	if len(roles) > 0 {
		stages = append(stages, Stage{Name: "role-gate", Kind: KindRoleGate, Middleware: rbac.RequireRoles(roles...)})
	}
	return stages
}

func middlewares(stages []Stage) []func(http.Handler) http.Handler {
	mws := make([]func(http.Handler) http.Handler, 0, len(stages))
	for _, s := range stages {
		mws = append(mws, s.Middleware)
	}
	return mws
}
