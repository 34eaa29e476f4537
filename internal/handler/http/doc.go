// Package http implements the HTTP transport layer of the API server.
//
// It declares the global middleware pipeline (real IP, tracing, access
// logging, metrics, body parsing, CORS, security headers, sanitizing,
// authentication context, compression and the error funnel), validates it
// at startup and mounts every resource route group under /v1/api behind
// its per-group rate limit and role gate stages.
//
// Stages never write error bodies themselves; they hand failures to
// [fault.Forward] and the error funnel answers.
package http
