// Package ratelimit provides the request limiters consulted by the
// rate-limit stage of the HTTP pipeline.
//
// Two backends are available: an in-process token bucket per client key
// (golang.org/x/time/rate) and a fixed window shared through Redis. Both
// satisfy [Limiter]; the pipeline only depends on that contract.
package ratelimit
