// Package server runs the HTTP listener of the API server and owns the
// process lifecycle: storage must connect before the port is bound, a
// termination signal drains in-flight requests, and any crash tears the
// listener down at once.
//
// The lifecycle is a small state machine:
//
//	Starting -> Listening -> ShuttingDown -> Terminated
//	                      -> Crashed      -> Terminated
//	            ShuttingDown -> Crashed
//
// Every transition is a compare-and-set, so shutdown and crash each happen
// at most once. A crash while draining cuts the drain short and the run
// still reports the crash.
package server
