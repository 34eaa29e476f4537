// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package server

// State is a stage of the process lifecycle.
type State int32

const (
	StateStarting State = iota
	StateListening
	StateShuttingDown
	StateCrashed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateListening:
		return "listening"
	case StateShuttingDown:
		return "shutting-down"
	case StateCrashed:
		return "crashed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
