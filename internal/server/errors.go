// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package server

import "errors"

var (
	// ErrStartup wraps failures that happen before the listener is bound.
	ErrStartup = errors.New("server startup failed")

	// ErrCrashed wraps the fault that crashed a listening server.
	ErrCrashed = errors.New("server crashed")

	// ErrAlreadyStarted is returned by a second call to [Server.Run].
	ErrAlreadyStarted = errors.New("server already started")
)
