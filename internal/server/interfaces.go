// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package server

//go:generate mockgen -source=interfaces.go -destination=../mock/connector_mock.go -package=mock

import "context"

// Connector establishes the backends the server depends on. Connect must
// succeed before the listener binds; Close is called once on termination.
type Connector interface {
	Connect(ctx context.Context) error
	Close() error
}
