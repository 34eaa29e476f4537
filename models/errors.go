// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package models

import "errors"

// ErrUnknownPrincipalKind is returned when a token or value describes a
// principal that is neither a user nor a rider.
var ErrUnknownPrincipalKind = errors.New("unknown principal kind")
