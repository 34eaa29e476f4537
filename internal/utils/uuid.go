// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers (UUIDv7), falling back to
// random UUIDv4 when the clock source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
