// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package models

// ErrorResponse is the JSON body written for every failed request.
//
// Status is "fail" for client faults (4xx) and "error" for everything else.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PrincipalResponse describes the resolved caller identity.
type PrincipalResponse struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Role     string `json:"role,omitempty"`
	Approved *bool  `json:"is_approved,omitempty"`
}

// ReadinessResponse reports the state of backing dependencies.
type ReadinessResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BuildInfoResponse is served by the version endpoint.
type BuildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
