// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned by [ParseBearerToken] when the
// header is not of the form "<scheme> <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GeneratePrincipalToken issues an HS256-signed JWT describing p.
//
// issuer becomes the "iss" claim and tokenDuration the distance between
// "iat" and "exp". All parameters are required.
//
// This is the issuing half of the bearer scheme verified by the auth-context
// stage. The server itself does not mint tokens; route groups that log
// principals in call it, as do tests that need a valid token.
func GeneratePrincipalToken(issuer string, p models.Principal, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	claims, err := models.ClaimsFor(p)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims.Issuer = issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ParsePrincipalToken validates tokenString (signature, expiry, issuer and
// HS256 algorithm) and returns the principal it describes.
func ParsePrincipalToken(tokenString, tokenSignKey, tokenIssuer string) (models.Principal, error) {
	claims := &models.PrincipalClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("empty subject error")
	}

	return claims.Principal()
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
