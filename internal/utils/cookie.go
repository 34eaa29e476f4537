// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// signedCookiePrefix marks a cookie value as signed, matching the format
// produced by the web client's cookie library ("s:<value>.<signature>").
const signedCookiePrefix = "s:"

// SignCookie signs value with secret using HMAC-SHA256 and returns it in
// the "s:<value>.<signature>" form. The signature is unpadded base64.
//
// It is the counterpart of [UnsignCookie] for route groups that set the
// session cookie, and for tests.
func SignCookie(value, secret string) string {
	return signedCookiePrefix + value + "." + cookieSignature(value, secret)
}

// UnsignCookie verifies a value produced by [SignCookie] and returns the
// original value.
//
// ok is false when the prefix is missing, the signature is absent, or it
// does not match. Signatures are compared in constant time.
func UnsignCookie(signed, secret string) (value string, ok bool) {
	if secret == "" || !strings.HasPrefix(signed, signedCookiePrefix) {
		return "", false
	}
	signed = strings.TrimPrefix(signed, signedCookiePrefix)

	idx := strings.LastIndexByte(signed, '.')
	if idx <= 0 {
		return "", false
	}
	value, signature := signed[:idx], signed[idx+1:]

	expected := cookieSignature(value, secret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}
	return value, true
}

func cookieSignature(value, secret string) string {
	hasher := hmac.New(sha256.New, []byte(secret))
	hasher.Write([]byte(value))
	return base64.RawStdEncoding.EncodeToString(hasher.Sum(nil))
}
