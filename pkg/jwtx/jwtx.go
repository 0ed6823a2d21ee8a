// Package jwtx issues and verifies the bearer tokens that protect the API.
//
// Tokens are standard HS256-signed JWTs (three base64url segments), so any
// compliant verifier holding the shared key can validate them offline. There
// is no server-side token state: validity is purely signature + expiry.
package jwtx

import (
	"encoding/base64"
	"errors"
	"time"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")

	ErrBadKey      = errors.New("jwtx: signing key is not valid base64")
	ErrKeyTooShort = errors.New("jwtx: signing key must be at least 256 bits")
)

// MinKeyBytes is the smallest acceptable decoded key size. HMAC-SHA256
// needs a key at least as long as its output to retain full strength.
const MinKeyBytes = 32

// Claims is the verified content of a token. Extra holds any non-registered
// claims carried alongside the subject; it is nil when none were set.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// LoadKey decodes a base64-encoded symmetric signing key and enforces the
// minimum length. The decoded key is held in memory only and must never be
// logged or transmitted.
func LoadKey(encoded string) ([]byte, error) {
	key, err := decodeBase64(encoded)
	if err != nil {
		return nil, ErrBadKey
	}
	if len(key) < MinKeyBytes {
		return nil, ErrKeyTooShort
	}
	return key, nil
}

// decodeBase64 accepts standard padded, standard raw, and url-safe raw
// encodings. Deployments are inconsistent about padding and alphabet, and
// rejecting an otherwise good key over it helps nobody.
func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}
