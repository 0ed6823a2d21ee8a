package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints HS256 tokens for authenticated subjects. TTL is fixed at
// construction; expiry is always issuedAt + TTL and never recomputed.
type Signer struct {
	Key    []byte
	Issuer string
	TTL    time.Duration
}

// registered claim names that extra claims may not override.
var reservedClaims = map[string]struct{}{
	"iss": {}, "sub": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {}, "jti": {},
}

// Sign issues a compact signed token for subject. Extra claims are carried
// verbatim in the payload; entries colliding with registered claim names
// are dropped rather than allowed to tamper with token semantics.
func (s *Signer) Sign(subject string, extra map[string]any) (string, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"iss": s.Issuer,
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.TTL).Unix(),
		"jti": newJTI(),
	}
	for k, v := range extra {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		claims[k] = v
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Key)
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
