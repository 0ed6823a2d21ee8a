package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates HS256 tokens minted by a Signer sharing the same key.
//
// The signature is checked before any claim is trusted, with the accepted
// algorithm pinned to HS256 so an attacker cannot downgrade to "none" or
// cross-sign with an asymmetric scheme. Expiry is strict: a token whose exp
// equals the current instant is already expired, and no leeway is applied.
type Verifier struct {
	Key    []byte
	Issuer string
}

// Verify parses and validates token, returning its claims on success.
// Failures map onto the package sentinels: ErrMalformed for anything
// unparsable, ErrInvalidSig on signature mismatch, ErrExpired past exp and
// ErrIssuer on an issuer mismatch.
func (v *Verifier) Verify(token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	parsed, err := jwt.NewParser(opts...).Parse(token, func(t *jwt.Token) (any, error) {
		return v.Key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidClaim
	}

	return claimsFromMap(mc)
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrMalformed
	default:
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
}

func claimsFromMap(mc jwt.MapClaims) (Claims, error) {
	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, ErrInvalidClaim
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidClaim
	}

	c := Claims{Subject: sub, ExpiresAt: exp.Time.UTC()}

	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time.UTC()
	}

	for k, val := range mc {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[k] = val
	}

	return c, nil
}

// TTLRemaining reports how long the claims stay valid from now. Zero or
// negative means expired.
func (c Claims) TTLRemaining() time.Duration {
	return time.Until(c.ExpiresAt)
}
