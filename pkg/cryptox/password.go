// Package cryptox provides one-way password hashing for stored credentials.
//
// Hashes use Argon2id encoded in PHC string format, so the salt and cost
// parameters travel with the hash and nothing else needs to be stored.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Tuned for interactive logins per the OWASP
// minimum recommendation.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	// ErrMismatch reports that the plaintext does not produce the stored hash.
	ErrMismatch = errors.New("cryptox: password does not match")

	// ErrCorruptHash reports a stored hash that cannot be parsed. A stored
	// credential in this state can never verify and needs operator attention.
	ErrCorruptHash = errors.New("cryptox: corrupt password hash")
)

// HashPassword derives a salted Argon2id digest of password and returns it
// as a PHC-format string ($argon2id$v=19$m=..,t=..,p=..$salt$hash).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword recomputes the digest of password using the parameters and
// salt embedded in encoded and compares in constant time. It returns nil on
// a match, ErrMismatch on a wrong password, and ErrCorruptHash when encoded
// is not a well-formed PHC Argon2id string.
func VerifyPassword(password, encoded string) error {
	params, salt, want, err := decodeHash(encoded)
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism,
		uint32(len(want))) // #nosec G115 -- hash length is bounded by the encoded string

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

type hashParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func decodeHash(encoded string) (hashParams, []byte, []byte, error) {
	// Expected: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" || parts[2] != "v=19" {
		return hashParams{}, nil, nil, ErrCorruptHash
	}

	var p hashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("%w: bad parameters: %w", ErrCorruptHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("%w: bad salt: %w", ErrCorruptHash, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return hashParams{}, nil, nil, fmt.Errorf("%w: bad digest", ErrCorruptHash)
	}

	return p, salt, hash, nil
}
