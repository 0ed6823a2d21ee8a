package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/pkg/cryptox"
	"github.com/hazelworks/finbook/pkg/idx"
	"github.com/hazelworks/finbook/pkg/jwtx"
	"github.com/hazelworks/finbook/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password". Callers must never be able to tell the two apart.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	ErrDuplicateUser     = errors.New("service: username or email already registered")
	ErrCorruptCredential = errors.New("service: stored credential unreadable")
	ErrMissingField      = errors.New("service: missing required field")
)

// decoyHash is verified against when a login identifier doesn't resolve,
// so the miss costs a full Argon2 computation and the lookup-then-verify
// sequence is not observably faster for unknown accounts.
var decoyHash = func() string {
	h, err := cryptox.HashPassword("finbook-decoy-credential")
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService handles signup and login. Tokens it issues are self-contained;
// it keeps no per-session state.
type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
}

// Signup creates an account with a hashed password and returns it. The very
// first account in an empty store becomes an ADMIN so the instance always
// has one; everybody after that is a regular USER.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return domain.User{}, ErrMissingField
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	// Role assignment and insert run in one transaction so two racing first
	// signups cannot both become admin.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if empty {
			user.Role = domain.RoleAdmin
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUser
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user signed up", "username", user.Username, "role", user.Role)

	// Re-read so the returned record carries the store's timestamps.
	return s.Store.Users().GetByID(ctx, user.ID)
}

// Login verifies the identifier (username or email) and password, and on
// success issues a signed bearer token for the account's username. All
// failure modes that reveal account existence collapse into
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, time.Duration, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", 0, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same hashing work a real account would cost.
			_ = cryptox.VerifyPassword(password, decoyHash)
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("credential lookup: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrCorruptHash) {
			slogx.FromContext(ctx).Error("stored password hash unreadable", "username", user.Username)
			return "", 0, ErrCorruptCredential
		}
		return "", 0, ErrInvalidCredentials
	}

	token, err := s.Signer.Sign(user.Username, nil)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	slogx.FromContext(ctx).Info("user logged in", "username", user.Username)
	return token, s.Signer.TTL, nil
}
