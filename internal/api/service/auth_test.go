package service

import (
	"context"
	"testing"
	"time"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store/drivers/sqlite"
	"github.com/hazelworks/finbook/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func newAuthService(t *testing.T, ttl time.Duration) (*AuthService, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	svc := &AuthService{
		Store:  st,
		Signer: &jwtx.Signer{Key: testSigningKey, Issuer: "finbook-test", TTL: ttl},
	}
	return svc, st
}

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "secret123", user.PasswordHash, "password must be stored hashed")

	t.Run("login by email", func(t *testing.T) {
		token, ttl, err := svc.Login(ctx, "alice@x.com", "secret123")
		require.NoError(t, err)
		require.Equal(t, time.Hour, ttl)

		verifier := &jwtx.Verifier{Key: testSigningKey, Issuer: "finbook-test"}
		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
	})

	t.Run("login by username", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "secret123")
		require.NoError(t, err)
	})
}

func TestSignupFirstUserBecomesAdmin(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, first.Role)

	second, err := svc.Signup(ctx, "bob", "bob@x.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, second.Role)
}

func TestSignupDuplicate(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "alice", "other@x.com", "secret123")
	require.ErrorIs(t, err, ErrDuplicateUser)

	_, err = svc.Signup(ctx, "other", "alice@x.com", "secret123")
	require.ErrorIs(t, err, ErrDuplicateUser)
}

func TestSignupMissingFields(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	for _, tc := range []struct{ username, email, password string }{
		{"", "a@x.com", "p"},
		{"a", "", "p"},
		{"a", "a@x.com", ""},
		{"   ", "a@x.com", "p"},
	} {
		_, err := svc.Signup(ctx, tc.username, tc.email, tc.password)
		require.ErrorIs(t, err, ErrMissingField)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(ctx, "nonexistent@x.com", "anything")
	_, _, wrongPassErr := svc.Login(ctx, "alice@x.com", "wrongpassword")

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongPassErr, "unknown account and wrong password must be the same error value")
}

func TestLoginCorruptStoredHash(t *testing.T) {
	t.Parallel()

	svc, st := newAuthService(t, time.Hour)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	user.PasswordHash = "not-a-phc-hash"
	require.NoError(t, st.Users().Update(ctx, user))

	_, _, err = svc.Login(ctx, "alice", "secret123")
	require.ErrorIs(t, err, ErrCorruptCredential)
}

func TestLoginTokenExpiryMatchesTTL(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t, 0)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	verifier := &jwtx.Verifier{Key: testSigningKey, Issuer: "finbook-test"}
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired, "a zero-TTL token is expired on arrival")
}
