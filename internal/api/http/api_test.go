package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/service"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/internal/api/store/drivers/sqlite"
	"github.com/hazelworks/finbook/pkg/httpx"
	"github.com/hazelworks/finbook/pkg/jwtx"
	"github.com/hazelworks/finbook/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type testAPI struct {
	router *Router
	store  *sqlite.Store
	signer *jwtx.Signer
	auth   *service.AuthService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer := &jwtx.Signer{Key: testKey, Issuer: "finbook-test", TTL: time.Hour}
	verifier := &jwtx.Verifier{Key: testKey, Issuer: "finbook-test"}
	logger := slogx.New(slogx.Config{Service: "finbook-test", Level: "error"})

	auth := &service.AuthService{Store: st, Signer: signer}

	r := NewRouter(verifier, "test", st, logger)
	r.AuthService = auth
	r.UserService = &service.UserService{Store: st}
	r.CategoryService = &service.CategoryService{Store: st}
	r.BudgetService = &service.BudgetService{Store: st}
	r.TransactionService = &service.TransactionService{Store: st}
	r.ApplyRoutes()

	return &testAPI{router: r, store: st, signer: signer, auth: auth}
}

// seedUser registers an account directly against the service so tests don't
// burn the signup endpoint's rate limit, and returns a valid token for it.
func (a *testAPI) seedUser(t *testing.T, username string) (domain.User, string) {
	t.Helper()

	u, err := a.auth.Signup(context.Background(), username, username+"@x.com", "secret123")
	require.NoError(t, err)
	token, err := a.signer.Sign(u.Username, nil)
	require.NoError(t, err)
	return u, token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpointsArePublic(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
}

func TestGuardRejectsAnonymous(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
}

func TestGuardRejectsBadTokens(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	_, token := api.seedUser(t, "alice")

	t.Run("tampered", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/categories", token+"x", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/categories", "not-a-jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired", func(t *testing.T) {
		expiredSigner := &jwtx.Signer{Key: testKey, Issuer: "finbook-test", TTL: 0}
		expired, err := expiredSigner.Sign("alice", nil)
		require.NoError(t, err)

		rec := api.do(t, http.MethodGet, "/api/categories", expired, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "token expired")
	})

	t.Run("deleted account looks like a bad token", func(t *testing.T) {
		ghost, ghostToken := api.seedUser(t, "ghost")
		require.NoError(t, api.store.Users().Delete(context.Background(), ghost.ID))

		deleted := api.do(t, http.MethodGet, "/api/categories", ghostToken, nil)
		tampered := api.do(t, http.MethodGet, "/api/categories", token+"x", nil)

		require.Equal(t, http.StatusUnauthorized, deleted.Code)
		require.JSONEq(t, tampered.Body.String(), deleted.Body.String(),
			"response must not confirm the account was deleted")
		require.Equal(t, tampered.Header().Get("WWW-Authenticate"), deleted.Header().Get("WWW-Authenticate"))
	})
}

// failingUsers simulates a store outage during principal resolution.
type failingUsers struct {
	store.Users
}

func (failingUsers) GetByIdentifier(context.Context, string) (domain.User, error) {
	return domain.User{}, errors.New("database is locked")
}

type failingStore struct {
	store.Store
}

func (f failingStore) Users() store.Users { return failingUsers{f.Store.Users()} }

func TestGuardStoreFailureIsAuthFailure(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	_, token := api.seedUser(t, "alice")

	guard := &Guard{
		Policy:   NewPolicy(),
		Verifier: &jwtx.Verifier{Key: testKey, Issuer: "finbook-test"},
		Store:    failingStore{api.store},
	}
	protected := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run when the store fails")
		}),
		guard.Middleware(),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	require.NotContains(t, rec.Body.String(), "database is locked")

	var body httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "invalid_token", body.Error)
}

func TestRoleEnforcement(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	// First signup is the admin, second a regular user.
	admin, adminToken := api.seedUser(t, "root")
	require.Equal(t, domain.RoleAdmin, admin.Role)
	user, userToken := api.seedUser(t, "alice")
	require.Equal(t, domain.RoleUser, user.Role)

	rec := api.do(t, http.MethodPost, "/api/categories", adminToken,
		map[string]string{"name": "groceries"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var cat struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))

	t.Run("user cannot delete", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/api/categories/"+cat.ID, userToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("user can read", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/categories/"+cat.ID, userToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin can delete", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/api/categories/"+cat.ID, adminToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestSignupLoginRoundtrip(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/signup", "",
		map[string]string{"username": "alice", "email": "alice@x.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created signupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "ADMIN", created.Role)
	require.NotContains(t, rec.Body.String(), "secret123")

	rec = api.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"identifier": "alice@x.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var login loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, "Bearer", login.TokenType)
	require.Equal(t, int64(3600), login.ExpiresIn)

	rec = api.do(t, http.MethodGet, "/api/users", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/users/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "alice", me.Username)

	t.Run("wrong password matches unknown account", func(t *testing.T) {
		wrong := api.do(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"identifier": "alice@x.com", "password": "nope"})
		unknown := api.do(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"identifier": "who@x.com", "password": "nope"})

		require.Equal(t, http.StatusUnauthorized, wrong.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)
		require.JSONEq(t, wrong.Body.String(), unknown.Body.String())
	})
}

func TestFinanceCRUDOverHTTP(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	admin, token := api.seedUser(t, "root")

	rec := api.do(t, http.MethodPost, "/api/categories", token,
		map[string]string{"name": "dining", "description": "eating out"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cat struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))

	t.Run("empty budget list is an array", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/budgets", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, "[]", rec.Body.String())
	})

	rec = api.do(t, http.MethodPost, "/api/budgets", token,
		map[string]any{"user_id": admin.ID, "category_id": cat.ID, "amount": 300.0})
	require.Equal(t, http.StatusCreated, rec.Code)
	var budget struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budget))

	t.Run("rejects non-positive amount", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/budgets", token,
			map[string]any{"user_id": admin.ID, "category_id": cat.ID, "amount": -5.0})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	rec = api.do(t, http.MethodPut, "/api/budgets/"+budget.ID, token,
		map[string]any{"amount": 450.0})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/transactions", token,
		map[string]any{"user_id": admin.ID, "category_id": cat.ID, "amount": 19.90, "description": "pizza"})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("list by user", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/transactions/user/"+admin.ID, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var txns []domain.Transaction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txns))
		require.Len(t, txns, 1)
		require.Equal(t, "pizza", txns[0].Description)
	})

	t.Run("unknown resource is 404", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/budgets/does-not-exist", token, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
