package http

import (
	"errors"
	"net/http"

	"github.com/hazelworks/finbook/internal/api/service"
	"github.com/hazelworks/finbook/pkg/httpx"
	"github.com/hazelworks/finbook/pkg/slogx"
)

// writeServiceError maps service-layer errors onto HTTP responses. Anything
// unrecognized is logged and surfaced as a generic 500 so internals never
// leak into bodies.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username/email or password")
	case errors.Is(err, service.ErrMissingField):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "missing required field")
	case errors.Is(err, service.ErrBudgetAmount),
		errors.Is(err, service.ErrTransactionAmount):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "amount must be greater than 0")
	case errors.Is(err, service.ErrDuplicateUser):
		httpx.WriteError(w, http.StatusConflict, "conflict", "username or email already registered")
	case errors.Is(err, service.ErrDuplicateCategory):
		httpx.WriteError(w, http.StatusConflict, "conflict", "category name already exists")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "user not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "category not found")
	case errors.Is(err, service.ErrBudgetNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "budget not found")
	case errors.Is(err, service.ErrTransactionNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "transaction not found")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
}
