package http

import (
	"encoding/json"
	"net/http"

	"github.com/hazelworks/finbook/internal/api/service"
	"github.com/hazelworks/finbook/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// HandleSignup godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account from username, email, and password. The first account registered on an empty instance is granted the ADMIN role.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		signupRequest	true	"Account details"
//	@Success		200		{object}	signupResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Missing field or malformed body"
//	@Failure		409		{object}	httpx.ErrorResponse	"Username or email already registered"
//	@Router			/api/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	user, err := h.AuthService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, signupResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges an identifier (username or email) and password for a bearer token. Unknown accounts and wrong passwords produce the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid credentials"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	token, ttl, err := h.AuthService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	})
}
