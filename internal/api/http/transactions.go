package http

import (
	"encoding/json"
	"net/http"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/service"
	"github.com/hazelworks/finbook/pkg/httpx"
)

type TransactionsHandler struct {
	TransactionService *service.TransactionService
}

type transactionCreateRequest struct {
	UserID      string  `json:"user_id"`
	CategoryID  string  `json:"category_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type transactionUpdateRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// HandleCreate godoc
//
//	@Summary	Record a transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		transactionCreateRequest	true	"Transaction details"
//	@Success	201		{object}	domain.Transaction
//	@Failure	400		{object}	httpx.ErrorResponse	"Amount must be greater than 0"
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Router		/api/transactions [post].
func (h *TransactionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req transactionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	txn, err := h.TransactionService.Create(r.Context(), req.UserID, req.CategoryID, req.Amount, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, txn)
}

// HandleList godoc
//
//	@Summary	List all transactions
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		domain.Transaction
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/api/transactions [get].
func (h *TransactionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	txns, err := h.TransactionService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	httpx.WriteJSON(w, http.StatusOK, txns)
}

// HandleListByUser godoc
//
//	@Summary		List a user's transactions
//	@Description	Returns the transactions recorded for one user, newest first.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		string	true	"User ID"
//	@Success		200		{array}		domain.Transaction
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Router			/api/transactions/user/{userID} [get].
func (h *TransactionsHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	txns, err := h.TransactionService.ListByUser(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	httpx.WriteJSON(w, http.StatusOK, txns)
}

// HandleGet godoc
//
//	@Summary	Get a transaction by ID
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Transaction ID"
//	@Success	200	{object}	domain.Transaction
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/transactions/{id} [get].
func (h *TransactionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	txn, err := h.TransactionService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, txn)
}

// HandleUpdate godoc
//
//	@Summary	Update a transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Transaction ID"
//	@Param		body	body		transactionUpdateRequest	true	"New amount and description"
//	@Success	200		{object}	domain.Transaction
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/api/transactions/{id} [put].
func (h *TransactionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req transactionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	txn, err := h.TransactionService.Update(r.Context(), r.PathValue("id"), req.Amount, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, txn)
}

// HandleDelete godoc
//
//	@Summary	Delete a transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Transaction ID"
//	@Success	204
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	403	{object}	httpx.ErrorResponse	"Requires ADMIN role"
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/transactions/{id} [delete].
func (h *TransactionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TransactionService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
