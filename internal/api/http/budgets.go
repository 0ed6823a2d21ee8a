package http

import (
	"encoding/json"
	"net/http"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/service"
	"github.com/hazelworks/finbook/pkg/httpx"
)

type BudgetsHandler struct {
	BudgetService *service.BudgetService
}

type budgetCreateRequest struct {
	UserID     string  `json:"user_id"`
	CategoryID string  `json:"category_id"`
	Amount     float64 `json:"amount"`
}

type budgetUpdateRequest struct {
	Amount float64 `json:"amount"`
}

// HandleCreate godoc
//
//	@Summary	Create a budget
//	@Tags		Budgets
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		budgetCreateRequest	true	"Budget details"
//	@Success	201		{object}	domain.Budget
//	@Failure	400		{object}	httpx.ErrorResponse	"Amount must be greater than 0"
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Router		/api/budgets [post].
func (h *BudgetsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req budgetCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	budget, err := h.BudgetService.Create(r.Context(), req.UserID, req.CategoryID, req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, budget)
}

// HandleList godoc
//
//	@Summary	List budgets
//	@Tags		Budgets
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		domain.Budget
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/api/budgets [get].
func (h *BudgetsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.BudgetService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	httpx.WriteJSON(w, http.StatusOK, budgets)
}

// HandleGet godoc
//
//	@Summary	Get a budget by ID
//	@Tags		Budgets
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Budget ID"
//	@Success	200	{object}	domain.Budget
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/budgets/{id} [get].
func (h *BudgetsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	budget, err := h.BudgetService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, budget)
}

// HandleUpdate godoc
//
//	@Summary		Update a budget's amount
//	@Description	Only the amount can change; move a budget between categories by recreating it.
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Budget ID"
//	@Param			body	body		budgetUpdateRequest	true	"New amount"
//	@Success		200		{object}	domain.Budget
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/api/budgets/{id} [put].
func (h *BudgetsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req budgetUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	budget, err := h.BudgetService.UpdateAmount(r.Context(), r.PathValue("id"), req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, budget)
}

// HandleDelete godoc
//
//	@Summary	Delete a budget
//	@Tags		Budgets
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Budget ID"
//	@Success	204
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	403	{object}	httpx.ErrorResponse	"Requires ADMIN role"
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/budgets/{id} [delete].
func (h *BudgetsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.BudgetService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
