package http

import (
	"encoding/json"
	"net/http"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/service"
	"github.com/hazelworks/finbook/pkg/httpx"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// HandleCreate godoc
//
//	@Summary	Create a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		categoryRequest	true	"Category details"
//	@Success	201		{object}	domain.Category
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	409		{object}	httpx.ErrorResponse	"Name already exists"
//	@Router		/api/categories [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	cat, err := h.CategoryService.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, cat)
}

// HandleList godoc
//
//	@Summary		List categories
//	@Description	Returns every category, or an empty array when none exist.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		domain.Category
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/api/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CategoryService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	httpx.WriteJSON(w, http.StatusOK, cats)
}

// HandleGet godoc
//
//	@Summary	Get a category by ID
//	@Tags		Categories
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"
//	@Success	200	{object}	domain.Category
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/categories/{id} [get].
func (h *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cat, err := h.CategoryService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cat)
}

// HandleUpdate godoc
//
//	@Summary	Update a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Category ID"
//	@Param		body	body		categoryRequest	true	"New details"
//	@Success	200		{object}	domain.Category
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Failure	409		{object}	httpx.ErrorResponse
//	@Router		/api/categories/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	cat, err := h.CategoryService.Update(r.Context(), r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cat)
}

// HandleDelete godoc
//
//	@Summary	Delete a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Category ID"
//	@Success	204
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	403	{object}	httpx.ErrorResponse	"Requires ADMIN role"
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/categories/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CategoryService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
