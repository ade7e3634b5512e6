package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryUC *usecase.CategoryUseCase
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), familyID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// Get retrieves a category by ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	category, err := h.categoryUC.GetCategory(r.Context(), familyID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// List lists categories, optionally narrowed by a search string or a
// classification.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	search := r.URL.Query().Get("search")

	var classification *domain.CategoryClassification
	if s := r.URL.Query().Get("classification"); s != "" {
		c := domain.CategoryClassification(s)
		classification = &c
	}

	page, perPage := pageParams(r)

	categories, err := h.categoryUC.ListCategories(r.Context(), familyID, search, classification, page, perPage)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Update updates a category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.UpdateCategory(r.Context(), familyID, id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Delete removes a category. Transactions keep their rows and lose
// the assignment.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	if err := h.categoryUC.DeleteCategory(r.Context(), familyID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
