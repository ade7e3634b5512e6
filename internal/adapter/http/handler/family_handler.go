package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// FamilyHandler handles family-related HTTP requests.
type FamilyHandler struct {
	familyUC *usecase.FamilyUseCase
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyUC *usecase.FamilyUseCase) *FamilyHandler {
	return &FamilyHandler{familyUC: familyUC}
}

// Create creates a new family.
func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	family, err := h.familyUC.CreateFamily(r.Context(), req.Name, req.Currency)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.FamilyFromDomain(family))
}

// Get retrieves a family by ID.
func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing family ID", "")
		return
	}

	family, err := h.familyUC.GetFamily(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FamilyFromDomain(family))
}
