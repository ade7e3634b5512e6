package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// MerchantHandler handles merchant-related HTTP requests.
type MerchantHandler struct {
	merchantUC *usecase.MerchantUseCase
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(merchantUC *usecase.MerchantUseCase) *MerchantHandler {
	return &MerchantHandler{merchantUC: merchantUC}
}

// Create creates a new merchant.
func (h *MerchantHandler) Create(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	var req dto.NameColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	merchant, err := h.merchantUC.CreateMerchant(r.Context(), familyID, req.Name, req.Color)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MerchantFromDomain(merchant))
}

// Get retrieves a merchant by ID.
func (h *MerchantHandler) Get(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID", "")
		return
	}

	merchant, err := h.merchantUC.GetMerchant(r.Context(), familyID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MerchantFromDomain(merchant))
}

// List lists the family's merchants.
func (h *MerchantHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	page, perPage := pageParams(r)

	merchants, err := h.merchantUC.ListMerchants(r.Context(), familyID, page, perPage)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MerchantsFromDomain(merchants))
}

// Update updates a merchant.
func (h *MerchantHandler) Update(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID", "")
		return
	}

	var req dto.NameColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	merchant, err := h.merchantUC.UpdateMerchant(r.Context(), familyID, id, req.Name, req.Color)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MerchantFromDomain(merchant))
}

// Delete removes a merchant.
func (h *MerchantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing merchant ID", "")
		return
	}

	if err := h.merchantUC.DeleteMerchant(r.Context(), familyID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
