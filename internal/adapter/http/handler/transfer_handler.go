package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create creates a new transfer.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.CreateTransfer(r.Context(), familyID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// Get retrieves a transfer by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), familyID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// List lists transfers, narrowed by optional status, date range and
// account query parameters.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	filter, err := transferFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	page, perPage := pageParams(r)

	result, err := h.transferUC.ListTransfers(r.Context(), familyID, filter, page, perPage)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferListFromPage(result))
}

// Confirm transitions a pending transfer to confirmed.
func (h *TransferHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.transferUC.ConfirmTransfer)
}

// Reject transitions a pending transfer to rejected.
func (h *TransferHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.transferUC.RejectTransfer)
}

func (h *TransferHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, familyID, id string) (*domain.Transfer, error),
) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	transfer, err := op(r.Context(), familyID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// UpdateCategory sets or clears the category on a confirmed transfer.
func (h *TransferHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.UpdateTransferCategory(r.Context(), familyID, id, req.CategoryID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// Delete removes a transfer together with both of its legs.
func (h *TransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	if err := h.transferUC.DeleteTransfer(r.Context(), familyID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// transferFilterFromQuery builds the list filter from query params.
func transferFilterFromQuery(r *http.Request) (usecase.TransferFilter, error) {
	var filter usecase.TransferFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.TransferStatus(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}

	if s := r.URL.Query().Get("account_id"); s != "" {
		filter.AccountID = &s
	}

	return filter, nil
}
