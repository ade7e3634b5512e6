package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC *usecase.BudgetUseCase
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC *usecase.BudgetUseCase) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC}
}

// Upsert creates the month's budget on first write and updates it on
// subsequent ones.
func (h *BudgetHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	var req dto.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.UpsertBudget(r.Context(), familyID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Get retrieves a budget by ID.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	budget, err := h.budgetUC.GetBudget(r.Context(), familyID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// List lists the family's budgets, newest month first.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	page, perPage := pageParams(r)

	budgets, err := h.budgetUC.ListBudgets(r.Context(), familyID, page, perPage)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetsFromDomain(budgets))
}

// ListCategories lists the budget's category allocations.
func (h *BudgetHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	allocations, err := h.budgetUC.ListBudgetCategories(r.Context(), familyID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetCategoriesFromDomain(allocations))
}

// SetCategory allocates an amount to one category within the budget.
func (h *BudgetHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	var req dto.BudgetCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	allocation, err := h.budgetUC.SetBudgetCategory(r.Context(), familyID, id, req.CategoryID, req.BudgetedAmount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetCategoryFromDomain(allocation))
}
