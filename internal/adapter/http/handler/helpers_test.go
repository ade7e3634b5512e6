package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?per_page=50", nil)
	if got := parseIntQuery(req, "per_page", 10); got != 50 {
		t.Fatalf("expected per_page=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/accounts?per_page=invalid", nil)
	if got := parseIntQuery(req, "per_page", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "per_page", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transfer not found", domain.ErrTransferNotFound, http.StatusNotFound},
		{"same account", domain.ErrSameAccount, http.StatusUnprocessableEntity},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{"currency mismatch", domain.ErrCurrencyMismatch, http.StatusUnprocessableEntity},
		{"not pending", domain.ErrTransferNotPending, http.StatusConflict},
		{"leg already linked", domain.ErrTransactionAlreadyLinked, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/transfers/tr-1", nil)
			writeDomainError(rr, req, tt.err)
			if rr.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}

func TestWriteDomainError_ValidationFields(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("amount", "must be positive")
	ve.Add("to_account_id", "cannot be blank")

	rr := httptest.NewRecorder()
	writeDomainError(rr, httptest.NewRequest(http.MethodPost, "/transfers", nil), ve)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if len(resp.Fields["amount"]) != 1 || resp.Fields["amount"][0] != "must be positive" {
		t.Fatalf("expected amount field error, got %+v", resp.Fields)
	}

	if len(resp.Fields["to_account_id"]) != 1 {
		t.Fatalf("expected to_account_id field error, got %+v", resp.Fields)
	}
}

func TestWriteDomainError_OpaqueInternalError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	writeDomainError(rr, req, errors.New("pq: connection refused at 10.0.0.5"))

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Message != "" {
		t.Fatalf("internal error detail must not leak, got %q", resp.Message)
	}
}
