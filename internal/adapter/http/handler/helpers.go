package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/adapter/http/middleware"
	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/infrastructure/logging"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a use case error onto the wire. Validation
// failures carry per-field messages, conflicts and not-found map to
// their status codes, and everything else becomes an opaque 500 so
// internal detail never leaks to clients.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fields := make(map[string][]string, len(ve.Fields))
		for _, f := range ve.Fields {
			fields[f.Field] = append(fields[f.Field], f.Message)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(dto.ErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})

		return
	}

	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found", err.Error())
	case domain.IsConflict(err):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		logging.Default().ErrorCtx(r.Context(), "unhandled error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "internal error", "")
	}
}

// requireFamily extracts the authenticated family ID or writes a 401.
func requireFamily(w http.ResponseWriter, r *http.Request) (string, bool) {
	familyID, ok := middleware.FamilyFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing family", "")
		return "", false
	}
	return familyID, true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// pageParams reads page and per_page query parameters.
func pageParams(r *http.Request) (int, int) {
	page := parseIntQuery(r, "page", 1)
	perPage := parseIntQuery(r, "per_page", 0)
	return page, perPage
}
