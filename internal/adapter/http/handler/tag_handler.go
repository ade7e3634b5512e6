package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/adapter/http/dto"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// TagHandler handles tag-related HTTP requests.
type TagHandler struct {
	tagUC *usecase.TagUseCase
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagUC *usecase.TagUseCase) *TagHandler {
	return &TagHandler{tagUC: tagUC}
}

// Create creates a new tag.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	var req dto.NameColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tag, err := h.tagUC.CreateTag(r.Context(), familyID, req.Name, req.Color)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TagFromDomain(tag))
}

// Get retrieves a tag by ID.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tag ID", "")
		return
	}

	tag, err := h.tagUC.GetTag(r.Context(), familyID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TagFromDomain(tag))
}

// List lists the family's tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	page, perPage := pageParams(r)

	tags, err := h.tagUC.ListTags(r.Context(), familyID, page, perPage)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TagsFromDomain(tags))
}

// Update updates a tag.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tag ID", "")
		return
	}

	var req dto.NameColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tag, err := h.tagUC.UpdateTag(r.Context(), familyID, id, req.Name, req.Color)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TagFromDomain(tag))
}

// Delete removes a tag.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	familyID, ok := requireFamily(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tag ID", "")
		return
	}

	if err := h.tagUC.DeleteTag(r.Context(), familyID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
