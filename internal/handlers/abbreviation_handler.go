package handlers

import (
	"net/http"

	"cluetrainer/internal/abbrev"
)

// AbbreviationHandler serves the parsed abbreviation dataset.
type AbbreviationHandler struct {
	dataset *abbrev.Dataset
}

// NewAbbreviationHandler creates a new abbreviation handler
func NewAbbreviationHandler(dataset *abbrev.Dataset) *AbbreviationHandler {
	return &AbbreviationHandler{dataset: dataset}
}

// List handles GET /api/abbreviations
func (h *AbbreviationHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dataset)
}
