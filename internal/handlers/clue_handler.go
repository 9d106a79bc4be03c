package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cluetrainer/internal/puzzle"
	"cluetrainer/internal/service"
)

// ClueHandler handles clue-related HTTP requests
type ClueHandler struct {
	clueService *service.ClueService
}

// NewClueHandler creates a new clue handler
func NewClueHandler(clueService *service.ClueService) *ClueHandler {
	return &ClueHandler{clueService: clueService}
}

// Types handles GET /api/clues/types
func (h *ClueHandler) Types(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"types":  puzzle.Types(),
		"labels": puzzle.Labels(),
	})
}

// Random handles GET /api/clues/random?type=<puzzle type>
func (h *ClueHandler) Random(w http.ResponseWriter, r *http.Request) {
	puzzleType := r.URL.Query().Get("type")

	clue, err := h.clueService.RandomClue(puzzleType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidType):
			respondError(w, http.StatusBadRequest, "Invalid puzzle type")
		case errors.Is(err, service.ErrNoCluesForType):
			respondError(w, http.StatusNotFound, "No clues found for this type")
		default:
			respondServerError(w, "fetching random clue", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, clue)
}

// ByID handles GET /api/clues/by-id?rowid=<rowid>
func (h *ClueHandler) ByID(w http.ResponseWriter, r *http.Request) {
	rowid, err := strconv.ParseInt(r.URL.Query().Get("rowid"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing rowid")
		return
	}

	clue, err := h.clueService.ClueByID(rowid)
	if err != nil {
		if errors.Is(err, service.ErrClueNotFound) {
			respondError(w, http.StatusNotFound, "Clue not found")
			return
		}
		respondServerError(w, "fetching clue by id", err)
		return
	}

	respondJSON(w, http.StatusOK, clue)
}

// Check handles POST /api/clues/check
func (h *ClueHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rowid      int64  `json:"rowid"`
		UserAnswer string `json:"userAnswer"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Rowid == 0 || req.UserAnswer == "" {
		respondError(w, http.StatusBadRequest, "Missing rowid or userAnswer")
		return
	}

	result, err := h.clueService.CheckAnswer(req.Rowid, req.UserAnswer)
	if err != nil {
		if errors.Is(err, service.ErrClueNotFound) {
			respondError(w, http.StatusNotFound, "Clue not found")
			return
		}
		respondServerError(w, "checking answer", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Hint handles POST /api/clues/hint
func (h *ClueHandler) Hint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rowid int64 `json:"rowid"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Rowid == 0 {
		respondError(w, http.StatusBadRequest, "Missing rowid")
		return
	}

	hint, err := h.clueService.DefinitionHint(req.Rowid)
	if err != nil {
		if errors.Is(err, service.ErrClueNotFound) {
			respondError(w, http.StatusNotFound, "Clue not found")
			return
		}
		respondServerError(w, "getting hint", err)
		return
	}

	respondJSON(w, http.StatusOK, hint)
}

// LetterHint handles POST /api/clues/letter-hint
func (h *ClueHandler) LetterHint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rowid    int64 `json:"rowid"`
		Position *int  `json:"position"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Rowid == 0 || req.Position == nil {
		respondError(w, http.StatusBadRequest, "Missing rowid or position")
		return
	}

	hint, err := h.clueService.LetterHint(req.Rowid, *req.Position)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClueNotFound):
			respondError(w, http.StatusNotFound, "Clue not found")
		case errors.Is(err, puzzle.ErrInvalidPosition):
			respondError(w, http.StatusBadRequest, "Invalid position")
		default:
			respondServerError(w, "getting letter hint", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, hint)
}
