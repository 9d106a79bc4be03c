package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cluetrainer/internal/service"
)

// StatsHandler handles statistics HTTP requests. All routes require
// authentication.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// RecordAttempt handles POST /api/stats/attempt
func (h *StatsHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r)

	var req struct {
		ClueRowid       *int64 `json:"clueRowid"`
		LettersRevealed int    `json:"lettersRevealed"`
		TotalLetters    *int   `json:"totalLetters"`
		Correct         *bool  `json:"correct"`
		PuzzleType      string `json:"puzzleType"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ClueRowid == nil || req.TotalLetters == nil || req.Correct == nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	attemptID, err := h.statsService.RecordAttempt(userID, *req.ClueRowid, req.LettersRevealed, *req.TotalLetters, *req.Correct, req.PuzzleType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAttempt) {
			respondError(w, http.StatusBadRequest, "Invalid letter counts")
			return
		}
		respondServerError(w, "recording attempt", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"attemptId": attemptID,
	})
}

// Summary handles GET /api/stats/summary
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r)

	summary, err := h.statsService.Summary(userID)
	if err != nil {
		respondServerError(w, "fetching stats summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// History handles GET /api/stats/history?limit=50
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	history, err := h.statsService.History(userID, limit)
	if err != nil {
		respondServerError(w, "fetching history", err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}
