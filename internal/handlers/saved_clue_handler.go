package handlers

import (
	"net/http"
	"strconv"

	"cluetrainer/internal/repository"
)

// SavedClueHandler handles saved-clue HTTP requests. All routes
// require authentication.
type SavedClueHandler struct {
	savedClueRepo *repository.SavedClueRepository
}

// NewSavedClueHandler creates a new saved clue handler
func NewSavedClueHandler(savedClueRepo *repository.SavedClueRepository) *SavedClueHandler {
	return &SavedClueHandler{savedClueRepo: savedClueRepo}
}

// Save handles POST /api/saved-clues. Saving an already-saved clue
// returns the existing record.
func (h *SavedClueHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r)

	var req struct {
		ClueRowid int64 `json:"clueRowid"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ClueRowid == 0 {
		respondError(w, http.StatusBadRequest, "Missing clueRowid")
		return
	}

	savedClueID, err := h.savedClueRepo.Save(userID, req.ClueRowid)
	if err != nil {
		respondServerError(w, "saving clue", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"savedClueId": savedClueID,
	})
}

// List handles GET /api/saved-clues
func (h *SavedClueHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r)

	clues, err := h.savedClueRepo.List(userID)
	if err != nil {
		respondServerError(w, "fetching saved clues", err)
		return
	}

	respondJSON(w, http.StatusOK, clues)
}

// Delete handles DELETE /api/saved-clues/{clueRowid}. Deleting a clue
// that was never saved still succeeds.
func (h *SavedClueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r)

	clueRowid, err := strconv.ParseInt(r.PathValue("clueRowid"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid clueRowid")
		return
	}

	if err := h.savedClueRepo.Delete(userID, clueRowid); err != nil {
		respondServerError(w, "deleting saved clue", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
