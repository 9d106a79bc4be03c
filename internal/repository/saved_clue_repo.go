package repository

import (
	"database/sql"
	"fmt"

	"cluetrainer/internal/database"
	"cluetrainer/internal/models"
)

// SavedClueRepository handles clue bookmarks, unique per (user, clue).
type SavedClueRepository struct {
	db *database.DB
}

// NewSavedClueRepository creates a new saved-clue repository
func NewSavedClueRepository(db *database.DB) *SavedClueRepository {
	return &SavedClueRepository{db: db}
}

// Save bookmarks a clue for a user and returns the saved-clue ID.
// Saving the same pair twice returns the existing ID. The check-then-
// insert can race with a concurrent save of the same pair; the unique
// constraint catches that, and the row is re-read.
func (r *SavedClueRepository) Save(userID, clueRowid int64) (int64, error) {
	if id, err := r.find(userID, clueRowid); err != nil {
		return 0, err
	} else if id != 0 {
		return id, nil
	}

	query := `
		INSERT INTO saved_clues (user_id, clue_rowid)
		VALUES (?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, clueRowid)
	if err != nil {
		// Lost the race: another request saved this pair first.
		if existing, findErr := r.find(userID, clueRowid); findErr == nil && existing != 0 {
			return existing, nil
		}
		return 0, fmt.Errorf("failed to save clue: %w", err)
	}
	return id, nil
}

func (r *SavedClueRepository) find(userID, clueRowid int64) (int64, error) {
	query := "SELECT id FROM saved_clues WHERE user_id = ? AND clue_rowid = ?"
	var id int64
	err := r.db.QueryRow(query, userID, clueRowid).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up saved clue: %w", err)
	}
	return id, nil
}

// List returns a user's saved clues with joined clue metadata, newest first.
func (r *SavedClueRepository) List(userID int64) ([]models.SavedClueWithClue, error) {
	query := `
		SELECT sc.id, sc.clue_rowid, sc.saved_at,
		       c.clue, c.puzzle_name, c.source_url, LENGTH(c.answer)
		FROM saved_clues sc
		JOIN clues c ON sc.clue_rowid = c.rowid
		WHERE sc.user_id = ?
		ORDER BY sc.saved_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved clues: %w", err)
	}
	defer rows.Close()

	saved := []models.SavedClueWithClue{}
	for rows.Next() {
		var s models.SavedClueWithClue
		if err := rows.Scan(
			&s.ID,
			&s.ClueRowid,
			&s.SavedAt,
			&s.Clue,
			&s.PuzzleName,
			&s.SourceURL,
			&s.AnswerLength,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saved clue: %w", err)
		}
		s.UserID = userID
		saved = append(saved, s)
	}
	return saved, rows.Err()
}

// Delete removes a bookmark. Deleting a clue that was never saved is
// not an error.
func (r *SavedClueRepository) Delete(userID, clueRowid int64) error {
	query := "DELETE FROM saved_clues WHERE user_id = ? AND clue_rowid = ?"
	_, err := r.db.Exec(query, userID, clueRowid)
	if err != nil {
		return fmt.Errorf("failed to delete saved clue: %w", err)
	}
	return nil
}
