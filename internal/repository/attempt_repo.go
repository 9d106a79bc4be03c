package repository

import (
	"database/sql"
	"fmt"

	"cluetrainer/internal/database"
	"cluetrainer/internal/models"
)

// AttemptRepository handles the append-only attempt log.
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Insert records one attempt and returns its ID.
func (r *AttemptRepository) Insert(userID, clueRowid int64, lettersRevealed, totalLetters int, correct bool, puzzleType string) (int64, error) {
	query := `
		INSERT INTO user_attempts (user_id, clue_rowid, letters_revealed, total_letters, correct, puzzle_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, clueRowid, lettersRevealed, totalLetters, correct, puzzleType)
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}
	return id, nil
}

// Totals returns the all-time attempt count, correct count, and mean
// letters-revealed percentage for a user. The average is NULL when the
// user has no attempts.
func (r *AttemptRepository) Totals(userID int64) (total, correct int, avgRevealedPct sql.NullFloat64, err error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0),
			AVG(letters_revealed * 100.0 / total_letters)
		FROM user_attempts
		WHERE user_id = ?
	`
	err = r.db.QueryRow(query, userID).Scan(&total, &correct, &avgRevealedPct)
	if err != nil {
		err = fmt.Errorf("failed to aggregate attempts: %w", err)
	}
	return
}

// RecentAvgRevealedPct returns the mean letters-revealed percentage
// over the n most recent attempts, NULL when there are none.
func (r *AttemptRepository) RecentAvgRevealedPct(userID int64, n int) (sql.NullFloat64, error) {
	query := `
		SELECT AVG(letters_revealed * 100.0 / total_letters)
		FROM (
			SELECT letters_revealed, total_letters
			FROM user_attempts
			WHERE user_id = ?
			ORDER BY attempted_at DESC
			LIMIT ?
		) recent
	`
	var avg sql.NullFloat64
	err := r.db.QueryRow(query, userID, n).Scan(&avg)
	if err != nil {
		return avg, fmt.Errorf("failed to aggregate recent attempts: %w", err)
	}
	return avg, nil
}

// History returns a user's most recent attempts joined with clue
// details, newest first.
func (r *AttemptRepository) History(userID int64, limit int) ([]models.AttemptWithClue, error) {
	query := `
		SELECT
			ua.id, ua.clue_rowid, ua.letters_revealed, ua.total_letters,
			ua.correct, ua.puzzle_type, ua.attempted_at,
			c.clue, c.answer
		FROM user_attempts ua
		JOIN clues c ON ua.clue_rowid = c.rowid
		WHERE ua.user_id = ?
		ORDER BY ua.attempted_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	defer rows.Close()

	attempts := []models.AttemptWithClue{}
	for rows.Next() {
		var a models.AttemptWithClue
		if err := rows.Scan(
			&a.ID,
			&a.ClueRowid,
			&a.LettersRevealed,
			&a.TotalLetters,
			&a.Correct,
			&a.PuzzleType,
			&a.AttemptedAt,
			&a.Clue,
			&a.Answer,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.UserID = userID
		if a.TotalLetters > 0 {
			a.LettersRevealedPct = int(float64(a.LettersRevealed)/float64(a.TotalLetters)*100 + 0.5)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
