package repository

import (
	"database/sql"
	"fmt"

	"cluetrainer/internal/database"
	"cluetrainer/internal/models"
)

// ClueRepository handles database operations for clues. It accepts a
// DBTX so the bulk loader can reuse it inside a transaction.
type ClueRepository struct {
	db database.DBTX
}

// NewClueRepository creates a new clue repository
func NewClueRepository(db database.DBTX) *ClueRepository {
	return &ClueRepository{db: db}
}

// FetchRandomBatch returns up to limit clues in random order. Category
// filtering happens in memory at the service layer because puzzle type
// is derived from the puzzle name, never stored.
func (r *ClueRepository) FetchRandomBatch(limit int) ([]models.Clue, error) {
	query := fmt.Sprintf(`
		SELECT rowid, clue, answer, definition, puzzle_name, puzzle_date, source_url
		FROM clues
		ORDER BY %s
		LIMIT ?
	`, r.db.GetDialect().RandomFunc())

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch random clues: %w", err)
	}
	defer rows.Close()

	var clues []models.Clue
	for rows.Next() {
		var c models.Clue
		if err := rows.Scan(&c.Rowid, &c.Clue, &c.Answer, &c.Definition, &c.PuzzleName, &c.PuzzleDate, &c.SourceURL); err != nil {
			return nil, fmt.Errorf("failed to scan clue: %w", err)
		}
		clues = append(clues, c)
	}
	return clues, rows.Err()
}

// GetByID retrieves a single clue by rowid, or nil if absent.
func (r *ClueRepository) GetByID(rowid int64) (*models.Clue, error) {
	query := `
		SELECT rowid, clue, answer, definition, puzzle_name, puzzle_date, source_url
		FROM clues
		WHERE rowid = ?
	`

	c := &models.Clue{}
	err := r.db.QueryRow(query, rowid).Scan(
		&c.Rowid,
		&c.Clue,
		&c.Answer,
		&c.Definition,
		&c.PuzzleName,
		&c.PuzzleDate,
		&c.SourceURL,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clue: %w", err)
	}

	return c, nil
}

// Insert adds one clue row. A zero rowid lets the database assign one.
func (r *ClueRepository) Insert(c *models.Clue) error {
	if c.Rowid != 0 {
		query := `
			INSERT INTO clues (rowid, puzzle_name, puzzle_date, clue, answer, definition, source_url)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		_, err := r.db.Exec(query, c.Rowid, c.PuzzleName, c.PuzzleDate, c.Clue, c.Answer, c.Definition, c.SourceURL)
		if err != nil {
			return fmt.Errorf("failed to insert clue %d: %w", c.Rowid, err)
		}
		return nil
	}

	query := `
		INSERT INTO clues (puzzle_name, puzzle_date, clue, answer, definition, source_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, c.PuzzleName, c.PuzzleDate, c.Clue, c.Answer, c.Definition, c.SourceURL)
	if err != nil {
		return fmt.Errorf("failed to insert clue: %w", err)
	}
	c.Rowid = id
	return nil
}

// Count returns the number of loaded clues.
func (r *ClueRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM clues").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clues: %w", err)
	}
	return count, nil
}
