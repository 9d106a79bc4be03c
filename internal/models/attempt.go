package models

import "time"

// Attempt is one user's submission event against one clue. The log is
// append-only: one row per submission, never updated.
type Attempt struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	ClueRowid       int64     `json:"clue_rowid"`
	LettersRevealed int       `json:"letters_revealed"`
	TotalLetters    int       `json:"total_letters"`
	Correct         bool      `json:"correct"`
	PuzzleType      string    `json:"puzzle_type"`
	AttemptedAt     time.Time `json:"attempted_at"`
}

// AttemptWithClue joins an attempt with its clue for history listings.
type AttemptWithClue struct {
	Attempt
	Clue               string `json:"clue"`
	Answer             string `json:"answer"`
	LettersRevealedPct int    `json:"letters_revealed_pct"`
}

// StatsSummary aggregates a user's attempt history.
type StatsSummary struct {
	TotalAttempts                int     `json:"totalAttempts"`
	CorrectAnswers               int     `json:"correctAnswers"`
	SuccessRate                  int     `json:"successRate"`
	AvgLettersRevealedPct        float64 `json:"avgLettersRevealedPct"`
	Last10AvgLettersRevealedPct  float64 `json:"last10AvgLettersRevealedPct"`
}

// SavedClue bookmarks a clue for a user. Unique per (user, clue):
// re-saving is idempotent.
type SavedClue struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	ClueRowid int64     `json:"clue_rowid"`
	SavedAt   time.Time `json:"saved_at"`
}

// SavedClueWithClue joins a saved clue with its clue metadata.
type SavedClueWithClue struct {
	SavedClue
	Clue         string `json:"clue"`
	PuzzleName   string `json:"type"`
	SourceURL    string `json:"source_url"`
	AnswerLength int    `json:"answerLength"`
}
