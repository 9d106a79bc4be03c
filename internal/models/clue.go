package models

// Clue represents one cryptic-crossword entry. Rows are immutable once
// loaded; the answer is never sent to the client until checked.
type Clue struct {
	Rowid      int64  `json:"rowid"`
	Clue       string `json:"clue"`
	Answer     string `json:"-"`
	Definition string `json:"definition,omitempty"`
	PuzzleName string `json:"puzzle_name"`
	PuzzleDate string `json:"puzzle_date"`
	SourceURL  string `json:"source_url"`
}

// CluePresentation is a clue prepared for the client: answer withheld,
// lengths derived from the answer string.
type CluePresentation struct {
	Rowid             int64  `json:"rowid"`
	Clue              string `json:"clue"`
	Definition        string `json:"definition"`
	PuzzleName        string `json:"puzzle_name"`
	PuzzleDate        string `json:"puzzle_date"`
	SourceURL         string `json:"source_url"`
	AnswerLength      int    `json:"answerLength"`
	AnswerLetterCount int    `json:"answerLetterCount"`
}

// CheckResult is the outcome of verifying a user's answer.
type CheckResult struct {
	Correct   bool   `json:"correct"`
	Answer    string `json:"answer"`
	SourceURL string `json:"source_url"`
}

// DefinitionHint marks where the definition sits inside the clue text.
type DefinitionHint struct {
	Clue             string `json:"clue"`
	Definition       string `json:"definition"`
	DefinitionStart  int    `json:"definitionStart"`
	DefinitionLength int    `json:"definitionLength"`
}

// LetterHint reveals a single character of the answer.
type LetterHint struct {
	Position int    `json:"position"`
	Letter   string `json:"letter"`
}
