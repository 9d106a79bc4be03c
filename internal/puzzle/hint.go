package puzzle

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidPosition is returned when a letter reveal is requested
// outside the answer's bounds.
var ErrInvalidPosition = errors.New("invalid position")

// FindDefinition locates the definition substring within the clue text
// for client-side highlighting. The search is case-insensitive. Some
// definitions are authored as slash-joined alternatives ("Fire/bank
// employee") while the clue spells them with spaces, so on a miss the
// search is retried with slashes replaced by spaces. If neither form
// matches, start 0 is reported rather than an error.
func FindDefinition(clue, definition string) (start, length int) {
	start = strings.Index(strings.ToLower(clue), strings.ToLower(definition))
	searched := definition

	if start == -1 {
		searched = strings.ReplaceAll(definition, "/", " ")
		start = strings.Index(strings.ToLower(clue), strings.ToLower(searched))
	}

	if start < 0 {
		start = 0
	}
	return start, len(searched)
}

// LetterAt reveals the uppercased character of answer at a 0-based
// position. Spaces pass through unchanged. Positions outside
// [0, len(answer)) return ErrInvalidPosition.
func LetterAt(answer string, position int) (string, error) {
	if position < 0 || position >= len(answer) {
		return "", ErrInvalidPosition
	}

	ch := rune(answer[position])
	if ch == ' ' {
		return " ", nil
	}
	return string(unicode.ToUpper(ch)), nil
}
