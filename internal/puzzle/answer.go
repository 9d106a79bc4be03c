package puzzle

import "regexp"

var wordCharRegexp = regexp.MustCompile(`\w`)

// AnswerLength returns the full length of an answer, spaces and
// punctuation included.
func AnswerLength(answer string) int {
	return len(answer)
}

// AnswerLetterCount returns the number of word characters in an answer.
// For multi-word answers this excludes spaces and punctuation, so
// "NEW YORK" has length 8 but letter count 7.
func AnswerLetterCount(answer string) int {
	return len(wordCharRegexp.FindAllString(answer, -1))
}
