package abbrev

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// The source list is an RTF-flavoured markdown file of
// "abbreviation: meaning" lines interleaved with RTF control words.
var (
	rtfControlRegexp = regexp.MustCompile(`\\[a-zA-Z]+\d*`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
	abbrevCharRegexp = regexp.MustCompile(`^[a-z0-9 \-'.()]+$`)
	startsWithLetter = regexp.MustCompile(`^[a-z]`)
)

// Parse reads the raw abbreviation list and groups it into a dataset:
// one entry per meaning with the deduplicated abbreviation set.
func Parse(r io.Reader) (*Dataset, error) {
	meanings := make(map[string][]string)
	var order []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		abbr, meaning, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}

		existing, seen := meanings[meaning]
		if !seen {
			order = append(order, meaning)
		}
		if !contains(existing, abbr) {
			meanings[meaning] = append(existing, abbr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for _, meaning := range order {
		ds.Entries = append(ds.Entries, Entry{
			Meaning:       meaning,
			Abbreviations: meanings[meaning],
		})
	}
	return ds, nil
}

// parseLine strips RTF noise from one line and splits it on the first
// ": " into (abbreviation, meaning). Lines that don't survive
// validation are dropped.
func parseLine(line string) (abbr, meaning string, ok bool) {
	cleaned := rtfControlRegexp.ReplaceAllString(line, " ")
	cleaned = strings.NewReplacer("{", "", "}", "").Replace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, `\`)
	cleaned = strings.TrimSpace(whitespaceRegexp.ReplaceAllString(cleaned, " "))

	idx := strings.Index(cleaned, ": ")
	if idx <= 0 || idx >= len(cleaned)-2 {
		return "", "", false
	}

	abbr = strings.ToLower(strings.TrimSpace(cleaned[:idx]))
	meaning = strings.ToLower(strings.TrimSpace(cleaned[idx+2:]))

	if abbr == "" || meaning == "" {
		return "", "", false
	}
	if len(abbr) > 30 {
		return "", "", false
	}
	if !startsWithLetter.MatchString(abbr) || !abbrevCharRegexp.MatchString(abbr) {
		return "", "", false
	}

	return abbr, meaning, true
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
