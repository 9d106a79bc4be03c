package abbrev

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxInputs caps the number of answer slots shown for meanings
	// with many abbreviations; the user supplies any N of the set.
	MaxInputs = 6

	// MaxHistory is the rolling score window.
	MaxHistory = 100
)

var (
	ErrNoEntries       = errors.New("no abbreviation entries loaded")
	ErrQuestionPending = errors.New("current question not yet submitted")
	ErrNoQuestion      = errors.New("no question in progress")
)

// State is the quiz session's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateQuestioning
	StateSubmitted
)

// Store persists the rolling answer history between sessions. The
// session owns its state; persistence is an injected capability.
type Store interface {
	Load() ([]bool, error)
	Save(history []bool) error
}

// Question is one quiz prompt: a meaning and the number of distinct
// abbreviations the user must enter.
type Question struct {
	Meaning    string
	Slots      int
	ValidCount int
}

// Result is the outcome of one submission.
type Result struct {
	Correct      bool
	WrongGuesses []string
	ValidSet     []string
}

// Session is a single-user abbreviation quiz. It is not safe for
// concurrent use; each client owns one session.
type Session struct {
	id      string
	entries []Entry
	store   Store

	state       State
	current     *Entry
	slots       int
	lastMeaning string
	history     []bool
}

// NewSession creates a quiz session over the dataset entries,
// restoring any previously persisted history.
func NewSession(entries []Entry, store Store) (*Session, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	history, err := store.Load()
	if err != nil {
		return nil, err
	}
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}

	return &Session{
		id:      uuid.NewString(),
		entries: entries,
		store:   store,
		state:   StateIdle,
		history: history,
	}, nil
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Next picks the next question at random, never repeating the
// immediately-previous meaning when more than one entry exists.
func (s *Session) Next() (Question, error) {
	if s.state == StateQuestioning {
		return Question{}, ErrQuestionPending
	}

	candidates := s.entries
	if len(s.entries) > 1 && s.lastMeaning != "" {
		candidates = make([]Entry, 0, len(s.entries)-1)
		for _, e := range s.entries {
			if e.Meaning != s.lastMeaning {
				candidates = append(candidates, e)
			}
		}
	}

	entry := candidates[rand.Intn(len(candidates))]
	slots := len(entry.Abbreviations)
	if slots > MaxInputs {
		slots = MaxInputs
	}

	s.current = &entry
	s.slots = slots
	s.lastMeaning = entry.Meaning
	s.state = StateQuestioning

	return Question{
		Meaning:    entry.Meaning,
		Slots:      slots,
		ValidCount: len(entry.Abbreviations),
	}, nil
}

// Submit grades the guesses against the current question. Guesses are
// trimmed and lowercased; duplicates collapse, so entering the same
// valid abbreviation twice cannot fill two slots. The result is
// recorded in the rolling history and persisted.
func (s *Session) Submit(guesses []string) (Result, error) {
	if s.state != StateQuestioning {
		return Result{}, ErrNoQuestion
	}

	unique := normalizeGuesses(guesses)

	var wrong []string
	for _, g := range unique {
		if !contains(s.current.Abbreviations, g) {
			wrong = append(wrong, g)
		}
	}

	result := Result{
		Correct:      len(unique) == s.slots && len(wrong) == 0,
		WrongGuesses: wrong,
		ValidSet:     s.current.Abbreviations,
	}

	s.history = append(s.history, result.Correct)
	if len(s.history) > MaxHistory {
		s.history = s.history[len(s.history)-MaxHistory:]
	}
	s.state = StateSubmitted

	if err := s.store.Save(s.history); err != nil {
		return result, err
	}
	return result, nil
}

// Score returns the rolling score over the last MaxHistory submissions.
func (s *Session) Score() (correct, answered int) {
	for _, ok := range s.history {
		if ok {
			correct++
		}
	}
	return correct, len(s.history)
}

// normalizeGuesses lowercases, trims, drops empties, and deduplicates
// while preserving order.
func normalizeGuesses(guesses []string) []string {
	seen := make(map[string]bool, len(guesses))
	var unique []string
	for _, g := range guesses {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		unique = append(unique, g)
	}
	return unique
}
