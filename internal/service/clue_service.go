package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"cluetrainer/internal/models"
	"cluetrainer/internal/puzzle"
	"cluetrainer/internal/repository"
)

// randomSampleSize bounds the random-clue query. Selection is
// sample-then-filter: draw this many rows in random order, classify in
// memory, filter to the requested type, pick uniformly from the
// survivors. A type rarer than the cap may be missed in one draw.
const randomSampleSize = 1000

var (
	ErrClueNotFound   = errors.New("clue not found")
	ErrNoCluesForType = errors.New("no clues found for this type")
	ErrInvalidType    = errors.New("invalid puzzle type")
)

// ClueService orchestrates clue selection, answer checking, and hints.
type ClueService struct {
	clueRepo *repository.ClueRepository
}

// NewClueService creates a new clue service
func NewClueService(clueRepo *repository.ClueRepository) *ClueService {
	return &ClueService{clueRepo: clueRepo}
}

// RandomClue returns one clue of the requested puzzle type with the
// answer withheld and lengths derived from it.
func (s *ClueService) RandomClue(puzzleType string) (*models.CluePresentation, error) {
	if !puzzle.IsValid(puzzleType) {
		return nil, ErrInvalidType
	}

	batch, err := s.clueRepo.FetchRandomBatch(randomSampleSize)
	if err != nil {
		return nil, err
	}

	// Puzzle type is derived from puzzle_name at read time, never stored.
	var matching []models.Clue
	for _, c := range batch {
		if puzzle.TypeFromName(c.PuzzleName) == puzzle.Type(puzzleType) {
			matching = append(matching, c)
		}
	}

	if len(matching) == 0 {
		return nil, ErrNoCluesForType
	}

	chosen := matching[rand.Intn(len(matching))]
	return present(&chosen), nil
}

// ClueByID returns one specific clue, answer withheld.
func (s *ClueService) ClueByID(rowid int64) (*models.CluePresentation, error) {
	c, err := s.clueRepo.GetByID(rowid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClueNotFound
	}
	return present(c), nil
}

// CheckAnswer verifies a user's answer case-insensitively and reveals
// the stored answer either way.
func (s *ClueService) CheckAnswer(rowid int64, userAnswer string) (*models.CheckResult, error) {
	c, err := s.clueRepo.GetByID(rowid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClueNotFound
	}

	return &models.CheckResult{
		Correct:   strings.EqualFold(userAnswer, c.Answer),
		Answer:    c.Answer,
		SourceURL: c.SourceURL,
	}, nil
}

// DefinitionHint locates the definition inside the clue text for
// highlighting.
func (s *ClueService) DefinitionHint(rowid int64) (*models.DefinitionHint, error) {
	c, err := s.clueRepo.GetByID(rowid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClueNotFound
	}

	start, length := puzzle.FindDefinition(c.Clue, c.Definition)
	return &models.DefinitionHint{
		Clue:             c.Clue,
		Definition:       c.Definition,
		DefinitionStart:  start,
		DefinitionLength: length,
	}, nil
}

// LetterHint reveals the answer's character at a 0-based position.
func (s *ClueService) LetterHint(rowid int64, position int) (*models.LetterHint, error) {
	c, err := s.clueRepo.GetByID(rowid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClueNotFound
	}

	letter, err := puzzle.LetterAt(c.Answer, position)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, position)
	}

	return &models.LetterHint{Position: position, Letter: letter}, nil
}

func present(c *models.Clue) *models.CluePresentation {
	return &models.CluePresentation{
		Rowid:             c.Rowid,
		Clue:              c.Clue,
		Definition:        c.Definition,
		PuzzleName:        c.PuzzleName,
		PuzzleDate:        c.PuzzleDate,
		SourceURL:         c.SourceURL,
		AnswerLength:      puzzle.AnswerLength(c.Answer),
		AnswerLetterCount: puzzle.AnswerLetterCount(c.Answer),
	}
}
