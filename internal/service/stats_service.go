package service

import (
	"errors"
	"math"

	"cluetrainer/internal/models"
	"cluetrainer/internal/repository"
)

// ErrInvalidAttempt is returned when an attempt's letter counts are
// unusable.
var ErrInvalidAttempt = errors.New("total letters must be positive")

const (
	recentWindow   = 10
	historyDefault = 50
	historyMax     = 500
)

// StatsService records attempts and aggregates them.
type StatsService struct {
	attemptRepo *repository.AttemptRepository
}

// NewStatsService creates a new stats service
func NewStatsService(attemptRepo *repository.AttemptRepository) *StatsService {
	return &StatsService{attemptRepo: attemptRepo}
}

// RecordAttempt appends one attempt to the user's log and returns its ID.
func (s *StatsService) RecordAttempt(userID, clueRowid int64, lettersRevealed, totalLetters int, correct bool, puzzleType string) (int64, error) {
	if lettersRevealed < 0 {
		lettersRevealed = 0
	}
	if totalLetters < 1 {
		return 0, ErrInvalidAttempt
	}
	if lettersRevealed > totalLetters {
		lettersRevealed = totalLetters
	}
	return s.attemptRepo.Insert(userID, clueRowid, lettersRevealed, totalLetters, correct, puzzleType)
}

// Summary computes a user's aggregate statistics. All rates are 0 for
// a user with no attempts, never NaN.
func (s *StatsService) Summary(userID int64) (*models.StatsSummary, error) {
	total, correct, avgPct, err := s.attemptRepo.Totals(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.StatsSummary{
		TotalAttempts:  total,
		CorrectAnswers: correct,
	}

	if total > 0 {
		summary.SuccessRate = int(math.Round(float64(correct) / float64(total) * 100))
	}
	if avgPct.Valid {
		summary.AvgLettersRevealedPct = roundToTenth(avgPct.Float64)
	}

	recent, err := s.attemptRepo.RecentAvgRevealedPct(userID, recentWindow)
	if err != nil {
		return nil, err
	}
	if recent.Valid {
		summary.Last10AvgLettersRevealedPct = roundToTenth(recent.Float64)
	}

	return summary, nil
}

// History returns the user's most recent attempts. Limit defaults to
// 50 and is capped at 500.
func (s *StatsService) History(userID int64, limit int) ([]models.AttemptWithClue, error) {
	if limit <= 0 {
		limit = historyDefault
	}
	if limit > historyMax {
		limit = historyMax
	}
	return s.attemptRepo.History(userID, limit)
}

// roundToTenth rounds to one decimal place.
func roundToTenth(f float64) float64 {
	return math.Round(f*10) / 10
}
