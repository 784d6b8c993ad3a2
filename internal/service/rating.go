package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/asliddin4/KoYaAsli/internal/config"
	"github.com/asliddin4/KoYaAsli/internal/domain"
	"github.com/asliddin4/KoYaAsli/internal/repository"

	"go.uber.org/zap"
)

// RatingNotifier receives a callback whenever a user's score changes.
// The handler uses it to congratulate users on level ups.
type RatingNotifier interface {
	RatingChanged(userID int64, oldScore, newScore int)
}

// tierWeights multiply the per-question points by question difficulty
var tierWeights = map[domain.DifficultyTier]int{
	domain.TierBeginner:     1,
	domain.TierIntermediate: 2,
	domain.TierAdvanced:     3,
}

// RatingEngine owns proficiency scores. Scores only ever go up: a
// failed test or an idle day adds nothing, it never subtracts.
type RatingEngine struct {
	repo     repository.ProficiencyRepository
	notifier RatingNotifier
	cfg      config.ScoringConfig
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	dailyTurns map[int64]*turnCounter
}

type turnCounter struct {
	day    string
	points int
}

// NewRatingEngine creates a new rating engine. notifier may be nil.
func NewRatingEngine(repo repository.ProficiencyRepository, notifier RatingNotifier, cfg config.ScoringConfig, logger *zap.Logger) *RatingEngine {
	return &RatingEngine{
		repo:       repo,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		dailyTurns: make(map[int64]*turnCounter),
	}
}

// SetNotifier installs the rating change listener. The handler is
// built after the engine, so the hookup happens late.
func (r *RatingEngine) SetNotifier(notifier RatingNotifier) {
	r.notifier = notifier
}

// Proficiency returns the user's record, or a fresh beginner record
// when none is stored yet
func (r *RatingEngine) Proficiency(userID int64) (*domain.ProficiencyRecord, error) {
	rec, err := r.repo.GetProficiency(userID)
	if err != nil {
		return nil, fmt.Errorf("load proficiency for user %d: %w", userID, err)
	}
	if rec == nil {
		rec = &domain.ProficiencyRecord{UserID: userID, Level: domain.LevelBeginner}
	}
	return rec, nil
}

// LevelOf maps a score to a proficiency level using the configured
// thresholds
func (r *RatingEngine) LevelOf(score int) domain.Level {
	switch {
	case score >= r.cfg.AdvancedAt:
		return domain.LevelAdvanced
	case score >= r.cfg.IntermediateAt:
		return domain.LevelIntermediate
	default:
		return domain.LevelBeginner
	}
}

// TestDelta computes the score delta for a completed test from the
// per-tier correct answer counts. A failed test earns nothing.
func (r *RatingEngine) TestDelta(passed bool, correctByTier map[domain.DifficultyTier]int) int {
	if !passed {
		return 0
	}
	delta := 0
	for tier, correct := range correctByTier {
		delta += correct * r.cfg.PointsPerCorrect * tierWeights[tier]
	}
	return delta
}

// RecordTestResult applies a finalized test's score delta and bumps the
// tests-taken counter
func (r *RatingEngine) RecordTestResult(userID int64, report domain.ScoreReport) error {
	return r.apply(userID, report.ScoreDelta, func(rec *domain.ProficiencyRecord) {
		rec.TestsTaken++
	})
}

// RecordConversationTurn awards the per-turn point for a qualifying
// conversation turn, capped per user per day
func (r *RatingEngine) RecordConversationTurn(userID int64) error {
	delta := r.takeDailyPoints(userID)
	return r.apply(userID, delta, func(rec *domain.ProficiencyRecord) {
		rec.ConversationActivityCount++
	})
}

// Leaderboard returns the top N users by score
func (r *RatingEngine) Leaderboard(topN int) ([]domain.LeaderboardEntry, error) {
	entries, err := r.repo.Leaderboard(topN)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return entries, nil
}

// takeDailyPoints reserves turn points against the user's daily cap.
// The counter lives in memory and resets when the day changes.
func (r *RatingEngine) takeDailyPoints(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	today := r.now().UTC().Format("2006-01-02")
	counter := r.dailyTurns[userID]
	if counter == nil || counter.day != today {
		counter = &turnCounter{day: today}
		r.dailyTurns[userID] = counter
	}

	if counter.points >= r.cfg.DailyTurnCap {
		return 0
	}

	points := r.cfg.TurnPoints
	if remaining := r.cfg.DailyTurnCap - counter.points; points > remaining {
		points = remaining
	}
	counter.points += points
	return points
}

func (r *RatingEngine) apply(userID int64, delta int, update func(*domain.ProficiencyRecord)) error {
	rec, err := r.Proficiency(userID)
	if err != nil {
		return err
	}

	if delta < 0 {
		delta = 0
	}

	oldScore := rec.Score
	rec.Score += delta
	rec.Level = r.LevelOf(rec.Score)
	update(rec)

	if err := r.repo.SaveProficiency(rec); err != nil {
		return fmt.Errorf("save proficiency for user %d: %w", userID, err)
	}

	if delta > 0 {
		if r.logger != nil {
			r.logger.Info("rating changed",
				zap.Int64("user_id", userID),
				zap.Int("old_score", oldScore),
				zap.Int("new_score", rec.Score),
				zap.String("level", rec.Level.String()),
			)
		}
		if r.notifier != nil {
			r.notifier.RatingChanged(userID, oldScore, rec.Score)
		}
	}

	return nil
}
