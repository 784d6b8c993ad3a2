package domain

import "time"

// Level is a learner proficiency level derived from score thresholds
type Level int

const (
	LevelBeginner Level = iota
	LevelIntermediate
	LevelAdvanced
)

func (l Level) String() string {
	switch l {
	case LevelAdvanced:
		return "advanced"
	case LevelIntermediate:
		return "intermediate"
	default:
		return "beginner"
	}
}

// Tier maps a proficiency level to the matching difficulty tier
func (l Level) Tier() DifficultyTier {
	switch l {
	case LevelAdvanced:
		return TierAdvanced
	case LevelIntermediate:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// ProficiencyRecord is the per-user rating state. Score is monotonically
// non-decreasing; only an explicit admin reset may lower it.
type ProficiencyRecord struct {
	UserID                    int64
	Score                     int
	Level                     Level
	ConversationActivityCount int
	TestsTaken                int
	ScoreUpdatedAt            time.Time
}

// LeaderboardEntry is one row of the descending-score leaderboard
type LeaderboardEntry struct {
	UserID int64
	Score  int
}
