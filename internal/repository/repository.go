package repository

import (
	"github.com/asliddin4/KoYaAsli/internal/domain"
)

// VocabularyRepository loads the raw corpus entries from storage.
// The corpus itself is built and indexed in memory; storage only
// supplies the rows.
type VocabularyRepository interface {
	LoadEntries() ([]domain.VocabularyEntry, error)
}

// ContextRepository persists per-user conversation contexts
type ContextRepository interface {
	// GetContext returns nil (no error) when the user has no saved context
	GetContext(userID int64, lang domain.Language) (*domain.ConversationContext, error)
	SaveContext(ctx *domain.ConversationContext) error
}

// ProficiencyRepository persists per-user rating state
type ProficiencyRepository interface {
	EnsureUserExists(userID int64) error
	// GetProficiency returns nil (no error) when the user has no record
	GetProficiency(userID int64) (*domain.ProficiencyRecord, error)
	SaveProficiency(rec *domain.ProficiencyRecord) error
	RecordTestSummary(summary domain.TestSummary) error
	Leaderboard(topN int) ([]domain.LeaderboardEntry, error)
}

// TestRepository persists test instances
type TestRepository interface {
	SaveTest(t *domain.TestInstance) error
	// GetTest returns nil (no error) when no instance has that id
	GetTest(testID string) (*domain.TestInstance, error)
}
