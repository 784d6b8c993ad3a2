package testutil

import (
	"time"

	"github.com/asliddin4/KoYaAsli/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewKoreanEntry creates a Korean vocabulary entry for tests
func NewKoreanEntry(id, surface, translation string, tier domain.DifficultyTier) domain.VocabularyEntry {
	return domain.VocabularyEntry{
		ID:           id,
		Language:     domain.LanguageKorean,
		SurfaceForm:  surface,
		Translation:  translation,
		PartOfSpeech: domain.POSNoun,
		Tier:         tier,
		Korean:       &domain.KoreanDetails{},
	}
}

// NewJapaneseEntry creates a Japanese vocabulary entry for tests
func NewJapaneseEntry(id, surface, translation string, tier domain.DifficultyTier) domain.VocabularyEntry {
	return domain.VocabularyEntry{
		ID:           id,
		Language:     domain.LanguageJapanese,
		SurfaceForm:  surface,
		Translation:  translation,
		PartOfSpeech: domain.POSNoun,
		Tier:         tier,
		Japanese:     &domain.JapaneseDetails{DictionaryForm: surface},
	}
}

// NewTestProficiency creates a proficiency record for tests
func NewTestProficiency(userID int64, score int, level domain.Level) *domain.ProficiencyRecord {
	return &domain.ProficiencyRecord{
		UserID:         userID,
		Score:          score,
		Level:          level,
		ScoreUpdatedAt: time.Now(),
	}
}

// NewTestInstance creates an in-progress test for tests
func NewTestInstance(id string, userID int64, questions []domain.TestQuestion) *domain.TestInstance {
	now := time.Now()
	return &domain.TestInstance{
		ID:        id,
		UserID:    userID,
		ExamType:  domain.ExamTOPIK,
		Questions: questions,
		Answers:   make(map[int]int),
		State:     domain.TestStateInProgress,
		StartedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
}
