package testutil

import (
	"github.com/asliddin4/KoYaAsli/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockVocabularyRepository is a mock for VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) LoadEntries() ([]domain.VocabularyEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyEntry), args.Error(1)
}

// MockContextRepository is a mock for ContextRepository
type MockContextRepository struct {
	mock.Mock
}

func (m *MockContextRepository) GetContext(userID int64, lang domain.Language) (*domain.ConversationContext, error) {
	args := m.Called(userID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversationContext), args.Error(1)
}

func (m *MockContextRepository) SaveContext(ctx *domain.ConversationContext) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockProficiencyRepository is a mock for ProficiencyRepository
type MockProficiencyRepository struct {
	mock.Mock
}

func (m *MockProficiencyRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockProficiencyRepository) GetProficiency(userID int64) (*domain.ProficiencyRecord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProficiencyRecord), args.Error(1)
}

func (m *MockProficiencyRepository) SaveProficiency(rec *domain.ProficiencyRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockProficiencyRepository) RecordTestSummary(summary domain.TestSummary) error {
	args := m.Called(summary)
	return args.Error(0)
}

func (m *MockProficiencyRepository) Leaderboard(topN int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

// MockTestRepository is a mock for TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) SaveTest(t *domain.TestInstance) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockTestRepository) GetTest(testID string) (*domain.TestInstance, error) {
	args := m.Called(testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestInstance), args.Error(1)
}
