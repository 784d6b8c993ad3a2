package service

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/asliddin4/KoYaAsli/internal/config"
	"github.com/asliddin4/KoYaAsli/internal/corpus"
	"github.com/asliddin4/KoYaAsli/internal/domain"

	"github.com/stretchr/testify/require"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		PointsPerCorrect:     10,
		PassThresholdPercent: 60,
		TurnPoints:           1,
		DailyTurnCap:         20,
		IntermediateAt:       300,
		AdvancedAt:           1000,
	}
}

func testAssessmentConfig() config.AssessmentConfig {
	return config.AssessmentConfig{
		QuestionCount: 10,
		ChoiceCount:   4,
		Duration:      15 * time.Minute,
	}
}

func buildTestStore(t *testing.T, entries []domain.VocabularyEntry) (*corpus.Store, *corpus.Tokenizer) {
	t.Helper()
	tok := corpus.NewTokenizer(nil)
	c, err := corpus.Build(entries, tok)
	require.NoError(t, err)
	return corpus.NewStore(c), tok
}

// memProficiencyRepo is an in-memory stand-in for the stateful rating
// flows where a testify mock would be unwieldy
type memProficiencyRepo struct {
	records   map[int64]*domain.ProficiencyRecord
	summaries []domain.TestSummary
}

func newMemProficiencyRepo() *memProficiencyRepo {
	return &memProficiencyRepo{records: make(map[int64]*domain.ProficiencyRecord)}
}

func (m *memProficiencyRepo) EnsureUserExists(userID int64) error {
	return nil
}

func (m *memProficiencyRepo) GetProficiency(userID int64) (*domain.ProficiencyRecord, error) {
	rec, ok := m.records[userID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memProficiencyRepo) SaveProficiency(rec *domain.ProficiencyRecord) error {
	cp := *rec
	m.records[rec.UserID] = &cp
	return nil
}

func (m *memProficiencyRepo) RecordTestSummary(summary domain.TestSummary) error {
	m.summaries = append(m.summaries, summary)
	return nil
}

func (m *memProficiencyRepo) Leaderboard(topN int) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	for _, rec := range m.records {
		if rec.Score > 0 {
			entries = append(entries, domain.LeaderboardEntry{UserID: rec.UserID, Score: rec.Score})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries, nil
}

type memTestRepo struct {
	tests map[string]*domain.TestInstance
}

func newMemTestRepo() *memTestRepo {
	return &memTestRepo{tests: make(map[string]*domain.TestInstance)}
}

func cloneTest(t *domain.TestInstance) *domain.TestInstance {
	cp := *t
	cp.Answers = make(map[int]int, len(t.Answers))
	for k, v := range t.Answers {
		cp.Answers[k] = v
	}
	if t.Report != nil {
		report := *t.Report
		cp.Report = &report
	}
	return &cp
}

func (m *memTestRepo) SaveTest(t *domain.TestInstance) error {
	m.tests[t.ID] = cloneTest(t)
	return nil
}

func (m *memTestRepo) GetTest(testID string) (*domain.TestInstance, error) {
	t, ok := m.tests[testID]
	if !ok {
		return nil, nil
	}
	return cloneTest(t), nil
}

type memContextRepo struct {
	contexts map[string]*domain.ConversationContext
}

func newMemContextRepo() *memContextRepo {
	return &memContextRepo{contexts: make(map[string]*domain.ConversationContext)}
}

func contextKey(userID int64, lang domain.Language) string {
	return fmt.Sprintf("%d/%s", userID, lang)
}

func (m *memContextRepo) GetContext(userID int64, lang domain.Language) (*domain.ConversationContext, error) {
	ctx, ok := m.contexts[contextKey(userID, lang)]
	if !ok {
		return nil, nil
	}
	cp := *ctx
	cp.RecentIntents = append([]domain.Intent(nil), ctx.RecentIntents...)
	return &cp, nil
}

func (m *memContextRepo) SaveContext(ctx *domain.ConversationContext) error {
	cp := *ctx
	cp.RecentIntents = append([]domain.Intent(nil), ctx.RecentIntents...)
	m.contexts[contextKey(ctx.UserID, ctx.Language)] = &cp
	return nil
}

type ratingEvent struct {
	userID   int64
	oldScore int
	newScore int
}

type memNotifier struct {
	events []ratingEvent
}

func (m *memNotifier) RatingChanged(userID int64, oldScore, newScore int) {
	m.events = append(m.events, ratingEvent{userID: userID, oldScore: oldScore, newScore: newScore})
}
