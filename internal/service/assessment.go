package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/asliddin4/KoYaAsli/internal/config"
	"github.com/asliddin4/KoYaAsli/internal/corpus"
	"github.com/asliddin4/KoYaAsli/internal/domain"
	"github.com/asliddin4/KoYaAsli/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tierMix is the question difficulty distribution for one proficiency
// level, in percent, indexed beginner / intermediate / advanced
type tierMix [3]int

var tierMixes = map[domain.Level]tierMix{
	domain.LevelBeginner:     {60, 30, 10},
	domain.LevelIntermediate: {30, 40, 30},
	domain.LevelAdvanced:     {10, 30, 60},
}

// AssessmentEngine generates TOPIK and JLPT style tests from the
// vocabulary corpus and scores submitted answers
type AssessmentEngine struct {
	store  *corpus.Store
	tests  repository.TestRepository
	rating *RatingEngine
	cfg    config.AssessmentConfig
	scoring config.ScoringConfig
	logger *zap.Logger
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAssessmentEngine creates a new assessment engine. The random
// source is injected so tests can make question selection reproducible.
func NewAssessmentEngine(
	store *corpus.Store,
	tests repository.TestRepository,
	rating *RatingEngine,
	cfg config.AssessmentConfig,
	scoring config.ScoringConfig,
	rng *rand.Rand,
	logger *zap.Logger,
) *AssessmentEngine {
	return &AssessmentEngine{
		store:   store,
		tests:   tests,
		rating:  rating,
		cfg:     cfg,
		scoring: scoring,
		rng:     rng,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate builds a new test for the user. The difficulty mix follows
// the user's current level, and no entry appears in two questions.
// Returns domain.ErrInsufficientData wrapped when the corpus cannot
// fill the requested mix.
func (e *AssessmentEngine) Generate(userID int64, examType domain.ExamType) (*domain.TestInstance, error) {
	lang := languageForExam(examType)
	if !lang.Valid() {
		return nil, fmt.Errorf("unknown exam type %q: %w", examType, domain.ErrInvalidState)
	}

	rec, err := e.rating.Proficiency(userID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := e.store.Snapshot()
	counts := questionCounts(tierMixes[rec.Level], e.cfg.QuestionCount)

	used := make(map[string]bool)
	var questions []domain.TestQuestion
	for i, tier := range domain.Tiers() {
		entries, err := snapshot.SampleByDifficulty(lang, tier, counts[i], used, e.rng)
		if err != nil {
			return nil, fmt.Errorf("exam %s for user %d: %w", examType, userID, err)
		}
		for _, entry := range entries {
			used[entry.ID] = true
			q, err := e.buildQuestion(snapshot, lang, entry)
			if err != nil {
				return nil, err
			}
			questions = append(questions, q)
		}
	}

	e.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	now := e.now()
	test := &domain.TestInstance{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExamType:  examType,
		Questions: questions,
		Answers:   make(map[int]int),
		State:     domain.TestStateInProgress,
		StartedAt: now,
		ExpiresAt: now.Add(e.cfg.Duration),
	}

	if err := e.tests.SaveTest(test); err != nil {
		return nil, fmt.Errorf("save test %s: %w", test.ID, err)
	}

	if e.logger != nil {
		e.logger.Info("test generated",
			zap.String("test_id", test.ID),
			zap.Int64("user_id", userID),
			zap.String("exam_type", string(examType)),
			zap.Int("questions", len(questions)),
		)
	}

	return test, nil
}

// SubmitAnswer records the user's choice for one question. Answers may
// be changed until the test is finalized. An expired test flips to the
// expired state on first touch and the submission is rejected.
func (e *AssessmentEngine) SubmitAnswer(testID string, questionIndex, choiceIndex int) error {
	test, err := e.loadTest(testID)
	if err != nil {
		return err
	}

	if test.State == domain.TestStateInProgress && test.ExpiredBy(e.now()) {
		test.State = domain.TestStateExpired
		if err := e.tests.SaveTest(test); err != nil {
			return fmt.Errorf("expire test %s: %w", testID, err)
		}
		return fmt.Errorf("test %s has expired: %w", testID, domain.ErrInvalidState)
	}
	if test.State != domain.TestStateInProgress {
		return fmt.Errorf("test %s is %s: %w", testID, test.State, domain.ErrInvalidState)
	}

	if questionIndex < 0 || questionIndex >= len(test.Questions) {
		return fmt.Errorf("test %s: question index %d out of range", testID, questionIndex)
	}
	if choiceIndex < 0 || choiceIndex >= len(test.Questions[questionIndex].Choices) {
		return fmt.Errorf("test %s: choice index %d out of range", testID, choiceIndex)
	}

	test.Answers[questionIndex] = choiceIndex
	if err := e.tests.SaveTest(test); err != nil {
		return fmt.Errorf("save answer for test %s: %w", testID, err)
	}
	return nil
}

// Finalize scores the test, applies the rating delta and records the
// attempt. Calling it again on a completed test returns the stored
// report without touching the rating.
func (e *AssessmentEngine) Finalize(testID string) (*domain.ScoreReport, error) {
	test, err := e.loadTest(testID)
	if err != nil {
		return nil, err
	}

	if test.State == domain.TestStateCompleted {
		return test.Report, nil
	}
	if test.State == domain.TestStateInProgress && test.ExpiredBy(e.now()) {
		test.State = domain.TestStateExpired
		if err := e.tests.SaveTest(test); err != nil {
			return nil, fmt.Errorf("expire test %s: %w", testID, err)
		}
	}
	if test.State != domain.TestStateInProgress {
		return nil, fmt.Errorf("test %s is %s: %w", testID, test.State, domain.ErrInvalidState)
	}

	correct := 0
	correctByTier := make(map[domain.DifficultyTier]int)
	for i, q := range test.Questions {
		if choice, ok := test.Answers[i]; ok && choice == q.CorrectIndex {
			correct++
			correctByTier[q.Tier]++
		}
	}

	total := len(test.Questions)
	passed := total > 0 && correct*100 >= e.scoring.PassThresholdPercent*total
	report := &domain.ScoreReport{
		CorrectCount: correct,
		Total:        total,
		Passed:       passed,
		ScoreDelta:   e.rating.TestDelta(passed, correctByTier),
	}

	test.Report = report
	test.State = domain.TestStateCompleted
	if err := e.tests.SaveTest(test); err != nil {
		return nil, fmt.Errorf("complete test %s: %w", testID, err)
	}

	if err := e.rating.RecordTestResult(test.UserID, *report); err != nil {
		return nil, err
	}
	if err := e.rating.repo.RecordTestSummary(domain.TestSummary{
		TestID:       test.ID,
		UserID:       test.UserID,
		ExamType:     test.ExamType,
		CorrectCount: correct,
		Total:        total,
		Passed:       passed,
		CompletedAt:  e.now(),
	}); err != nil {
		return nil, fmt.Errorf("record attempt for test %s: %w", testID, err)
	}

	if e.logger != nil {
		e.logger.Info("test finalized",
			zap.String("test_id", test.ID),
			zap.Int64("user_id", test.UserID),
			zap.Int("correct", correct),
			zap.Int("total", total),
			zap.Bool("passed", passed),
			zap.Int("score_delta", report.ScoreDelta),
		)
	}

	return report, nil
}

// GetTest loads a test instance for display
func (e *AssessmentEngine) GetTest(testID string) (*domain.TestInstance, error) {
	return e.loadTest(testID)
}

func (e *AssessmentEngine) loadTest(testID string) (*domain.TestInstance, error) {
	test, err := e.tests.GetTest(testID)
	if err != nil {
		return nil, fmt.Errorf("load test %s: %w", testID, err)
	}
	if test == nil {
		return nil, fmt.Errorf("test %s not found: %w", testID, domain.ErrInvalidState)
	}
	return test, nil
}

// buildQuestion makes a translation multiple-choice question: the
// correct translation plus distractor translations from other entries
// of the same language, shuffled
func (e *AssessmentEngine) buildQuestion(snapshot *corpus.Corpus, lang domain.Language, entry domain.VocabularyEntry) (domain.TestQuestion, error) {
	distractors := e.pickDistractors(snapshot, lang, entry)
	if len(distractors) < e.cfg.ChoiceCount-1 {
		return domain.TestQuestion{}, fmt.Errorf(
			"not enough distractors for %s vocabulary: %w", lang, domain.ErrInsufficientData)
	}

	choices := make([]string, 0, e.cfg.ChoiceCount)
	choices = append(choices, entry.Translation)
	choices = append(choices, distractors[:e.cfg.ChoiceCount-1]...)
	e.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	correctIndex := 0
	for i, c := range choices {
		if c == entry.Translation {
			correctIndex = i
			break
		}
	}

	return domain.TestQuestion{
		EntryID:      entry.ID,
		Prompt:       fmt.Sprintf("What does \"%s\" mean?", entry.SurfaceForm),
		Choices:      choices,
		CorrectIndex: correctIndex,
		Tier:         entry.Tier,
	}, nil
}

func (e *AssessmentEngine) pickDistractors(snapshot *corpus.Corpus, lang domain.Language, entry domain.VocabularyEntry) []string {
	var pool []string
	seen := map[string]bool{entry.Translation: true}
	for _, other := range snapshot.ByLanguage(lang) {
		if other.ID == entry.ID || seen[other.Translation] {
			continue
		}
		seen[other.Translation] = true
		pool = append(pool, other.Translation)
	}

	e.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

// questionCounts turns the percentage mix into absolute counts that sum
// to total, giving the rounding remainder to the largest share
func questionCounts(mix tierMix, total int) [3]int {
	var counts [3]int
	assigned := 0
	largest := 0
	for i, pct := range mix {
		counts[i] = total * pct / 100
		assigned += counts[i]
		if pct > mix[largest] {
			largest = i
		}
	}
	counts[largest] += total - assigned
	return counts
}

func languageForExam(examType domain.ExamType) domain.Language {
	switch examType {
	case domain.ExamTOPIK:
		return domain.LanguageKorean
	case domain.ExamJLPT:
		return domain.LanguageJapanese
	}
	return ""
}
