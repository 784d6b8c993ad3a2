package domain

import "time"

// ExamType is the graded exam family a test instance belongs to
type ExamType string

const (
	ExamTOPIK ExamType = "TOPIK"
	ExamJLPT  ExamType = "JLPT"
)

// TestState is the lifecycle state of a test instance.
// Created -> InProgress -> (Completed | Expired).
type TestState string

const (
	TestStateCreated    TestState = "created"
	TestStateInProgress TestState = "in_progress"
	TestStateCompleted  TestState = "completed"
	TestStateExpired    TestState = "expired"
)

// TestQuestion is one multiple-choice question inside a test instance
type TestQuestion struct {
	EntryID      string   `json:"entry_id"`
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Tier         DifficultyTier `json:"tier"`
}

// ScoreReport is the result of finalizing a test instance
type ScoreReport struct {
	CorrectCount int
	Total        int
	Passed       bool
	// ScoreDelta is the rating points awarded for this test (never negative)
	ScoreDelta int
}

// TestInstance is one generated, time-boxed exam session with a fixed
// question set. Mutated only by answer submission and finalization.
type TestInstance struct {
	ID        string
	UserID    int64
	ExamType  ExamType
	Questions []TestQuestion
	// Answers maps question index to the chosen choice index;
	// resubmission overwrites, never duplicates
	Answers   map[int]int
	State     TestState
	StartedAt time.Time
	ExpiresAt time.Time
	// Report is set once on completion so finalize stays idempotent
	Report *ScoreReport
}

// ExpiredBy reports whether the instance deadline has passed at the given time
func (t *TestInstance) ExpiredBy(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Answered returns how many distinct questions have recorded answers
func (t *TestInstance) Answered() int {
	return len(t.Answers)
}

// TestSummary is the persisted record of a completed test
type TestSummary struct {
	TestID       string
	UserID       int64
	ExamType     ExamType
	CorrectCount int
	Total        int
	Passed       bool
	CompletedAt  time.Time
}
