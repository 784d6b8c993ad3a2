package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTestInstance_ExpiredBy(t *testing.T) {
	now := time.Now()
	test := &TestInstance{
		State:     TestStateInProgress,
		StartedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}

	assert.False(t, test.ExpiredBy(now))
	assert.False(t, test.ExpiredBy(now.Add(14*time.Minute)))
	assert.True(t, test.ExpiredBy(now.Add(16*time.Minute)))
}

func TestTestInstance_Answered(t *testing.T) {
	test := &TestInstance{
		Questions: make([]TestQuestion, 3),
		Answers:   map[int]int{},
	}

	assert.Equal(t, 0, test.Answered())

	test.Answers[0] = 2
	test.Answers[2] = 1
	assert.Equal(t, 2, test.Answered())

	// Changing an answer does not count twice
	test.Answers[0] = 3
	assert.Equal(t, 2, test.Answered())
}

func TestLanguage_ExamFor(t *testing.T) {
	assert.Equal(t, ExamTOPIK, LanguageKorean.ExamFor())
	assert.Equal(t, ExamJLPT, LanguageJapanese.ExamFor())
}

func TestLanguage_Valid(t *testing.T) {
	assert.True(t, LanguageKorean.Valid())
	assert.True(t, LanguageJapanese.Valid())
	assert.False(t, Language("english").Valid())
	assert.False(t, Language("").Valid())
}
