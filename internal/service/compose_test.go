package service

import (
	"strings"
	"testing"

	"github.com/asliddin4/KoYaAsli/internal/domain"
	"github.com/asliddin4/KoYaAsli/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func composerEntry() domain.VocabularyEntry {
	return domain.VocabularyEntry{
		ID:            "ko-greet",
		Language:      domain.LanguageKorean,
		SurfaceForm:   "안녕",
		Translation:   "hello",
		PartOfSpeech:  domain.POSPhrase,
		UsageExamples: []string{"안녕! 잘 지냈어?"},
		CulturalNote:  "Casual greeting used between friends",
		Korean:        &domain.KoreanDetails{},
	}
}

func TestResponseComposer_MatchedGreeting(t *testing.T) {
	composer := NewResponseComposer(testutil.NewTestLogger())
	ctx := domain.NewConversationContext(1, domain.LanguageKorean)

	match := MatchResult{Matched: true, Entry: composerEntry(), Intent: domain.IntentGreeting}
	reply := composer.Compose(match, nil, ctx)

	assert.Contains(t, reply, "안녕")
	assert.Contains(t, reply, "hello")
	assert.Contains(t, reply, "잘 지냈어")
	assert.Contains(t, reply, "Casual greeting")
	// Internal ids never leak into replies
	assert.NotContains(t, reply, "ko-greet")
}

func TestResponseComposer_CorrectionsComeFirst(t *testing.T) {
	composer := NewResponseComposer(testutil.NewTestLogger())
	ctx := domain.NewConversationContext(1, domain.LanguageKorean)

	match := MatchResult{Matched: true, Entry: composerEntry(), Intent: domain.IntentStatement}
	corrections := []Correction{{Span: "물", IssueKind: IssueParticle, Suggestion: "mark the noun with its particle, e.g. 물을"}}

	reply := composer.Compose(match, corrections, ctx)

	assert.True(t, strings.HasPrefix(reply, "✏️"))
	assert.Less(t, strings.Index(reply, "물을"), strings.Index(reply, "hello"))
}

func TestResponseComposer_CorrectionRequestWithoutIssues(t *testing.T) {
	composer := NewResponseComposer(testutil.NewTestLogger())
	ctx := domain.NewConversationContext(1, domain.LanguageKorean)

	match := MatchResult{Matched: true, Entry: composerEntry(), Intent: domain.IntentCorrectionRequest}
	reply := composer.Compose(match, nil, ctx)

	assert.Contains(t, reply, "Looks good")
}

func TestResponseComposer_ClarificationRotates(t *testing.T) {
	composer := NewResponseComposer(testutil.NewTestLogger())
	noMatch := MatchResult{Matched: false, Intent: domain.IntentStatement}

	ctx := domain.NewConversationContext(1, domain.LanguageKorean)
	ctx.TurnCount = 1
	first := composer.Compose(noMatch, nil, ctx)

	ctx.TurnCount = 2
	second := composer.Compose(noMatch, nil, ctx)

	// Consecutive NoMatch turns get different prompts
	assert.NotEqual(t, first, second)

	// Same turn state yields the same prompt: composition is deterministic
	ctx.TurnCount = 1
	assert.Equal(t, first, composer.Compose(noMatch, nil, ctx))
}

func TestResponseComposer_ClarificationNilContext(t *testing.T) {
	composer := NewResponseComposer(testutil.NewTestLogger())
	noMatch := MatchResult{Matched: false, Intent: domain.IntentQuestion}

	reply := composer.Compose(noMatch, nil, nil)
	assert.NotEmpty(t, reply)
}
