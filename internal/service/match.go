package service

import (
	"strings"

	"github.com/asliddin4/KoYaAsli/internal/config"
	"github.com/asliddin4/KoYaAsli/internal/corpus"
	"github.com/asliddin4/KoYaAsli/internal/domain"

	"go.uber.org/zap"
)

// MatchResult is the outcome of matching one learner message.
// Matched == false is the NoMatch outcome, not an error: the composer
// answers it with a clarification prompt.
type MatchResult struct {
	Matched bool
	Entry   domain.VocabularyEntry
	Intent  domain.Intent
	Score   float64
}

// Scoring weights for candidate ranking. The combination is fixed;
// only the NoMatch threshold is configuration.
const (
	tokenHitWeight    = 1.0
	surfaceMatchBonus = 1.0
	tierProximityBase = 0.75
	tierProximityStep = 0.25
	continuityBonus   = 0.5
)

// MatchEngine maps learner input to the best corpus entry and classifies
// intent. Deterministic: identical corpus, context and input always
// produce the same result.
type MatchEngine struct {
	store  *corpus.Store
	tok    *corpus.Tokenizer
	cfg    config.MatchConfig
	logger *zap.Logger
}

// NewMatchEngine creates a new match engine
func NewMatchEngine(store *corpus.Store, tok *corpus.Tokenizer, cfg config.MatchConfig, logger *zap.Logger) *MatchEngine {
	return &MatchEngine{store: store, tok: tok, cfg: cfg, logger: logger}
}

// Match finds the best corpus entry for the input text and records the
// turn on the context (turn count + intent history). level is the
// learner's current proficiency level, used for tier proximity scoring.
func (e *MatchEngine) Match(text string, lang domain.Language, ctx *domain.ConversationContext, level domain.Level) MatchResult {
	snapshot := e.store.Snapshot()
	tokens := e.tok.Tokenize(text, lang)
	intent := classifyIntent(text, tokens)

	type candidate struct {
		entry domain.VocabularyEntry
		score float64
	}
	scores := make(map[string]float64)
	entries := make(map[string]domain.VocabularyEntry)

	normalizedInput := corpus.NormalizeToken(text)
	for _, token := range tokens {
		for _, entry := range snapshot.LookupToken(token, lang) {
			scores[entry.ID] += tokenHitWeight
			entries[entry.ID] = entry
		}
	}

	var best *candidate
	for id, base := range scores {
		entry := entries[id]
		score := base

		// Whole-input surface match is the strongest signal
		if corpus.NormalizeToken(entry.SurfaceForm) == normalizedInput {
			score += surfaceMatchBonus
		}

		// Prefer vocabulary near the learner's level
		distance := entry.Tier - level.Tier()
		if distance < 0 {
			distance = -distance
		}
		proximity := tierProximityBase - tierProximityStep*float64(distance)
		if proximity > 0 {
			score += proximity
		}

		// Continuity with the recent conversation
		if ctx != nil && (ctx.LastMatchedEntryID == id || ctx.HasRecentIntent(intentOfEntry(entry))) {
			score += continuityBonus
		}

		if best == nil || better(candidateRank{score, entry, snapshot}, candidateRank{best.score, best.entry, snapshot}) {
			best = &candidate{entry: entry, score: score}
		}
	}

	result := MatchResult{Intent: intent}
	if best != nil && best.score >= e.cfg.MinScore {
		result.Matched = true
		result.Entry = best.entry
		result.Score = best.score
	}

	if ctx != nil {
		ctx.TurnCount++
		ctx.PushIntent(intent)
		if result.Matched {
			ctx.LastMatchedEntryID = result.Entry.ID
		}
	}

	if e.logger != nil {
		e.logger.Debug("match result",
			zap.String("language", string(lang)),
			zap.Bool("matched", result.Matched),
			zap.Float64("score", result.Score),
			zap.String("intent", string(intent)),
		)
	}

	return result
}

type candidateRank struct {
	score    float64
	entry    domain.VocabularyEntry
	snapshot *corpus.Corpus
}

// better implements the deterministic ordering: higher score wins, ties
// go to the lower difficulty tier, remaining ties to corpus insertion order
func better(a, b candidateRank) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.entry.Tier != b.entry.Tier {
		return a.entry.Tier < b.entry.Tier
	}
	return a.snapshot.InsertionIndex(a.entry.ID) < b.snapshot.InsertionIndex(b.entry.ID)
}

// greetingSurfaces are well-known greeting forms in both languages
var greetingSurfaces = map[string]bool{
	"안녕":      true,
	"안녕하세요":   true,
	"안녕히가세요":  true,
	"こんにちは":   true,
	"こんばんは":   true,
	"おはよう":    true,
	"おはようございます": true,
	"hello":   true,
	"hi":      true,
	"annyeong": true,
}

// correctionMarkers signal the learner is asking to be checked
var correctionMarkers = []string{
	"고쳐", "맞아요?", "맞나요?", "直して", "合ってる?", "合ってますか",
	"correct?", "is this right", "check",
}

// questionMarkers are interrogative words beyond the question mark itself
var questionMarkers = []string{
	"뭐", "무엇", "어디", "누구", "왜", "언제",
	"何", "なに", "どこ", "だれ", "誰", "いつ", "なぜ",
}

func classifyIntent(text string, tokens []string) domain.Intent {
	lowered := strings.ToLower(strings.TrimSpace(text))

	for _, marker := range correctionMarkers {
		if strings.Contains(lowered, marker) {
			return domain.IntentCorrectionRequest
		}
	}

	for _, token := range tokens {
		if greetingSurfaces[corpus.NormalizeToken(token)] {
			return domain.IntentGreeting
		}
	}

	if strings.HasSuffix(lowered, "?") || strings.HasSuffix(lowered, "？") {
		return domain.IntentQuestion
	}
	for _, marker := range questionMarkers {
		if strings.Contains(lowered, marker) {
			return domain.IntentQuestion
		}
	}

	return domain.IntentStatement
}

// intentOfEntry is the intent an entry most naturally serves, used for
// the continuity bonus
func intentOfEntry(entry domain.VocabularyEntry) domain.Intent {
	if greetingSurfaces[corpus.NormalizeToken(entry.SurfaceForm)] {
		return domain.IntentGreeting
	}
	return domain.IntentStatement
}
