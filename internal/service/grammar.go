package service

import (
	"strings"

	"github.com/asliddin4/KoYaAsli/internal/corpus"
	"github.com/asliddin4/KoYaAsli/internal/domain"

	"go.uber.org/zap"
)

// Correction describes one grammar issue found in learner input.
// Span is the offending fragment of the original text.
type Correction struct {
	Span       string
	IssueKind  string
	Suggestion string
}

// Issue kinds produced by the rule table
const (
	IssueParticle    = "particle"
	IssueWordOrder   = "word_order"
	IssueConjugation = "conjugation"
	IssueHonorific   = "honorific"
)

// GrammarRule is one declarative check. Rules are selected by language
// and the part of speech of the matched entry; the Kind picks the
// evaluator. New checks are added as table rows, not as new code paths.
type GrammarRule struct {
	Language   domain.Language
	AppliesTo  []domain.PartOfSpeech
	Kind       string
	Suggestion string

	// conjugation rules only: forms that trigger the suggestion,
	// as reported by the morphological analyzer
	FlaggedForms []string
}

// defaultRules covers particle use and clause-final predicates for
// Korean, and polite-form conjugation plus clause-final predicates for
// Japanese.
var defaultRules = []GrammarRule{
	{
		Language:   domain.LanguageKorean,
		AppliesTo:  []domain.PartOfSpeech{domain.POSNoun},
		Kind:       IssueParticle,
		Suggestion: "mark the noun with its particle, e.g. %s",
	},
	{
		Language:   domain.LanguageKorean,
		AppliesTo:  []domain.PartOfSpeech{domain.POSVerb, domain.POSAdjective},
		Kind:       IssueWordOrder,
		Suggestion: "Korean sentences end with the verb or adjective; move %s to the end",
	},
	{
		Language:   domain.LanguageKorean,
		AppliesTo:  []domain.PartOfSpeech{domain.POSVerb},
		Kind:       IssueHonorific,
		Suggestion: "this word is usually used in the honorific form; try %s",
	},
	{
		Language:     domain.LanguageJapanese,
		AppliesTo:    []domain.PartOfSpeech{domain.POSVerb},
		Kind:         IssueConjugation,
		Suggestion:   "in polite conversation use the ます form of %s",
		FlaggedForms: []string{"基本形"},
	},
	{
		Language:   domain.LanguageJapanese,
		AppliesTo:  []domain.PartOfSpeech{domain.POSVerb, domain.POSAdjective},
		Kind:       IssueWordOrder,
		Suggestion: "Japanese sentences end with the predicate; move %s to the end",
	},
}

// GrammarCorrector checks learner input against the rule table for the
// matched entry. It never fails: unparseable input yields no corrections.
type GrammarCorrector struct {
	rules  []GrammarRule
	ja     *corpus.JapaneseAnalyzer
	tok    *corpus.Tokenizer
	logger *zap.Logger
}

// NewGrammarCorrector creates a corrector with the default rule table
func NewGrammarCorrector(ja *corpus.JapaneseAnalyzer, tok *corpus.Tokenizer, logger *zap.Logger) *GrammarCorrector {
	return &GrammarCorrector{rules: defaultRules, ja: ja, tok: tok, logger: logger}
}

// Check runs every applicable rule over the input. The result list is
// empty when nothing is wrong or the input could not be analyzed.
func (g *GrammarCorrector) Check(text string, match MatchResult, lang domain.Language) []Correction {
	if !match.Matched {
		return nil
	}

	entry := match.Entry
	var corrections []Correction
	for _, rule := range g.rules {
		if rule.Language != lang || !appliesTo(rule, entry.PartOfSpeech) {
			continue
		}
		if c, ok := g.evaluate(rule, text, entry); ok {
			corrections = append(corrections, c)
		}
	}

	if g.logger != nil && len(corrections) > 0 {
		g.logger.Debug("grammar corrections",
			zap.String("language", string(lang)),
			zap.Int("count", len(corrections)),
		)
	}

	return corrections
}

func appliesTo(rule GrammarRule, pos domain.PartOfSpeech) bool {
	for _, p := range rule.AppliesTo {
		if p == pos {
			return true
		}
	}
	return false
}

func (g *GrammarCorrector) evaluate(rule GrammarRule, text string, entry domain.VocabularyEntry) (Correction, bool) {
	switch rule.Kind {
	case IssueParticle:
		return checkParticles(rule, text, entry)
	case IssueWordOrder:
		return checkWordOrder(rule, text, entry)
	case IssueHonorific:
		return checkHonorific(rule, text, entry)
	case IssueConjugation:
		return g.checkConjugation(rule, text, entry)
	}
	return Correction{}, false
}

// checkParticles flags a Korean noun used without any of its expected
// particles directly after it
func checkParticles(rule GrammarRule, text string, entry domain.VocabularyEntry) (Correction, bool) {
	if entry.Korean == nil || len(entry.Korean.ExpectedParticles) == 0 {
		return Correction{}, false
	}

	idx := strings.Index(text, entry.SurfaceForm)
	if idx < 0 {
		return Correction{}, false
	}

	after := text[idx+len(entry.SurfaceForm):]
	for _, particle := range entry.Korean.ExpectedParticles {
		if strings.HasPrefix(after, particle) {
			return Correction{}, false
		}
	}

	// Bare noun at the end of the utterance is fine in casual speech
	if strings.TrimSpace(after) == "" {
		return Correction{}, false
	}

	example := entry.SurfaceForm + entry.Korean.ExpectedParticles[0]
	return Correction{
		Span:       entry.SurfaceForm,
		IssueKind:  rule.Kind,
		Suggestion: strings.Replace(rule.Suggestion, "%s", example, 1),
	}, true
}

// checkWordOrder flags a predicate that is followed by more content
// instead of closing the clause
func checkWordOrder(rule GrammarRule, text string, entry domain.VocabularyEntry) (Correction, bool) {
	surface := predicateSurface(entry)
	idx := strings.Index(text, surface)
	if idx < 0 {
		return Correction{}, false
	}

	rest := strings.TrimSpace(text[idx+len(surface):])
	rest = strings.TrimRight(rest, ".!?。！？")
	if rest == "" {
		return Correction{}, false
	}

	return Correction{
		Span:       surface,
		IssueKind:  rule.Kind,
		Suggestion: strings.Replace(rule.Suggestion, "%s", surface, 1),
	}, true
}

// checkHonorific flags a plain form where the entry is marked honorific
func checkHonorific(rule GrammarRule, text string, entry domain.VocabularyEntry) (Correction, bool) {
	if entry.Korean == nil || !entry.Korean.Honorific {
		return Correction{}, false
	}
	if entry.CanonicalForm == "" || entry.CanonicalForm == entry.SurfaceForm {
		return Correction{}, false
	}

	// Learner wrote the plain canonical form instead of the honorific surface
	if !strings.Contains(text, entry.CanonicalForm) || strings.Contains(text, entry.SurfaceForm) {
		return Correction{}, false
	}

	return Correction{
		Span:       entry.CanonicalForm,
		IssueKind:  rule.Kind,
		Suggestion: strings.Replace(rule.Suggestion, "%s", entry.SurfaceForm, 1),
	}, true
}

// checkConjugation uses the morphological analyzer to find the matched
// verb in the input and flags conjugation forms the rule lists
func (g *GrammarCorrector) checkConjugation(rule GrammarRule, text string, entry domain.VocabularyEntry) (Correction, bool) {
	if entry.Japanese == nil || g.ja == nil {
		return Correction{}, false
	}

	dictForm := entry.Japanese.DictionaryForm
	if dictForm == "" {
		dictForm = entry.SurfaceForm
	}

	tokens := g.ja.Analyze(text)
	for i, token := range tokens {
		if token.BaseForm != dictForm && token.Surface != dictForm {
			continue
		}
		// A polite auxiliary right after the verb stem means the
		// learner already conjugated correctly
		if i+1 < len(tokens) && strings.HasPrefix(tokens[i+1].Surface, "ま") {
			return Correction{}, false
		}
		for _, form := range rule.FlaggedForms {
			if token.ConjugationForm == form {
				return Correction{
					Span:       token.Surface,
					IssueKind:  rule.Kind,
					Suggestion: strings.Replace(rule.Suggestion, "%s", dictForm, 1),
				}, true
			}
		}
	}

	return Correction{}, false
}

func predicateSurface(entry domain.VocabularyEntry) string {
	if entry.Japanese != nil && entry.Japanese.DictionaryForm != "" {
		return entry.Japanese.DictionaryForm
	}
	return entry.SurfaceForm
}
