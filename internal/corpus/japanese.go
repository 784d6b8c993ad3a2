package corpus

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// JapaneseToken is one morpheme produced by the analyzer
type JapaneseToken struct {
	Surface string
	// BaseForm is the dictionary form (e.g. 行っ -> 行く)
	BaseForm string
	// ConjugationForm is the IPA dictionary conjugation form label
	// (e.g. 連用タ接続), "*" or empty when not applicable
	ConjugationForm string
	// POS is the primary part-of-speech label (e.g. 動詞)
	POS string
}

// JapaneseAnalyzer wraps the kagome morphological analyzer with the IPA
// dictionary. Safe for concurrent use after construction.
type JapaneseAnalyzer struct {
	t *tokenizer.Tokenizer
}

// NewJapaneseAnalyzer loads the IPA dictionary and builds an analyzer
func NewJapaneseAnalyzer() (*JapaneseAnalyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &JapaneseAnalyzer{t: t}, nil
}

// IPA dictionary feature layout:
// 0 part of speech, 4 conjugation type, 5 conjugation form, 6 base form.
const (
	featureConjForm = 5
	featureBaseForm = 6
)

// Analyze segments Japanese text into morphemes with base forms
func (a *JapaneseAnalyzer) Analyze(text string) []JapaneseToken {
	if a == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	var result []JapaneseToken
	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}

		features := token.Features()

		base := token.Surface
		if len(features) > featureBaseForm && features[featureBaseForm] != "*" {
			base = features[featureBaseForm]
		}

		conjForm := ""
		if len(features) > featureConjForm && features[featureConjForm] != "*" {
			conjForm = features[featureConjForm]
		}

		pos := ""
		if len(features) > 0 {
			pos = features[0]
		}

		result = append(result, JapaneseToken{
			Surface:         token.Surface,
			BaseForm:        base,
			ConjugationForm: conjForm,
			POS:             pos,
		})
	}

	return result
}
