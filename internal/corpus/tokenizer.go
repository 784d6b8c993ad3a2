package corpus

import (
	"strings"
	"unicode"

	"github.com/asliddin4/KoYaAsli/internal/domain"
)

// Tokenizer splits learner input into lookup tokens. For Japanese it uses
// the morphological analyzer (so conjugated input still yields dictionary
// forms); for Korean and mixed input it falls back to script-aware rune
// scanning.
type Tokenizer struct {
	ja *JapaneseAnalyzer
}

// NewTokenizer builds a tokenizer. The analyzer may be nil, in which case
// Japanese input degrades to rune scanning.
func NewTokenizer(ja *JapaneseAnalyzer) *Tokenizer {
	return &Tokenizer{ja: ja}
}

// Tokenize returns the tokens of text for the given language, in input
// order. Japanese tokens include both the surface and the base form when
// they differ, so either can hit the index.
func (t *Tokenizer) Tokenize(text string, lang domain.Language) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if lang == domain.LanguageJapanese && t != nil && t.ja != nil {
		var tokens []string
		for _, jt := range t.ja.Analyze(text) {
			tokens = append(tokens, jt.Surface)
			if jt.BaseForm != jt.Surface {
				tokens = append(tokens, jt.BaseForm)
			}
		}
		if len(tokens) > 0 {
			return tokens
		}
	}

	return scanTokens(text)
}

// scanTokens is the script-aware fallback: contiguous letter runs of the
// same script class form one token; everything else separates.
func scanTokens(text string) []string {
	var tokens []string
	var current strings.Builder
	var currentClass scriptClass

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			currentClass = scriptNone
			continue
		}
		class := classify(r)
		if class != currentClass {
			flush()
			currentClass = class
		}
		current.WriteRune(r)
	}
	flush()

	return tokens
}

type scriptClass int

const (
	scriptNone scriptClass = iota
	scriptHangul
	scriptKana
	scriptHan
	scriptOther
)

func classify(r rune) scriptClass {
	switch {
	case unicode.Is(unicode.Hangul, r):
		return scriptHangul
	case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
		return scriptKana
	case unicode.Is(unicode.Han, r):
		return scriptHan
	default:
		return scriptOther
	}
}
