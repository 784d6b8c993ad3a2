package corpus

import (
	"testing"

	"github.com/asliddin4/KoYaAsli/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTokenizer_KoreanInput(t *testing.T) {
	tok := NewTokenizer(nil)

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single word",
			input:    "안녕하세요",
			expected: []string{"안녕하세요"},
		},
		{
			name:     "punctuation separates",
			input:    "안녕하세요!",
			expected: []string{"안녕하세요"},
		},
		{
			name:     "spaces separate words",
			input:    "물 주세요",
			expected: []string{"물", "주세요"},
		},
		{
			name:     "mixed scripts split",
			input:    "hello 안녕",
			expected: []string{"hello", "안녕"},
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tok.Tokenize(tt.input, domain.LanguageKorean))
		})
	}
}

func TestTokenizer_JapaneseFallback(t *testing.T) {
	// Without an analyzer, Japanese input degrades to script runs
	tok := NewTokenizer(nil)

	tokens := tok.Tokenize("こんにちは!", domain.LanguageJapanese)
	assert.Equal(t, []string{"こんにちは"}, tokens)

	// Kana and kanji runs split at the script boundary
	tokens = tok.Tokenize("水を飲む", domain.LanguageJapanese)
	assert.Equal(t, []string{"水", "を", "飲", "む"}, tokens)
}
