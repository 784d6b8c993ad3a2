package corpus

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/asliddin4/KoYaAsli/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func koreanEntry(id, surface, translation string, tier domain.DifficultyTier) domain.VocabularyEntry {
	return domain.VocabularyEntry{
		ID:           id,
		Language:     domain.LanguageKorean,
		SurfaceForm:  surface,
		Translation:  translation,
		PartOfSpeech: domain.POSNoun,
		Tier:         tier,
		Korean:       &domain.KoreanDetails{},
	}
}

func TestBuild_Validation(t *testing.T) {
	tok := NewTokenizer(nil)

	tests := []struct {
		name    string
		entries []domain.VocabularyEntry
	}{
		{
			name: "empty id",
			entries: []domain.VocabularyEntry{
				koreanEntry("", "안녕", "hello", domain.TierBeginner),
			},
		},
		{
			name: "duplicate id",
			entries: []domain.VocabularyEntry{
				koreanEntry("ko-1", "안녕", "hello", domain.TierBeginner),
				koreanEntry("ko-1", "물", "water", domain.TierBeginner),
			},
		},
		{
			name: "unknown language",
			entries: []domain.VocabularyEntry{
				{ID: "x-1", Language: "english", SurfaceForm: "hi", Translation: "hi"},
			},
		},
		{
			name: "missing translation",
			entries: []domain.VocabularyEntry{
				{ID: "ko-1", Language: domain.LanguageKorean, SurfaceForm: "안녕"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.entries, tok)
			require.Error(t, err)

			var loadErr *domain.LoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func TestCorpus_LookupToken(t *testing.T) {
	tok := NewTokenizer(nil)
	c, err := Build([]domain.VocabularyEntry{
		koreanEntry("ko-1", "안녕", "hello", domain.TierBeginner),
		koreanEntry("ko-2", "물", "water", domain.TierBeginner),
	}, tok)
	require.NoError(t, err)

	// Every entry is findable by its own surface form
	results := c.LookupToken("안녕", domain.LanguageKorean)
	require.Len(t, results, 1)
	assert.Equal(t, "ko-1", results[0].ID)

	// Romanized latin query hits the native entry
	results = c.LookupToken("annyeong", domain.LanguageKorean)
	require.Len(t, results, 1)
	assert.Equal(t, "ko-1", results[0].ID)

	// Unknown token yields nothing
	assert.Empty(t, c.LookupToken("감사", domain.LanguageKorean))

	// Language is part of the key
	assert.Empty(t, c.LookupToken("안녕", domain.LanguageJapanese))
}

func TestCorpus_LookupTokenJapaneseDictionaryForm(t *testing.T) {
	tok := NewTokenizer(nil)
	c, err := Build([]domain.VocabularyEntry{
		{
			ID:           "ja-1",
			Language:     domain.LanguageJapanese,
			SurfaceForm:  "食べます",
			Translation:  "to eat",
			PartOfSpeech: domain.POSVerb,
			Tier:         domain.TierBeginner,
			Japanese:     &domain.JapaneseDetails{DictionaryForm: "食べる"},
		},
	}, tok)
	require.NoError(t, err)

	results := c.LookupToken("食べる", domain.LanguageJapanese)
	require.Len(t, results, 1)
	assert.Equal(t, "ja-1", results[0].ID)
}

func TestCorpus_SampleByDifficulty(t *testing.T) {
	tok := NewTokenizer(nil)
	c, err := Build([]domain.VocabularyEntry{
		koreanEntry("ko-1", "안녕", "hello", domain.TierBeginner),
		koreanEntry("ko-2", "물", "water", domain.TierBeginner),
		koreanEntry("ko-3", "감사", "thanks", domain.TierBeginner),
		koreanEntry("ko-4", "경제", "economy", domain.TierAdvanced),
	}, tok)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	sample, err := c.SampleByDifficulty(domain.LanguageKorean, domain.TierBeginner, 2, nil, rng)
	require.NoError(t, err)
	require.Len(t, sample, 2)

	seen := map[string]bool{}
	for _, e := range sample {
		// Exactly the requested tier, no duplicates
		assert.Equal(t, domain.TierBeginner, e.Tier)
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}

func TestCorpus_SampleByDifficultyExcludes(t *testing.T) {
	tok := NewTokenizer(nil)
	c, err := Build([]domain.VocabularyEntry{
		koreanEntry("ko-1", "안녕", "hello", domain.TierBeginner),
		koreanEntry("ko-2", "물", "water", domain.TierBeginner),
	}, tok)
	require.NoError(t, err)

	sample, err := c.SampleByDifficulty(
		domain.LanguageKorean, domain.TierBeginner, 1,
		map[string]bool{"ko-1": true}, nil,
	)
	require.NoError(t, err)
	require.Len(t, sample, 1)
	assert.Equal(t, "ko-2", sample[0].ID)
}

func TestCorpus_SampleByDifficultyInsufficient(t *testing.T) {
	tok := NewTokenizer(nil)
	c, err := Build([]domain.VocabularyEntry{
		koreanEntry("ko-1", "안녕", "hello", domain.TierBeginner),
	}, tok)
	require.NoError(t, err)

	_, err = c.SampleByDifficulty(domain.LanguageKorean, domain.TierBeginner, 5, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))

	// A tier with no entries at all fails the same way
	_, err = c.SampleByDifficulty(domain.LanguageKorean, domain.TierIntermediate, 1, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrInsufficientData))
}
