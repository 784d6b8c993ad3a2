// Package corpus holds the indexed vocabulary store. A built Corpus is
// immutable and safely shared across concurrent sessions; reloads swap a
// new snapshot through Store instead of mutating in place.
package corpus

import (
	"fmt"
	"math/rand"

	"github.com/asliddin4/KoYaAsli/internal/domain"
)

type tokenKey struct {
	lang  domain.Language
	token string
}

// Corpus is an immutable indexed set of vocabulary entries
type Corpus struct {
	entries []domain.VocabularyEntry
	byID    map[string]int
	// byToken maps exact (lowercased) tokens to entry indices in
	// insertion order; byNorm is the normalized/romanized secondary index
	byToken map[tokenKey][]int
	byNorm  map[tokenKey][]int
	byTier  map[domain.Language]map[domain.DifficultyTier][]int
}

// Build validates entries and constructs all indexes. Duplicate ids or
// malformed entries yield a LoadError; initialization must abort on it.
func Build(entries []domain.VocabularyEntry, tok *Tokenizer) (*Corpus, error) {
	c := &Corpus{
		entries: make([]domain.VocabularyEntry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
		byToken: make(map[tokenKey][]int),
		byNorm:  make(map[tokenKey][]int),
		byTier:  make(map[domain.Language]map[domain.DifficultyTier][]int),
	}

	for _, e := range entries {
		if e.ID == "" {
			return nil, domain.NewLoadError("entry with empty id (surface %q)", e.SurfaceForm)
		}
		if _, exists := c.byID[e.ID]; exists {
			return nil, domain.NewLoadError("duplicate entry id %q", e.ID)
		}
		if !e.Language.Valid() {
			return nil, domain.NewLoadError("entry %q has unknown language %q", e.ID, e.Language)
		}
		if e.SurfaceForm == "" || e.Translation == "" {
			return nil, domain.NewLoadError("entry %q missing surface form or translation", e.ID)
		}

		idx := len(c.entries)
		c.entries = append(c.entries, e)
		c.byID[e.ID] = idx
		c.indexEntry(idx, e, tok)

		if c.byTier[e.Language] == nil {
			c.byTier[e.Language] = make(map[domain.DifficultyTier][]int)
		}
		c.byTier[e.Language][e.Tier] = append(c.byTier[e.Language][e.Tier], idx)
	}

	return c, nil
}

func (c *Corpus) indexEntry(idx int, e domain.VocabularyEntry, tok *Tokenizer) {
	forms := []string{e.SurfaceForm}
	if e.CanonicalForm != "" && e.CanonicalForm != e.SurfaceForm {
		forms = append(forms, e.CanonicalForm)
	}
	if e.Japanese != nil && e.Japanese.DictionaryForm != "" {
		forms = append(forms, e.Japanese.DictionaryForm)
	}

	seen := make(map[tokenKey]bool)
	addExact := func(token string) {
		key := tokenKey{lang: e.Language, token: NormalizeToken(token)}
		if key.token == "" || seen[key] {
			return
		}
		seen[key] = true
		c.byToken[key] = append(c.byToken[key], idx)
	}
	addNorm := func(token string) {
		key := tokenKey{lang: e.Language, token: token}
		if key.token == "" || seen[key] {
			return
		}
		seen[key] = true
		c.byNorm[key] = append(c.byNorm[key], idx)
	}

	for _, form := range forms {
		addExact(form)
		for _, token := range tok.Tokenize(form, e.Language) {
			addExact(token)
		}
		// Romanized variants let latin-script queries hit native entries
		if e.Language == domain.LanguageKorean && ContainsHangul(form) {
			addNorm(NormalizeToken(RomanizeHangul(form)))
		}
	}
}

// Len returns the number of entries in the corpus
func (c *Corpus) Len() int {
	return len(c.entries)
}

// EntryByID looks up an entry by its stable id
func (c *Corpus) EntryByID(id string) (domain.VocabularyEntry, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.VocabularyEntry{}, false
	}
	return c.entries[idx], true
}

// InsertionIndex returns the load-order position of an entry,
// used as the final deterministic tie-breaker when scoring matches
func (c *Corpus) InsertionIndex(id string) int {
	if idx, ok := c.byID[id]; ok {
		return idx
	}
	return -1
}

// LookupToken returns candidate entries for a token, case-insensitively
// and tolerant of orthographic variants via the normalized index. The
// result keeps corpus insertion order and contains no duplicates.
func (c *Corpus) LookupToken(token string, lang domain.Language) []domain.VocabularyEntry {
	normalized := NormalizeToken(token)
	if normalized == "" {
		return nil
	}

	var indices []int
	indices = append(indices, c.byToken[tokenKey{lang: lang, token: normalized}]...)
	indices = append(indices, c.byNorm[tokenKey{lang: lang, token: normalized}]...)
	if ContainsHangul(token) {
		romanized := NormalizeToken(RomanizeHangul(token))
		indices = append(indices, c.byNorm[tokenKey{lang: lang, token: romanized}]...)
	}

	if len(indices) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(indices))
	var result []domain.VocabularyEntry
	for _, idx := range indices {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		result = append(result, c.entries[idx])
	}
	return result
}

// ByLanguage returns all entries of a language in insertion order
func (c *Corpus) ByLanguage(lang domain.Language) []domain.VocabularyEntry {
	var result []domain.VocabularyEntry
	for _, e := range c.entries {
		if e.Language == lang {
			result = append(result, e)
		}
	}
	return result
}

// SampleByDifficulty returns count distinct entries of exactly the
// requested tier, excluding the given ids. The optional rng shuffles the
// candidate order; with a nil rng the sample is insertion-ordered.
// Returns ErrInsufficientData when fewer than count entries qualify.
func (c *Corpus) SampleByDifficulty(
	lang domain.Language,
	tier domain.DifficultyTier,
	count int,
	excludeIDs map[string]bool,
	rng *rand.Rand,
) ([]domain.VocabularyEntry, error) {
	if count <= 0 {
		return nil, nil
	}

	var candidates []int
	for _, idx := range c.byTier[lang][tier] {
		if excludeIDs[c.entries[idx].ID] {
			continue
		}
		candidates = append(candidates, idx)
	}

	if len(candidates) < count {
		return nil, fmt.Errorf("%w: need %d %s %s entries, have %d",
			domain.ErrInsufficientData, count, lang, tier, len(candidates))
	}

	if rng != nil {
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	result := make([]domain.VocabularyEntry, 0, count)
	for _, idx := range candidates[:count] {
		result = append(result, c.entries[idx])
	}
	return result, nil
}
