package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/asliddin4/KoYaAsli/internal/domain"
)

// VocabularyRepo implements repository.VocabularyRepository
type VocabularyRepo struct {
	db *sql.DB
}

// NewVocabularyRepo creates a new vocabulary repository
func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// LoadEntries reads all vocabulary rows in insertion order.
// The position column fixes the order the corpus uses for tie-breaking.
func (r *VocabularyRepo) LoadEntries() ([]domain.VocabularyEntry, error) {
	query := `
		SELECT id, language, surface_form, canonical_form, translation,
			part_of_speech, tier, usage_examples, cultural_note,
			korean_particles, honorific, dictionary_form, conjugation_group
		FROM vocabulary
		ORDER BY position
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.VocabularyEntry
	for rows.Next() {
		var (
			e            domain.VocabularyEntry
			examplesJSON []byte
			culturalNote sql.NullString
			particles    sql.NullString
			honorific    sql.NullBool
			dictForm     sql.NullString
			conjGroup    sql.NullString
		)

		if err := rows.Scan(
			&e.ID, &e.Language, &e.SurfaceForm, &e.CanonicalForm, &e.Translation,
			&e.PartOfSpeech, &e.Tier, &examplesJSON, &culturalNote,
			&particles, &honorific, &dictForm, &conjGroup,
		); err != nil {
			return nil, err
		}

		if len(examplesJSON) > 0 {
			if err := json.Unmarshal(examplesJSON, &e.UsageExamples); err != nil {
				return nil, fmt.Errorf("entry %s: invalid usage examples: %w", e.ID, err)
			}
		}
		e.CulturalNote = culturalNote.String

		switch e.Language {
		case domain.LanguageKorean:
			details := &domain.KoreanDetails{Honorific: honorific.Bool}
			if particles.Valid && particles.String != "" {
				if err := json.Unmarshal([]byte(particles.String), &details.ExpectedParticles); err != nil {
					return nil, fmt.Errorf("entry %s: invalid particle list: %w", e.ID, err)
				}
			}
			e.Korean = details
		case domain.LanguageJapanese:
			e.Japanese = &domain.JapaneseDetails{
				DictionaryForm:   dictForm.String,
				ConjugationGroup: conjGroup.String,
			}
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
