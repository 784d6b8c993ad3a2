package postgres

import (
	"database/sql"

	"github.com/asliddin4/KoYaAsli/internal/domain"
)

// ProficiencyRepo implements repository.ProficiencyRepository
type ProficiencyRepo struct {
	db *sql.DB
}

// NewProficiencyRepo creates a new proficiency repository
func NewProficiencyRepo(db *sql.DB) *ProficiencyRepo {
	return &ProficiencyRepo{db: db}
}

// EnsureUserExists creates user and proficiency rows if missing and
// bumps the last-activity timestamp
func (r *ProficiencyRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET last_activity = NOW()
	`
	if _, err := r.db.Exec(query, userID); err != nil {
		return err
	}

	query = `
		INSERT INTO proficiency (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// GetProficiency returns the user's rating record
func (r *ProficiencyRepo) GetProficiency(userID int64) (*domain.ProficiencyRecord, error) {
	query := `
		SELECT user_id, score, level, conversation_activity, tests_taken, score_updated_at
		FROM proficiency
		WHERE user_id = $1
	`

	var rec domain.ProficiencyRecord
	err := r.db.QueryRow(query, userID).Scan(
		&rec.UserID, &rec.Score, &rec.Level,
		&rec.ConversationActivityCount, &rec.TestsTaken, &rec.ScoreUpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// SaveProficiency upserts the rating record. score_updated_at moves only
// when the score changed, which keeps leaderboard ties ordered by who
// reached the score first.
func (r *ProficiencyRepo) SaveProficiency(rec *domain.ProficiencyRecord) error {
	query := `
		INSERT INTO proficiency (user_id, score, level, conversation_activity, tests_taken, score_updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			score = $2,
			level = $3,
			conversation_activity = $4,
			tests_taken = $5,
			score_updated_at = CASE
				WHEN proficiency.score <> $2 THEN NOW()
				ELSE proficiency.score_updated_at
			END
	`
	_, err := r.db.Exec(query, rec.UserID, rec.Score, rec.Level, rec.ConversationActivityCount, rec.TestsTaken)
	return err
}

// RecordTestSummary appends a completed test to the user's history
func (r *ProficiencyRepo) RecordTestSummary(summary domain.TestSummary) error {
	query := `
		INSERT INTO test_attempts (test_id, user_id, exam_type, correct_count, total, passed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (test_id) DO NOTHING
	`
	_, err := r.db.Exec(query,
		summary.TestID, summary.UserID, string(summary.ExamType),
		summary.CorrectCount, summary.Total, summary.Passed, summary.CompletedAt,
	)
	return err
}

// Leaderboard returns the top users by score, ties broken by who
// reached the score earliest
func (r *ProficiencyRepo) Leaderboard(topN int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id, score
		FROM proficiency
		WHERE score > 0
		ORDER BY score DESC, score_updated_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(query, topN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Score); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
