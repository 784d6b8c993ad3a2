package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/asliddin4/KoYaAsli/internal/domain"
)

// TestRepo implements repository.TestRepository
type TestRepo struct {
	db *sql.DB
}

// NewTestRepo creates a new test instance repository
func NewTestRepo(db *sql.DB) *TestRepo {
	return &TestRepo{db: db}
}

// SaveTest upserts a test instance. Questions, answers and the final
// report are stored as JSON documents; the engine owns their shape.
func (r *TestRepo) SaveTest(t *domain.TestInstance) error {
	questionsJSON, err := json.Marshal(t.Questions)
	if err != nil {
		return err
	}
	answersJSON, err := json.Marshal(t.Answers)
	if err != nil {
		return err
	}
	var reportJSON []byte
	if t.Report != nil {
		reportJSON, err = json.Marshal(t.Report)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO test_instances (id, user_id, exam_type, questions, answers, state, started_at, expires_at, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id)
		DO UPDATE SET answers = $5, state = $6, report = $9
	`
	_, err = r.db.Exec(query,
		t.ID, t.UserID, string(t.ExamType), questionsJSON, answersJSON,
		string(t.State), t.StartedAt, t.ExpiresAt, reportJSON,
	)
	return err
}

// GetTest loads a test instance by id
func (r *TestRepo) GetTest(testID string) (*domain.TestInstance, error) {
	query := `
		SELECT id, user_id, exam_type, questions, answers, state, started_at, expires_at, report
		FROM test_instances
		WHERE id = $1
	`

	var (
		t             domain.TestInstance
		questionsJSON []byte
		answersJSON   []byte
		reportJSON    []byte
	)
	err := r.db.QueryRow(query, testID).Scan(
		&t.ID, &t.UserID, &t.ExamType, &questionsJSON, &answersJSON,
		&t.State, &t.StartedAt, &t.ExpiresAt, &reportJSON,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questionsJSON, &t.Questions); err != nil {
		return nil, fmt.Errorf("test %s: invalid questions: %w", testID, err)
	}
	t.Answers = make(map[int]int)
	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &t.Answers); err != nil {
			return nil, fmt.Errorf("test %s: invalid answers: %w", testID, err)
		}
	}
	if len(reportJSON) > 0 {
		t.Report = &domain.ScoreReport{}
		if err := json.Unmarshal(reportJSON, t.Report); err != nil {
			return nil, fmt.Errorf("test %s: invalid report: %w", testID, err)
		}
	}

	return &t, nil
}
