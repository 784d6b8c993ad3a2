package postgres

import (
	"testing"
	"time"

	"github.com/asliddin4/KoYaAsli/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProficiencyRepo_GetProficiency(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		userID      int64
		mockRows    *sqlmock.Rows
		expectedNil bool
	}{
		{
			name:   "existing user",
			userID: 123,
			mockRows: sqlmock.NewRows([]string{
				"user_id", "score", "level", "conversation_activity", "tests_taken", "score_updated_at",
			}).AddRow(int64(123), 350, 1, 12, 3, now),
			expectedNil: false,
		},
		{
			name:        "unknown user returns nil without error",
			userID:      456,
			mockRows:    sqlmock.NewRows([]string{"user_id", "score", "level", "conversation_activity", "tests_taken", "score_updated_at"}),
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewProficiencyRepo(db)

			mock.ExpectQuery("SELECT user_id, score, level, conversation_activity, tests_taken, score_updated_at").
				WithArgs(tt.userID).
				WillReturnRows(tt.mockRows)

			rec, err := repo.GetProficiency(tt.userID)
			assert.NoError(t, err)

			if tt.expectedNil {
				assert.Nil(t, rec)
			} else {
				assert.Equal(t, int64(123), rec.UserID)
				assert.Equal(t, 350, rec.Score)
				assert.Equal(t, domain.LevelIntermediate, rec.Level)
				assert.Equal(t, 12, rec.ConversationActivityCount)
				assert.Equal(t, 3, rec.TestsTaken)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProficiencyRepo_SaveProficiency(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProficiencyRepo(db)

	rec := &domain.ProficiencyRecord{
		UserID:                    123,
		Score:                     310,
		Level:                     domain.LevelIntermediate,
		ConversationActivityCount: 5,
		TestsTaken:                2,
	}

	mock.ExpectExec("INSERT INTO proficiency").
		WithArgs(rec.UserID, rec.Score, rec.Level, rec.ConversationActivityCount, rec.TestsTaken).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SaveProficiency(rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProficiencyRepo_EnsureUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProficiencyRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO proficiency").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.EnsureUserExists(123)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProficiencyRepo_Leaderboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProficiencyRepo(db)

	rows := sqlmock.NewRows([]string{"user_id", "score"}).
		AddRow(int64(1), 900).
		AddRow(int64(2), 450).
		AddRow(int64(3), 450)

	mock.ExpectQuery("SELECT user_id, score").
		WithArgs(3).
		WillReturnRows(rows)

	entries, err := repo.Leaderboard(3)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, int64(1), entries[0].UserID)
	assert.Equal(t, 900, entries[0].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}
