package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/asliddin4/KoYaAsli/internal/domain"
)

// ContextRepo implements repository.ContextRepository
type ContextRepo struct {
	db *sql.DB
}

// NewContextRepo creates a new conversation context repository
func NewContextRepo(db *sql.DB) *ContextRepo {
	return &ContextRepo{db: db}
}

// GetContext loads the conversation context for a user and language
func (r *ContextRepo) GetContext(userID int64, lang domain.Language) (*domain.ConversationContext, error) {
	query := `
		SELECT last_entry_id, turn_count, recent_intents, updated_at
		FROM conversation_contexts
		WHERE user_id = $1 AND language = $2
	`

	ctx := &domain.ConversationContext{UserID: userID, Language: lang}
	var (
		lastEntryID sql.NullString
		intentsJSON []byte
	)
	err := r.db.QueryRow(query, userID, string(lang)).Scan(
		&lastEntryID, &ctx.TurnCount, &intentsJSON, &ctx.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ctx.LastMatchedEntryID = lastEntryID.String
	if len(intentsJSON) > 0 {
		if err := json.Unmarshal(intentsJSON, &ctx.RecentIntents); err != nil {
			return nil, fmt.Errorf("user %d: invalid intent history: %w", userID, err)
		}
	}

	return ctx, nil
}

// SaveContext upserts the conversation context
func (r *ContextRepo) SaveContext(ctx *domain.ConversationContext) error {
	intentsJSON, err := json.Marshal(ctx.RecentIntents)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO conversation_contexts (user_id, language, last_entry_id, turn_count, recent_intents, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, language)
		DO UPDATE SET last_entry_id = $3, turn_count = $4, recent_intents = $5, updated_at = NOW()
	`
	_, err = r.db.Exec(query, ctx.UserID, string(ctx.Language), ctx.LastMatchedEntryID, ctx.TurnCount, intentsJSON)
	return err
}
