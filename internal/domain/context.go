package domain

import "time"

// Intent is a coarse classification of a learner utterance
type Intent string

const (
	IntentGreeting          Intent = "greeting"
	IntentQuestion          Intent = "question"
	IntentStatement         Intent = "statement"
	IntentCorrectionRequest Intent = "correction_request"
)

// MaxRecentIntents bounds the intent history kept per conversation
const MaxRecentIntents = 5

// ConversationContext is the per-user conversational state for one language.
// Created on the first message, mutated every turn.
type ConversationContext struct {
	UserID             int64
	Language           Language
	LastMatchedEntryID string
	TurnCount          int
	// RecentIntents is most-recent-last and capped at MaxRecentIntents
	RecentIntents []Intent
	UpdatedAt     time.Time
}

// NewConversationContext returns a fresh context for a user and language
func NewConversationContext(userID int64, lang Language) *ConversationContext {
	return &ConversationContext{
		UserID:   userID,
		Language: lang,
	}
}

// PushIntent appends an intent, evicting the oldest when the cap is reached
func (c *ConversationContext) PushIntent(intent Intent) {
	c.RecentIntents = append(c.RecentIntents, intent)
	if len(c.RecentIntents) > MaxRecentIntents {
		c.RecentIntents = c.RecentIntents[len(c.RecentIntents)-MaxRecentIntents:]
	}
}

// HasRecentIntent reports whether the intent appears in the recent history
func (c *ConversationContext) HasRecentIntent(intent Intent) bool {
	for _, i := range c.RecentIntents {
		if i == intent {
			return true
		}
	}
	return false
}

// LastIntent returns the most recent intent, or empty string when none
func (c *ConversationContext) LastIntent() Intent {
	if len(c.RecentIntents) == 0 {
		return ""
	}
	return c.RecentIntents[len(c.RecentIntents)-1]
}
