package handler

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStats shows the user's score, level and activity counters
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	rec, err := h.rating.Proficiency(userID)
	if err != nil {
		h.logger.Error("Failed to load proficiency",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send("Something went wrong. Please try again later.")
	}

	text := fmt.Sprintf(
		"📊 Your progress\n\n⭐ Score: %d\n🎓 Level: %s\n💬 Conversation turns: %d\n📝 Tests taken: %d",
		rec.Score, rec.Level.String(), rec.ConversationActivityCount, rec.TestsTaken,
	)
	return c.Send(text)
}

// handleTop shows the leaderboard
func (h *Handler) handleTop(c tele.Context) error {
	entries, err := h.rating.Leaderboard(10)
	if err != nil {
		h.logger.Error("Failed to load leaderboard", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	if len(entries) == 0 {
		return c.Send("The leaderboard is empty so far. Be the first!")
	}

	var b strings.Builder
	b.WriteString("🏆 Leaderboard\n\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, entry := range entries {
		place := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			place = medals[i]
		}
		b.WriteString(fmt.Sprintf("%s User %d — %d points\n", place, entry.UserID, entry.Score))
	}
	return c.Send(b.String())
}

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}
