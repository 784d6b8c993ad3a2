package handler

import (
	"github.com/asliddin4/KoYaAsli/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles the /start command and the back-to-menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID
	h.logger.Info("User started bot", zap.Int64("user_id", userID))

	text := "👋 Welcome! I'm your Korean and Japanese tutor.\n\n" +
		"Just write to me in Korean or Japanese and I'll chat with you, " +
		"explain words and fix your grammar.\n\n" +
		"Commands:\n" +
		"/korean — practice Korean (TOPIK)\n" +
		"/japanese — practice Japanese (JLPT)\n" +
		"/test — take a proficiency test\n" +
		"/stats — your score and level\n" +
		"/top — leaderboard"

	if c.Callback() != nil {
		if err := c.Edit(text, mainMenuMarkup()); err != nil {
			return c.Send(text, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(text, mainMenuMarkup())
}

// handleKorean switches the active practice language to Korean
func (h *Handler) handleKorean(c tele.Context) error {
	return h.switchLanguage(c, "korean", "🇰🇷 Korean it is! Say 안녕하세요 to get started. Tests follow the TOPIK format.")
}

// handleJapanese switches the active practice language to Japanese
func (h *Handler) handleJapanese(c tele.Context) error {
	return h.switchLanguage(c, "japanese", "🇯🇵 Japanese it is! Say こんにちは to get started. Tests follow the JLPT format.")
}

func (h *Handler) switchLanguage(c tele.Context, lang, reply string) error {
	userID := c.Sender().ID
	h.setLanguage(userID, domain.Language(lang))
	h.logger.Info("User switched language",
		zap.Int64("user_id", userID),
		zap.String("language", lang),
	)

	if c.Callback() != nil {
		if err := c.Edit(reply); err != nil {
			return c.Send(reply)
		}
		return c.Respond()
	}
	return c.Send(reply)
}
