package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes free-form messages through the conversation engine
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()
	lang := h.activeLanguage(userID)

	reply, err := h.tutor.HandleMessage(userID, lang, text)
	if err != nil {
		h.logger.Error("Failed to handle message",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send("Something went wrong. Please try again later.")
	}

	h.logger.Debug("Conversation turn",
		zap.Int64("user_id", userID),
		zap.String("language", string(lang)),
		zap.Bool("matched", reply.Matched),
	)

	return c.Send(reply.Text)
}
