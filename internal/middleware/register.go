package middleware

import (
	"github.com/asliddin4/KoYaAsli/internal/repository"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RegisterMiddleware makes sure every sender has user and proficiency
// rows before any handler runs
func RegisterMiddleware(users repository.ProficiencyRepository, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if err := users.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			return next(c)
		}
	}
}
