package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/asliddin4/KoYaAsli/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleTest starts a proficiency test in the user's active language
func (h *Handler) handleTest(c tele.Context) error {
	userID := c.Sender().ID
	lang := h.activeLanguage(userID)
	examType := lang.ExamFor()

	test, err := h.assessment.Generate(userID, examType)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			h.logger.Warn("Not enough vocabulary for test",
				zap.Int64("user_id", userID),
				zap.String("exam_type", string(examType)),
			)
			return c.Send("Not enough material for a full test yet. Try again after the vocabulary is updated!")
		}
		h.logger.Error("Failed to generate test",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send("Something went wrong. Please try again later.")
	}

	intro := fmt.Sprintf(
		"📝 %s practice test: %d questions, %d minutes.\n\nGood luck!",
		examType, len(test.Questions), int(test.ExpiresAt.Sub(test.StartedAt).Minutes()),
	)
	if err := c.Send(intro); err != nil {
		return err
	}

	return h.sendQuestion(c, test, 0)
}

// sendQuestion renders one question with its answer buttons
func (h *Handler) sendQuestion(c tele.Context, test *domain.TestInstance, index int) error {
	q := test.Questions[index]

	text := fmt.Sprintf("Question %d/%d\n\n%s", index+1, len(test.Questions), q.Prompt)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for i, choice := range q.Choices {
		data := fmt.Sprintf("ans_%s_%d_%d", test.ID, index, i)
		rows = append(rows, markup.Row(markup.Data(choice, data)))
	}
	markup.Inline(rows...)

	return c.Send(text, markup)
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)

	// Buttons whose Unique didn't come through
	if callback.Unique == "" {
		switch data {
		case "lang_korean":
			return h.handleKorean(c)
		case "lang_japanese":
			return h.handleJapanese(c)
		case "start_test":
			return h.handleTest(c)
		}
	}

	if strings.HasPrefix(data, "ans_") {
		return h.handleAnswer(c, data)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleAnswer records one answer tap. Data format: ans_<testID>_<question>_<choice>
func (h *Handler) handleAnswer(c tele.Context, data string) error {
	userID := c.Sender().ID

	// Serialize answer taps per user so a double tap can't race
	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	parts := strings.Split(strings.TrimPrefix(data, "ans_"), "_")
	if len(parts) != 3 {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid answer"})
	}
	testID := parts[0]
	questionIndex, err := strconv.Atoi(parts[1])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid answer"})
	}
	choiceIndex, err := strconv.Atoi(parts[2])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid answer"})
	}

	if err := h.assessment.SubmitAnswer(testID, questionIndex, choiceIndex); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Respond(&tele.CallbackResponse{
				Text:      "This test is over. Start a new one with /test",
				ShowAlert: true,
			})
		}
		h.logger.Error("Failed to submit answer",
			zap.Int64("user_id", userID),
			zap.String("test_id", testID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong"})
	}

	test, err := h.assessment.GetTest(testID)
	if err != nil {
		h.logger.Error("Failed to load test",
			zap.String("test_id", testID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Something went wrong"})
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "Answer saved"}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	// All questions answered: score and report
	if test.Answered() == len(test.Questions) {
		return h.finishTest(c, test)
	}

	// Send the next unanswered question
	for i := range test.Questions {
		if _, answered := test.Answers[i]; !answered {
			return h.sendQuestion(c, test, i)
		}
	}
	return nil
}

// finishTest finalizes the test and sends the score report
func (h *Handler) finishTest(c tele.Context, test *domain.TestInstance) error {
	report, err := h.assessment.Finalize(test.ID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Send("This test has expired. Start a new one with /test")
		}
		h.logger.Error("Failed to finalize test",
			zap.String("test_id", test.ID),
			zap.Error(err),
		)
		return c.Send("Something went wrong. Please try again later.")
	}

	verdict := "❌ Not passed this time. Keep practicing!"
	if report.Passed {
		verdict = "✅ Passed! Great work!"
	}

	text := fmt.Sprintf(
		"🏁 %s test finished!\n\nCorrect: %d/%d\n%s\n\n⭐ Points earned: %d",
		test.ExamType, report.CorrectCount, report.Total, verdict, report.ScoreDelta,
	)
	return c.Send(text)
}
