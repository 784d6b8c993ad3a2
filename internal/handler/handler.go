package handler

import (
	"sync"

	"github.com/asliddin4/KoYaAsli/internal/domain"
	"github.com/asliddin4/KoYaAsli/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	tutor      *service.TutorService
	assessment *service.AssessmentEngine
	rating     *service.RatingEngine
	logger     *zap.Logger

	// Active practice language per user (in-memory, defaults to Korean)
	languages   map[int64]domain.Language
	languageMux sync.RWMutex

	// Per-user locks so parallel answer taps don't race on one test
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	tutor *service.TutorService,
	assessment *service.AssessmentEngine,
	rating *service.RatingEngine,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		tutor:         tutor,
		assessment:    assessment,
		rating:        rating,
		logger:        logger,
		languages:     make(map[int64]domain.Language),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/korean", h.handleKorean)
	h.bot.Handle("/japanese", h.handleJapanese)
	h.bot.Handle("/test", h.handleTest)
	h.bot.Handle("/stats", h.handleStats)
	h.bot.Handle("/top", h.handleTop)

	// Text messages go through the conversation engine
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnKorean, h.handleKorean)
	h.bot.Handle(&btnJapanese, h.handleJapanese)
	h.bot.Handle(&btnStartTest, h.handleTest)

	// Generic callback handler for dynamic data (test answers)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// RatingChanged implements service.RatingNotifier: congratulate the
// user when a score change crosses a level boundary
func (h *Handler) RatingChanged(userID int64, oldScore, newScore int) {
	oldLevel := h.rating.LevelOf(oldScore)
	newLevel := h.rating.LevelOf(newScore)
	if newLevel == oldLevel {
		return
	}

	_, err := h.bot.Send(
		&tele.User{ID: userID},
		"🎉 Level up! You are now "+newLevel.String()+"!",
	)
	if err != nil {
		h.logger.Warn("Failed to send level up message",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// activeLanguage returns the user's selected practice language
func (h *Handler) activeLanguage(userID int64) domain.Language {
	h.languageMux.RLock()
	defer h.languageMux.RUnlock()

	lang, exists := h.languages[userID]
	if !exists {
		return domain.LanguageKorean
	}
	return lang
}

// setLanguage stores the user's practice language choice
func (h *Handler) setLanguage(userID int64, lang domain.Language) {
	h.languageMux.Lock()
	defer h.languageMux.Unlock()
	h.languages[userID] = lang
}

// userLock serializes callback processing per user
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// Inline keyboard buttons
var (
	btnKorean = tele.Btn{
		Unique: "lang_korean",
		Text:   "🇰🇷 Korean",
	}
	btnJapanese = tele.Btn{
		Unique: "lang_japanese",
		Text:   "🇯🇵 Japanese",
	}
	btnStartTest = tele.Btn{
		Unique: "start_test",
		Text:   "📝 Take a test",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnKorean, btnJapanese),
		menu.Row(btnStartTest),
	)
	return menu
}
