package service

import (
	"fmt"
	"sync"

	"github.com/asliddin4/KoYaAsli/internal/domain"
	"github.com/asliddin4/KoYaAsli/internal/repository"

	"go.uber.org/zap"
)

// TutorReply is everything the handler needs to answer one message
type TutorReply struct {
	Text        string
	Matched     bool
	Corrections []Correction
}

// TutorService runs the full conversation turn: match, correct,
// compose, persist context and award activity points. Turns for the
// same user are serialized; different users proceed in parallel.
type TutorService struct {
	match    *MatchEngine
	grammar  *GrammarCorrector
	composer *ResponseComposer
	rating   *RatingEngine
	contexts repository.ContextRepository
	logger   *zap.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewTutorService creates a new tutor service
func NewTutorService(
	match *MatchEngine,
	grammar *GrammarCorrector,
	composer *ResponseComposer,
	rating *RatingEngine,
	contexts repository.ContextRepository,
	logger *zap.Logger,
) *TutorService {
	return &TutorService{
		match:    match,
		grammar:  grammar,
		composer: composer,
		rating:   rating,
		contexts: contexts,
		logger:   logger,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// HandleMessage processes one learner message and returns the reply.
// A lost or unreadable conversation context is replaced with a fresh
// one instead of failing the turn.
func (s *TutorService) HandleMessage(userID int64, lang domain.Language, text string) (*TutorReply, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("unsupported language %q: %w", lang, domain.ErrInvalidState)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, err := s.contexts.GetContext(userID, lang)
	if err != nil {
		s.logger.Warn("context load failed, starting fresh",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		ctx = nil
	}
	if ctx == nil {
		ctx = domain.NewConversationContext(userID, lang)
	}

	level := domain.LevelBeginner
	if rec, err := s.rating.Proficiency(userID); err == nil {
		level = rec.Level
	} else {
		s.logger.Warn("proficiency load failed, assuming beginner",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	result := s.match.Match(text, lang, ctx, level)
	corrections := s.grammar.Check(text, result, lang)
	reply := s.composer.Compose(result, corrections, ctx)

	if err := s.contexts.SaveContext(ctx); err != nil {
		s.logger.Error("context save failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	if result.Matched {
		if err := s.rating.RecordConversationTurn(userID); err != nil {
			s.logger.Error("activity points failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return &TutorReply{Text: reply, Matched: result.Matched, Corrections: corrections}, nil
}

func (s *TutorService) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}
