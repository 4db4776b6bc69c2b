package service

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"quizbot/internal/corpus"
	"quizbot/internal/domain"
	"quizbot/internal/repository"
)

// QuizService drives the question → answer → next question cycle. It owns the
// loaded corpus and the session repository; transports only translate chat
// events into calls on it.
type QuizService struct {
	corpus   *corpus.Corpus
	sessions repository.SessionRepository
	logger   *zap.Logger

	// pick returns a random index in [0, n); injected for deterministic tests
	pick func(n int) int
}

// NewQuizService creates a quiz service with time-seeded random selection.
func NewQuizService(c *corpus.Corpus, sessions repository.SessionRepository, logger *zap.Logger) *QuizService {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewQuizServiceWithPicker(c, sessions, logger, rnd.Intn)
}

// NewQuizServiceWithPicker allows tests to control question selection.
func NewQuizServiceWithPicker(c *corpus.Corpus, sessions repository.SessionRepository, logger *zap.Logger, pick func(n int) int) *QuizService {
	return &QuizService{
		corpus:   c,
		sessions: sessions,
		logger:   logger,
		pick:     pick,
	}
}

// NewQuestion assigns a uniformly random question to the user and returns its
// display text. Any previously assigned question is replaced.
func (s *QuizService) NewQuestion(ctx context.Context, userID string) (string, error) {
	if s.corpus.Len() == 0 {
		return "", domain.ErrCorpusEmpty
	}

	question := s.corpus.Question(s.pick(s.corpus.Len()))
	if err := s.sessions.Set(ctx, userID, question); err != nil {
		return "", err
	}

	s.logger.Info("Question assigned", zap.String("user_id", userID))
	return question, nil
}

// CheckAnswer compares the user's text against the canonical answer of their
// current question. A correct answer ends the session; a wrong one keeps the
// question assigned so the user can retry.
func (s *QuizService) CheckAnswer(ctx context.Context, userID, text string) (domain.AnswerResult, error) {
	record, err := s.currentAnswer(ctx, userID)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	if corpus.Submission(text) != corpus.Canonical(record) {
		return domain.AnswerResult{Correct: false, CorrectAnswer: corpus.Reveal(record)}, nil
	}

	// Clear the session so the answered question is never re-served.
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear session after correct answer",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	return domain.AnswerResult{Correct: true}, nil
}

// Surrender reveals the correct answer for the user's current question and
// immediately assigns a new one.
func (s *QuizService) Surrender(ctx context.Context, userID string) (domain.SurrenderResult, error) {
	record, err := s.currentAnswer(ctx, userID)
	if err != nil {
		return domain.SurrenderResult{}, err
	}

	next, err := s.NewQuestion(ctx, userID)
	if err != nil {
		return domain.SurrenderResult{}, err
	}

	return domain.SurrenderResult{
		CorrectAnswer: corpus.Reveal(record),
		NextQuestion:  next,
	}, nil
}

// Cancel drops the user's session entry from the backing store entirely.
func (s *QuizService) Cancel(ctx context.Context, userID string) error {
	return s.sessions.Delete(ctx, userID)
}

// currentAnswer returns the raw answer record for the user's assigned
// question. A stored question missing from the corpus (stale entry from an
// older corpus file) is treated as no session and cleaned up.
func (s *QuizService) currentAnswer(ctx context.Context, userID string) (string, error) {
	question, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	record, ok := s.corpus.Answer(question)
	if !ok {
		s.logger.Warn("Stored question not found in corpus, dropping session",
			zap.String("user_id", userID),
		)
		if err := s.sessions.Delete(ctx, userID); err != nil {
			s.logger.Warn("Failed to drop stale session", zap.Error(err))
		}
		return "", domain.ErrNoActiveSession
	}
	return record, nil
}
