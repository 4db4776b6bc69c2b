package vk

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"quizbot/internal/domain"
	"quizbot/internal/service"
)

// User-visible replies.
const (
	msgGreeting       = "Здравствуйте! Нажмите «Новый вопрос», чтобы начать игру."
	msgCorrect        = "Правильно! Поздравляю! Для следующего вопроса нажми «Новый вопрос»"
	msgWrong          = "Неправильный ответ. Попробуешь ещё раз?"
	msgRevealPrefix   = "Правильный ответ: "
	msgScoreStub      = "Опция временно недоступна."
	msgNoSession      = "Сначала нажмите «Новый вопрос»."
	msgInternalError  = "Произошла ошибка. Попробуйте позже."
	msgNothingToServe = "Вопросы закончились. Загляните позже."
)

// MessageSender is the outbound half of the transport the handler needs.
// *Client satisfies it; tests substitute a fake.
type MessageSender interface {
	SendMessage(ctx context.Context, userID int64, text, keyboard string) error
}

// Handler maps normalized VK events to quiz service calls and renders
// the results back as chat messages.
type Handler struct {
	sender   MessageSender
	quiz     *service.QuizService
	logger   *zap.Logger
	keyboard string
}

// NewHandler creates a VK event handler. The keyboard is rendered once.
func NewHandler(sender MessageSender, quiz *service.QuizService, logger *zap.Logger) (*Handler, error) {
	kb, err := QuizKeyboard()
	if err != nil {
		return nil, err
	}
	return &Handler{
		sender:   sender,
		quiz:     quiz,
		logger:   logger,
		keyboard: kb,
	}, nil
}

// HandleEvent processes one incoming message.
func (h *Handler) HandleEvent(ctx context.Context, ev Event) error {
	userID := strconv.FormatInt(ev.UserID, 10)
	text := strings.TrimSpace(ev.Text)

	switch text {
	case "Начать", "/start":
		return h.send(ctx, ev.UserID, msgGreeting)
	case btnTextNewQuestion:
		return h.sendNewQuestion(ctx, ev.UserID, userID)
	case btnTextSurrender:
		return h.handleSurrender(ctx, ev.UserID, userID)
	case btnTextMyScore:
		return h.send(ctx, ev.UserID, msgScoreStub)
	default:
		return h.handleSolutionAttempt(ctx, ev.UserID, userID, text)
	}
}

func (h *Handler) sendNewQuestion(ctx context.Context, peer int64, userID string) error {
	question, err := h.quiz.NewQuestion(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCorpusEmpty) {
			return h.send(ctx, peer, msgNothingToServe)
		}
		h.logger.Error("Failed to assign new question",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return h.send(ctx, peer, msgInternalError)
	}
	return h.send(ctx, peer, question)
}

func (h *Handler) handleSurrender(ctx context.Context, peer int64, userID string) error {
	result, err := h.quiz.Surrender(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return h.send(ctx, peer, msgNoSession)
		}
		h.logger.Error("Failed to handle surrender",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return h.send(ctx, peer, msgInternalError)
	}

	if err := h.send(ctx, peer, msgRevealPrefix+result.CorrectAnswer); err != nil {
		return err
	}
	return h.send(ctx, peer, result.NextQuestion)
}

func (h *Handler) handleSolutionAttempt(ctx context.Context, peer int64, userID, text string) error {
	result, err := h.quiz.CheckAnswer(ctx, userID, text)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return h.send(ctx, peer, msgNoSession)
		}
		h.logger.Error("Failed to check answer",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return h.send(ctx, peer, msgInternalError)
	}

	if result.Correct {
		return h.send(ctx, peer, msgCorrect)
	}
	return h.send(ctx, peer, msgWrong)
}

func (h *Handler) send(ctx context.Context, peer int64, text string) error {
	return h.sender.SendMessage(ctx, peer, text, h.keyboard)
}
