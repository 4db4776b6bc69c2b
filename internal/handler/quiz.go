package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"quizbot/internal/domain"
)

// handleText routes button presses and treats any other text as a solution attempt
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	userID := strconv.FormatInt(c.Sender().ID, 10)
	ctx := context.Background()

	switch text {
	case btnTextNewQuestion:
		return h.sendNewQuestion(ctx, c, userID)
	case btnTextSurrender:
		return h.handleSurrender(ctx, c, userID)
	case btnTextMyScore:
		return c.Send(msgScoreStub, quizMenu())
	default:
		return h.handleSolutionAttempt(ctx, c, userID, text)
	}
}

func (h *Handler) sendNewQuestion(ctx context.Context, c tele.Context, userID string) error {
	question, err := h.quiz.NewQuestion(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCorpusEmpty) {
			return c.Send(msgNothingToServe, quizMenu())
		}
		h.logger.Error("Failed to assign new question",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return c.Send(msgInternalError, quizMenu())
	}

	return c.Send(question, quizMenu())
}

func (h *Handler) handleSurrender(ctx context.Context, c tele.Context, userID string) error {
	result, err := h.quiz.Surrender(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return c.Send(msgNoSession, quizMenu())
		}
		h.logger.Error("Failed to handle surrender",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return c.Send(msgInternalError, quizMenu())
	}

	if err := c.Send(msgRevealPrefix+result.CorrectAnswer, quizMenu()); err != nil {
		return err
	}
	return c.Send(result.NextQuestion, quizMenu())
}

func (h *Handler) handleSolutionAttempt(ctx context.Context, c tele.Context, userID, text string) error {
	result, err := h.quiz.CheckAnswer(ctx, userID, text)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return c.Send(msgNoSession, quizMenu())
		}
		h.logger.Error("Failed to check answer",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return c.Send(msgInternalError, quizMenu())
	}

	return c.Send(answerReply(result), quizMenu())
}

// answerReply picks the reply text for a checked solution attempt.
func answerReply(result domain.AnswerResult) string {
	if result.Correct {
		return msgCorrect
	}
	return msgWrong
}
