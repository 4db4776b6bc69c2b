package handler

import (
	"quizbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recognized button texts. Matching them is a transport concern; the quiz
// service never sees these literals.
const (
	btnTextNewQuestion = "Новый вопрос"
	btnTextSurrender   = "Сдаться"
	btnTextMyScore     = "Мой счет"
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

// Handler manages all bot interactions
type Handler struct {
	bot    *tele.Bot
	quiz   *service.QuizService
	logger *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, quiz *service.QuizService, logger *zap.Logger) *Handler {
	return &Handler{
		bot:    bot,
		quiz:   quiz,
		logger: logger,
	}
}

// OnError returns the callback to install via tele.Settings when creating the
// bot. Errors escaping a handler are logged and the poller keeps running.
func OnError(logger *zap.Logger) func(error, tele.Context) {
	return func(err error, c tele.Context) {
		fields := []zap.Field{zap.Error(err)}
		if c != nil && c.Sender() != nil {
			fields = append(fields, zap.Int64("user_id", c.Sender().ID))
		}
		logger.Error("Unhandled error in telegram update", fields...)
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)
}

// quizMenu returns the persistent reply keyboard shown with every message.
func quizMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnTextNewQuestion), menu.Text(btnTextSurrender)),
		menu.Row(menu.Text(btnTextMyScore)),
	)
	return menu
}
