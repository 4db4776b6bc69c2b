package testutil

import (
	"quizbot/internal/corpus"
	"quizbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCorpus builds a corpus from question/answer-record pairs in order
func NewTestCorpus(pairs ...domain.Pair) *corpus.Corpus {
	return corpus.New(pairs)
}

// QA formats a bare answer into the raw record form stored in quiz files
func QA(question, answer string) domain.Pair {
	return domain.Pair{
		Question: "Вопрос:\n" + question,
		Answer:   "Ответ:\n" + answer + ".",
	}
}
