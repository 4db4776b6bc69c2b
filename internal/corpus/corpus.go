package corpus

import "quizbot/internal/domain"

// Corpus is an immutable set of question/answer pairs loaded from a quiz file.
// Question texts double as lookup keys, so they must be unique within a file.
type Corpus struct {
	answers   map[string]string
	questions []string
}

// New builds a corpus from ordered pairs. Order is preserved for selection.
func New(pairs []domain.Pair) *Corpus {
	c := &Corpus{
		answers:   make(map[string]string, len(pairs)),
		questions: make([]string, 0, len(pairs)),
	}
	for _, p := range pairs {
		if _, exists := c.answers[p.Question]; exists {
			continue
		}
		c.answers[p.Question] = p.Answer
		c.questions = append(c.questions, p.Question)
	}
	return c
}

// Len returns the number of question/answer pairs.
func (c *Corpus) Len() int {
	return len(c.questions)
}

// Question returns the question text at position i in file order.
func (c *Corpus) Question(i int) string {
	return c.questions[i]
}

// Answer returns the raw answer record for a question.
func (c *Corpus) Answer(question string) (string, bool) {
	answer, ok := c.answers[question]
	return answer, ok
}
