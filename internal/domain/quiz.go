package domain

// Pair couples a question's display text with its raw answer record
// as read from the corpus file.
type Pair struct {
	Question string
	Answer   string
}

// AnswerResult is the outcome of checking a user's solution attempt
type AnswerResult struct {
	Correct bool
	// CorrectAnswer carries the display form of the right answer
	// when the attempt was wrong
	CorrectAnswer string
}

// SurrenderResult carries the revealed answer plus the next assigned question
type SurrenderResult struct {
	CorrectAnswer string
	NextQuestion  string
}
