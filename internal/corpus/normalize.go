package corpus

import "strings"

// answerDelimiter separates the record header from the answer text itself.
const answerDelimiter = "Ответ:\n"

// Reveal extracts the human-readable answer from a raw answer record:
// the text after the last "Ответ:\n" with surrounding whitespace and the
// trailing period removed. If the delimiter is absent the whole record is
// used as-is.
func Reveal(record string) string {
	tail := record
	if i := strings.LastIndex(record, answerDelimiter); i >= 0 {
		tail = record[i+len(answerDelimiter):]
	}
	tail = strings.TrimSpace(tail)
	return strings.TrimSuffix(tail, ".")
}

// Canonical returns the comparable form of a raw answer record: the revealed
// answer lower-cased. User submissions are matched against this form
// case-insensitively.
func Canonical(record string) string {
	return strings.ToLower(Reveal(record))
}

// Submission canonicalizes user-submitted text for comparison with Canonical.
func Submission(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
