package corpus

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"quizbot/internal/domain"
)

// Record prefixes used by the quiz file format.
const (
	questionPrefix = "Вопрос"
	answerPrefix   = "Ответ"
)

// Load reads and parses a quiz file. Supported encodings are "utf-8" and
// "koi8-r" (the historical encoding of the shipped question archives).
func Load(path, encoding string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	r, err := decodeReader(f, encoding)
	if err != nil {
		return nil, err
	}

	c, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse corpus file %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a corpus from already-decoded quiz text. Records are separated
// by blank lines; records starting with "Вопрос" are questions, records
// starting with "Ответ" are answers, everything else is ignored. The Nth
// question pairs with the Nth answer, and the counts must match.
func Parse(r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var questions, answers []string
	for _, record := range strings.Split(string(data), "\n\n") {
		switch {
		case strings.HasPrefix(record, questionPrefix):
			questions = append(questions, record)
		case strings.HasPrefix(record, answerPrefix):
			answers = append(answers, record)
		}
	}

	if len(questions) != len(answers) {
		return nil, fmt.Errorf("unbalanced corpus: %d question records, %d answer records", len(questions), len(answers))
	}

	pairs := make([]domain.Pair, 0, len(questions))
	for i, question := range questions {
		pairs = append(pairs, domain.Pair{Question: question, Answer: answers[i]})
	}
	return New(pairs), nil
}

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "koi8-r", "koi8r":
		return transform.NewReader(r, charmap.KOI8R.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported corpus encoding %q", encoding)
	}
}
