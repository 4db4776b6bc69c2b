package domain

import "errors"

var (
	// ErrNoActiveSession is returned when a user acts before requesting a question.
	ErrNoActiveSession = errors.New("no active question for user")
	// ErrCorpusEmpty is returned when a question is requested from an empty corpus.
	ErrCorpusEmpty = errors.New("question corpus is empty")
	// ErrStoreUnavailable wraps transient session store failures.
	ErrStoreUnavailable = errors.New("session store unavailable")
)
