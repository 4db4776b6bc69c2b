package repository

import "context"

// SessionRepository stores each user's currently assigned question, keyed by
// the transport-scoped user identifier. Implementations must be safe for
// concurrent use across different user ids.
type SessionRepository interface {
	// Set assigns a question to a user, replacing any previous one.
	Set(ctx context.Context, userID, question string) error
	// Get returns the user's current question or domain.ErrNoActiveSession.
	Get(ctx context.Context, userID string) (string, error)
	// Delete removes the user's session entry. Deleting an absent entry is not an error.
	Delete(ctx context.Context, userID string) error
}
