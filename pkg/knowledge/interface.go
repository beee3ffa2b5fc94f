package knowledge

import "context"

// Service answers end-user questions from the internal document base.
// Implementations are safe for concurrent use.
type Service interface {
	// Ask returns the answer for a question within a conversation session.
	// The channel selects the answering profile (chat vs formal email).
	Ask(ctx context.Context, question, session string, channel Channel) (Answer, error)
}
