package support

import "context"

// UseCase defines the business logic interface for the support domain.
type UseCase interface {
	// HandleIncoming classifies one contact message, dispatches it to the
	// chosen handler and applies the conversation state that matches the
	// decision. An error means the contact received no reply and the caller
	// must send a generic apology.
	HandleIncoming(ctx context.Context, input HandleInput) (HandleOutput, error)
}
