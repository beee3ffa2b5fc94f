package support

import (
	"context"

	"support-orchestrator/internal/model"
	"support-orchestrator/internal/router"
	"support-orchestrator/pkg/chatwoot"
)

// ConversationClient is the Chatwoot surface the orchestrator needs. Every
// call is best effort: failures are logged by the orchestrator and never roll
// back earlier calls in the same dispatch.
type ConversationClient interface {
	SendMessage(ctx context.Context, conversationID int, accountID, content string) error
	SetLabels(ctx context.Context, conversationID int, accountID string, labels []string) error
	AssignTeam(ctx context.Context, conversationID int, accountID string, teamID int) error
	UpdateConversationMeta(ctx context.Context, conversationID int, accountID string, update chatwoot.MetaUpdate) error
	SetConversationOpen(ctx context.Context, conversationID int, accountID string) error
	ResolveTeamID(ctx context.Context, accountID, teamNameOrID string) (int, error)
}

// HandleInput carries one inbound message through the orchestrator.
type HandleInput struct {
	Message model.IncomingMessage
}

// HandleOutput reports what the orchestrator decided and did. Consumed by
// tests and the debug surface only; conversation state lives in Chatwoot.
type HandleOutput struct {
	Decision   router.IntentDecision
	Reply      string
	Labels     []string // label set written to the conversation
	TeamID     int      // resolved human team, 0 when absent
	Confidence float64
	HandledBy  string
}
