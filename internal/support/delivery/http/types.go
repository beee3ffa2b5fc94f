package http

import (
	"bytes"
	"encoding/json"
)

// webhookEvent is the Chatwoot message_created payload, reduced to the fields
// the orchestrator consumes.
type webhookEvent struct {
	Event        string              `json:"event"`
	ID           int64               `json:"id"`
	Content      string              `json:"content"`
	MessageType  string              `json:"message_type"`
	Private      bool                `json:"private"`
	Conversation webhookConversation `json:"conversation"`
	Account      webhookAccount      `json:"account"`
	Sender       webhookSender       `json:"sender"`
}

type webhookConversation struct {
	ID     int      `json:"id"`
	Labels []string `json:"labels"`
	// FirstReplyCreatedAt is null, a string or a unix number depending on
	// the Chatwoot version; only presence matters here.
	FirstReplyCreatedAt json.RawMessage `json:"first_reply_created_at"`
	Channel             string          `json:"channel"`
}

type webhookAccount struct {
	ID int64 `json:"id"`
}

type webhookSender struct {
	Name string `json:"name"`
}

// firstInteraction reports whether no agent reply happened yet.
func (c webhookConversation) firstInteraction() bool {
	raw := bytes.TrimSpace(c.FirstReplyCreatedAt)
	switch {
	case len(raw) == 0:
		return true
	case bytes.Equal(raw, []byte("null")):
		return true
	case bytes.Equal(raw, []byte(`""`)):
		return true
	case bytes.Equal(raw, []byte("0")):
		return true
	}
	return false
}
