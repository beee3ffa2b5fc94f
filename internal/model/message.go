package model

import "time"

// ChannelKind distinguishes conversational channels that need different
// answer tones.
type ChannelKind string

const (
	ChannelChat  ChannelKind = "chat"
	ChannelEmail ChannelKind = "email"
)

// IncomingMessage is a contact message extracted from a Chatwoot webhook
// event, with markup already stripped.
type IncomingMessage struct {
	MessageID        int64
	ConversationID   int
	AccountID        string
	Content          string
	Labels           []string // conversation labels at decision time
	FirstInteraction bool     // first contact message in the conversation
	Channel          ChannelKind
	SenderName       string
	ReceivedAt       time.Time
}
