package chatwoot

import "time"

const (
	// HeaderAPIAccessToken is the auth header expected by the Chatwoot API.
	HeaderAPIAccessToken = "api_access_token"

	// MessageTypeOutgoing marks messages sent by the service.
	MessageTypeOutgoing = "outgoing"

	// StatusOpen is the conversation status used when reopening.
	StatusOpen = "open"

	// DefaultTimeout bounds every API call.
	DefaultTimeout = 30 * time.Second
)
