package http

import "time"

const (
	eventMessageCreated = "message_created"
	messageTypeIncoming = "incoming"

	// Chatwoot channel class for email conversations; everything else is
	// treated as live chat.
	channelClassEmail = "Channel::Email"

	tokenQueryParam = "token"
)

// replyProcessingError is the generic apology sent when the orchestrator
// fails: the contact must never be left without any response.
const replyProcessingError = "⚠️ Desculpe, ocorreu um erro ao processar sua mensagem. Por favor, tente novamente."

const (
	defaultProcessTimeout = 2 * time.Minute
	defaultDedupTTL       = 10 * time.Minute
	defaultDedupCapacity  = 10000
)
