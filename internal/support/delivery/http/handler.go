package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"support-orchestrator/internal/model"
	"support-orchestrator/internal/support"
	pkgResponse "support-orchestrator/pkg/response"
	"support-orchestrator/pkg/textnorm"
)

// HandleChatwootWebhook processes Chatwoot webhook events.
// @Summary Receive a Chatwoot webhook event
// @Description Accepts message_created events for incoming contact messages and dispatches them to the orchestrator.
// @Tags webhook
// @Accept json
// @Produce json
// @Param token query string true "Shared webhook token"
// @Success 200 {object} response.Resp
// @Failure 401 {object} map[string]string
// @Router /webhook/chatwoot [post]
func (h *Handler) HandleChatwootWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	// Verify token
	if err := h.security.ValidateToken(c.Query(tokenQueryParam)); err != nil {
		h.l.Errorf(ctx, "Webhook token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	// Check rate limit
	if err := h.security.CheckRateLimit(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	// Parse event
	var event webhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		h.l.Errorf(ctx, "Failed to parse webhook payload: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Only incoming contact messages are dispatched
	if event.Event != eventMessageCreated || event.MessageType != messageTypeIncoming || event.Private {
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event"})
		return
	}

	content := textnorm.StripHTML(event.Content)
	if strings.TrimSpace(content) == "" {
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "empty content"})
		return
	}

	if event.Conversation.ID == 0 {
		h.l.Warnf(ctx, "Message %d carries no conversation id, skipping", event.ID)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "missing conversation"})
		return
	}

	if h.dedup.Seen(event.ID) {
		h.l.Infof(ctx, "Duplicate delivery of message %d, skipping", event.ID)
		pkgResponse.OK(c, gin.H{"status": "duplicate"})
		return
	}

	// Some payloads omit the account block; fall back to the configured account.
	accountID := h.accountID
	if event.Account.ID != 0 {
		accountID = strconv.FormatInt(event.Account.ID, 10)
	}

	msg := model.IncomingMessage{
		MessageID:        event.ID,
		ConversationID:   event.Conversation.ID,
		AccountID:        accountID,
		Content:          content,
		Labels:           event.Conversation.Labels,
		FirstInteraction: event.Conversation.firstInteraction(),
		Channel:          channelKind(event.Conversation.Channel),
		SenderName:       event.Sender.Name,
	}

	// Process in background
	go h.processAsync(msg)

	// Acknowledge immediately
	pkgResponse.OK(c, gin.H{"status": "accepted"})
}

// processAsync runs the orchestrator outside the webhook request cycle. On
// failure the contact still gets a generic apology.
func (h *Handler) processAsync(msg model.IncomingMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), h.processTimeout)
	defer cancel()

	h.l.Infof(ctx, "Processing message %d for conversation %d", msg.MessageID, msg.ConversationID)

	output, err := h.uc.HandleIncoming(ctx, support.HandleInput{Message: msg})
	if err != nil {
		h.l.Errorf(ctx, "Processing message %d failed: %v", msg.MessageID, err)
		if sendErr := h.conv.SendMessage(ctx, msg.ConversationID, msg.AccountID, replyProcessingError); sendErr != nil {
			h.l.Errorf(ctx, "Failed to notify conversation %d about the error: %v", msg.ConversationID, sendErr)
		}
		return
	}

	h.l.Infof(ctx, "Message %d dispatched: route=%s handled_by=%s team=%d",
		msg.MessageID, output.Decision.Route, output.HandledBy, output.TeamID)
}

func channelKind(channel string) model.ChannelKind {
	if channel == channelClassEmail {
		return model.ChannelEmail
	}
	return model.ChannelChat
}
