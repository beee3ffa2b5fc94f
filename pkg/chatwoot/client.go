package chatwoot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Client is the Chatwoot REST API client.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client

	// teamCache maps casefolded and diacritic-folded team names to ids.
	teamMu    sync.RWMutex
	teamCache map[string]int
}

// NewClient creates a new Chatwoot client for the given instance.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		teamCache:  make(map[string]int),
	}
}

// SetBaseURL overrides the API URL for testing purposes.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

// SendMessage posts an outgoing message to a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID int, accountID, content string) error {
	return c.SendMessageWithType(ctx, conversationID, accountID, content, MessageTypeOutgoing)
}

// SendMessageWithType posts a message with an explicit message type.
func (c *Client) SendMessageWithType(ctx context.Context, conversationID int, accountID, content, messageType string) error {
	url := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/messages", c.baseURL, accountID, conversationID)
	payload := sendMessageRequest{Content: content, MessageType: messageType}

	resp, err := c.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return fmt.Errorf("chatwoot: failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chatwoot: sendMessage API error %d: %s", resp.StatusCode, truncate(raw))
	}
	return nil
}

// SetLabels replaces the label list of a conversation. It uses the dedicated
// labels endpoint and falls back to a PATCH on the conversation for Chatwoot
// versions that only accept labels there.
func (c *Client) SetLabels(ctx context.Context, conversationID int, accountID string, labels []string) error {
	payload := setLabelsRequest{Labels: labels}

	labelsURL := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/labels", c.baseURL, accountID, conversationID)
	resp, err := c.do(ctx, http.MethodPost, labelsURL, payload)
	if err != nil {
		return fmt.Errorf("chatwoot: failed to set labels: %w", err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		convURL := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d", c.baseURL, accountID, conversationID)
		resp, err = c.do(ctx, http.MethodPatch, convURL, payload)
		if err != nil {
			return fmt.Errorf("chatwoot: labels fallback failed: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chatwoot: setLabels API error %d: %s", resp.StatusCode, truncate(raw))
	}
	return nil
}

// AssignTeam assigns a conversation to a team via the assignments endpoint,
// falling back to a PATCH on the conversation.
func (c *Client) AssignTeam(ctx context.Context, conversationID int, accountID string, teamID int) error {
	payload := assignTeamRequest{TeamID: teamID}

	assignURL := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/assignments", c.baseURL, accountID, conversationID)
	resp, err := c.do(ctx, http.MethodPost, assignURL, payload)
	if err != nil {
		return fmt.Errorf("chatwoot: failed to assign team: %w", err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		convURL := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d", c.baseURL, accountID, conversationID)
		resp, err = c.do(ctx, http.MethodPatch, convURL, payload)
		if err != nil {
			return fmt.Errorf("chatwoot: assignment fallback failed: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chatwoot: assignTeam API error %d: %s", resp.StatusCode, truncate(raw))
	}
	return nil
}

// UpdateConversationMeta patches custom attributes, team assignment and
// assignee clearing on a conversation.
func (c *Client) UpdateConversationMeta(ctx context.Context, conversationID int, accountID string, update MetaUpdate) error {
	payload := metaUpdateRequest{
		CustomAttributes: update.CustomAttributes,
		TeamID:           update.TeamID,
	}
	if update.ClearAssignment {
		payload.AssigneeID = json.RawMessage("null")
	}

	url := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d", c.baseURL, accountID, conversationID)
	resp, err := c.do(ctx, http.MethodPatch, url, payload)
	if err != nil {
		return fmt.Errorf("chatwoot: failed to update conversation meta: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chatwoot: updateConversationMeta API error %d: %s", resp.StatusCode, truncate(raw))
	}
	return nil
}

// SetConversationOpen reopens a conversation.
func (c *Client) SetConversationOpen(ctx context.Context, conversationID int, accountID string) error {
	url := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d", c.baseURL, accountID, conversationID)
	resp, err := c.do(ctx, http.MethodPatch, url, setStatusRequest{Status: StatusOpen})
	if err != nil {
		return fmt.Errorf("chatwoot: failed to open conversation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chatwoot: setConversationOpen API error %d: %s", resp.StatusCode, truncate(raw))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAPIAccessToken, c.apiToken)

	return c.httpClient.Do(req)
}

func truncate(raw []byte) string {
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return string(raw)
}
