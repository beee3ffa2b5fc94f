package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Client is the REST client of the knowledge answering service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a knowledge service client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetBaseURL overrides the API URL for testing purposes.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

// Ask queries the answering service. When the service does not report its own
// confidence, the answer-length heuristic fills it in.
func (c *Client) Ask(ctx context.Context, question, session string, channel Channel) (Answer, error) {
	if channel == "" {
		channel = ChannelChat
	}

	body, err := json.Marshal(askRequest{
		Question:  question,
		SessionID: session,
		Channel:   string(channel),
	})
	if err != nil {
		return Answer{}, fmt.Errorf("knowledge: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(body))
	if err != nil {
		return Answer{}, fmt.Errorf("knowledge: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Answer{}, fmt.Errorf("knowledge: failed to call service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return Answer{}, fmt.Errorf("knowledge: API error %d: %s", resp.StatusCode, string(raw))
	}

	var result askResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Answer{}, fmt.Errorf("knowledge: failed to decode response: %w", err)
	}

	confidence := result.Confidence
	if confidence == 0 {
		confidence = scoreAnswer(result.Answer)
	}
	return Answer{Text: result.Answer, Confidence: confidence}, nil
}

// scoreAnswer derives a coarse confidence from answer length.
func scoreAnswer(answer string) float64 {
	if utf8.RuneCountInString(strings.TrimSpace(answer)) > minAnswerRunes {
		return confidenceHigh
	}
	return confidenceLow
}
