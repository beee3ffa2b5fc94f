package maritalk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"support-orchestrator/pkg/maritalk"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := maritalk.New(maritalk.Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		var req maritalk.Request
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "sabiazinho-4" {
			t.Errorf("default model not applied, got %q", req.Model)
		}
		w.Write([]byte(`{"id": "cmpl-1", "choices": [{"index": 0, "message": {"role": "assistant", "content": "HUMAN:financeiro"}, "finish_reason": "stop"}]}`))
	}))
	defer ts.Close()

	c, err := maritalk.New(maritalk.Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.SetBaseURL(ts.URL)

	resp, err := c.GenerateContent(context.Background(), &maritalk.Request{
		Messages: []maritalk.Message{{Role: "user", Content: "quero falar com o financeiro"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "HUMAN:financeiro" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit"}}`))
	}))
	defer ts.Close()

	c, _ := maritalk.New(maritalk.Config{APIKey: "test-key"})
	c.SetBaseURL(ts.URL)

	_, err := c.GenerateContent(context.Background(), &maritalk.Request{})
	if err == nil {
		t.Fatal("expected error on 429")
	}
}
