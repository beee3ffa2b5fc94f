package chatwoot_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"support-orchestrator/pkg/chatwoot"
)

func TestSendMessage(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/conversations/42/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("api_access_token") != "secret" {
			t.Errorf("missing api token header")
		}
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer ts.Close()

	c := chatwoot.NewClient(ts.URL, "secret")
	if err := c.SendMessage(context.Background(), 42, "1", "Olá!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured["content"] != "Olá!" || captured["message_type"] != "outgoing" {
		t.Errorf("unexpected payload: %v", captured)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid token"}`))
	}))
	defer ts.Close()

	c := chatwoot.NewClient(ts.URL, "bad")
	if err := c.SendMessage(context.Background(), 42, "1", "oi"); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestSetLabelsFallbackToPatch(t *testing.T) {
	var patchedLabels []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/labels") {
			// Old instances reject the dedicated endpoint.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH fallback, got %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Labels []string `json:"labels"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		patchedLabels = req.Labels
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := chatwoot.NewClient(ts.URL, "secret")
	if err := c.SetLabels(context.Background(), 7, "1", []string{"humano", "vip"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patchedLabels) != 2 || patchedLabels[0] != "humano" {
		t.Errorf("labels not forwarded on fallback: %v", patchedLabels)
	}
}

func TestAssignTeamFallback(t *testing.T) {
	patched := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/assignments") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		patched = true
		var req struct {
			TeamID int `json:"team_id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.TeamID != 9 {
			t.Errorf("team_id = %d, want 9", req.TeamID)
		}
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := chatwoot.NewClient(ts.URL, "secret")
	if err := c.AssignTeam(context.Background(), 7, "1", 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patched {
		t.Error("PATCH fallback was not attempted")
	}
}

func TestUpdateConversationMetaClearsAssignee(t *testing.T) {
	var raw map[string]json.RawMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := chatwoot.NewClient(ts.URL, "secret")
	err := c.UpdateConversationMeta(context.Background(), 7, "1", chatwoot.MetaUpdate{
		CustomAttributes: map[string]interface{}{"handled_by": "agent_orchestrator"},
		ClearAssignment:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw["assignee_id"]) != "null" {
		t.Errorf("assignee_id = %s, want explicit null", raw["assignee_id"])
	}
	if _, ok := raw["custom_attributes"]; !ok {
		t.Error("custom_attributes missing from payload")
	}
	if _, ok := raw["team_id"]; ok {
		t.Error("zero team_id must be omitted")
	}
}

func TestSetConversationOpen(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Status != "open" {
			t.Errorf("status = %q, want open", req.Status)
		}
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := chatwoot.NewClient(ts.URL, "secret")
	if err := c.SetConversationOpen(context.Background(), 7, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
