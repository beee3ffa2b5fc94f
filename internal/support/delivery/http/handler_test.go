package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"support-orchestrator/internal/model"
	"support-orchestrator/internal/support"
	deliveryHTTP "support-orchestrator/internal/support/delivery/http"
	"support-orchestrator/pkg/chatwoot"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockUseCase struct {
	mu     sync.Mutex
	inputs []support.HandleInput
	output support.HandleOutput
	err    error
}

func (m *mockUseCase) HandleIncoming(ctx context.Context, input support.HandleInput) (support.HandleOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	return m.output, m.err
}

func (m *mockUseCase) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

func (m *mockUseCase) last() support.HandleInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inputs[len(m.inputs)-1]
}

type mockConversation struct {
	mu   sync.Mutex
	sent []string
}

func (m *mockConversation) SendMessage(ctx context.Context, conversationID int, accountID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, content)
	return nil
}

func (m *mockConversation) SetLabels(ctx context.Context, conversationID int, accountID string, labels []string) error {
	return nil
}

func (m *mockConversation) AssignTeam(ctx context.Context, conversationID int, accountID string, teamID int) error {
	return nil
}

func (m *mockConversation) UpdateConversationMeta(ctx context.Context, conversationID int, accountID string, update chatwoot.MetaUpdate) error {
	return nil
}

func (m *mockConversation) SetConversationOpen(ctx context.Context, conversationID int, accountID string) error {
	return nil
}

func (m *mockConversation) ResolveTeamID(ctx context.Context, accountID, teamNameOrID string) (int, error) {
	return 0, chatwoot.ErrTeamNotFound
}

func (m *mockConversation) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type mockTeams struct {
	teams []chatwoot.Team
	err   error
}

func (m *mockTeams) ListTeams(ctx context.Context, accountID string) ([]chatwoot.Team, error) {
	return m.teams, m.err
}

func (m *mockTeams) TeamCacheSnapshot() map[string]int {
	return map[string]int{"suporte": 5}
}

func newTestRouter(uc *mockUseCase, conv *mockConversation) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := deliveryHTTP.NewHandler(uc, conv, &mockTeams{teams: []chatwoot.Team{{ID: 5, Name: "Suporte"}}}, deliveryHTTP.HandlerConfig{
		Security:  deliveryHTTP.SecurityConfig{Token: "secret"},
		AccountID: "1",
	}, &mockLogger{})

	r := gin.New()
	r.POST("/webhook/chatwoot", h.HandleChatwootWebhook)
	r.GET("/teams", h.HandleListTeams)
	return r
}

func chatwootEvent(id int64, content string) map[string]interface{} {
	return map[string]interface{}{
		"event":        "message_created",
		"id":           id,
		"content":      content,
		"message_type": "incoming",
		"private":      false,
		"conversation": map[string]interface{}{
			"id":                     12,
			"labels":                 []string{"vip"},
			"first_reply_created_at": nil,
			"channel":                "Channel::WebWidget",
		},
		"account": map[string]interface{}{"id": 1},
		"sender":  map[string]interface{}{"name": "Ana"},
	}
}

func postEvent(t *testing.T, r *gin.Engine, token string, event map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/webhook/chatwoot?token="+token, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestHandleChatwootWebhook_DispatchesIncomingMessage(t *testing.T) {
	uc := &mockUseCase{}
	conv := &mockConversation{}
	r := newTestRouter(uc, conv)

	w := postEvent(t, r, "secret", chatwootEvent(101, "<p>Quero falar com um atendente</p>"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	waitFor(t, func() bool { return uc.count() == 1 })

	msg := uc.last().Message
	if msg.Content != "Quero falar com um atendente" {
		t.Errorf("expected markup stripped, got %q", msg.Content)
	}
	if msg.MessageID != 101 || msg.ConversationID != 12 || msg.AccountID != "1" {
		t.Errorf("unexpected identifiers: %+v", msg)
	}
	if !msg.FirstInteraction {
		t.Error("expected first interaction for null first_reply_created_at")
	}
	if msg.Channel != model.ChannelChat {
		t.Errorf("expected chat channel, got %s", msg.Channel)
	}
	if len(msg.Labels) != 1 || msg.Labels[0] != "vip" {
		t.Errorf("expected conversation labels carried over, got %v", msg.Labels)
	}
}

func TestHandleChatwootWebhook_EmailChannel(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc, &mockConversation{})

	event := chatwootEvent(102, "Qual o regimento?")
	event["conversation"].(map[string]interface{})["channel"] = "Channel::Email"
	event["conversation"].(map[string]interface{})["first_reply_created_at"] = "2026-08-30T10:00:00Z"

	postEvent(t, r, "secret", event)
	waitFor(t, func() bool { return uc.count() == 1 })

	msg := uc.last().Message
	if msg.Channel != model.ChannelEmail {
		t.Errorf("expected email channel, got %s", msg.Channel)
	}
	if msg.FirstInteraction {
		t.Error("expected not-first interaction when a reply timestamp exists")
	}
}

func TestHandleChatwootWebhook_MissingAccountFallsBackToConfigured(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc, &mockConversation{})

	event := chatwootEvent(110, "Qual a carga horária?")
	delete(event, "account")

	w := postEvent(t, r, "secret", event)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	waitFor(t, func() bool { return uc.count() == 1 })
	if got := uc.last().Message.AccountID; got != "1" {
		t.Errorf("expected configured account id, got %q", got)
	}
}

func TestHandleChatwootWebhook_MissingConversationIgnored(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc, &mockConversation{})

	event := chatwootEvent(111, "oi")
	delete(event, "conversation")

	w := postEvent(t, r, "secret", event)
	if w.Code != http.StatusOK {
		t.Fatalf("events without a conversation still ack with 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ignored") {
		t.Errorf("expected ignored status, got %s", w.Body.String())
	}

	time.Sleep(20 * time.Millisecond)
	if uc.count() != 0 {
		t.Error("event without a conversation must not be dispatched")
	}
}

func TestHandleChatwootWebhook_InvalidToken(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc, &mockConversation{})

	w := postEvent(t, r, "wrong", chatwootEvent(103, "oi"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	time.Sleep(20 * time.Millisecond)
	if uc.count() != 0 {
		t.Error("rejected request must not be dispatched")
	}
}

func TestHandleChatwootWebhook_FiltersEvents(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"outgoing message", func(e map[string]interface{}) { e["message_type"] = "outgoing" }},
		{"private note", func(e map[string]interface{}) { e["private"] = true }},
		{"other event", func(e map[string]interface{}) { e["event"] = "conversation_updated" }},
		{"empty after markup strip", func(e map[string]interface{}) { e["content"] = "<p>  </p>" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{}
			r := newTestRouter(uc, &mockConversation{})

			event := chatwootEvent(104, "mensagem")
			tc.mutate(event)

			w := postEvent(t, r, "secret", event)
			if w.Code != http.StatusOK {
				t.Fatalf("filtered events still ack with 200, got %d", w.Code)
			}

			time.Sleep(20 * time.Millisecond)
			if uc.count() != 0 {
				t.Error("filtered event must not be dispatched")
			}
		})
	}
}

func TestHandleChatwootWebhook_DuplicateDelivery(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc, &mockConversation{})

	event := chatwootEvent(105, "Qual a carga horária?")
	postEvent(t, r, "secret", event)
	w := postEvent(t, r, "secret", event)
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate still acks with 200, got %d", w.Code)
	}

	waitFor(t, func() bool { return uc.count() == 1 })
	time.Sleep(30 * time.Millisecond)
	if uc.count() != 1 {
		t.Errorf("expected exactly one dispatch for duplicate delivery, got %d", uc.count())
	}
}

func TestHandleChatwootWebhook_ApologyOnProcessingFailure(t *testing.T) {
	uc := &mockUseCase{err: errors.New("knowledge service down")}
	conv := &mockConversation{}
	r := newTestRouter(uc, conv)

	postEvent(t, r, "secret", chatwootEvent(106, "Qual a carga horária?"))

	waitFor(t, func() bool { return conv.sentCount() == 1 })
	conv.mu.Lock()
	sent := conv.sent[0]
	conv.mu.Unlock()
	if !strings.Contains(sent, "Desculpe") {
		t.Errorf("expected generic apology, got %q", sent)
	}
}

func TestHandleListTeams(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, &mockConversation{})

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Suporte") {
		t.Errorf("expected team list in response, got %s", w.Body.String())
	}
}
