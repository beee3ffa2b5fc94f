package usecase

import (
	"context"
	"strconv"
	"strings"

	"support-orchestrator/internal/router"
	"support-orchestrator/pkg/chatwoot"
	"support-orchestrator/pkg/knowledge"
)

// Mock logger for testing
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

// convCall records one Chatwoot call in arrival order.
type convCall struct {
	name    string
	content string
	labels  []string
	teamID  int
	meta    chatwoot.MetaUpdate
}

// mockConversation records every call and can fail selected calls.
type mockConversation struct {
	calls      []convCall
	teams      map[string]int // lowercased name → id
	resolveErr error
	failCalls  map[string]error // call name → forced error
}

func newMockConversation() *mockConversation {
	return &mockConversation{
		teams: map[string]int{"suporte": 5, "financeiro": 7},
	}
}

func (m *mockConversation) fail(name string) error {
	if m.failCalls == nil {
		return nil
	}
	return m.failCalls[name]
}

func (m *mockConversation) SendMessage(ctx context.Context, conversationID int, accountID, content string) error {
	m.calls = append(m.calls, convCall{name: "send", content: content})
	return m.fail("send")
}

func (m *mockConversation) SetLabels(ctx context.Context, conversationID int, accountID string, labels []string) error {
	m.calls = append(m.calls, convCall{name: "labels", labels: labels})
	return m.fail("labels")
}

func (m *mockConversation) AssignTeam(ctx context.Context, conversationID int, accountID string, teamID int) error {
	m.calls = append(m.calls, convCall{name: "assign", teamID: teamID})
	return m.fail("assign")
}

func (m *mockConversation) UpdateConversationMeta(ctx context.Context, conversationID int, accountID string, update chatwoot.MetaUpdate) error {
	m.calls = append(m.calls, convCall{name: "meta", meta: update})
	return m.fail("meta")
}

func (m *mockConversation) SetConversationOpen(ctx context.Context, conversationID int, accountID string) error {
	m.calls = append(m.calls, convCall{name: "open"})
	return m.fail("open")
}

func (m *mockConversation) ResolveTeamID(ctx context.Context, accountID, teamNameOrID string) (int, error) {
	if m.resolveErr != nil {
		return 0, m.resolveErr
	}
	if id, ok := m.teams[strings.ToLower(teamNameOrID)]; ok {
		return id, nil
	}
	if n, err := strconv.Atoi(teamNameOrID); err == nil {
		return n, nil
	}
	return 0, chatwoot.ErrTeamNotFound
}

// callNames flattens the recorded calls for order assertions.
func (m *mockConversation) callNames() []string {
	names := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		names = append(names, c.name)
	}
	return names
}

func (m *mockConversation) lastByName(name string) (convCall, bool) {
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].name == name {
			return m.calls[i], true
		}
	}
	return convCall{}, false
}

// stubKnowledge replays a fixed answer or error.
type stubKnowledge struct {
	answer knowledge.Answer
	err    error
	asked  []string
}

func (s *stubKnowledge) Ask(ctx context.Context, question, session string, channel knowledge.Channel) (knowledge.Answer, error) {
	s.asked = append(s.asked, question)
	if s.err != nil {
		return knowledge.Answer{}, s.err
	}
	return s.answer, nil
}

// stubClassifier returns a fixed decision, for precedence tests that bypass
// the real rule ladder.
type stubClassifier struct {
	decision router.IntentDecision
}

func (s *stubClassifier) Classify(ctx context.Context, message string, currentLabels []string) router.IntentDecision {
	return s.decision
}
