package router

import (
	"context"
	"fmt"
	"strings"

	pkgLog "support-orchestrator/pkg/log"
	"support-orchestrator/pkg/maritalk"
)

// LLMClassifier asks a Maritaca model for a route token. The engine treats
// any error here as "no opinion" and continues down the rule ladder, so this
// type never needs a fallback of its own.
type LLMClassifier struct {
	l            pkgLog.Logger
	llm          maritalk.IMaritalk
	model        string
	instructions string
}

var _ SemanticClassifier = (*LLMClassifier)(nil)

// NewLLMClassifier builds the semantic fallback. activeTeams feeds the prompt
// so the model can annotate a specific team (HUMAN:<team>).
func NewLLMClassifier(l pkgLog.Logger, llm maritalk.IMaritalk, model string, activeTeams []string) *LLMClassifier {
	teamList := semanticDefaultTeamList
	if len(activeTeams) > 0 {
		teamList = strings.Join(activeTeams, ", ")
	}
	return &LLMClassifier{
		l:            l,
		llm:          llm,
		model:        model,
		instructions: fmt.Sprintf(semanticInstructionsTemplate, teamList, teamList),
	}
}

// Classify returns the raw model answer (e.g. "HUMAN:financeiro"). Validation
// of the token and of the team name stays in the rule engine.
func (c *LLMClassifier) Classify(ctx context.Context, message string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, &maritalk.Request{
		Model: c.model,
		Messages: []maritalk.Message{
			{Role: "system", Content: c.instructions},
			{Role: "user", Content: message},
		},
		Temperature: semanticTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", LogPrefixSemantic, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: empty response", LogPrefixSemantic)
	}

	token := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.l.Debugf(ctx, "%s: model answered %q", LogPrefixSemantic, token)
	return token, nil
}
