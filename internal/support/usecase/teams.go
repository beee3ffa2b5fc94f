package usecase

import (
	"context"
	"strings"

	"support-orchestrator/internal/model"
	"support-orchestrator/internal/router"
	"support-orchestrator/pkg/textnorm"
)

// resolveHumanTeam turns the precedence chain's team name into a Chatwoot
// team id. Returns the configured fallback id (possibly 0 = absent) when
// nothing resolves; an absent team never blocks the dispatch.
func (uc *implUseCase) resolveHumanTeam(ctx context.Context, decision router.IntentDecision, msg model.IncomingMessage) int {
	name := uc.pickHumanTeam(decision, msg.Content)
	if name != "" {
		id, err := uc.conv.ResolveTeamID(ctx, msg.AccountID, name)
		if err == nil {
			return id
		}
		uc.l.Warnf(ctx, "HandleIncoming: conversation=%d team %q not resolved: %v", msg.ConversationID, name, err)
	}
	return uc.cfg.FallbackTeamID
}

// pickHumanTeam walks the team-selection precedence: semantic annotation,
// active team mentioned in the text, contextual keywords, generic mention,
// configured default, first active team.
func (uc *implUseCase) pickHumanTeam(decision router.IntentDecision, content string) string {
	if decision.RequestedTeam != "" {
		return decision.RequestedTeam
	}

	folded := textnorm.Fold(content)

	// Stemmed match so "financeiro" also catches "financeira"/"financeiros".
	for i, teamFolded := range uc.activeTeamsFolded {
		stem := teamFolded
		if len(stem) > 4 {
			stem = stem[:len(stem)-1]
		}
		if stem != "" && strings.Contains(folded, stem) {
			return uc.cfg.ActiveTeams[i]
		}
	}

	for _, keyword := range financeKeywords {
		if !strings.Contains(folded, keyword) {
			continue
		}
		for i, teamFolded := range uc.activeTeamsFolded {
			if strings.Contains(teamFolded, keyword) {
				return uc.cfg.ActiveTeams[i]
			}
		}
	}

	if containsAny(folded, supportKeywords) || containsAny(folded, genericTeamKeywords) {
		if uc.cfg.SupportTeam != "" {
			return uc.cfg.SupportTeam
		}
	}

	if uc.cfg.DefaultHumanTeam != "" {
		return uc.cfg.DefaultHumanTeam
	}
	if len(uc.cfg.ActiveTeams) > 0 {
		return uc.cfg.ActiveTeams[0]
	}
	return ""
}

func containsAny(folded string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}
	return false
}
