package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"support-orchestrator/pkg/chatwoot"
	pkgResponse "support-orchestrator/pkg/response"
)

// TeamDirectory is the team listing surface of the Chatwoot client, exposed
// for operational debugging.
type TeamDirectory interface {
	ListTeams(ctx context.Context, accountID string) ([]chatwoot.Team, error)
	TeamCacheSnapshot() map[string]int
}

// HandleListTeams lists the live Chatwoot teams and the resolver cache.
// @Summary List Chatwoot teams
// @Description Returns the live team list and the resolver cache snapshot, for routing diagnosis.
// @Tags teams
// @Produce json
// @Success 200 {object} response.Resp
// @Router /teams [get]
func (h *Handler) HandleListTeams(c *gin.Context) {
	ctx := c.Request.Context()

	teams, err := h.teams.ListTeams(ctx, h.accountID)
	if err != nil {
		h.l.Errorf(ctx, "Failed to list teams: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	pkgResponse.OK(c, gin.H{
		"teams": teams,
		"cache": h.teams.TeamCacheSnapshot(),
	})
}
