package usecase

import (
	"support-orchestrator/internal/model"
	"support-orchestrator/internal/router"
	"support-orchestrator/internal/support"
	"support-orchestrator/pkg/knowledge"
	pkgLog "support-orchestrator/pkg/log"
	"support-orchestrator/pkg/textnorm"
)

// Config holds the routing policy of the orchestrator.
type Config struct {
	Labels              model.ManagedLabels
	ConfidenceThreshold float64 // below this a mec answer escalates to people

	ActiveTeams      []string
	SupportTeam      string // team for generic "support/team" mentions
	DefaultHumanTeam string // team when nothing more specific matched
	FallbackTeamID   int    // last-resort numeric team id, 0 disables
}

type implUseCase struct {
	l          pkgLog.Logger
	classifier router.Classifier
	conv       support.ConversationClient
	knowledge  knowledge.Service
	cfg        Config

	activeTeamsFolded []string
}

var _ support.UseCase = (*implUseCase)(nil)

// New creates a new support UseCase instance.
func New(
	l pkgLog.Logger,
	classifier router.Classifier,
	conv support.ConversationClient,
	knowledgeSvc knowledge.Service,
	cfg Config,
) *implUseCase {
	uc := &implUseCase{
		l:          l,
		classifier: classifier,
		conv:       conv,
		knowledge:  knowledgeSvc,
		cfg:        cfg,
	}
	for _, team := range cfg.ActiveTeams {
		uc.activeTeamsFolded = append(uc.activeTeamsFolded, textnorm.Fold(team))
	}
	return uc
}
