package http

import (
	"time"

	"support-orchestrator/internal/support"
	pkgLog "support-orchestrator/pkg/log"
)

// HandlerConfig tunes the webhook delivery layer.
type HandlerConfig struct {
	Security       SecurityConfig
	AccountID      string // Chatwoot account served by this process
	DedupTTL       time.Duration
	DedupCapacity  int
	ProcessTimeout time.Duration
}

// Handler receives Chatwoot webhooks, filters and deduplicates them, and
// hands each accepted message to the orchestrator in the background so the
// webhook sender gets an immediate acknowledgment.
type Handler struct {
	uc             support.UseCase
	conv           support.ConversationClient
	teams          TeamDirectory
	security       *SecurityValidator
	dedup          *DedupGuard
	accountID      string
	processTimeout time.Duration
	l              pkgLog.Logger
}

func NewHandler(
	uc support.UseCase,
	conv support.ConversationClient,
	teams TeamDirectory,
	cfg HandlerConfig,
	l pkgLog.Logger,
) *Handler {
	timeout := cfg.ProcessTimeout
	if timeout <= 0 {
		timeout = defaultProcessTimeout
	}
	return &Handler{
		uc:             uc,
		conv:           conv,
		teams:          teams,
		security:       NewSecurityValidator(cfg.Security),
		dedup:          NewDedupGuard(cfg.DedupTTL, cfg.DedupCapacity),
		accountID:      cfg.AccountID,
		processTimeout: timeout,
		l:              l,
	}
}
