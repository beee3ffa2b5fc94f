package router

import (
	"context"
	"regexp"

	"support-orchestrator/internal/model"
	pkgLog "support-orchestrator/pkg/log"
	"support-orchestrator/pkg/textnorm"
)

// Classifier decides the route for an inbound message.
type Classifier interface {
	Classify(ctx context.Context, message string, currentLabels []string) IntentDecision
}

// SemanticClassifier is the optional LLM-backed fallback. It returns a raw
// route token (HUMAN, HUMAN:<team>, DIRECT, MEC); parsing and team validation
// stay in the rule engine.
type SemanticClassifier interface {
	Classify(ctx context.Context, message string) (string, error)
}

// Config holds the rule configuration of the engine.
type Config struct {
	Labels      model.ManagedLabels
	ActiveTeams []string
	// Semantic enables the LLM fallback between the explicit rules and the
	// keyword rules. Nil disables it.
	Semantic SemanticClassifier
}

// Engine classifies messages through an ordered rule ladder. Deterministic
// except for the optional semantic fallback, whose failures are logged and
// treated as "no opinion".
type Engine struct {
	l        pkgLog.Logger
	labels   model.ManagedLabels
	semantic SemanticClassifier

	activeTeams       []string
	activeTeamsFolded []string

	humanRegexps    []*regexp.Regexp
	aiRegexps       []*regexp.Regexp
	teamTokenRegexp *regexp.Regexp

	policies []policy
}

var _ Classifier = (*Engine)(nil)

// New creates a rule engine. The rule tables are compiled once and owned by
// the returned instance.
func New(l pkgLog.Logger, cfg Config) *Engine {
	e := &Engine{
		l:               l,
		labels:          cfg.Labels,
		semantic:        cfg.Semantic,
		activeTeams:     cfg.ActiveTeams,
		teamTokenRegexp: regexp.MustCompile(semanticTeamPattern),
	}
	for _, team := range cfg.ActiveTeams {
		e.activeTeamsFolded = append(e.activeTeamsFolded, textnorm.Fold(team))
	}
	for _, p := range humanPatterns {
		e.humanRegexps = append(e.humanRegexps, regexp.MustCompile(p))
	}
	for _, p := range aiPatterns {
		e.aiRegexps = append(e.aiRegexps, regexp.MustCompile(p))
	}
	e.policies = e.buildPolicies()
	return e
}
