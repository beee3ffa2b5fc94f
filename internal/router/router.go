package router

import (
	"context"
	"strings"

	"support-orchestrator/pkg/textnorm"
)

// classifyInput carries the precomputed views of one message through the
// rule ladder.
type classifyInput struct {
	text   string // normalized message
	folded string // normalized + diacritics removed
	labels map[string]struct{}

	requestedHuman bool
	requestedAI    bool
}

// policy is one rung of the ladder: the first rung returning a non-nil
// decision wins. The strict order is a safety property — explicit user
// signals and the human lock must always outrank the semantic fallback.
type policy struct {
	name string
	eval func(ctx context.Context, in classifyInput) *IntentDecision
}

// Classify runs the message through the ladder. The final rung always
// decides, so a decision is guaranteed.
func (e *Engine) Classify(ctx context.Context, message string, currentLabels []string) IntentDecision {
	in := classifyInput{
		text:   textnorm.Normalize(message),
		folded: textnorm.Fold(message),
		labels: make(map[string]struct{}, len(currentLabels)),
	}
	for _, label := range currentLabels {
		in.labels[label] = struct{}{}
	}
	in.requestedHuman = e.requestedHuman(in)
	in.requestedAI = e.requestedAI(in)

	for _, p := range e.policies {
		if decision := p.eval(ctx, in); decision != nil {
			e.l.Infof(ctx, "%s: rule=%s route=%s reason=%s", LogPrefixClassify, p.name, decision.Route, decision.Reason)
			return *decision
		}
	}

	// Unreachable: the default rung always decides.
	return IntentDecision{Route: RouteMec, Reason: ReasonDefaultMecRoute}
}

func (e *Engine) buildPolicies() []policy {
	return []policy{
		{name: "explicit_human", eval: e.evalExplicitHuman},
		{name: "human_lock", eval: e.evalHumanLock},
		{name: "explicit_ai", eval: e.evalExplicitAI},
		{name: "semantic_fallback", eval: e.evalSemantic},
		{name: "smalltalk", eval: e.evalSmalltalk},
		{name: "mec_keyword", eval: e.evalMecKeyword},
		{name: "default", eval: e.evalDefault},
	}
}

func (e *Engine) evalExplicitHuman(ctx context.Context, in classifyInput) *IntentDecision {
	if !in.requestedHuman {
		return nil
	}
	return &IntentDecision{
		Route:          RouteHuman,
		Reason:         ReasonExplicitHumanRequest,
		RequestedHuman: true,
		RequestedAI:    in.requestedAI,
	}
}

// evalHumanLock holds a conversation with a human only after a real
// low-confidence escalation: both the human label and the failure label must
// be present. The human label alone records a past decision and does not
// block the AI.
func (e *Engine) evalHumanLock(ctx context.Context, in classifyInput) *IntentDecision {
	_, hasHuman := in.labels[e.labels.Human]
	_, hasFailure := in.labels[e.labels.Failure]
	if !hasHuman || !hasFailure || in.requestedAI {
		return nil
	}
	return &IntentDecision{
		Route:  RouteHuman,
		Reason: ReasonConversationAlreadyHuman,
	}
}

func (e *Engine) evalExplicitAI(ctx context.Context, in classifyInput) *IntentDecision {
	if !in.requestedAI {
		return nil
	}
	return &IntentDecision{
		Route:       RouteMec,
		Reason:      ReasonExplicitAIRequest,
		RequestedAI: true,
	}
}

// evalSemantic delegates to the LLM classifier when configured. Any failure
// is logged and treated as "no opinion" so the ladder continues.
func (e *Engine) evalSemantic(ctx context.Context, in classifyInput) *IntentDecision {
	if e.semantic == nil {
		return nil
	}
	raw, err := e.semantic.Classify(ctx, in.text)
	if err != nil {
		e.l.Warnf(ctx, "%s: classifier failed, continuing ladder: %v", LogPrefixSemantic, err)
		return nil
	}
	return e.parseSemanticToken(ctx, raw)
}

func (e *Engine) evalSmalltalk(ctx context.Context, in classifyInput) *IntentDecision {
	if len(in.text) > maxSmalltalkLen {
		return nil
	}
	if _, ok := smalltalkVocabulary[strings.Trim(in.text, smalltalkTrimCutset)]; !ok {
		return nil
	}
	return &IntentDecision{Route: RouteDirect, Reason: ReasonSmalltalk}
}

func (e *Engine) evalMecKeyword(ctx context.Context, in classifyInput) *IntentDecision {
	for _, keyword := range mecKeywords {
		if strings.Contains(in.text, keyword) {
			return &IntentDecision{Route: RouteMec, Reason: ReasonMecDomainKeyword}
		}
	}
	return nil
}

// evalDefault keeps the system optimistic: anything unclassified goes to the
// knowledge agent rather than to people.
func (e *Engine) evalDefault(ctx context.Context, in classifyInput) *IntentDecision {
	return &IntentDecision{Route: RouteMec, Reason: ReasonDefaultMecRoute}
}

// parseSemanticToken maps the raw LLM answer onto a decision. Accepts short
// punctuation/explanation around the token ("HUMAN." or "human: financeiro").
func (e *Engine) parseSemanticToken(ctx context.Context, raw string) *IntentDecision {
	value := textnorm.Normalize(raw)

	if strings.Contains(value, "human") {
		team := ""
		if m := e.teamTokenRegexp.FindStringSubmatch(value); m != nil {
			team = strings.TrimSpace(m[1])
		}
		if team != "" && !e.isActiveTeam(team) {
			e.l.Debugf(ctx, "%s: extracted team %q not recognized, ignoring", LogPrefixSemantic, team)
			team = ""
		}
		e.l.Infof(ctx, "%s: HUMAN detected, team=%q", LogPrefixSemantic, team)
		return &IntentDecision{
			Route:          RouteHuman,
			Reason:         ReasonLLMClassifier,
			RequestedHuman: true,
			RequestedTeam:  team,
		}
	}
	if strings.Contains(value, "direct") {
		return &IntentDecision{Route: RouteDirect, Reason: ReasonLLMClassifier}
	}
	if strings.Contains(value, "mec") {
		return &IntentDecision{Route: RouteMec, Reason: ReasonLLMClassifier}
	}

	e.l.Warnf(ctx, "%s: unexpected classifier answer %q, continuing ladder", LogPrefixSemantic, raw)
	return nil
}

// isActiveTeam accepts exact or bidirectional substring matches against the
// folded active team names.
func (e *Engine) isActiveTeam(folded string) bool {
	for _, teamFolded := range e.activeTeamsFolded {
		if teamFolded == "" {
			continue
		}
		if strings.Contains(teamFolded, folded) || strings.Contains(folded, teamFolded) {
			return true
		}
	}
	return false
}

func (e *Engine) requestedHuman(in classifyInput) bool {
	for _, re := range e.humanRegexps {
		if re.MatchString(in.text) {
			return true
		}
	}

	hasAction := false
	for _, keyword := range humanActionKeywords {
		if strings.Contains(in.folded, keyword) {
			hasAction = true
			break
		}
	}
	if !hasAction {
		return false
	}
	for _, keyword := range humanTargetKeywords {
		if strings.Contains(in.folded, keyword) {
			return true
		}
	}
	return false
}

func (e *Engine) requestedAI(in classifyInput) bool {
	for _, re := range e.aiRegexps {
		if re.MatchString(in.text) {
			return true
		}
	}
	return false
}
