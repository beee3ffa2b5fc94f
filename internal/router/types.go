package router

// Route is the handler chosen for a message.
type Route string

const (
	RouteDirect Route = "direct" // canned reply from the orchestrator itself
	RouteMec    Route = "mec"    // knowledge-backed answering agent
	RouteHuman  Route = "human"  // human support team
)

// Reason records which rule produced a decision. Reasons feed observability
// and audit attributes only; they never drive control flow outside the
// classifier.
type Reason string

const (
	ReasonExplicitHumanRequest     Reason = "explicit_human_request"
	ReasonConversationAlreadyHuman Reason = "conversation_already_human"
	ReasonExplicitAIRequest        Reason = "explicit_ai_request"
	ReasonLLMClassifier            Reason = "llm_classifier"
	ReasonSmalltalk                Reason = "smalltalk"
	ReasonMecDomainKeyword         Reason = "mec_domain_keyword"
	ReasonDefaultMecRoute          Reason = "default_mec_route"
)

// IntentDecision is the immutable result of classifying one message.
type IntentDecision struct {
	Route          Route
	Reason         Reason
	RequestedHuman bool   // explicit "I want a person" signal
	RequestedAI    bool   // explicit "back to the AI" signal
	RequestedTeam  string // team extracted by the semantic fallback, if validated
}
