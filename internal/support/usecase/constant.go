package usecase

// Canned replies, kept in Portuguese to match the tenant audience.
const (
	replyHumanConfirmation = "Entendido. Vou encaminhar seu atendimento para o time humano."
	replyLowConfidence     = "Não encontrei segurança suficiente para responder com precisão. Vou encaminhar para um especialista humano."
	replyGreeting          = "Olá! Posso ajudar com dúvidas acadêmicas e regulatórias. Qual sua pergunta?"
	replyDirectGeneric     = "Entendi. Posso te ajudar com dúvidas sobre os documentos e regras acadêmicas."
)

// greetingTrimCutset strips surrounding punctuation before the greeting
// lookup, matching the classifier's smalltalk rule.
const greetingTrimCutset = " .,!?;:"

// greetings picks the greeting-specific direct reply over the generic one.
var greetings = map[string]struct{}{
	"oi":        {},
	"ola":       {},
	"olá":       {},
	"bom dia":   {},
	"boa tarde": {},
	"boa noite": {},
}

// Custom attribute keys written to the conversation on every decision.
const (
	attrRoute            = "orchestrator_route"
	attrReason           = "orchestrator_reason"
	attrTimestamp        = "orchestrator_ts"
	attrFirstInteraction = "first_interaction"
	attrHandledBy        = "handled_by"
	attrConfidence       = "orchestrator_confidence"
)

// handled_by attribute values.
const (
	handledByHumanTeam         = "human_team"
	handledByOrchestrator      = "agent_orchestrator"
	handledByMec               = "agent_mec"
	handledByLowConfidenceTeam = "human_team_after_low_confidence"
)

// directConfidence is recorded for canned replies: high but never 1.0, so a
// later scoring pass can still tell them apart from verified answers.
const directConfidence = 0.95

// Team inference keywords for the precedence chain: a finance mention maps to
// a finance team, a generic support/team mention maps to the support team.
var (
	financeKeywords     = []string{"financeir"}
	supportKeywords     = []string{"suport", "support", "soporte"}
	genericTeamKeywords = []string{"equipe", "time", "team", "equipo"}
)
