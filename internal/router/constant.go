package router

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
	LogPrefixSemantic = "internal.router.semantic"
)

// humanPatterns match explicit requests for a person on the normalized text.
var humanPatterns = []string{
	`\bhumano\b`,
	`\batendente\b`,
	`\bespecialista\b`,
	`\bfinanceir\w*\b`,
	`\bsuporte\b`,
	`\bsupport\b`,
	`falar com (uma )?pessoa`,
	`quero falar com (o|a|um|uma)?\s*(suporte|financeiro|atendente|especialista|equipe|time|humano)`,
	`falar com (o|a|um|uma)?\s*(suporte|financeiro|atendente|especialista|equipe|time)`,
	`suporte humano`,
	`quero falar com .*humano`,
	`encaminhar para .*humano`,
	`encaminh(a|e|ar).*(suporte|financeiro|time|equipe|atendente|especialista|humano)`,
	`me encaminh(a|e).*(suporte|financeiro|time|equipe|humano)`,
	`passar para (o|a)?\s*(suporte|financeiro|time|equipe|humano)`,
}

// humanActionKeywords and humanTargetKeywords catch requests the patterns
// miss: any action word plus any target word in the same folded message
// counts as a human request, regardless of word order or inflection.
var humanActionKeywords = []string{
	"falar", "encaminhar", "passar", "transferir", "atender",
	"talk", "speak", "transfer", "escalate",
	"hablar", "escalar",
}

var humanTargetKeywords = []string{
	"humano", "pessoa", "atendente", "especialista", "equipe", "time", "suporte", "financeir",
	"human", "person", "agent", "team", "support",
	"persona", "agente", "equipo", "soporte",
}

// aiPatterns match explicit requests to go back to the AI.
var aiPatterns = []string{
	`\bia\b`,
	`intelig[eê]ncia artificial`,
	`quero ajuda da ia`,
	`voltar para ia`,
	`pode ser pela ia`,
}

// mecKeywords mark academic/regulatory questions for the knowledge agent.
var mecKeywords = []string{
	"mec",
	"regimento",
	"resolução",
	"resolucao",
	"tcc",
	"acc",
	"ufpa",
	"fasi",
	"documento",
	"norma",
	"regra",
	"artigo",
	"credito",
	"crédito",
	"carga horaria",
	"carga horária",
}

// smalltalkVocabulary is matched exactly against the normalized message.
var smalltalkVocabulary = map[string]struct{}{
	"oi":        {},
	"ola":       {},
	"olá":       {},
	"bom dia":   {},
	"boa tarde": {},
	"boa noite": {},
	"tudo bem":  {},
	"obrigado":  {},
	"obrigada":  {},
	"valeu":     {},
	"ok":        {},
}

// maxSmalltalkLen bounds the exact-match shortcut so longer sentences that
// merely start with a greeting are not swallowed.
const maxSmalltalkLen = 40

// smalltalkTrimCutset strips surrounding punctuation before the exact match,
// so "Bom dia!" still counts as a greeting.
const smalltalkTrimCutset = " .,!?;:"

// Semantic classifier prompt. The team list is interpolated at construction.
const (
	semanticInstructionsTemplate = "Você é um classificador de roteamento para atendimento. " +
		"Classifique a mensagem em uma rota: MEC, HUMAN ou DIRECT. " +
		"Use HUMAN quando o usuário pedir pessoa/time/suporte (qualquer idioma). " +
		"Times disponíveis: %s. " +
		"Se identificar um time específico na mensagem, responda: HUMAN:<nome_do_time> " +
		"usando EXATAMENTE um dos nomes disponíveis (%s). " +
		"Se não identificar time específico, responda apenas: HUMAN. " +
		"Use DIRECT para smalltalk/saudações/agradecimentos. " +
		"Use MEC para dúvidas acadêmicas, regulatórias e de documentos. " +
		"Exemplos: 'HUMAN:financeiro', 'HUMAN:suporte', 'HUMAN', 'MEC', 'DIRECT'."

	semanticDefaultTeamList = "suporte"

	semanticTemperature = 0.0
)

// semanticTeamPattern extracts the team annotation from "human:financeiro"
// style answers.
const semanticTeamPattern = `human[:\s]+([a-z0-9_-]+)`
