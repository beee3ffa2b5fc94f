package model

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// ManagedLabels are the conversation labels whose membership is fully owned
// by the orchestrator: on every routing decision they are removed and exactly
// the set matching the new route is re-applied. Externally applied labels are
// never touched.
type ManagedLabels struct {
	Orchestrator string // conversation handled by the orchestrator directly
	Mec          string // conversation answered by the knowledge agent
	Human        string // conversation routed to the human team
	Failure      string // AI escalated after a low-confidence answer
}

// All returns the managed label names.
func (m ManagedLabels) All() []string {
	return []string{m.Orchestrator, m.Mec, m.Human, m.Failure}
}

// DefaultManagedLabels matches the labels provisioned in Chatwoot.
func DefaultManagedLabels() ManagedLabels {
	return ManagedLabels{
		Orchestrator: "ia_orquestrador",
		Mec:          "ia_mec",
		Human:        "humano",
		Failure:      "ia_falha",
	}
}
