package maritalk

const (
	// DefaultBaseURL is the default Maritaca AI API endpoint.
	DefaultBaseURL = "https://chat.maritaca.ai/api"

	// DefaultModel is the default model to use.
	DefaultModel = "sabiazinho-4"
)
