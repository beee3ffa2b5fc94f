package knowledge

// Channel selects the answering profile of the knowledge service.
type Channel string

const (
	ChannelChat  Channel = "chat"
	ChannelEmail Channel = "email"
)

// Answer is the result of a knowledge query.
type Answer struct {
	Text       string
	Confidence float64 // 0..1
}

// Config holds the client configuration.
type Config struct {
	BaseURL string
	APIKey  string
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
	Channel   string `json:"channel"`
}

type askResponse struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}
