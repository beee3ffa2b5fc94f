package knowledge

import "time"

const (
	// DefaultTimeout bounds each knowledge query. Retrieval plus generation
	// can take several seconds on cold sessions.
	DefaultTimeout = 90 * time.Second

	// confidenceHigh and confidenceLow implement the length heuristic: a
	// non-trivial answer is assumed reliable, a short one is not.
	confidenceHigh = 0.8
	confidenceLow  = 0.5

	// minAnswerRunes is the length boundary of the heuristic.
	minAnswerRunes = 20
)
