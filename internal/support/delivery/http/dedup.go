package http

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DedupGuard remembers recently processed message ids so webhook retries do
// not run the side-effect sequence twice. Entries expire after the TTL;
// capacity bounds memory for bursty senders.
type DedupGuard struct {
	seen *expirable.LRU[int64, time.Time]
}

// NewDedupGuard creates a guard. Zero values fall back to the defaults.
func NewDedupGuard(ttl time.Duration, capacity int) *DedupGuard {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	if capacity <= 0 {
		capacity = defaultDedupCapacity
	}
	return &DedupGuard{
		seen: expirable.NewLRU[int64, time.Time](capacity, nil, ttl),
	}
}

// Seen reports whether id was already recorded within the TTL window and
// records it on first sight.
func (g *DedupGuard) Seen(id int64) bool {
	if _, ok := g.seen.Get(id); ok {
		return true
	}
	g.seen.Add(id, time.Now())
	return false
}
