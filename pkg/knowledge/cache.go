package knowledge

import (
	"context"
	"time"

	"support-orchestrator/pkg/textnorm"
	"support-orchestrator/pkg/ttlcache"
)

type cacheKey struct {
	session  string
	question string
}

// CachedService wraps a Service with a TTL answer cache so repeated webhook
// deliveries of the same question do not hit the answering backend again.
// Keys pair the session with the normalized question; sessions never share
// cached answers.
type CachedService struct {
	inner Service
	cache *ttlcache.Cache[cacheKey, Answer]
}

var _ Service = (*CachedService)(nil)

// NewCachedService decorates svc with an answer cache of the given TTL and
// capacity.
func NewCachedService(svc Service, ttl time.Duration, capacity int) *CachedService {
	return &CachedService{
		inner: svc,
		cache: ttlcache.New[cacheKey, Answer](ttl, capacity),
	}
}

// Ask consults the cache before delegating. Empty answers are never cached.
func (s *CachedService) Ask(ctx context.Context, question, session string, channel Channel) (Answer, error) {
	key := cacheKey{session: session, question: textnorm.Normalize(question)}

	if answer, ok := s.cache.Get(key); ok {
		return answer, nil
	}

	answer, err := s.inner.Ask(ctx, question, session, channel)
	if err != nil {
		return Answer{}, err
	}
	if answer.Text != "" {
		s.cache.Put(key, answer)
	}
	return answer, nil
}
