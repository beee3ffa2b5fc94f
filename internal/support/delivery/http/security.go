package http

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityConfig holds webhook security settings.
type SecurityConfig struct {
	Token           string // shared token expected in the query string
	RateLimitPerMin int    // max requests per minute per source, 0 disables
}

// SecurityValidator validates webhook requests.
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	var rl *rateLimiter
	if config.RateLimitPerMin > 0 {
		rl = newRateLimiter(config.RateLimitPerMin)
	}
	return &SecurityValidator{config: config, rateLimiter: rl}
}

// ValidateToken verifies the shared webhook token.
func (v *SecurityValidator) ValidateToken(token string) error {
	if v.config.Token == "" {
		return fmt.Errorf("webhook token not configured")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.config.Token)) != 1 {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// CheckRateLimit enforces rate limiting per source.
func (v *SecurityValidator) CheckRateLimit(source string) error {
	if v.rateLimiter == nil {
		return nil
	}
	return v.rateLimiter.Allow(source)
}

// rateLimiter keeps one token bucket per source with auto-cleanup.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](1000, nil, 5*time.Minute),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}
