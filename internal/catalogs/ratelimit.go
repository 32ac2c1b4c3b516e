package catalogs

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ServiceType identifies an upstream data service for rate limiting.
type ServiceType string

const (
	// ServiceVizieR is the CDS VizieR catalogue service.
	ServiceVizieR ServiceType = "vizier"
	// ServiceNED is the NASA/IPAC Extragalactic Database.
	ServiceNED ServiceType = "ned"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each service.
// Both services are shared community infrastructure; the tiled fetchers
// issue hundreds of cone searches per run, so the sustained rates are
// kept low deliberately.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceVizieR: {RequestsPerSecond: 4.0, BurstSize: 4},
	ServiceNED:    {RequestsPerSecond: 1.0, BurstSize: 2},
}

// RateLimiter throttles requests to one upstream service using a token
// bucket, with an additional backoff window for throttling responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
}

// NewRateLimiter creates a rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 2.0, BurstSize: 2}
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
	}
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate
// limit, also respecting any backoff set by RecordThrottle.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordThrottle records a throttling response (HTTP 429/503) and sets a
// backoff window before the next request.
func (r *RateLimiter) RecordThrottle(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 30
	}
	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}
