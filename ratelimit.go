package ottolai

import (
	"context"
	"sync"
	"time"
)

// RateLimiter controls the rate of model invocations using a token bucket
// algorithm. The external model is a shared, slow collaborator; limiting
// call rate is the only protection it gets — failed or throttled calls fall
// through to the next tier, they are never retried.
type RateLimiter struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int // Maximum requests per minute
	BurstSize         int // Maximum burst size (default: same as RPM)
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60 // Default: 60 RPM
	}

	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm // Default burst = RPM
	}

	return &RateLimiter{
		tokens:     burst, // Start with full bucket
		maxTokens:  burst,
		refillRate: rpm / 60.0, // Convert to tokens per second
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.TryAcquire() {
			return nil
		}

		// Calculate wait time for next token
		r.mu.Lock()
		waitTime := time.Duration(float64(time.Second) / r.refillRate)
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
			// Try again
		}
	}
}

// TryAcquire attempts to acquire a token without blocking.
// Returns true if a token was acquired, false otherwise.
func (r *RateLimiter) TryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()

	if r.tokens >= 1 {
		r.tokens--
		return true
	}

	return false
}

// refill adds tokens based on elapsed time (must be called with lock held).
func (r *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(r.lastRefill).Seconds()
	r.lastRefill = now

	r.tokens += elapsed * r.refillRate
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
}

// Available returns the current number of available tokens.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return r.tokens
}

// RateLimitedModel wraps a ModelProvider with rate limiting.
type RateLimitedModel struct {
	model   ModelProvider
	limiter *RateLimiter
}

// NewRateLimitedModel creates a new rate-limited model provider.
func NewRateLimitedModel(model ModelProvider, cfg RateLimitConfig) *RateLimitedModel {
	return &RateLimitedModel{
		model:   model,
		limiter: NewRateLimiter(cfg),
	}
}

// Translate implements ModelProvider with rate limiting.
func (m *RateLimitedModel) Translate(ctx context.Context, text string) (*ModelResult, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, &AdapterError{
			Adapter: "model",
			Message: "rate limit wait cancelled",
			Cause:   err,
		}
	}

	return m.model.Translate(ctx, text)
}

// Limiter returns the underlying rate limiter for inspection.
func (m *RateLimitedModel) Limiter() *RateLimiter {
	return m.limiter
}

var _ ModelProvider = (*RateLimitedModel)(nil)
