package ottolai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 60, BurstSize: 3})

	for i := 0; i < 3; i++ {
		if !rl.TryAcquire() {
			t.Fatalf("acquire %d should succeed within burst", i)
		}
	}
	if rl.TryAcquire() {
		t.Error("acquire beyond burst should fail")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	// 6000 RPM = 100 tokens/second, so a short sleep refills.
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 6000, BurstSize: 1})

	if !rl.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if rl.TryAcquire() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.TryAcquire() {
		t.Error("bucket should have refilled")
	}
}

func TestRateLimiterAvailable(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 60, BurstSize: 5})

	if got := rl.Available(); got < 4.9 {
		t.Errorf("fresh limiter should be near full, got %v", got)
	}
	rl.TryAcquire()
	if got := rl.Available(); got > 4.5 {
		t.Errorf("expected roughly one token consumed, got %v", got)
	}
}

func TestRateLimiterWaitCancellation(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 1, BurstSize: 1})
	rl.TryAcquire() // drain

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); err == nil {
		t.Error("expected context error from Wait")
	}
}

func TestRateLimitedModel(t *testing.T) {
	inner := &mockModel{
		translations: map[string]string{"كتاب": "kitap"},
		confidence:   0.9,
	}
	m := NewRateLimitedModel(inner, RateLimitConfig{RequestsPerMinute: 600, BurstSize: 2})

	res, err := m.Translate(context.Background(), "كتاب")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.TranslatedText != "kitap" {
		t.Errorf("unexpected translation: %q", res.TranslatedText)
	}
	if inner.callCount != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.callCount)
	}
}

func TestRateLimitedModelCancelled(t *testing.T) {
	inner := &mockModel{translations: map[string]string{}}
	m := NewRateLimitedModel(inner, RateLimitConfig{RequestsPerMinute: 1, BurstSize: 1})
	m.Limiter().TryAcquire() // drain

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Translate(ctx, "كتاب")
	if err == nil {
		t.Fatal("expected error")
	}

	var adapterErr *AdapterError
	if !errors.As(err, &adapterErr) {
		t.Fatalf("expected AdapterError, got %T", err)
	}
	if adapterErr.Adapter != "model" {
		t.Errorf("expected model adapter, got %q", adapterErr.Adapter)
	}
	if inner.callCount != 0 {
		t.Errorf("inner model must not run after cancellation, got %d calls", inner.callCount)
	}
}
