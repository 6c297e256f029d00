package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
)

type window struct {
	start  time.Time
	length time.Duration
	count  int64
}

func (w *window) end() time.Time { return w.start.Add(w.length) }

// MemoryLimiter keeps counters in process memory behind a single mutex.
// Counters are per instance; use the Redis limiter when running replicas.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Call it before the limiter is shared.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, length time.Duration, max int64) (domain.RateDecision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.end()) {
		w = &window{start: now, length: length}
		l.windows[key] = w
	}
	w.count++

	return decide(w.count, max, w.end(), now), nil
}

// Purge drops windows that have already ended and returns how many it removed.
func (l *MemoryLimiter) Purge() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for k, w := range l.windows {
		if !now.Before(w.end()) {
			delete(l.windows, k)
			removed++
		}
	}
	return removed
}

// Len reports how many keys currently hold a window.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
