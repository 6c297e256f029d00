package domain

import "time"

// RateDecision is the outcome of one fixed-window counter increment.
type RateDecision struct {
	Allowed    bool
	Count      int64
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration // zero when Allowed
}
