// Package maintenance runs periodic housekeeping for process-local state.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/ErlanBelekov/domain-gateway/internal/metrics"
)

const DefaultSpec = "@every 1m"

// Purger drops state that can no longer affect a decision.
type Purger interface {
	Purge() int
}

// Janitor purges expired rate-limit windows on a cron schedule.
type Janitor struct {
	purger Purger
	spec   string
	logger *slog.Logger
}

func NewJanitor(purger Purger, spec string, logger *slog.Logger) *Janitor {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Janitor{
		purger: purger,
		spec:   spec,
		logger: logger.With("component", "janitor"),
	}
}

// Start blocks until ctx is cancelled and a running sweep has finished.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(j.spec, j.sweep); err != nil {
		return fmt.Errorf("schedule janitor %q: %w", j.spec, err)
	}

	c.Start()
	j.logger.Info("janitor started", "spec", j.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	j.logger.Info("janitor shut down")
	return nil
}

func (j *Janitor) sweep() {
	if removed := j.purger.Purge(); removed > 0 {
		metrics.JanitorPurgedTotal.Add(float64(removed))
		j.logger.Debug("purged expired windows", "count", removed)
	}
}
