// Package jobs runs the periodic housekeeping of the API process.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Expirer removes rows that are no longer usable and reports how many went.
type Expirer interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// ExpirerFunc adapts a plain function to Expirer
type ExpirerFunc func(ctx context.Context) (int64, error)

// CleanupExpired calls f
func (f ExpirerFunc) CleanupExpired(ctx context.Context) (int64, error) {
	return f(ctx)
}

// Sweeper forgets idle in-memory state, like rate limiter visitors
type Sweeper interface {
	Sweep() int
}

// Cleanup deletes expired sessions, OTP challenges and reset tokens on a cron schedule.
type Cleanup struct {
	cron     *cron.Cron
	spec     string
	timeout  time.Duration
	expirers map[string]Expirer
	sweepers map[string]Sweeper
	logger   zerolog.Logger
}

// NewCleanup creates a cleanup job running on spec (standard 5-field syntax or a
// descriptor such as @hourly)
func NewCleanup(spec string, logger zerolog.Logger) *Cleanup {
	return &Cleanup{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:     spec,
		timeout:  time.Minute,
		expirers: map[string]Expirer{},
		sweepers: map[string]Sweeper{},
		logger:   logger,
	}
}

// Expire registers a store to clean on every run
func (c *Cleanup) Expire(name string, e Expirer) *Cleanup {
	c.expirers[name] = e
	return c
}

// Sweep registers an in-memory sweeper to run on every run
func (c *Cleanup) Sweep(name string, s Sweeper) *Cleanup {
	c.sweepers[name] = s
	return c
}

// Start schedules the job and starts the cron scheduler in its own goroutine
func (c *Cleanup) Start() error {
	if _, err := c.cron.AddFunc(c.spec, func() { c.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("failed to schedule cleanup job %q: %w", c.spec, err)
	}
	c.cron.Start()
	c.logger.Info().Str("spec", c.spec).Msg("Cleanup job scheduled")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish or ctx to expire
func (c *Cleanup) Stop(ctx context.Context) {
	select {
	case <-c.cron.Stop().Done():
	case <-ctx.Done():
		c.logger.Warn().Msg("Cleanup job did not finish before shutdown")
	}
}

// RunOnce performs one cleanup pass. A failing store is logged and does not stop the
// others. It returns the number of removed rows per store.
func (c *Cleanup) RunOnce(ctx context.Context) map[string]int64 {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	removed := make(map[string]int64, len(c.expirers)+len(c.sweepers))
	for name, e := range c.expirers {
		n, err := e.CleanupExpired(ctx)
		if err != nil {
			c.logger.Error().Err(err).Str("store", name).Msg("Cleanup failed")
			continue
		}
		removed[name] = n
	}
	for name, s := range c.sweepers {
		removed[name] = int64(s.Sweep())
	}

	event := c.logger.Info()
	for name, n := range removed {
		event = event.Int64(name, n)
	}
	event.Msg("Cleanup finished")
	return removed
}
