// Package counter owns the process-wide counter: a value that starts at zero
// and grows by one on every tick of its timer.
package counter

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/weegigs/wee-poll-go/wp"
)

const DefaultInterval = 3 * time.Second

const tracerName = "wee-poll-counter"

type Option func(*Counter)

func Logger(log *zerolog.Logger) Option {
	return func(c *Counter) {
		c.log = log
	}
}

// WithTicks drives the counter from ticks instead of a timer.
func WithTicks(ticks <-chan time.Time) Option {
	return func(c *Counter) {
		c.ticks = ticks
	}
}

type Counter struct {
	interval time.Duration
	ticks    <-chan time.Time
	log      *zerolog.Logger

	mu       sync.RWMutex
	snapshot wp.Snapshot
}

func New(interval time.Duration, options ...Option) *Counter {
	if interval <= 0 {
		interval = DefaultInterval
	}

	c := &Counter{interval: interval, snapshot: wp.NewSnapshot(0)}
	for _, option := range options {
		option(c)
	}
	if c.log == nil {
		c.log = &log.Logger
	}

	return c
}

func (c *Counter) Value() uint64 {
	return c.Snapshot().Value
}

func (c *Counter) Snapshot() wp.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot
}

// Run increments the counter on every tick until ctx is done. Run is the only
// writer of the counter and must not be called more than once.
func (c *Counter) Run(ctx context.Context) {
	ticks := c.ticks
	if ticks == nil {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	c.log.Debug().Dur("interval", c.interval).Msg("counter started")
	for {
		select {
		case <-ctx.Done():
			c.log.Debug().Uint64("value", c.Value()).Msg("counter stopped")
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			c.increment(ctx)
		}
	}
}

func (c *Counter) increment(ctx context.Context) {
	_, span := otel.Tracer(tracerName).Start(ctx, "increment counter")
	defer span.End()

	c.mu.RLock()
	next := wp.NewSnapshot(c.snapshot.Value + 1)
	c.mu.RUnlock()

	c.mu.Lock()
	c.snapshot = next
	c.mu.Unlock()

	span.SetAttributes(attribute.Int64("counter.value", int64(next.Value)))
	c.log.Trace().Uint64("value", next.Value).Msg("counter incremented")
}
