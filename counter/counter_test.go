package counter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-poll-go/wp"
)

type test = func(t *testing.T)

func startsAtZero(t *testing.T) {
	c := New(DefaultInterval)

	assert.Equal(t, uint64(0), c.Value())
	assert.Equal(t, wp.NewSnapshot(0), c.Snapshot())
}

func countsTicks(ticks int) test {
	return func(t *testing.T) {
		source := make(chan time.Time)
		c := New(DefaultInterval, WithTicks(source))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			c.Run(ctx)
			close(done)
		}()

		for i := 0; i < ticks; i++ {
			source <- time.Now()
		}
		// closing the source ends Run once every tick has been applied
		close(source)
		<-done
		cancel()

		assert.Equal(t, uint64(ticks), c.Value())
	}
}

func refreshesValidator(t *testing.T) {
	source := make(chan time.Time)
	c := New(DefaultInterval, WithTicks(source))
	before := c.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	source <- time.Now()
	assert.Eventually(t, func() bool { return c.Value() == 1 }, time.Second, time.Millisecond)

	after := c.Snapshot()
	assert.Equal(t, "1", after.Text)
	assert.Equal(t, wp.Validator([]byte("1")), after.Validator)
	assert.NotEqual(t, before.Validator, after.Validator)
}

func incrementsOnTimer(t *testing.T) {
	c := New(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	assert.Eventually(t, func() bool { return c.Value() >= 3 }, 2*time.Second, time.Millisecond)
}

func stopsWithContext(t *testing.T) {
	source := make(chan time.Time, 1)
	c := New(DefaultInterval, WithTicks(source))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Run(ctx)

	assert.Equal(t, uint64(0), c.Value())
}

func TestCounter(t *testing.T) {
	t.Run("starts at zero", startsAtZero)
	t.Run("counts a single tick", countsTicks(1))
	t.Run("counts many ticks", countsTicks(250))
	t.Run("refreshes the validator on tick", refreshesValidator)
	t.Run("increments on its own timer", incrementsOnTimer)
	t.Run("stops with its context", stopsWithContext)
}
