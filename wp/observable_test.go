package wp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func notifiesInSubscriptionOrder(t *testing.T) {
	value := NewObservable[uint64](0)

	var calls []string
	value.Subscribe(func(v uint64) { calls = append(calls, "first") })
	value.Subscribe(func(v uint64) { calls = append(calls, "second") })
	value.Subscribe(func(v uint64) { calls = append(calls, "third") })

	assert.True(t, value.Publish(1))
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	assert.Equal(t, uint64(1), value.Value())
}

func passesPublishedValue(t *testing.T) {
	value := NewObservable[uint64](0)

	var seen []uint64
	value.Subscribe(func(v uint64) { seen = append(seen, v) })

	value.Publish(3)
	value.Publish(7)

	assert.Equal(t, []uint64{3, 7}, seen)
}

func skipsUnchangedValue(t *testing.T) {
	value := NewObservable[uint64](5)

	notified := 0
	value.Subscribe(func(uint64) { notified++ })

	assert.False(t, value.Publish(5))
	assert.Equal(t, 0, notified)
}

func unsubscribesByHandle(t *testing.T) {
	value := NewObservable[uint64](0)

	var calls []string
	value.Subscribe(func(uint64) { calls = append(calls, "kept") })
	unsubscribe := value.Subscribe(func(uint64) { calls = append(calls, "removed") })
	value.Subscribe(func(uint64) { calls = append(calls, "last") })

	unsubscribe()
	unsubscribe()
	value.Publish(1)

	assert.Equal(t, []string{"kept", "last"}, calls)
}

func subscribesFromCallback(t *testing.T) {
	value := NewObservable[uint64](0)

	late := 0
	value.Subscribe(func(uint64) {
		value.Subscribe(func(uint64) { late++ })
	})

	value.Publish(1)
	assert.Equal(t, 0, late)

	value.Publish(2)
	assert.Equal(t, 1, late)
}

func TestObservable(t *testing.T) {
	t.Run("notifies in subscription order", notifiesInSubscriptionOrder)
	t.Run("passes the published value", passesPublishedValue)
	t.Run("skips an unchanged value", skipsUnchangedValue)
	t.Run("unsubscribes by handle", unsubscribesByHandle)
	t.Run("subscribes from a callback", subscribesFromCallback)
}
