package store

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionStopBlocksLaterDeliveries(t *testing.T) {
	sub := &subscription{cancel: func() {}}

	var delivered int
	sub.deliver(func() { delivered++ })
	sub.stop()
	sub.deliver(func() { delivered++ })

	assert.Equal(t, 1, delivered)
}

func TestSubscriptionStopIsIdempotent(t *testing.T) {
	sub := &subscription{cancel: func() {}}

	sub.stop()
	sub.stop()

	var delivered bool
	sub.deliver(func() { delivered = true })
	assert.False(t, delivered)
}

func TestSubscriptionFailFiresOnce(t *testing.T) {
	sub := &subscription{cancel: func() {}}

	var failures, delivered int
	sub.fail(func() { failures++ })
	sub.fail(func() { failures++ })
	sub.deliver(func() { delivered++ })

	assert.Equal(t, 1, failures, "the terminal error fires exactly once")
	assert.Zero(t, delivered, "a failed feed delivers nothing afterwards")
}

func TestSubscriptionFailAfterStopIsDropped(t *testing.T) {
	sub := &subscription{cancel: func() {}}

	sub.stop()
	var failures int
	sub.fail(func() { failures++ })

	assert.Zero(t, failures, "stopping wins over a racing failure")
}

func TestSubscriptionNoDeliveryAfterConcurrentStop(t *testing.T) {
	sub := &subscription{cancel: func() {}}

	var count atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				sub.deliver(func() { count.Add(1) })
			}
		}()
	}

	close(start)
	sub.stop()
	afterStop := count.Load()
	wg.Wait()

	assert.Equal(t, afterStop, count.Load(),
		"once stop returns, no callback may run, even from an in-flight deliver")
}
