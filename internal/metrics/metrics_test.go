package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	c.Inc()
	c.Add(4)
	assert.Equal(t, uint64(5), c.Load())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Inc("orders.completed")
		}()
	}
	wg.Wait()

	r.Inc("http.requests")

	snap := r.Snapshot()
	assert.Equal(t, uint64(50), snap["orders.completed"])
	assert.Equal(t, uint64(1), snap["http.requests"])
	assert.Same(t, r.Counter("http.requests"), r.Counter("http.requests"))
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}
