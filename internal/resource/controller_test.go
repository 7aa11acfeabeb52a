package resource

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})
	assert.Equal(t, int64(100), c.MemoryLimit())

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Limit exceeded
	err := c.AcquireMemory(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(10))
	assert.Equal(t, int64(100), c.MemoryUsage())
	assert.ErrorIs(t, c.AcquireMemory(1), ErrMemoryLimitExceeded)
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(0), c.MemoryLimit())

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(1<<40))
	assert.Equal(t, int64(1000+(1<<40)), c.MemoryUsage())
}

func TestController_NilAndNonPositive(t *testing.T) {
	var c *Controller
	require.NoError(t, c.AcquireMemory(10))
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())

	c = NewController(Config{MemoryLimitBytes: 10})
	require.NoError(t, c.AcquireMemory(0))
	require.NoError(t, c.AcquireMemory(-5))
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_Concurrent(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 1000})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.AcquireMemory(30)
		}()
	}
	wg.Wait()

	// 33 reservations of 30 fit into 1000.
	assert.Equal(t, int64(990), c.MemoryUsage())
}

func TestPointCost(t *testing.T) {
	assert.Equal(t, 2*(3*8+PointOverhead), PointCost(3, 2))
	assert.Greater(t, PointOverhead, int64(0))
}
