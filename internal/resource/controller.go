package resource

import (
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/golsh/index"
	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the hard limit.
var ErrMemoryLimitExceeded = index.ErrMemoryLimitExceeded

// PointOverhead is the fixed per-copy cost charged for a stored point:
// the ID, the slice header of its vector and a bucket slot.
const PointOverhead = int64(unsafe.Sizeof(uint64(0)) + unsafe.Sizeof([]float64(nil)))

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for table memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64
}

// Controller tracks table memory and enforces the optional hard limit.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	return c
}

// PointCost returns the bytes charged for storing one point of the given
// dimension in numTables tables.
func PointCost(dimension, numTables int) int64 {
	return int64(numTables) * (int64(dimension)*8 + PointOverhead)
}

// AcquireMemory reserves bytes without blocking.
// Returns ErrMemoryLimitExceeded if the hard limit would be exceeded.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return ErrMemoryLimitExceeded
	}

	c.memUsed.Add(bytes)
	return nil
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured hard limit, or 0 if unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}
