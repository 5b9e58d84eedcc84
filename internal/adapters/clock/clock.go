package clock

import (
	"sync"
	"time"

	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// System reads the wall clock but never goes backwards: if the wall clock steps
// back, the last returned instant is repeated. Readings are truncated to seconds
// to match the unix-second deadlines of the contract.
type System struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewSystem creates a monotonic wall clock
func NewSystem() *System {
	return &System{now: time.Now}
}

// Now returns the current time
func (c *System) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().Truncate(time.Second)
	if t.Before(c.last) {
		return c.last
	}
	c.last = t
	return t
}

// Manual is a clock that only moves when told to. Set and Advance refuse to
// move it backwards.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual creates a clock pinned at t
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now returns the pinned time
func (c *Manual) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t; earlier instants are ignored
func (c *Manual) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}

// Advance moves the clock forward by d
func (c *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Provide selects the clock for one evaluation: pinned when --at is given
func Provide(cfg *config.RuntimeConfig) usecase.Clock {
	if !cfg.At.IsZero() {
		return NewManual(cfg.At)
	}
	return NewSystem()
}

var (
	_ usecase.Clock = (*System)(nil)
	_ usecase.Clock = (*Manual)(nil)
)
