// Package carousel cycles through birthday memories.
package carousel

import (
	"fmt"
	"sync"
	"time"

	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/model"
)

// AutoplayInterval is the default slide duration.
const AutoplayInterval = 4 * time.Second

// Carousel is a ring of memories with optional autoplay. Manual navigation
// keeps autoplay running.
type Carousel struct {
	mu       sync.Mutex
	sched    clock.Scheduler
	memories []model.Memory
	index    int
	onChange func()

	gen  uint64
	auto clock.Handle
}

// New returns a carousel positioned on the first memory.
func New(memories []model.Memory, sched clock.Scheduler) *Carousel {
	if sched == nil {
		sched = clock.Real()
	}
	cp := make([]model.Memory, len(memories))
	copy(cp, memories)
	return &Carousel{sched: sched, memories: cp}
}

// OnChange registers fn to run after the current slide changes.
func (c *Carousel) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// StartAutoplay advances the carousel every interval, replacing any
// running autoplay.
func (c *Carousel) StartAutoplay(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("autoplay interval must be positive (got %s)", interval)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	if len(c.memories) < 2 {
		return nil
	}
	gen := c.gen
	c.auto = c.sched.Every(interval, func() { c.advance(gen) })
	return nil
}

// StopAutoplay cancels autoplay.
func (c *Carousel) StopAutoplay() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

// Autoplaying reports whether autoplay is armed.
func (c *Carousel) Autoplaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto != nil
}

func (c *Carousel) stopLocked() {
	clock.Cancel(c.auto)
	c.auto = nil
	c.gen++
}

func (c *Carousel) advance(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.Next()
}

// Next moves to the following memory, wrapping at the end.
func (c *Carousel) Next() {
	c.move(1)
}

// Prev moves to the previous memory, wrapping at the start.
func (c *Carousel) Prev() {
	c.move(-1)
}

func (c *Carousel) move(delta int) {
	c.mu.Lock()
	n := len(c.memories)
	if n == 0 {
		c.mu.Unlock()
		return
	}
	c.index = ((c.index+delta)%n + n) % n
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Current returns the memory on screen.
func (c *Carousel) Current() (model.Memory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.memories) == 0 {
		return model.Memory{}, false
	}
	return c.memories[c.index], true
}

// Index returns the current position.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the number of memories.
func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.memories)
}

// Close stops autoplay and drops the change hook.
func (c *Carousel) Close() {
	c.mu.Lock()
	c.stopLocked()
	c.onChange = nil
	c.mu.Unlock()
}
