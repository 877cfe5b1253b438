// Package gift models the surprise gift box.
package gift

import (
	"sync"
	"time"

	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/effects"
)

// EchoDelay is the gap between the opening burst and its echo.
const EchoDelay = 300 * time.Millisecond

// Box is a toggleable gift box that celebrates when opened.
type Box struct {
	mu       sync.Mutex
	sched    clock.Scheduler
	fx       effects.Launcher
	onChange func()

	open   bool
	opened bool

	gen  uint64
	echo clock.Handle
}

// New returns a closed box.
func New(sched clock.Scheduler, fx effects.Launcher) *Box {
	if sched == nil {
		sched = clock.Real()
	}
	return &Box{sched: sched, fx: effects.Safe(fx)}
}

// OnChange registers fn to run after the box opens or closes.
func (b *Box) OnChange(fn func()) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Toggle opens or closes the box and returns the new state. Opening fires a
// burst immediately and a second one after EchoDelay; closing first cancels
// a pending echo.
func (b *Box) Toggle() bool {
	b.mu.Lock()
	clock.Cancel(b.echo)
	b.echo = nil
	b.gen++
	b.open = !b.open
	b.opened = true
	open := b.open
	if open {
		gen := b.gen
		b.echo = b.sched.After(EchoDelay, func() { b.onEcho(gen) })
	}
	fn := b.onChange
	b.mu.Unlock()

	if open {
		b.fx.Launch(effects.GiftOpened)
	}
	if fn != nil {
		fn()
	}
	return open
}

func (b *Box) onEcho(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || !b.open {
		b.mu.Unlock()
		return
	}
	b.echo = nil
	b.mu.Unlock()
	b.fx.Launch(effects.GiftEcho)
}

// Open reports whether the box is open.
func (b *Box) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// HasBeenOpened reports whether the box was ever opened.
func (b *Box) HasBeenOpened() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened
}

// Close cancels the pending echo burst.
func (b *Box) Close() {
	b.mu.Lock()
	clock.Cancel(b.echo)
	b.echo = nil
	b.gen++
	b.onChange = nil
	b.mu.Unlock()
}
