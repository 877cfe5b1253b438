// Package typing reveals a message one character at a time.
package typing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/verte-zerg/bday/internal/clock"
)

// BlinkPeriod is the cursor blink half-period.
const BlinkPeriod = 500 * time.Millisecond

var (
	// ErrInvalidSpeed is returned when the reveal interval is below one millisecond.
	ErrInvalidSpeed = errors.New("typing: speed must be at least 1ms")
	// ErrInvalidDelay is returned for a negative start delay.
	ErrInvalidDelay = errors.New("typing: start delay must not be negative")
)

// Status is the reveal state.
type Status int

// Reveal states.
const (
	Idle Status = iota
	Delaying
	Typing
	Complete
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Delaying:
		return "delaying"
	case Typing:
		return "typing"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Engine drives the reveal of a single text. It is safe for concurrent use;
// timer callbacks from superseded sessions are dropped.
type Engine struct {
	mu    sync.Mutex
	sched clock.Scheduler

	full     []rune
	revealed int
	status   Status
	cursor   bool

	gen   uint64
	delay clock.Handle
	tick  clock.Handle
	blink clock.Handle

	onChange func()
}

// New returns an idle engine. A nil scheduler uses the runtime timers.
func New(sched clock.Scheduler) *Engine {
	if sched == nil {
		sched = clock.Real()
	}
	return &Engine{sched: sched}
}

// OnChange registers fn to run after every observable change. fn runs
// without the engine lock held.
func (e *Engine) OnChange(fn func()) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// Validate reports a configuration error for the given timing parameters.
func Validate(speed, startDelay time.Duration) error {
	if speed < time.Millisecond {
		return fmt.Errorf("%w (got %s)", ErrInvalidSpeed, speed)
	}
	if startDelay < 0 {
		return fmt.Errorf("%w (got %s)", ErrInvalidDelay, startDelay)
	}
	return nil
}

// Start resets the reveal and arms the start delay. Any previous session's
// timers are cancelled first.
func (e *Engine) Start(text string, speed, startDelay time.Duration) error {
	if err := Validate(speed, startDelay); err != nil {
		return err
	}

	e.mu.Lock()
	e.cancelLocked()
	gen := e.gen
	e.full = []rune(text)
	e.revealed = 0
	e.status = Delaying
	e.cursor = true
	e.blink = e.sched.Every(BlinkPeriod, func() { e.onBlink(gen) })
	e.delay = e.sched.After(startDelay, func() { e.onDelay(gen, speed) })
	e.mu.Unlock()

	e.notify()
	return nil
}

// Stop cancels pending timers and returns to Idle. The revealed prefix is kept.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.cancelLocked()
	changed := e.status != Idle || e.cursor
	e.status = Idle
	e.cursor = false
	e.mu.Unlock()

	if changed {
		e.notify()
	}
}

// Close stops the engine and drops the change hook.
func (e *Engine) Close() {
	e.Stop()
	e.OnChange(nil)
}

func (e *Engine) cancelLocked() {
	clock.Cancel(e.delay, e.tick, e.blink)
	e.delay, e.tick, e.blink = nil, nil, nil
	e.gen++
}

func (e *Engine) onDelay(gen uint64, speed time.Duration) {
	e.mu.Lock()
	if gen != e.gen || e.status != Delaying {
		e.mu.Unlock()
		return
	}
	e.delay = nil
	e.status = Typing
	e.tick = e.sched.Every(speed, func() { e.onTick(gen) })
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.status != Typing {
		e.mu.Unlock()
		return
	}
	if e.revealed < len(e.full) {
		e.revealed++
	}
	if e.revealed == len(e.full) {
		e.status = Complete
		e.cursor = false
		clock.Cancel(e.tick, e.blink)
		e.tick, e.blink = nil, nil
	}
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) onBlink(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.status == Idle || e.status == Complete {
		e.mu.Unlock()
		return
	}
	e.cursor = !e.cursor
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) notify() {
	e.mu.Lock()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Text returns the revealed prefix.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.full[:e.revealed])
}

// FullText returns the text of the current session.
func (e *Engine) FullText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.full)
}

// Revealed returns the number of revealed runes.
func (e *Engine) Revealed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revealed
}

// Status returns the current state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// CursorVisible reports the blink signal. It is false once the reveal completes.
func (e *Engine) CursorVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Progress returns the revealed fraction in [0, 1].
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.full) == 0 {
		if e.status == Complete {
			return 1
		}
		return 0
	}
	return float64(e.revealed) / float64(len(e.full))
}
