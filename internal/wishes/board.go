// Package wishes implements the bounded wish board.
package wishes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/effects"
	"github.com/verte-zerg/bday/internal/model"
)

const (
	// DefaultCapacity is the board size when none is configured.
	DefaultCapacity = 10
	// DefaultLatency is the simulated submission round trip.
	DefaultLatency = 500 * time.Millisecond
	// MaxTextLength is the longest accepted wish, in characters.
	MaxTextLength = 200
	// DefaultAuthor is attached to every wish.
	DefaultAuthor = "Anonymous"
)

// ErrInvalidCapacity is returned for a non-positive capacity.
var ErrInvalidCapacity = errors.New("wishes: capacity must be greater than 0")

// Option configures a Board.
type Option func(*Board)

// WithClock sets the scheduler used for the simulated latency and timestamps.
func WithClock(sched clock.Scheduler) Option {
	return func(b *Board) { b.sched = sched }
}

// WithLatency overrides the simulated submission latency.
func WithLatency(d time.Duration) Option {
	return func(b *Board) { b.latency = d }
}

// WithOnSubmit registers the notification called after each accepted wish.
func WithOnSubmit(fn func(text string)) Option {
	return func(b *Board) { b.onSubmit = fn }
}

// WithEffects sets the confetti launcher fired after each accepted wish.
func WithEffects(l effects.Launcher) Option {
	return func(b *Board) { b.fx = l }
}

// WithAuthor overrides the author stamped on new wishes.
func WithAuthor(author string) Option {
	return func(b *Board) { b.author = author }
}

// WithIDFunc overrides wish id generation. seq starts at 1 and never repeats.
func WithIDFunc(fn func(seq int) string) Option {
	return func(b *Board) { b.newID = fn }
}

// Board is an append-only list of wishes with a fixed capacity. At most one
// submission is in flight at a time.
type Board struct {
	mu       sync.Mutex
	capacity int
	entries  []model.Wish
	inFlight bool
	seq      int

	sched    clock.Scheduler
	latency  time.Duration
	onSubmit func(string)
	fx       effects.Launcher
	author   string
	newID    func(int) string
}

// NewBoard returns an empty board.
func NewBoard(capacity int, opts ...Option) (*Board, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidCapacity, capacity)
	}
	b := &Board{
		capacity: capacity,
		sched:    clock.Real(),
		latency:  DefaultLatency,
		author:   DefaultAuthor,
		newID:    defaultID,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.sched == nil {
		b.sched = clock.Real()
	}
	b.fx = effects.Safe(b.fx)
	if strings.TrimSpace(b.author) == "" {
		b.author = DefaultAuthor
	}
	return b, nil
}

func defaultID(seq int) string {
	return fmt.Sprintf("wish-%d-%s", seq, uuid.NewString())
}

// CanSubmit reports whether raw would currently be accepted.
func (b *Board) CanSubmit(raw string) bool {
	text := strings.TrimSpace(raw)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.acceptsLocked(text)
}

func (b *Board) acceptsLocked(text string) bool {
	if text == "" || utf8.RuneCountInString(text) > MaxTextLength {
		return false
	}
	return len(b.entries) < b.capacity && !b.inFlight
}

// Submit trims raw and, if accepted, appends a new wish after the simulated
// latency. Rejected input (empty, too long, board full, or another
// submission in flight) returns false without changing the board. A context
// cancelled during the latency also returns false and appends nothing.
func (b *Board) Submit(ctx context.Context, raw string) (model.Wish, bool) {
	text := strings.TrimSpace(raw)

	b.mu.Lock()
	if !b.acceptsLocked(text) {
		b.mu.Unlock()
		return model.Wish{}, false
	}
	b.inFlight = true
	b.mu.Unlock()

	if err := b.wait(ctx); err != nil {
		b.mu.Lock()
		b.inFlight = false
		b.mu.Unlock()
		return model.Wish{}, false
	}

	b.mu.Lock()
	b.seq++
	wish := model.Wish{
		ID:          b.newID(b.seq),
		Text:        text,
		SubmittedAt: b.sched.Now(),
		Author:      b.author,
	}
	b.entries = append(b.entries, wish)
	b.inFlight = false
	onSubmit := b.onSubmit
	b.mu.Unlock()

	b.fx.Launch(effects.WishSent)
	notify(onSubmit, text)
	return wish, true
}

func (b *Board) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.latency <= 0 {
		return nil
	}
	done := make(chan struct{})
	h := b.sched.After(b.latency, func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		h.Cancel()
		return ctx.Err()
	}
}

func notify(fn func(string), text string) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("wishes: submit callback failed: %v", r)
		}
	}()
	fn(text)
}

// Entries returns a copy of the wishes in submission order.
func (b *Board) Entries() []model.Wish {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Wish, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of wishes.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Cap returns the board capacity.
func (b *Board) Cap() int {
	return b.capacity
}

// Full reports whether the board has reached capacity.
func (b *Board) Full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries) >= b.capacity
}

// InFlight reports whether a submission is waiting to commit.
func (b *Board) InFlight() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inFlight
}
