// Package cake models the birthday cake candles.
package cake

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/effects"
)

const (
	// DefaultCandles is the candle count used by the greeting.
	DefaultCandles = 5
	// MaxCandles keeps the cake drawable in a terminal.
	MaxCandles = 12
	// RelightAfter is how long candles stay out after a wish.
	RelightAfter = 5 * time.Second
)

// Cake tracks whether the candles are lit and whether a wish was made.
type Cake struct {
	mu         sync.Mutex
	sched      clock.Scheduler
	fx         effects.Launcher
	onWishMade func()
	onChange   func()

	candles  int
	lit      bool
	wishMade bool
	wishes   int

	gen     uint64
	relight clock.Handle
}

// New returns a cake with lit candles.
func New(candles int, sched clock.Scheduler, fx effects.Launcher, onWishMade func()) (*Cake, error) {
	if candles <= 0 || candles > MaxCandles {
		return nil, fmt.Errorf("candles must be between 1 and %d (got %d)", MaxCandles, candles)
	}
	if sched == nil {
		sched = clock.Real()
	}
	return &Cake{
		sched:      sched,
		fx:         effects.Safe(fx),
		onWishMade: onWishMade,
		candles:    candles,
		lit:        true,
	}, nil
}

// OnChange registers fn to run after the candles change state.
func (c *Cake) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Blow puts out the candles. It returns false while a wish is already made.
func (c *Cake) Blow() bool {
	c.mu.Lock()
	if !c.lit || c.wishMade {
		c.mu.Unlock()
		return false
	}
	c.lit = false
	c.wishMade = true
	c.wishes++
	clock.Cancel(c.relight)
	c.gen++
	gen := c.gen
	c.relight = c.sched.After(RelightAfter, func() { c.onRelight(gen) })
	onWishMade := c.onWishMade
	c.mu.Unlock()

	c.fx.Launch(effects.CakeBlown)
	if onWishMade != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("cake: wish callback failed: %v", r)
				}
			}()
			onWishMade()
		}()
	}
	c.notify()
	return true
}

func (c *Cake) onRelight(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.relight = nil
	c.lit = true
	c.wishMade = false
	c.mu.Unlock()
	c.notify()
}

func (c *Cake) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Close cancels the pending relight.
func (c *Cake) Close() {
	c.mu.Lock()
	clock.Cancel(c.relight)
	c.relight = nil
	c.gen++
	c.onChange = nil
	c.mu.Unlock()
}

// Candles returns the candle count.
func (c *Cake) Candles() int {
	return c.candles
}

// Lit reports whether the candles are burning.
func (c *Cake) Lit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lit
}

// WishMade reports whether a wish is waiting for the candles to relight.
func (c *Cake) WishMade() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wishMade
}

// CanBlow reports whether Blow would succeed.
func (c *Cake) CanBlow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lit && !c.wishMade
}

// Wishes returns how many times the candles were blown out.
func (c *Cake) Wishes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wishes
}
