package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler. Callbacks run synchronously on the
// goroutine calling Advance, in deadline order.
type Fake struct {
	mu     sync.Mutex
	cond   *sync.Cond
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	f         *Fake
	at        time.Time
	every     time.Duration
	fn        func()
	seq       int
	cancelled bool
}

// NewFake returns a Fake starting at the given time.
func NewFake(start time.Time) *Fake {
	f := &Fake{now: start}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// After schedules fn once d has elapsed.
func (f *Fake) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return f.add(d, 0, fn)
}

// Every schedules fn every d.
func (f *Fake) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("clock: non-positive interval")
	}
	return f.add(d, d, fn)
}

func (f *Fake) add(d, every time.Duration, fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{f: f, at: f.now.Add(d), every: every, fn: fn, seq: f.seq}
	f.timers = append(f.timers, t)
	f.cond.Broadcast()
	return t
}

func (t *fakeTimer) Cancel() {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.cancelled {
		return
	}
	t.cancelled = true
	t.f.cond.Broadcast()
}

// Advance moves the clock forward by d, firing every callback that comes due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		next := f.nextDueLocked(target)
		if next == nil {
			break
		}
		f.now = next.at
		if next.every > 0 {
			next.at = next.at.Add(next.every)
		} else {
			next.cancelled = true
		}
		f.mu.Unlock()
		next.fn()
		f.mu.Lock()
	}
	f.now = target
	f.compactLocked()
	f.mu.Unlock()
}

func (f *Fake) nextDueLocked(target time.Time) *fakeTimer {
	var next *fakeTimer
	for _, t := range f.timers {
		if t.cancelled || t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (f *Fake) compactLocked() {
	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(f.timers); i++ {
		f.timers[i] = nil
	}
	f.timers = live
}

// Pending reports the number of armed timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pendingLocked()
}

func (f *Fake) pendingLocked() int {
	n := 0
	for _, t := range f.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// BlockUntil waits until at least n timers are armed.
func (f *Fake) BlockUntil(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.pendingLocked() < n {
		f.cond.Wait()
	}
}
