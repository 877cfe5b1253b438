// Package clock provides cancellable one-shot and repeating timers.
package clock

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler arms callbacks after a delay or on a fixed interval.
//
// A callback may already be running when Cancel returns, so owners that
// supersede a schedule must also ignore late callbacks (see the generation
// counters in the typing and wishes packages).
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// Real returns a Scheduler backed by the runtime timers.
func Real() Scheduler {
	return realScheduler{}
}

type realScheduler struct{}

func (realScheduler) Now() time.Time {
	return time.Now()
}

func (realScheduler) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return &afterHandle{t: time.AfterFunc(d, fn)}
}

func (realScheduler) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("clock: non-positive interval")
	}
	h := &everyHandle{stop: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				select {
				case <-h.stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

type afterHandle struct {
	t *time.Timer
}

func (h *afterHandle) Cancel() {
	h.t.Stop()
}

type everyHandle struct {
	once sync.Once
	stop chan struct{}
}

func (h *everyHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

// Cancel cancels every non-nil handle.
func Cancel(handles ...Handle) {
	for _, h := range handles {
		if h != nil {
			h.Cancel()
		}
	}
}
