package effects

import (
	"math/rand"
	"sync"
	"time"

	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/model"
)

const (
	// FireworksDuration is the length of a fireworks show.
	FireworksDuration = 3 * time.Second
	// FireworksInterval is the gap between volleys.
	FireworksInterval = 250 * time.Millisecond

	fireworksPeak = 50
)

var fireworksColors = []string{"#FFD1DC", "#FFE5B4", "#FFE066", "#FF91A4"}

type show struct {
	mu   sync.Mutex
	h    clock.Handle
	done bool
}

func (s *show) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	if s.h != nil {
		s.h.Cancel()
	}
}

// Fireworks fires two bursts every FireworksInterval, one on each side of
// the screen, with particle counts shrinking until FireworksDuration elapses.
func Fireworks(sched clock.Scheduler, l Launcher, rnd *rand.Rand) clock.Handle {
	l = Safe(l)
	end := sched.Now().Add(FireworksDuration)
	s := &show{}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.h = sched.Every(FireworksInterval, func() {
		left := end.Sub(sched.Now())
		if left <= 0 {
			s.Cancel()
			return
		}
		s.mu.Lock()
		done := s.done
		s.mu.Unlock()
		if done {
			return
		}
		count := int(fireworksPeak * float64(left) / float64(FireworksDuration))
		l.Launch(volley(count, randomIn(rnd, 0.1, 0.3), rnd.Float64()-0.2))
		l.Launch(volley(count, randomIn(rnd, 0.7, 0.9), rnd.Float64()-0.2))
	})
	return s
}

func volley(count int, x, y float64) model.Burst {
	return model.Burst{
		Count:         count,
		Spread:        360,
		Origin:        model.Point{X: x, Y: y},
		Colors:        fireworksColors,
		StartVelocity: 30,
		Ticks:         60,
	}
}

func randomIn(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
