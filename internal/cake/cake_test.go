package cake

import (
	"testing"
	"time"

	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/effects"
	"github.com/verte-zerg/bday/internal/model"
)

func TestNewRejectsBadCandleCount(t *testing.T) {
	for _, n := range []int{0, -1, MaxCandles + 1} {
		if _, err := New(n, nil, nil, nil); err == nil {
			t.Fatalf("expected error for %d candles", n)
		}
	}
}

func TestBlowOnceUntilRelit(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	var bursts []model.Burst
	wishes := 0
	c, err := New(DefaultCandles, fake, effects.LauncherFunc(func(b model.Burst) { bursts = append(bursts, b) }), func() { wishes++ })
	if err != nil {
		t.Fatalf("new cake: %v", err)
	}
	t.Cleanup(c.Close)

	if !c.CanBlow() {
		t.Fatalf("expected fresh cake to be blowable")
	}
	if !c.Blow() {
		t.Fatalf("expected first blow to succeed")
	}
	if c.Lit() || !c.WishMade() {
		t.Fatalf("expected candles out and wish made")
	}
	if c.Blow() {
		t.Fatalf("expected second blow to be ignored")
	}
	if wishes != 1 || len(bursts) != 1 || bursts[0].Count != effects.CakeBlown.Count {
		t.Fatalf("expected one wish and one burst, got %d %d", wishes, len(bursts))
	}

	fake.Advance(RelightAfter - time.Millisecond)
	if c.Lit() {
		t.Fatalf("expected candles to stay out before relight")
	}
	fake.Advance(time.Millisecond)
	if !c.Lit() || c.WishMade() {
		t.Fatalf("expected candles relit")
	}
	if !c.Blow() || c.Wishes() != 2 {
		t.Fatalf("expected relit cake to accept another wish")
	}
}

func TestCallbackPanicIsContained(t *testing.T) {
	c, err := New(3, clock.NewFake(time.Unix(0, 0)), nil, func() { panic("boom") })
	if err != nil {
		t.Fatalf("new cake: %v", err)
	}
	if !c.Blow() {
		t.Fatalf("expected blow to succeed despite callback panic")
	}
	if c.Lit() {
		t.Fatalf("expected candles out")
	}
}

func TestCloseCancelsRelight(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	c, err := New(3, fake, nil, nil)
	if err != nil {
		t.Fatalf("new cake: %v", err)
	}
	c.Blow()
	c.Close()
	fake.Advance(time.Minute)
	if c.Lit() {
		t.Fatalf("expected no relight after close")
	}
	if fake.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", fake.Pending())
	}
}
