// Package effects provides the confetti service used by the greeting sections.
package effects

import (
	"log"

	"github.com/verte-zerg/bday/internal/model"
)

// Launcher fires a particle burst. Launches are best effort.
type Launcher interface {
	Launch(b model.Burst)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(b model.Burst)

// Launch calls f(b).
func (f LauncherFunc) Launch(b model.Burst) {
	f(b)
}

// Nop discards every burst.
type Nop struct{}

// Launch implements Launcher.
func (Nop) Launch(model.Burst) {}

// Safe wraps l so that a missing or panicking launcher never reaches the caller.
func Safe(l Launcher) Launcher {
	switch l.(type) {
	case nil:
		return Nop{}
	case Nop, safeLauncher:
		return l
	}
	return safeLauncher{l: l}
}

type safeLauncher struct {
	l Launcher
}

func (s safeLauncher) Launch(b model.Burst) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("effects: launch failed: %v", r)
		}
	}()
	s.l.Launch(b)
}

// DefaultColors is the pastel palette shared by most bursts.
var DefaultColors = []string{"#FFD1DC", "#FFE5B4", "#FFE066"}

// Preset bursts.
var (
	Celebrate = model.Burst{Count: 100, Spread: 70, Origin: model.Point{X: 0.5, Y: 0.6}, Colors: DefaultColors}
	WishSent  = model.Burst{Count: 50, Spread: 45, Origin: model.Point{X: 0.5, Y: 0.8}, Colors: DefaultColors}
	CakeBlown = model.Burst{
		Count:  120,
		Spread: 70,
		Origin: model.Point{X: 0.5, Y: 0.7},
		Colors: []string{"#FFD1DC", "#FFE5B4", "#FFE066", "#FF91A4"},
	}
	GiftOpened = model.Burst{
		Count:  150,
		Spread: 90,
		Origin: model.Point{X: 0.5, Y: 0.6},
		Colors: []string{"#FFD1DC", "#FFE5B4", "#FFE066", "#FF91A4", "#FFA500"},
	}
	GiftEcho = model.Burst{
		Count:  100,
		Spread: 120,
		Origin: model.Point{X: 0.5, Y: 0.8},
		Colors: []string{"#FF69B4", "#FFB6C1", "#FFA07A", "#98FB98"},
	}
)
