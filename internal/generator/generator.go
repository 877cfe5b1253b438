// Package generator scatters wish cards on the board.
package generator

import (
	"math/rand"
	"time"
)

// Palette holds the card background colors.
var Palette = []string{"#FCE4EC", "#FFE9D6", "#FFF6C7", "#EDE4FA", "#E1EEFB"}

// Placement is the cosmetic jitter of one card.
type Placement struct {
	Tilt    int
	OffsetX int
	OffsetY int
	Color   string
}

// Generator produces randomized card placements.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed for reproducible layouts.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Place returns a placement with tilt in [-5, 5] and offsets in [-maxOffset, maxOffset].
func (g *Generator) Place(maxOffset int) Placement {
	return Placement{
		Tilt:    g.rnd.Intn(11) - 5,
		OffsetX: jitter(g.rnd, maxOffset),
		OffsetY: jitter(g.rnd, maxOffset),
		Color:   Palette[g.rnd.Intn(len(Palette))],
	}
}

// PlaceAll returns n placements.
func (g *Generator) PlaceAll(n, maxOffset int) []Placement {
	result := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, g.Place(maxOffset))
	}
	return result
}

func jitter(rnd *rand.Rand, maxOffset int) int {
	if maxOffset <= 0 {
		return 0
	}
	return rnd.Intn(2*maxOffset+1) - maxOffset
}
