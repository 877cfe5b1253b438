package effects

import (
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bday/internal/model"
)

const (
	defaultStartVelocity = 45.0
	defaultTicks         = 200
	maxParticles         = 600
	velocityScale        = 1.0 / 600.0
	gravity              = 0.004
	decay                = 0.92
)

var glyphs = []rune{'*', '+', '.', 'o', '~', '•'}

type particle struct {
	x, y   float64
	vx, vy float64
	ttl    int
	glyph  rune
	color  string
}

// Field is a terminal confetti simulation. Coordinates are normalized so the
// same field renders at any terminal size.
type Field struct {
	mu        sync.Mutex
	rnd       *rand.Rand
	particles []particle
	styles    map[string]lipgloss.Style
}

// NewField returns an empty field seeded for reproducible bursts.
func NewField(seed int64) *Field {
	return &Field{
		rnd:    rand.New(rand.NewSource(seed)),
		styles: map[string]lipgloss.Style{},
	}
}

// Launch adds the burst's particles, dropping the oldest ones past the cap.
func (f *Field) Launch(b model.Burst) {
	if f == nil || b.Count <= 0 {
		return
	}
	velocity := b.StartVelocity
	if velocity <= 0 {
		velocity = defaultStartVelocity
	}
	ticks := b.Ticks
	if ticks <= 0 {
		ticks = defaultTicks
	}
	colors := b.Colors
	if len(colors) == 0 {
		colors = DefaultColors
	}
	spread := b.Spread * math.Pi / 180

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < b.Count; i++ {
		angle := math.Pi/2 + (f.rnd.Float64()-0.5)*spread
		speed := velocity * (0.5 + f.rnd.Float64()*0.5) * velocityScale
		f.particles = append(f.particles, particle{
			x:     b.Origin.X,
			y:     b.Origin.Y,
			vx:    math.Cos(angle) * speed,
			vy:    -math.Sin(angle) * speed,
			ttl:   ticks/4 + f.rnd.Intn(ticks/4+1),
			glyph: glyphs[f.rnd.Intn(len(glyphs))],
			color: colors[f.rnd.Intn(len(colors))],
		})
	}
	if over := len(f.particles) - maxParticles; over > 0 {
		f.particles = append(f.particles[:0], f.particles[over:]...)
	}
}

// Step advances the simulation by one frame.
func (f *Field) Step() {
	f.mu.Lock()
	defer f.mu.Unlock()
	live := f.particles[:0]
	for _, p := range f.particles {
		p.vx *= decay
		p.vy = p.vy*decay + gravity*velocityScale*60
		p.x += p.vx
		p.y += p.vy
		p.ttl--
		if p.ttl <= 0 || p.y > 1.2 || p.x < -0.2 || p.x > 1.2 {
			continue
		}
		live = append(live, p)
	}
	f.particles = live
}

// Active reports whether any particle is still alive.
func (f *Field) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.particles) > 0
}

// Len returns the live particle count.
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.particles)
}

// Clear removes every particle.
func (f *Field) Clear() {
	f.mu.Lock()
	f.particles = nil
	f.mu.Unlock()
}

// Render draws the field onto a width x height grid. Empty cells are spaces.
func (f *Field) Render(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	type cell struct {
		glyph rune
		color string
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	f.mu.Lock()
	for _, p := range f.particles {
		col := int(p.x * float64(width))
		row := int(p.y * float64(height))
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}
		grid[row][col] = cell{glyph: p.glyph, color: p.color}
	}
	f.mu.Unlock()

	lines := make([]string, height)
	for r, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.glyph == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(f.style(c.color).Render(string(c.glyph)))
		}
		lines[r] = b.String()
	}
	return lines
}

func (f *Field) style(color string) lipgloss.Style {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.styles[color]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		f.styles[color] = s
	}
	return s
}
