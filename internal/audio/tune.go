package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

type note struct {
	freq  float64
	beats float64
}

const (
	restFreq = 0
	beat     = 400 * time.Millisecond
)

const (
	g4 = 392.00
	a4 = 440.00
	b4 = 493.88
	c5 = 523.25
	d5 = 587.33
	e5 = 659.25
	f5 = 698.46
	g5 = 783.99
)

var birthdaySong = []note{
	{g4, 0.75}, {g4, 0.25}, {a4, 1}, {g4, 1}, {c5, 1}, {b4, 2},
	{g4, 0.75}, {g4, 0.25}, {a4, 1}, {g4, 1}, {d5, 1}, {c5, 2},
	{g4, 0.75}, {g4, 0.25}, {g5, 1}, {e5, 1}, {c5, 1}, {b4, 1}, {a4, 2},
	{f5, 0.75}, {f5, 0.25}, {e5, 1}, {c5, 1}, {d5, 1}, {c5, 2},
	{restFreq, 2},
}

// TuneGenerator streams a looping melody as soft sine tones.
type TuneGenerator struct {
	sr     beep.SampleRate
	notes  []note
	starts []int
	total  int
	pos    int
}

// NewTuneGenerator creates the birthday song generator.
func NewTuneGenerator(sr beep.SampleRate) *TuneGenerator {
	g := &TuneGenerator{sr: sr, notes: birthdaySong}
	for _, n := range g.notes {
		g.starts = append(g.starts, g.total)
		g.total += sr.N(time.Duration(float64(beat) * n.beats))
	}
	return g
}

// Len returns the number of samples in one pass of the melody.
func (g *TuneGenerator) Len() int {
	return g.total
}

func (g *TuneGenerator) noteAt(offset int) (note, int, int) {
	idx := len(g.starts) - 1
	for i := 1; i < len(g.starts); i++ {
		if offset < g.starts[i] {
			idx = i - 1
			break
		}
	}
	end := g.total
	if idx+1 < len(g.starts) {
		end = g.starts[idx+1]
	}
	return g.notes[idx], offset - g.starts[idx], end - g.starts[idx]
}

func (g *TuneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		offset := g.pos % g.total
		cur, into, length := g.noteAt(offset)
		sample := 0.0
		if cur.freq != restFreq {
			t := float64(into) / float64(g.sr)
			attack := math.Min(float64(into)/float64(g.sr.N(10*time.Millisecond)), 1)
			release := math.Min(float64(length-into)/float64(length)*5, 1)
			sample = 0.2 * attack * release * math.Sin(2*math.Pi*cur.freq*t)
			sample += 0.05 * attack * release * math.Sin(4*math.Pi*cur.freq*t)
		}
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *TuneGenerator) Err() error {
	return nil
}

// ChimeGenerator generates a short two-tone sparkle.
type ChimeGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewChimeGenerator creates a chime generator.
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{sr: sr}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	half := g.sr.N(120 * time.Millisecond)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		freq := e5 * 2
		if g.pos >= half {
			freq = g5 * 2
		}
		sample := 0.15 * math.Exp(-t*6) * math.Sin(2*math.Pi*freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
