// Package audio plays the birthday tune.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Player plays a looping tune and short chimes. Every method is safe to call
// before Init or after Init failed; the player then stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	tune        *beep.Ctrl
	initialized bool
	playing     bool
	muted       bool
}

// NewPlayer creates a player. Call Init before playing.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	p.volume = &effects.Volume{Streamer: p.mixer, Base: 2, Silent: p.muted}
	speaker.Play(p.volume)
	p.initialized = true
	return nil
}

// Play starts or resumes the tune.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	if p.tune == nil {
		p.tune = &beep.Ctrl{Streamer: beep.Loop(-1, NewTuneGenerator(sampleRate))}
		p.mixer.Add(p.tune)
	}
	p.tune.Paused = false
	speaker.Unlock()
	p.playing = true
}

// Pause pauses the tune.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tune != nil {
		speaker.Lock()
		p.tune.Paused = true
		speaker.Unlock()
	}
	p.playing = false
}

// TogglePlay flips between playing and paused.
func (p *Player) TogglePlay() {
	if p.Playing() {
		p.Pause()
		return
	}
	p.Play()
}

// ToggleMute flips the mute flag and returns the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.volume != nil {
		speaker.Lock()
		p.volume.Silent = p.muted
		speaker.Unlock()
	}
	return p.muted
}

// PlayChime plays a short chime over the tune.
func (p *Player) PlayChime() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(beep.Take(sampleRate.N(400*time.Millisecond), NewChimeGenerator(sampleRate)))
	speaker.Unlock()
}

// Playing reports whether the tune is playing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Available reports whether an audio device was opened.
func (p *Player) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	if p.tune != nil {
		p.tune.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()
	p.tune = nil
	p.playing = false
	p.initialized = false
}
