// Package audio synthesizes the stamp chime and plays it through the system speaker
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/parameter"
)

// Player mixes one-shot effects into a single speaker stream
// A Player that fails to acquire the device stays silent; the game runs without audio
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	logger  *zap.Logger
	started bool
	silent  bool
	played  int

	// Device hooks, replaced in tests
	initDevice func(beep.SampleRate, int) error
	playDevice func(beep.Streamer)
	lock       func()
	unlock     func()
}

// PlayerOption configures a Player
type PlayerOption func(*Player)

// WithVolume sets the linear chime gain
func WithVolume(v float64) PlayerOption {
	return func(p *Player) {
		p.volume = v
	}
}

// WithPlayerLogger sets the logger for device failures
func WithPlayerLogger(l *zap.Logger) PlayerOption {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPlayer creates a player bound to the default speaker
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{
		rate:       beep.SampleRate(parameter.AudioSampleRate),
		volume:     parameter.EarnVolume,
		mixer:      &beep.Mixer{},
		logger:     zap.NewNop(),
		initDevice: speaker.Init,
		playDevice: func(s beep.Streamer) { speaker.Play(s) },
		lock:       speaker.Lock,
		unlock:     speaker.Unlock,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements service.Service
func (p *Player) Name() string {
	return "audio"
}

// Start opens the speaker; a device error leaves the player silent instead of failing
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	if err := p.initDevice(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		p.logger.Warn("audio device unavailable, running silent", zap.Error(err))
		p.silent = true
		p.started = true
		return nil
	}

	p.playDevice(p.mixer)
	p.started = true
	p.logger.Debug("audio started", zap.Int("sample_rate", int(p.rate)))
	return nil
}

// Stop drops every pending effect
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}
	if !p.silent {
		p.lock()
		p.mixer.Clear()
		p.unlock()
	}
	p.started = false
	p.silent = false
	return nil
}

// PlaySound queues a one-shot effect; no-op before Start or in silent mode
func (p *Player) PlaySound(st core.SoundType) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.silent {
		return
	}
	s := soundEffect(st, p.rate, p.volume)
	if s == nil {
		return
	}

	p.lock()
	p.mixer.Add(s)
	p.unlock()
	p.played++
}

// Silent reports whether the device failed to open
func (p *Player) Silent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.silent
}

// Played returns how many effects were handed to the mixer
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}
