package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/cpstamp/core"
)

// drain streams s to completion and returns every sample
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestEarnSoundLengthAndLevel(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(CreateEarnSound(rate, 0.4))

	if want := EarnSoundLength(rate); len(samples) != want {
		t.Fatalf("chime length = %d samples, want %d", len(samples), want)
	}

	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
		if s[0] != s[1] {
			t.Fatal("chime must be mono across both channels")
		}
	}
	if peak == 0 {
		t.Error("chime is silent")
	}
	if peak > 0.4+1e-9 {
		t.Errorf("peak %f exceeds volume", peak)
	}
}

func TestEarnSoundZeroVolumeIsSilent(t *testing.T) {
	samples := drain(CreateEarnSound(beep.SampleRate(22050), 0))
	for i, s := range samples {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, s)
		}
	}
}

func TestEnvelopeStartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(1000)
	samples := drain(bellNote(100, 1e9, 1e8, rate)) // 1s note, 100ms release

	if len(samples) != 1000 {
		t.Fatalf("got %d samples, want 1000", len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 from attack", samples[0][0])
	}
	if math.Abs(samples[999][0]) > 0.05 {
		t.Errorf("last sample = %f, want near 0 from release", samples[999][0])
	}
}

func newTestPlayer(initErr error) (*Player, *[]beep.Streamer) {
	var played []beep.Streamer
	p := NewPlayer()
	p.initDevice = func(beep.SampleRate, int) error { return initErr }
	p.playDevice = func(s beep.Streamer) { played = append(played, s) }
	p.lock = func() {}
	p.unlock = func() {}
	return p, &played
}

// TestPlayerGracefulDegradation verifies calls before Start and after a device failure are no-ops
func TestPlayerGracefulDegradation(t *testing.T) {
	p, played := newTestPlayer(errors.New("no audio device"))

	p.PlaySound(core.SoundEarn)
	if p.Played() != 0 {
		t.Error("PlaySound before Start must be ignored")
	}

	if err := p.Start(); err != nil {
		t.Fatalf("Start must not fail on device error, got %v", err)
	}
	if !p.Silent() {
		t.Error("player should be silent after device failure")
	}
	p.PlaySound(core.SoundEarn)
	if p.Played() != 0 || len(*played) != 0 {
		t.Error("silent player must not touch the device")
	}
	if err := p.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestPlayerMixesEffects(t *testing.T) {
	p, played := newTestPlayer(nil)

	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("second Start should be a no-op, got %v", err)
	}
	if len(*played) != 1 {
		t.Fatalf("mixer handed to speaker %d times, want 1", len(*played))
	}

	p.PlaySound(core.SoundEarn)
	p.PlaySound(core.SoundTypeCount) // Unknown type is ignored
	if p.Played() != 1 {
		t.Errorf("Played = %d, want 1", p.Played())
	}
	if p.mixer.Len() != 1 {
		t.Errorf("mixer holds %d streamers, want 1", p.mixer.Len())
	}

	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}
	if p.mixer.Len() != 0 {
		t.Error("Stop must clear pending effects")
	}
	if err := p.Stop(); err != nil {
		t.Errorf("Stop must be idempotent, got %v", err)
	}
}

func TestPlayerName(t *testing.T) {
	if NewPlayer().Name() != "audio" {
		t.Error("unexpected service name")
	}
}
