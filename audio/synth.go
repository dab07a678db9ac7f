package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/parameter"
)

// oscillator generates a sine tone for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at a linear gain; math.Log2(0) is -Inf so zero is mapped to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// bellNote is a sine fundamental with a quieter octave overtone
func bellNote(freq float64, duration, release time.Duration, rate beep.SampleRate) beep.Streamer {
	fund := newEnvelope(newOscillator(freq, duration, rate), duration, parameter.EarnAttack, release, rate)
	over := newEnvelope(newOscillator(freq*2, duration, rate), duration, parameter.EarnAttack, release/2, rate)
	return beep.Mix(
		newVolume(fund, 1-parameter.EarnOvertoneGain),
		newVolume(over, parameter.EarnOvertoneGain),
	)
}

// CreateEarnSound builds the rising two-note chime played when a popup lands
func CreateEarnSound(rate beep.SampleRate, volume float64) beep.Streamer {
	n1 := bellNote(parameter.EarnNote1Freq, parameter.EarnNote1Duration, parameter.EarnNote1Release, rate)
	n2 := bellNote(parameter.EarnNote2Freq, parameter.EarnNote2Duration, parameter.EarnNote2Release, rate)
	return newVolume(beep.Seq(n1, n2), volume)
}

// EarnSoundLength is the chime length in samples at rate
func EarnSoundLength(rate beep.SampleRate) int {
	return rate.N(parameter.EarnNote1Duration) + rate.N(parameter.EarnNote2Duration)
}

// soundEffect returns the streamer for st, nil for unknown types
func soundEffect(st core.SoundType, rate beep.SampleRate, volume float64) beep.Streamer {
	switch st {
	case core.SoundEarn:
		return CreateEarnSound(rate, volume)
	default:
		return nil
	}
}
