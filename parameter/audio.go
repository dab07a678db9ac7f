package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Earn Chime
// Two-note rising bell, fundamental plus one octave overtone per note
const (
	EarnNote1Freq     = 783.99  // G5
	EarnNote2Freq     = 1174.66 // D6
	EarnNote1Duration = 90 * time.Millisecond
	EarnNote2Duration = 420 * time.Millisecond
	EarnAttack        = 5 * time.Millisecond
	EarnNote1Release  = 40 * time.Millisecond
	EarnNote2Release  = 320 * time.Millisecond
	EarnOvertoneGain  = 0.35
	EarnVolume        = 0.4
)
