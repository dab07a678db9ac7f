// Package overlay runs the "Stamp Earned!" popup as a tick-driven state machine
package overlay

import (
	"errors"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/event"
	"github.com/lixenwraith/cpstamp/parameter"
)

// ErrMissingPanel is returned when the bundle has no panel image to size the popup with
var ErrMissingPanel = errors.New("resource bundle has no panel image")

// Phase names the segment of the popup cycle
type Phase uint8

const (
	PhaseIdle     Phase = iota // Nothing shown
	PhaseEntering              // Ticks 0..13: delay then slide in
	PhaseHolding               // Ticks 14..51: fully visible
	PhaseExiting               // Ticks 52..55: slide out
	PhaseDone                  // Tick 56: next Tick resets and advances
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEntering:
		return "entering"
	case PhaseHolding:
		return "holding"
	case PhaseExiting:
		return "exiting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Animator pops notifications off the earn queue and emits draw commands for each tick
// Single-threaded: Tick and Restore run on the host render loop
type Animator struct {
	bundle ResourceBundle
	queue  *event.EarnQueue

	panelW, panelH int

	// Per-cycle state
	timer    int
	showing  bool
	current  core.Notification
	title    [2]Text // Indexed by core.Tint
	captured bool

	// Fixed label rendered once at construction
	label [2]Text

	soundEnabled bool
	cycles       uint64
	onCycleEnd   func(core.Notification)
}

// NewAnimator sizes the popup from the bundle's panel image and pre-renders the fixed label
func NewAnimator(bundle ResourceBundle, queue *event.EarnQueue) (*Animator, error) {
	panel, ok := bundle.Image(core.ImagePanel)
	if !ok {
		return nil, ErrMissingPanel
	}

	a := &Animator{
		bundle:       bundle,
		queue:        queue,
		soundEnabled: true,
	}
	a.panelW, a.panelH = panel.Size()

	if font := bundle.Font(); font != nil {
		a.label[core.TintDark] = font.Render(parameter.PopupLabel, core.TintDark)
		a.label[core.TintLight] = font.Render(parameter.PopupLabel, core.TintLight)
	}
	return a, nil
}

// SetSoundEnabled gates the chime at the landing tick
func (a *Animator) SetSoundEnabled(enabled bool) {
	a.soundEnabled = enabled
}

// SoundEnabled reports whether the chime will play
func (a *Animator) SoundEnabled() bool {
	return a.soundEnabled
}

// OnCycleEnd registers a callback invoked each time a popup finishes
func (a *Animator) OnCycleEnd(fn func(core.Notification)) {
	a.onCycleEnd = fn
}

// IsActive reports whether a popup is on screen or waiting
func (a *Animator) IsActive() bool {
	return a.showing || !a.queue.Empty()
}

// Timer returns the tick counter of the current cycle
func (a *Animator) Timer() int {
	return a.timer
}

// Current returns the notification being shown
func (a *Animator) Current() (core.Notification, bool) {
	return a.current, a.showing
}

// Cycles returns how many popups have completed
func (a *Animator) Cycles() uint64 {
	return a.cycles
}

// Phase returns the current cycle segment
func (a *Animator) Phase() Phase {
	switch {
	case !a.showing:
		return PhaseIdle
	case a.timer < parameter.PopupHoldStartTick:
		return PhaseEntering
	case a.timer < parameter.PopupExitStartTick:
		return PhaseHolding
	case a.timer < parameter.PopupCycleTicks:
		return PhaseExiting
	default:
		return PhaseDone
	}
}

// PanelArea is the fixed capture/restore rectangle
func (a *Animator) PanelArea() core.Area {
	return core.Area{X: parameter.PanelX, Y: parameter.PanelY, Width: a.panelW, Height: a.panelH}
}

// Tick advances the popup one frame and returns what the host must draw
//
// saveBackground asks for one capture of the panel area, on the first drawn tick of
// the cycle, before anything is drawn over it. Hosts presenting partial rects can pass false
func (a *Animator) Tick(saveBackground bool) []DrawCommand {
	if !a.showing {
		n, ok := a.queue.Pop()
		if !ok {
			return nil
		}
		a.begin(n)
	}

	if a.timer >= parameter.PopupCycleTicks {
		a.finish()
		return nil
	}

	var cmds []DrawCommand

	if a.timer >= parameter.PopupFirstDrawTick && saveBackground && !a.captured {
		cmds = append(cmds, DrawCommand{Op: OpCapture, Area: a.PanelArea()})
		a.captured = true
	}

	if a.timer == parameter.PopupSoundTick && a.soundEnabled {
		a.bundle.PlaySound(core.SoundEarn)
		cmds = append(cmds, DrawCommand{Op: OpSound, Sound: core.SoundEarn})
	}

	if a.timer >= parameter.PopupFirstDrawTick {
		cmds = a.appendPanel(cmds, a.panelTop(a.timer))
	}

	a.timer++
	return cmds
}

// Restore returns the command that erases the panel from a double-buffered frame
// Only valid after a capture this cycle and while 8 < timer <= 56
func (a *Animator) Restore() []DrawCommand {
	if !a.showing || !a.captured {
		return nil
	}
	if a.timer <= parameter.PopupFirstDrawTick || a.timer > parameter.PopupCycleTicks {
		return nil
	}
	return []DrawCommand{{Op: OpRestore, Area: a.PanelArea()}}
}

// Release frees the fixed label and any in-flight title texts
func (a *Animator) Release() {
	a.releaseTitle()
	for i, t := range a.label {
		if t != nil {
			t.Release()
			a.label[i] = nil
		}
	}
}

func (a *Animator) begin(n core.Notification) {
	a.current = n
	a.showing = true
	a.timer = 0
	a.captured = false

	if font := a.bundle.Font(); font != nil {
		a.title[core.TintDark] = font.Render(n.Record.Title, core.TintDark)
		a.title[core.TintLight] = font.Render(n.Record.Title, core.TintLight)
	}
}

func (a *Animator) finish() {
	done := a.current

	a.releaseTitle()
	a.timer = 0
	a.showing = false
	a.captured = false
	a.current = core.Notification{}
	a.cycles++

	if a.onCycleEnd != nil {
		a.onCycleEnd(done)
	}
}

func (a *Animator) releaseTitle() {
	for i, t := range a.title {
		if t != nil {
			t.Release()
			a.title[i] = nil
		}
	}
}

// panelTop maps a drawn tick to the panel's top edge
func (a *Animator) panelTop(tick int) int {
	switch {
	case tick < parameter.PopupHoldStartTick:
		return parameter.PopupEnterKeyframes[tick-parameter.PopupFirstDrawTick] - a.panelH
	case tick < parameter.PopupExitStartTick:
		return parameter.PanelY
	default:
		return parameter.PopupExitKeyframes[tick-parameter.PopupExitStartTick] - a.panelH
	}
}

func (a *Animator) appendPanel(cmds []DrawCommand, y int) []DrawCommand {
	cmds = append(cmds, DrawCommand{
		Op:    OpImage,
		Image: core.ImagePanel,
		Area:  core.Area{X: parameter.PanelX, Y: y, Width: a.panelW, Height: a.panelH},
	})

	cmds = appendShadowed(cmds, a.label, parameter.LabelX, y+parameter.LabelY)
	cmds = appendShadowed(cmds, a.title, parameter.TitleX, y+parameter.TitleY)

	icon := core.BadgeImage(a.current.Record)
	if img, ok := a.bundle.Image(icon); ok {
		w, h := img.Size()
		cmds = append(cmds, DrawCommand{
			Op:    OpImage,
			Image: icon,
			Area: core.Area{
				X:      parameter.BadgeSlotX + (parameter.BadgeSlotWidth-w)/2,
				Y:      y + parameter.BadgeY,
				Width:  w,
				Height: h,
			},
		})
	}
	return cmds
}

// appendShadowed draws the dark copy offset down-right, then the light copy on top
func appendShadowed(cmds []DrawCommand, texts [2]Text, x, y int) []DrawCommand {
	for _, tint := range [...]core.Tint{core.TintDark, core.TintLight} {
		t := texts[tint]
		if t == nil {
			continue
		}
		shift := 0
		if tint == core.TintDark {
			shift = parameter.ShadowShift
		}
		w, h := t.Size()
		cmds = append(cmds, DrawCommand{
			Op:   OpText,
			Text: t,
			Area: core.Area{X: x + shift, Y: y + shift, Width: w, Height: h},
		})
	}
	return cmds
}
