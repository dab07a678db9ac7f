package parameter

// Popup Timing
// One tick per rendered frame; the whole effect is keyframed on the tick counter
const (
	// PopupCycleTicks is the drawn length of one popup cycle; the following tick resets
	PopupCycleTicks = 56

	// PopupFirstDrawTick is the first tick the panel is visible; earlier ticks are a delay
	PopupFirstDrawTick = 8

	// PopupHoldStartTick is the first tick the panel rests fully visible at y=0
	PopupHoldStartTick = 14

	// PopupExitStartTick is the first tick of the slide-out
	PopupExitStartTick = 52

	// PopupSoundTick plays the earn chime as the panel lands
	PopupSoundTick = 11
)

// PopupEnterKeyframes maps ticks 8..13 to the panel's bottom edge (y + panel height)
var PopupEnterKeyframes = [...]int{20, 40, 53, 66, 72, 78}

// PopupExitKeyframes maps ticks 52..55 to the panel's bottom edge
var PopupExitKeyframes = [...]int{77, 67, 51, 29}

// Popup Layout (panel pixel space)
const (
	// PanelX is the fixed left edge of the panel
	PanelX = 392

	// PanelY is the resting top edge, also the capture/restore origin
	PanelY = 0

	// Label and title positions; dark copy drawn +2,+2 from the light copy
	LabelX      = 490
	LabelY      = 20
	TitleX      = 490
	TitleY      = 40
	ShadowShift = 2

	// BadgeSlotX is the left edge of the icon slot; icons center within BadgeSlotWidth
	BadgeSlotX     = 410
	BadgeSlotWidth = 73
	BadgeY         = 6

	// PopupLabel is the fixed headline drawn above the stamp title
	PopupLabel = "Stamp Earned!"
)
