package overlay

import "github.com/lixenwraith/cpstamp/core"

// ResourceBundle supplies the host's opaque rendering and audio handles
// The animator never touches pixels; it only sizes handles and hands them back in commands
type ResourceBundle interface {
	// Image returns the handle for id, false when the host has none
	Image(id core.ImageID) (Image, bool)
	// Font returns the popup font, nil when text rendering is unavailable
	Font() Font
	// PlaySound triggers a one-shot effect
	PlaySound(st core.SoundType)
}

// Image is a host-owned bitmap
type Image interface {
	Size() (w, h int)
}

// Font renders text into host-owned resources
type Font interface {
	Render(text string, tint core.Tint) Text
}

// Text is a rendered string; the animator releases per-popup texts when the cycle ends
type Text interface {
	Size() (w, h int)
	Release()
}
