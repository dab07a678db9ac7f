// Package render hosts the stamp popup on a tcell terminal screen
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/overlay"
	"github.com/lixenwraith/cpstamp/parameter"
)

// Popup palette
var (
	RGBPanel      = core.RGB{R: 54, G: 58, B: 79}
	RGBBadgeEasy  = core.RGB{R: 158, G: 206, B: 106}
	RGBBadgeNorm  = core.RGB{R: 224, G: 175, B: 104}
	RGBBadgeHard  = core.RGB{R: 247, G: 118, B: 142}
	RGBBadgeExtr  = core.RGB{R: 187, G: 154, B: 247}
	RGBBadgeOther = core.RGB{R: 125, G: 207, B: 255}
)

// SoundPlayer is the audio capability handed to the bundle; *audio.Player satisfies it
type SoundPlayer interface {
	PlaySound(st core.SoundType)
}

// Image is a flat-colored block with an optional centered glyph
type Image struct {
	W, H  int // Pixels
	Bg    core.RGB
	Glyph rune
}

// Size implements overlay.Image
func (i *Image) Size() (int, int) {
	return i.W, i.H
}

// Text is a rendered string in one tint
type Text struct {
	runes    []rune
	color    core.RGB
	released bool
}

// Size implements overlay.Text; each rune is one cell
func (t *Text) Size() (int, int) {
	return len(t.runes) * parameter.CellPixelWidth, parameter.CellPixelHeight
}

// Release implements overlay.Text
func (t *Text) Release() {
	t.released = true
	t.runes = nil
}

// Released reports whether the animator has freed the text
func (t *Text) Released() bool {
	return t.released
}

// Font renders strings into cell runs
type Font struct{}

// Render implements overlay.Font
func (Font) Render(text string, tint core.Tint) overlay.Text {
	return &Text{runes: []rune(text), color: tint.RGB()}
}

// Bundle is the terminal ResourceBundle
type Bundle struct {
	images [core.ImageCount]*Image
	font   overlay.Font
	sound  SoundPlayer
}

// NewBundle builds the default terminal resources; sound may be nil
func NewBundle(sound SoundPlayer) *Bundle {
	b := &Bundle{font: Font{}, sound: sound}
	b.images[core.ImagePanel] = &Image{W: parameter.PanelImageWidth, H: parameter.PanelImageHeight, Bg: RGBPanel}

	badge := func(bg core.RGB, glyph rune) *Image {
		return &Image{W: parameter.BadgeImageWidth, H: parameter.BadgeImageHeight, Bg: bg, Glyph: glyph}
	}
	b.images[core.ImageGameEasy] = badge(RGBBadgeEasy, '◇')
	b.images[core.ImageGameNormal] = badge(RGBBadgeNorm, '◆')
	b.images[core.ImageGameHard] = badge(RGBBadgeHard, '★')
	b.images[core.ImageGameExtreme] = badge(RGBBadgeExtr, '✪')
	b.images[core.ImageBadgeDefault] = badge(RGBBadgeOther, '●')
	return b
}

// Image implements overlay.ResourceBundle
func (b *Bundle) Image(id core.ImageID) (overlay.Image, bool) {
	if id < 0 || id >= core.ImageCount || b.images[id] == nil {
		return nil, false
	}
	return b.images[id], true
}

// Font implements overlay.ResourceBundle
func (b *Bundle) Font() overlay.Font {
	return b.font
}

// PlaySound implements overlay.ResourceBundle
func (b *Bundle) PlaySound(st core.SoundType) {
	if b.sound != nil {
		b.sound.PlaySound(st)
	}
}

// SetImage replaces one resource
func (b *Bundle) SetImage(id core.ImageID, img *Image) {
	if id >= 0 && id < core.ImageCount {
		b.images[id] = img
	}
}

// SetFont replaces the font; nil disables text
func (b *Bundle) SetFont(f overlay.Font) {
	b.font = f
}

// lookup returns the concrete image for id
func (b *Bundle) lookup(id core.ImageID) *Image {
	if id < 0 || id >= core.ImageCount {
		return nil
	}
	return b.images[id]
}

// ColorOf converts a palette color to a tcell color
func ColorOf(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
