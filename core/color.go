package core

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Tint selects the color a text resource is rendered with
// The popup draws each string twice, dark then light, offset by 2px for an outline
type Tint uint8

const (
	TintDark Tint = iota
	TintLight
)

// RGB returns the color for the tint
func (t Tint) RGB() RGB {
	if t == TintLight {
		return RGBWhite
	}
	return RGBBlack
}
