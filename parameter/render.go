package parameter

// Terminal Cell Geometry
// The popup is laid out in pixels; the terminal host maps pixels onto character cells
const (
	CellPixelWidth  = 8
	CellPixelHeight = 16
)

// Terminal Resource Sizes (pixels)
const (
	PanelImageWidth  = 248
	PanelImageHeight = 78

	BadgeImageWidth  = 40
	BadgeImageHeight = 48
)

// Demo Host
const (
	// DemoMinWidth is the narrowest terminal that fits the whole panel
	DemoMinWidth = (PanelX + PanelImageWidth + CellPixelWidth - 1) / CellPixelWidth

	// DefaultDemoFPS drives one popup tick per frame
	DefaultDemoFPS = 30
)
