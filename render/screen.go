package render

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/overlay"
	"github.com/lixenwraith/cpstamp/parameter"
)

// cell is one saved screen position
type cell struct {
	mainc rune
	combc []rune
	style tcell.Style
}

// CellRect is a rectangle in terminal cells
type CellRect struct {
	X, Y, W, H int
}

// Empty reports whether the rect covers no cells
func (r CellRect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// ToCells maps a pixel area onto the cells it touches
// Partially covered cells are included; coordinates floor toward negative infinity
func ToCells(a core.Area) CellRect {
	if a.Empty() {
		return CellRect{}
	}
	x0 := floorDiv(a.X, parameter.CellPixelWidth)
	y0 := floorDiv(a.Y, parameter.CellPixelHeight)
	x1 := ceilDiv(a.X+a.Width, parameter.CellPixelWidth)
	y1 := ceilDiv(a.Y+a.Height, parameter.CellPixelHeight)
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Screen executes popup draw commands on a tcell screen
// Implements overlay.Executor; Show is left to the caller so one frame flushes once
type Screen struct {
	screen tcell.Screen
	bundle *Bundle
	logger *zap.Logger

	saved     []cell
	savedRect CellRect
	hasSaved  bool
}

// NewScreen binds an initialized tcell screen to the bundle whose handles it will receive
func NewScreen(screen tcell.Screen, bundle *Bundle, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{screen: screen, bundle: bundle, logger: logger}
}

// Execute implements overlay.Executor
func (s *Screen) Execute(cmds []overlay.DrawCommand) {
	for _, c := range cmds {
		switch c.Op {
		case overlay.OpCapture:
			s.capture(ToCells(c.Area))
		case overlay.OpRestore:
			s.restore()
		case overlay.OpImage:
			s.drawImage(c.Image, ToCells(c.Area))
		case overlay.OpText:
			s.drawText(c.Text, ToCells(c.Area))
		case overlay.OpSound:
			// Already played through the bundle
		default:
			s.logger.Warn("unknown draw op", zap.Stringer("op", c.Op))
		}
	}
}

// Captured returns the saved rect, false when nothing is saved
func (s *Screen) Captured() (CellRect, bool) {
	return s.savedRect, s.hasSaved
}

func (s *Screen) capture(r CellRect) {
	r = s.clip(r)
	s.saved = s.saved[:0]
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			mainc, combc, style, _ := s.screen.GetContent(x, y)
			s.saved = append(s.saved, cell{mainc: mainc, combc: combc, style: style})
		}
	}
	s.savedRect = r
	s.hasSaved = true
}

func (s *Screen) restore() {
	if !s.hasSaved {
		return
	}
	r := s.savedRect
	i := 0
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c := s.saved[i]
			s.screen.SetContent(x, y, c.mainc, c.combc, c.style)
			i++
		}
	}
}

func (s *Screen) drawImage(id core.ImageID, r CellRect) {
	img := s.bundle.lookup(id)
	if img == nil {
		return
	}
	style := tcell.StyleDefault.Background(ColorOf(img.Bg)).Foreground(tcell.ColorWhite)
	gx, gy := r.X+r.W/2, r.Y+r.H/2

	c := s.clip(r)
	for y := c.Y; y < c.Y+c.H; y++ {
		for x := c.X; x < c.X+c.W; x++ {
			ch := ' '
			if img.Glyph != 0 && x == gx && y == gy {
				ch = img.Glyph
			}
			s.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// drawText writes runes over the existing background so text sits on the panel
func (s *Screen) drawText(t overlay.Text, r CellRect) {
	txt, ok := t.(*Text)
	if !ok || txt.released {
		return
	}
	w, h := s.screen.Size()
	if r.Y < 0 || r.Y >= h {
		return
	}
	fg := ColorOf(txt.color)
	for i, ch := range txt.runes {
		x := r.X + i
		if x < 0 || x >= w {
			continue
		}
		_, _, under, _ := s.screen.GetContent(x, r.Y)
		_, bg, _ := under.Decompose()
		s.screen.SetContent(x, r.Y, ch, nil, tcell.StyleDefault.Foreground(fg).Background(bg).Bold(true))
	}
}

// clip intersects r with the screen
func (s *Screen) clip(r CellRect) CellRect {
	w, h := s.screen.Size()
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, w), min(r.Y+r.H, h)
	if x1 <= x0 || y1 <= y0 {
		return CellRect{X: x0, Y: y0}
	}
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
