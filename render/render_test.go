package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/event"
	"github.com/lixenwraith/cpstamp/overlay"
	"github.com/lixenwraith/cpstamp/parameter"
)

type countingPlayer struct{ n int }

func (p *countingPlayer) PlaySound(core.SoundType) { p.n++ }

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func fillBackground(s tcell.Screen) {
	w, h := s.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.SetContent(x, y, '.', nil, style)
		}
	}
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestToCells(t *testing.T) {
	tests := []struct {
		name string
		area core.Area
		want CellRect
	}{
		{"resting panel", core.Area{X: 392, Y: 0, Width: 248, Height: 78}, CellRect{X: 49, Y: 0, W: 31, H: 5}},
		{"sliding in", core.Area{X: 392, Y: -58, Width: 248, Height: 78}, CellRect{X: 49, Y: -4, W: 31, H: 6}},
		{"aligned", core.Area{X: 8, Y: 16, Width: 16, Height: 32}, CellRect{X: 1, Y: 1, W: 2, H: 2}},
		{"empty", core.Area{X: 8, Y: 16}, CellRect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCells(tt.area))
		})
	}
}

func TestBundleResources(t *testing.T) {
	p := &countingPlayer{}
	b := NewBundle(p)

	for id := core.ImagePanel; id < core.ImageCount; id++ {
		_, ok := b.Image(id)
		assert.True(t, ok, "image %d", id)
	}
	_, ok := b.Image(core.ImageCount)
	assert.False(t, ok)

	w, h := b.Font().Render("Stamp", core.TintLight).Size()
	assert.Equal(t, 5*parameter.CellPixelWidth, w)
	assert.Equal(t, parameter.CellPixelHeight, h)

	b.PlaySound(core.SoundEarn)
	assert.Equal(t, 1, p.n)

	NewBundle(nil).PlaySound(core.SoundEarn) // Silent bundle must not panic

	b.SetFont(nil)
	assert.Nil(t, b.Font())
}

func TestPopupCycleRestoresBackground(t *testing.T) {
	scr := newSimScreen(t, parameter.DemoMinWidth, 12)
	fillBackground(scr)

	player := &countingPlayer{}
	bundle := NewBundle(player)
	host := NewScreen(scr, bundle, nil)

	q := event.NewEarnQueue(event.OverflowDropOldest)
	anim, err := overlay.NewAnimator(bundle, q)
	require.NoError(t, err)

	q.Push(core.Notification{Category: "Games", Record: core.Record{
		ID: 1, Title: "First Steps", Kind: core.KindGame, Difficulty: core.DifficultyHard, Earned: true,
	}})

	labelX := parameter.LabelX / parameter.CellPixelWidth
	labelY := parameter.LabelY / parameter.CellPixelHeight
	titleY := parameter.TitleY / parameter.CellPixelHeight

	frames := 0
	for anim.IsActive() {
		host.Execute(anim.Restore())
		host.Execute(anim.Tick(true))
		frames++

		if anim.Timer() == 30 {
			assert.Equal(t, 'S', runeAt(scr, labelX, labelY))
			assert.Equal(t, 'F', runeAt(scr, labelX, titleY))
			assert.Equal(t, '★', findGlyph(scr, '★'))

			_, _, style, _ := scr.GetContent(labelX, labelY)
			fg, bg, _ := style.Decompose()
			assert.Equal(t, ColorOf(core.RGBWhite), fg)
			assert.Equal(t, ColorOf(RGBPanel), bg, "text keeps the panel background")
		}
		require.Less(t, frames, 200, "popup never finished")
	}

	assert.Equal(t, parameter.PopupCycleTicks+1, frames)
	assert.Equal(t, 1, player.n)

	rect, ok := host.Captured()
	require.True(t, ok)
	assert.Equal(t, CellRect{X: 49, Y: 0, W: 31, H: 5}, rect)

	w, h := scr.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			require.Equal(t, '.', runeAt(scr, x, y), "cell %d,%d not restored", x, y)
		}
	}
}

func TestReleasedTextIsSkipped(t *testing.T) {
	scr := newSimScreen(t, 20, 2)
	fillBackground(scr)
	host := NewScreen(scr, NewBundle(nil), nil)

	txt := Font{}.Render("hi", core.TintLight)
	txt.Release()
	host.Execute([]overlay.DrawCommand{{Op: overlay.OpText, Text: txt, Area: core.Area{Width: 16, Height: 16}}})

	assert.Equal(t, '.', runeAt(scr, 0, 0))
	assert.True(t, txt.(*Text).Released())
}

func TestRestoreWithoutCaptureIsNoop(t *testing.T) {
	scr := newSimScreen(t, 10, 2)
	fillBackground(scr)
	host := NewScreen(scr, NewBundle(nil), nil)

	host.Execute([]overlay.DrawCommand{
		{Op: overlay.OpImage, Image: core.ImagePanel, Area: core.Area{Width: 16, Height: 16}},
		{Op: overlay.OpRestore},
	})
	assert.Equal(t, ' ', runeAt(scr, 0, 0), "panel stays drawn")
	_, ok := host.Captured()
	assert.False(t, ok)
}

func findGlyph(s tcell.Screen, g rune) rune {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if runeAt(s, x, y) == g {
				return g
			}
		}
	}
	return 0
}
