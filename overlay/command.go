package overlay

import (
	"fmt"

	"github.com/lixenwraith/cpstamp/core"
)

// Op is the kind of instruction a DrawCommand carries
type Op uint8

const (
	// OpCapture copies the screen inside Area into the host's save buffer
	OpCapture Op = iota
	// OpImage blits Image with its top-left at Area.X, Area.Y
	OpImage
	// OpText blits Text with its top-left at Area.X, Area.Y
	OpText
	// OpRestore copies the save buffer back over Area
	OpRestore
	// OpSound reports that Sound was triggered through the bundle this tick
	OpSound
)

func (o Op) String() string {
	switch o {
	case OpCapture:
		return "capture"
	case OpImage:
		return "image"
	case OpText:
		return "text"
	case OpRestore:
		return "restore"
	case OpSound:
		return "sound"
	default:
		return "unknown"
	}
}

// DrawCommand is one instruction for the host renderer, executed in slice order
type DrawCommand struct {
	Op    Op
	Area  core.Area
	Image core.ImageID
	Text  Text
	Sound core.SoundType
}

func (c DrawCommand) String() string {
	switch c.Op {
	case OpImage:
		return fmt.Sprintf("image %d @%d,%d", c.Image, c.Area.X, c.Area.Y)
	case OpSound:
		return fmt.Sprintf("sound %d", c.Sound)
	default:
		return fmt.Sprintf("%s @%d,%d %dx%d", c.Op, c.Area.X, c.Area.Y, c.Area.Width, c.Area.Height)
	}
}

// Executor runs commands against a concrete screen
type Executor interface {
	Execute(cmds []DrawCommand)
}
