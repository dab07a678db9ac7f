package core

// Area represents a rectangular screen region in panel pixel space
type Area struct {
	X, Y          int // Top-left corner, may be negative while sliding in
	Width, Height int // Dimensions
}

// Empty reports whether the area covers no pixels
func (a Area) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}
