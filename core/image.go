package core

// ImageID indexes the opaque image handles supplied by the host resource bundle
type ImageID int

const (
	ImagePanel ImageID = iota

	ImageGameEasy
	ImageGameNormal
	ImageGameHard
	ImageGameExtreme

	ImageBadgeDefault

	ImageCount
)

// BadgeImage returns the icon for a record
// Game stamps use one icon per difficulty; every other kind shares the default badge
func BadgeImage(r Record) ImageID {
	if r.Kind == KindGame && r.Difficulty.Valid() {
		return ImageGameEasy + ImageID(r.Difficulty)
	}
	return ImageBadgeDefault
}
