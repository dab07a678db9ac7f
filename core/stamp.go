package core

import (
	"strings"
	"unicode/utf8"
)

// Kind is the stamp category kind, selects the badge icon set
type Kind uint32

const (
	KindActivity Kind = iota
	KindGame
	KindEvent
	KindPin
	kindCount
)

var kindNames = [kindCount]string{"activity", "game", "event", "pin"}

// Valid reports whether the kind is inside the persisted enum range
func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a case-insensitive kind name
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Difficulty grades game stamps; carried but unused for other kinds
type Difficulty uint32

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyExtreme
	difficultyCount
)

var difficultyNames = [difficultyCount]string{"easy", "normal", "hard", "extreme"}

// Valid reports whether the difficulty is inside the persisted enum range
func (d Difficulty) Valid() bool {
	return d < difficultyCount
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return difficultyNames[d]
}

// ParseDifficulty resolves a case-insensitive difficulty name
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if name == s {
			return Difficulty(i), true
		}
	}
	return 0, false
}

// MaxTitleBytes is the longest title that fits the one-byte length field
// once the trailing NUL is counted
const MaxTitleBytes = 254

// Record is one trackable achievement
type Record struct {
	ID         uint32
	Title      string
	Kind       Kind
	Difficulty Difficulty
	Earned     bool
}

// Notification is a pending "stamp earned" popup
// Record is a snapshot taken at earn time so the popup survives its category being closed
type Notification struct {
	Category string
	Record   Record
}

// ClampTitle cuts a title at the first NUL and to MaxTitleBytes on a rune boundary
func ClampTitle(title string) string {
	if i := strings.IndexByte(title, 0); i >= 0 {
		title = title[:i]
	}
	if len(title) <= MaxTitleBytes {
		return title
	}
	cut := MaxTitleBytes
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return title[:cut]
}
