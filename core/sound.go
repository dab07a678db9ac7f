package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundEarn SoundType = iota // Stamp earned chime
	SoundTypeCount
)
