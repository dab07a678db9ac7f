package catalog

import "github.com/lixenwraith/cpstamp/core"

// Default is the sample catalog written by `cpstamp init` and used by the demo
// when no catalog file exists
func Default() *Catalog {
	return &Catalog{Categories: []CategoryDef{
		{
			Name: "Activities",
			Kind: core.KindActivity,
			Key:  "activities.dat",
			Stamps: []StampDef{
				{ID: 1, Title: "Early Riser", Kind: core.KindActivity},
				{ID: 2, Title: "Marathon Session", Kind: core.KindActivity},
				{ID: 3, Title: "Explorer", Kind: core.KindActivity},
			},
		},
		{
			Name: "Games",
			Kind: core.KindGame,
			Key:  "games.dat",
			Stamps: []StampDef{
				{ID: 1, Title: "First Steps", Kind: core.KindGame, Difficulty: core.DifficultyEasy},
				{ID: 2, Title: "Steady Hands", Kind: core.KindGame, Difficulty: core.DifficultyNormal},
				{ID: 3, Title: "No Mercy", Kind: core.KindGame, Difficulty: core.DifficultyHard},
				{ID: 4, Title: "Untouchable", Kind: core.KindGame, Difficulty: core.DifficultyExtreme},
			},
		},
		{
			Name: "Events",
			Kind: core.KindEvent,
			Key:  "events.dat",
			Stamps: []StampDef{
				{ID: 1, Title: "Winter Festival", Kind: core.KindEvent},
				{ID: 2, Title: "Launch Party", Kind: core.KindEvent},
			},
		},
		{
			Name: "Pins",
			Kind: core.KindPin,
			Key:  "pins.dat",
			Stamps: []StampDef{
				{ID: 1, Title: "Collector", Kind: core.KindPin},
			},
		},
	}}
}
