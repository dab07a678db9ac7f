// Package catalog loads stamp definitions from TOML and seeds them into categories
package catalog

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/registry"
)

// Sentinel errors
var (
	ErrUnknownKind       = errors.New("unknown stamp kind")
	ErrUnknownDifficulty = errors.New("unknown stamp difficulty")
	ErrDuplicateID       = errors.New("duplicate stamp id")
	ErrInvalidCategory   = errors.New("invalid category")
)

// Catalog is every category a game ships with
type Catalog struct {
	Categories []CategoryDef
}

// CategoryDef describes one persisted category and its stamps
type CategoryDef struct {
	Name   string
	Kind   core.Kind
	Key    string // File name under the stamp directory
	Stamps []StampDef
}

// StampDef is one stamp as authored
type StampDef struct {
	ID         uint32
	Title      string
	Kind       core.Kind
	Difficulty core.Difficulty
}

// File layout
type fileCatalog struct {
	Category []fileCategory `toml:"category"`
}

type fileCategory struct {
	Name  string      `toml:"name"`
	Kind  string      `toml:"kind"`
	Key   string      `toml:"key"`
	Stamp []fileStamp `toml:"stamp"`
}

type fileStamp struct {
	ID         uint32 `toml:"id"`
	Title      string `toml:"title"`
	Kind       string `toml:"kind,omitempty"`
	Difficulty string `toml:"difficulty,omitempty"`
}

// Load reads and validates a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog TOML
// A stamp without kind inherits its category's; a stamp without difficulty is easy
func Parse(data []byte) (*Catalog, error) {
	var f fileCatalog
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{Categories: make([]CategoryDef, 0, len(f.Category))}
	keys := make(map[string]bool, len(f.Category))

	for i, fc := range f.Category {
		def, err := fc.resolve()
		if err != nil {
			return nil, fmt.Errorf("category %d (%q): %w", i, fc.Name, err)
		}
		if keys[def.Key] {
			return nil, fmt.Errorf("category %q: %w: key %q reused", def.Name, ErrInvalidCategory, def.Key)
		}
		keys[def.Key] = true
		c.Categories = append(c.Categories, def)
	}
	return c, nil
}

func (fc fileCategory) resolve() (CategoryDef, error) {
	if fc.Name == "" {
		return CategoryDef{}, fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if err := registry.ValidKey(fc.Key); err != nil {
		return CategoryDef{}, fmt.Errorf("%w: %w", ErrInvalidCategory, err)
	}
	kind, ok := core.ParseKind(fc.Kind)
	if !ok {
		return CategoryDef{}, fmt.Errorf("%w: %q", ErrUnknownKind, fc.Kind)
	}

	def := CategoryDef{
		Name:   fc.Name,
		Kind:   kind,
		Key:    fc.Key,
		Stamps: make([]StampDef, 0, len(fc.Stamp)),
	}
	seen := make(map[uint32]bool, len(fc.Stamp))

	for _, fs := range fc.Stamp {
		sd := StampDef{ID: fs.ID, Title: core.ClampTitle(fs.Title), Kind: kind}
		if fs.Kind != "" {
			if sd.Kind, ok = core.ParseKind(fs.Kind); !ok {
				return CategoryDef{}, fmt.Errorf("stamp %d: %w: %q", fs.ID, ErrUnknownKind, fs.Kind)
			}
		}
		if fs.Difficulty != "" {
			if sd.Difficulty, ok = core.ParseDifficulty(fs.Difficulty); !ok {
				return CategoryDef{}, fmt.Errorf("stamp %d: %w: %q", fs.ID, ErrUnknownDifficulty, fs.Difficulty)
			}
		}
		if seen[fs.ID] {
			return CategoryDef{}, fmt.Errorf("stamp %d: %w", fs.ID, ErrDuplicateID)
		}
		seen[fs.ID] = true
		def.Stamps = append(def.Stamps, sd)
	}
	return def, nil
}

// Marshal encodes the catalog back to TOML
func Marshal(c *Catalog) ([]byte, error) {
	f := fileCatalog{Category: make([]fileCategory, 0, len(c.Categories))}
	for _, def := range c.Categories {
		fc := fileCategory{Name: def.Name, Kind: def.Kind.String(), Key: def.Key}
		for _, s := range def.Stamps {
			fs := fileStamp{ID: s.ID, Title: s.Title}
			if s.Kind != def.Kind {
				fs.Kind = s.Kind.String()
			}
			if s.Kind == core.KindGame {
				fs.Difficulty = s.Difficulty.String()
			}
			fc.Stamp = append(fc.Stamp, fs)
		}
		f.Category = append(f.Category, fc)
	}
	return toml.Marshal(f)
}

// Write saves the catalog to path
func Write(path string, c *Catalog) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Category returns the definition with key
func (c *Catalog) Category(key string) (CategoryDef, bool) {
	for _, def := range c.Categories {
		if def.Key == key {
			return def, true
		}
	}
	return CategoryDef{}, false
}

// Seed registers every stamp of def into cat and returns how many were new
// Existing ids keep their earned state
func Seed(cat *registry.Category, def CategoryDef) int {
	added := 0
	for _, s := range def.Stamps {
		if cat.Register(s.ID, s.Title, s.Kind, s.Difficulty) {
			added++
		}
	}
	return added
}
