package registry

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/core"
)

// Category is a named, independently persisted list of stamp records
// Insertion order is registration order is file order
// Not safe for concurrent use; owned by the host main loop
type Category struct {
	name string
	kind core.Kind
	path string

	records []core.Record
	backing Backing
	closed  bool

	notifier Notifier
	onClose  func(*Category)
	logger   *zap.Logger
}

// Name returns the display name
func (c *Category) Name() string {
	return c.name
}

// Kind returns the category kind
func (c *Category) Kind() core.Kind {
	return c.kind
}

// Path returns the backing file path, empty for injected handles
func (c *Category) Path() string {
	return c.path
}

// Closed reports whether Close has run
func (c *Category) Closed() bool {
	return c.closed
}

// Register appends an unearned record at the tail
// Registering an id that already exists refreshes its title, kind and difficulty in place
// and keeps its earned flag, so seeding the catalog every run stays idempotent
// Returns true when a new record was appended
func (c *Category) Register(id uint32, title string, kind core.Kind, difficulty core.Difficulty) bool {
	if c.closed {
		return false
	}

	title = core.ClampTitle(title)
	if i := c.index(id); i >= 0 {
		r := &c.records[i]
		r.Title = title
		r.Kind = kind
		r.Difficulty = difficulty
		return false
	}

	c.records = append(c.records, core.Record{
		ID:         id,
		Title:      title,
		Kind:       kind,
		Difficulty: difficulty,
	})
	return true
}

// IsRegistered reports whether id is in the catalog
func (c *Category) IsRegistered(id uint32) bool {
	return c.index(id) >= 0
}

// Lookup returns a copy of the record with id
func (c *Category) Lookup(id uint32) (core.Record, bool) {
	i := c.index(id)
	if i < 0 {
		return core.Record{}, false
	}
	return c.records[i], true
}

// Earn marks id earned and notifies the earn queue
// Returns false, without side effects, for unknown or already earned ids
func (c *Category) Earn(id uint32) bool {
	i := c.index(id)
	if i < 0 || c.records[i].Earned {
		return false
	}

	c.records[i].Earned = true
	if c.notifier != nil {
		if !c.notifier.Push(core.Notification{Category: c.name, Record: c.records[i]}) {
			c.logger.Warn("earn queue full, notification rejected", zap.Uint32("id", id))
		}
	}
	c.logger.Debug("stamp earned", zap.Uint32("id", id), zap.String("title", c.records[i].Title))
	return true
}

// ClearAll resets every earned flag; pending notifications are left alone
func (c *Category) ClearAll() {
	for i := range c.records {
		c.records[i].Earned = false
	}
}

// Records returns a copy of the records in order
func (c *Category) Records() []core.Record {
	out := make([]core.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of registered records
func (c *Category) Len() int {
	return len(c.records)
}

// EarnedCount returns how many records are earned
func (c *Category) EarnedCount() int {
	n := 0
	for i := range c.records {
		if c.records[i].Earned {
			n++
		}
	}
	return n
}

func (c *Category) index(id uint32) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}
