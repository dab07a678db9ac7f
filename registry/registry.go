// Package registry owns the per-category stamp catalogs and their backing files
package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/codec"
	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/parameter"
)

// Sentinel errors
var (
	ErrNoDataDir  = errors.New("user data directory is not set")
	ErrIO         = errors.New("stamp storage i/o")
	ErrClosed     = errors.New("category is closed")
	ErrInvalidKey = errors.New("category key must be a plain file name")
)

// Backing is the byte stream a category persists to
// *os.File satisfies it; tests inject in-memory handles
type Backing interface {
	io.Reader
	io.WriterAt
	io.Closer
	Truncate(size int64) error
}

// Notifier receives a notification each time a stamp is newly earned
type Notifier interface {
	Push(n core.Notification) bool
}

// Option configures a Category at open time
type Option func(*Category)

// WithNotifier routes earn notifications to n
func WithNotifier(n Notifier) Option {
	return func(c *Category) {
		c.notifier = n
	}
}

// WithLogger sets the logger used for recoverable storage problems
func WithLogger(l *zap.Logger) Option {
	return func(c *Category) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCloseHook runs fn once, after the category has released its handle
func WithCloseHook(fn func(*Category)) Option {
	return func(c *Category) {
		c.onClose = fn
	}
}

// Dir returns the stamp directory under a user data directory
func Dir(dataDir string) string {
	return filepath.Join(dataDir, parameter.StampDirName)
}

// Open resolves key under <dataDir>/.cpstamps, creating the directory and file as needed,
// and loads any persisted records
// A damaged file is not an error: the category starts from whatever decoded cleanly
func Open(dataDir string, kind core.Kind, name, key string, opts ...Option) (*Category, error) {
	if dataDir == "" {
		return nil, ErrNoDataDir
	}

	if err := ValidKey(key); err != nil {
		return nil, err
	}

	dir := Dir(dataDir)
	if err := os.MkdirAll(dir, parameter.StampDirMode); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	path := filepath.Join(dir, key)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, parameter.StampFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}

	c, err := New(kind, name, f, opts...)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	c.path = path
	return c, nil
}

// ValidKey rejects keys that would resolve outside the stamp directory
func ValidKey(key string) error {
	if key == "" || strings.HasPrefix(key, ".") || filepath.Base(key) != key || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// New builds a category over an already opened handle and decodes its contents
// Only a handle that cannot be read at all is an error; the caller keeps ownership of it
func New(kind core.Kind, name string, backing Backing, opts ...Option) (*Category, error) {
	c := &Category{
		name:    name,
		kind:    kind,
		backing: backing,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("category", name))

	records, err := codec.Decode(backing)
	if errors.Is(err, codec.ErrRead) {
		return nil, err
	}
	if err != nil {
		c.logger.Warn("stamp file damaged, keeping decoded prefix",
			zap.Int("recovered", len(records)),
			zap.Error(err),
		)
	}
	c.records = records
	return c, nil
}

// Flush rewrites the whole record list at offset 0 and trims any tail left by a longer file
func (c *Category) Flush() error {
	if c.closed {
		return ErrClosed
	}

	var buf bytes.Buffer
	buf.Grow(int(codec.EncodedSize(c.records)))
	n, err := codec.Encode(&buf, c.records)
	if err != nil {
		return err
	}

	if _, err := c.backing.WriteAt(buf.Bytes(), 0); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, c.describe(), err)
	}
	if err := c.backing.Truncate(n); err != nil {
		return fmt.Errorf("%w: truncate %s: %w", ErrIO, c.describe(), err)
	}
	return nil
}

// Close flushes, releases the handle and drops the records
// Safe to call more than once; later calls are no-ops
func (c *Category) Close() error {
	if c.closed {
		return nil
	}

	flushErr := c.Flush()
	closeErr := c.backing.Close()

	c.closed = true
	c.records = nil
	c.backing = nil
	if c.onClose != nil {
		c.onClose(c)
	}

	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, c.describe(), closeErr)
	}
	c.logger.Debug("category closed")
	return nil
}

func (c *Category) describe() string {
	if c.path != "" {
		return c.path
	}
	return c.name
}
