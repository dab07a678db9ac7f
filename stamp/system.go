// Package stamp is the host-facing handle tying stamp categories, the earn queue
// and the popup animator together
package stamp

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/event"
	"github.com/lixenwraith/cpstamp/overlay"
	"github.com/lixenwraith/cpstamp/registry"
	"github.com/lixenwraith/cpstamp/status"
)

// System owns one independent stamp subsystem instance
// Not safe for concurrent use; every call belongs on the host main loop
type System struct {
	dataDir string
	logger  *zap.Logger

	queue    *event.EarnQueue
	animator *overlay.Animator

	categories []*registry.Category

	metrics  *status.Registry
	earned   *atomic.Int64
	dropped  *atomic.Int64
	cycles   *atomic.Int64
	openCats *atomic.Int64
	last     *status.AtomicString
	sound    *atomic.Bool
}

type options struct {
	dataDir string
	logger  *zap.Logger
	policy  event.OverflowPolicy
	sound   bool
	metrics *status.Registry
}

// Option configures a System at construction
type Option func(*options)

// WithDataDir sets the pre-resolved user data directory
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithLogger sets the logger shared by every category
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOverflowPolicy picks what happens when the earn queue is full
func WithOverflowPolicy(p event.OverflowPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithSoundEnabled sets the initial chime state
func WithSoundEnabled(enabled bool) Option {
	return func(o *options) {
		o.sound = enabled
	}
}

// WithMetrics publishes counters into an existing registry
func WithMetrics(r *status.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.metrics = r
		}
	}
}

// New initializes a stamp system over the host's resources
func New(bundle overlay.ResourceBundle, opts ...Option) (*System, error) {
	o := options{
		logger: zap.NewNop(),
		policy: event.OverflowDropOldest,
		sound:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = status.NewRegistry()
	}

	queue := event.NewEarnQueue(o.policy)
	animator, err := overlay.NewAnimator(bundle, queue)
	if err != nil {
		return nil, err
	}
	animator.SetSoundEnabled(o.sound)

	s := &System{
		dataDir:  o.dataDir,
		logger:   o.logger,
		queue:    queue,
		animator: animator,
		metrics:  o.metrics,
		earned:   o.metrics.Ints.Get(status.KeyStampsEarned),
		dropped:  o.metrics.Ints.Get(status.KeyQueueDropped),
		cycles:   o.metrics.Ints.Get(status.KeyAnimatorCycles),
		openCats: o.metrics.Ints.Get(status.KeyCategoriesOpen),
		last:     o.metrics.Strings.Get(status.KeyLastEarned),
		sound:    o.metrics.Bools.Get(status.KeySoundEnabled),
	}
	s.sound.Store(o.sound)
	animator.OnCycleEnd(s.cycleEnded)

	s.logger.Debug("stamp system ready",
		zap.String("data_dir", o.dataDir),
		zap.Stringer("overflow", o.policy),
		zap.Bool("sound", o.sound),
	)
	return s, nil
}

// Open loads or creates a category file under the data directory
// The category routes earn notifications into this system's queue
func (s *System) Open(kind core.Kind, name, key string) (*registry.Category, error) {
	cat, err := registry.Open(s.dataDir, kind, name, key, s.categoryOptions()...)
	if err != nil {
		return nil, err
	}
	s.track(cat)
	return cat, nil
}

// Attach adopts a category built over an injected handle
func (s *System) Attach(kind core.Kind, name string, backing registry.Backing) (*registry.Category, error) {
	cat, err := registry.New(kind, name, backing, s.categoryOptions()...)
	if err != nil {
		return nil, err
	}
	s.track(cat)
	return cat, nil
}

// Earn marks id earned in cat; the popup is queued on success
func (s *System) Earn(cat *registry.Category, id uint32) bool {
	if cat == nil {
		return false
	}
	return cat.Earn(id)
}

// Tick advances the popup one frame
func (s *System) Tick(saveBackground bool) []overlay.DrawCommand {
	return s.animator.Tick(saveBackground)
}

// Restore returns the background restore for double-buffered hosts
func (s *System) Restore() []overlay.DrawCommand {
	return s.animator.Restore()
}

// IsActive reports whether a popup is showing or pending
func (s *System) IsActive() bool {
	return s.animator.IsActive()
}

// SetSoundEnabled toggles the chime
func (s *System) SetSoundEnabled(enabled bool) {
	s.animator.SetSoundEnabled(enabled)
	s.sound.Store(enabled)
}

// Animator exposes the popup state for inspection
func (s *System) Animator() *overlay.Animator {
	return s.animator
}

// Queue exposes the pending notifications
func (s *System) Queue() *event.EarnQueue {
	return s.queue
}

// Metrics returns the counter registry
func (s *System) Metrics() *status.Registry {
	return s.metrics
}

// Categories returns the categories still open, in open order
func (s *System) Categories() []*registry.Category {
	out := make([]*registry.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if !c.Closed() {
			out = append(out, c)
		}
	}
	return out
}

// Close flushes and closes one category
func (s *System) Close(cat *registry.Category) error {
	if cat == nil || cat.Closed() {
		return nil
	}
	err := cat.Close()
	if err != nil {
		s.logger.Error("category close failed", zap.String("category", cat.Name()), zap.Error(err))
	}
	return err
}

// Shutdown closes every open category and releases animator text resources
func (s *System) Shutdown() error {
	var errs []error
	for _, c := range s.categories {
		if err := s.Close(c); err != nil {
			errs = append(errs, err)
		}
	}
	s.categories = nil
	s.animator.Release()
	return errors.Join(errs...)
}

// categoryOptions routes earns into this system and keeps the open gauge in step
// however the category ends up closed
func (s *System) categoryOptions() []registry.Option {
	return []registry.Option{
		registry.WithNotifier(notifier{s}),
		registry.WithLogger(s.logger),
		registry.WithCloseHook(func(*registry.Category) { s.openCats.Add(-1) }),
	}
}

func (s *System) track(cat *registry.Category) {
	s.categories = append(s.categories, cat)
	s.openCats.Add(1)
}

func (s *System) cycleEnded(n core.Notification) {
	s.cycles.Add(1)
	s.logger.Debug("stamp popup finished",
		zap.String("category", n.Category),
		zap.Uint32("id", n.Record.ID),
	)
}

// notifier records earns and mirrors queue drops into metrics
type notifier struct {
	s *System
}

func (n notifier) Push(note core.Notification) bool {
	n.s.earned.Add(1)
	n.s.last.Store(note.Record.Title)
	ok := n.s.queue.Push(note)
	n.s.dropped.Store(int64(n.s.queue.Dropped()))
	return ok
}
