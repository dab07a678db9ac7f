package status

import "sync/atomic"

// Well-known counter keys published by the stamp system
const (
	KeyStampsEarned   = "stamps.earned"
	KeyQueueDropped   = "queue.dropped"
	KeyAnimatorCycles = "animator.cycles"
	KeyCategoriesOpen = "categories.open"

	KeyLastEarned = "stamps.last"

	KeySoundEnabled = "sound.enabled"
)

// Registry is the central metrics facade
// Components cache pointers during init; hot paths write directly to atomics
// so a host UI thread can read counters while the main loop updates them
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// IntSnapshot copies every int counter, keyed by name
func (r *Registry) IntSnapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}
