package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapGetReturnsStablePointer(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get(KeyStampsEarned)
	b := r.Ints.Get(KeyStampsEarned)
	assert.Same(t, a, b)
	assert.True(t, r.Ints.Has(KeyStampsEarned))
	assert.False(t, r.Ints.Has(KeyQueueDropped))
}

func TestIntSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyStampsEarned).Add(3)
	r.Ints.Get(KeyAnimatorCycles).Add(1)
	r.Bools.Get(KeySoundEnabled).Store(true)

	assert.Equal(t, map[string]int64{
		KeyStampsEarned:   3,
		KeyAnimatorCycles: 1,
	}, r.IntSnapshot())
	assert.Equal(t, 3, r.TotalCount())
}

func TestRangeSorted(t *testing.T) {
	r := NewRegistry()
	for _, k := range []string{"c", "a", "b"} {
		r.Ints.Get(k)
	}

	var keys []string
	r.Ints.Range(func(key string, _ *atomic.Int64) { keys = append(keys, key) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ints.Get(KeyQueueDropped).Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(16), r.Ints.Get(KeyQueueDropped).Load())
	assert.Equal(t, 1, r.Ints.Count())
}

func TestAtomicStringTruncatesOnRuneBoundary(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())

	s.Store("First Steps")
	assert.Equal(t, "First Steps", s.Load())

	// 31 ASCII bytes then a 3-byte rune straddling the limit
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa★tail"
	s.Store(long)
	assert.Equal(t, long[:31], s.Load())
}
