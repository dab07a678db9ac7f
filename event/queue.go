package event

import (
	"github.com/lixenwraith/cpstamp/core"
	"github.com/lixenwraith/cpstamp/parameter"
)

// OverflowPolicy decides what Push does when every usable slot is pending
type OverflowPolicy uint8

const (
	// OverflowDropOldest discards the oldest pending notification to make room
	OverflowDropOldest OverflowPolicy = iota
	// OverflowReject refuses the new notification and leaves the queue untouched
	OverflowReject
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowDropOldest:
		return "drop-oldest"
	case OverflowReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseOverflowPolicy maps a config value to a policy
func ParseOverflowPolicy(s string) (OverflowPolicy, bool) {
	switch s {
	case "drop-oldest", "":
		return OverflowDropOldest, true
	case "reject":
		return OverflowReject, true
	}
	return 0, false
}

// EarnQueue is a fixed ring buffer of pending stamp notifications
// Thread-Safety: none, owned by the host main loop like the rest of the stamp state
//
// One slot always stays empty so start == end means empty; usable depth is capacity-1
type EarnQueue struct {
	slots   [parameter.EarnQueueCapacity]core.Notification
	start   int // Read index
	end     int // Write index
	policy  OverflowPolicy
	dropped uint64
}

// NewEarnQueue creates an empty queue with the given overflow policy
func NewEarnQueue(policy OverflowPolicy) *EarnQueue {
	return &EarnQueue{policy: policy}
}

// Push appends a notification in FIFO order
// Returns false only when the policy is OverflowReject and the queue is full
func (q *EarnQueue) Push(n core.Notification) bool {
	if q.Full() {
		if q.policy == OverflowReject {
			q.dropped++
			return false
		}
		// Drop oldest: vacate the head slot, the rest stay in place
		q.slots[q.start] = core.Notification{}
		q.start = (q.start + 1) % parameter.EarnQueueCapacity
		q.dropped++
	}

	q.slots[q.end] = n
	q.end = (q.end + 1) % parameter.EarnQueueCapacity
	return true
}

// Pop removes and returns the oldest notification
func (q *EarnQueue) Pop() (core.Notification, bool) {
	if q.Empty() {
		return core.Notification{}, false
	}
	n := q.slots[q.start]
	q.slots[q.start] = core.Notification{}
	q.start = (q.start + 1) % parameter.EarnQueueCapacity
	return n, true
}

// Peek returns the oldest notification without removing it
func (q *EarnQueue) Peek() (core.Notification, bool) {
	if q.Empty() {
		return core.Notification{}, false
	}
	return q.slots[q.start], true
}

// Len returns the pending count
func (q *EarnQueue) Len() int {
	return (q.end - q.start + parameter.EarnQueueCapacity) % parameter.EarnQueueCapacity
}

// Empty reports whether nothing is pending
func (q *EarnQueue) Empty() bool {
	return q.start == q.end
}

// Full reports whether the next Push would overflow
func (q *EarnQueue) Full() bool {
	return q.Len() == parameter.EarnQueueCapacity-1
}

// Policy returns the overflow policy
func (q *EarnQueue) Policy() OverflowPolicy {
	return q.policy
}

// Dropped returns how many notifications were lost to overflow
func (q *EarnQueue) Dropped() uint64 {
	return q.dropped
}

// Reset discards every pending notification
func (q *EarnQueue) Reset() {
	q.slots = [parameter.EarnQueueCapacity]core.Notification{}
	q.start, q.end = 0, 0
}
