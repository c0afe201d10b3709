package feed

import "sync/atomic"

// SlotClock tracks the highest slot observed from the chain feed.
// It is monotonic: stale updates are ignored.
type SlotClock struct {
	slot atomic.Uint64
}

func NewSlotClock(start uint64) *SlotClock {
	c := &SlotClock{}
	c.slot.Store(start)
	return c
}

// Advance records a newly observed slot. Returns true if the clock moved.
func (c *SlotClock) Advance(slot uint64) bool {
	for {
		cur := c.slot.Load()
		if slot <= cur {
			return false
		}
		if c.slot.CompareAndSwap(cur, slot) {
			return true
		}
	}
}

// Current returns the highest slot seen so far.
func (c *SlotClock) Current() uint64 {
	return c.slot.Load()
}
