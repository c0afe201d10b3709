package dlob

import (
	"iter"
	"sort"
)

// sideIndex holds one side of one market's book. It is an unordered owning
// collection: auction and oracle-relative prices move with every slot, so a
// persistently sorted structure would need rebalancing on every tick.
// Ordered views are instead sorted fresh on each query.
type sideIndex struct {
	direction Direction
	orders    map[NodeKey]*Node
}

func newSideIndex(direction Direction) *sideIndex {
	return &sideIndex{
		direction: direction,
		orders:    make(map[NodeKey]*Node),
	}
}

func (s *sideIndex) insert(n *Node) {
	s.orders[n.Key()] = n
}

// remove is idempotent: removing an absent key is a no-op.
func (s *sideIndex) remove(key NodeKey) {
	delete(s.orders, key)
}

func (s *sideIndex) get(key NodeKey) *Node {
	return s.orders[key]
}

func (s *sideIndex) size() int {
	return len(s.orders)
}

// sorted materializes the side's current view at (reference, oracle, slot):
// every live, not-yet-satisfied order node, plus the vAMM node when a
// reference price is supplied. Bids descend, asks ascend; ties resolve
// vAMM, then marketable FIFO, then resting FIFO.
func (s *sideIndex) sorted(reference *int64, slot uint64, oracle OraclePriceData) []*Node {
	out := make([]*Node, 0, len(s.orders)+1)
	for _, n := range s.orders {
		// Fill confirmation can lag removal; a fully satisfied order
		// is excluded even while still open.
		if n.Order.Remaining() <= 0 {
			continue
		}
		out = append(out, n)
	}
	if reference != nil {
		out = append(out, newVAMMNode(*reference))
	}

	desc := s.direction == Long
	sort.SliceStable(out, func(i, j int) bool {
		pi := out[i].Price(oracle, slot)
		pj := out[j].Price(oracle, slot)
		if pi != pj {
			if desc {
				return pi > pj
			}
			return pi < pj
		}
		ci, cj := out[i].class(), out[j].class()
		if ci != cj {
			return ci < cj
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// view wraps sorted into a restartable lazy sequence: every range over it
// re-reads the index and re-sorts, so a long-lived sequence always reflects
// current contents.
func (s *sideIndex) view(reference *int64, slot uint64, oracle OraclePriceData) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range s.sorted(reference, slot, oracle) {
			if !yield(n) {
				return
			}
		}
	}
}

// taking returns the side's marketable nodes in FIFO insertion order,
// skipping already satisfied ones.
func (s *sideIndex) taking() []*Node {
	out := make([]*Node, 0, len(s.orders))
	for _, n := range s.orders {
		if !n.Order.IsMarketable() || n.Order.Remaining() <= 0 {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
