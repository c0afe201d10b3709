package dlob

// NodeKey identifies an order node across the whole book. OrderIDs are only
// unique per user, so the owner is part of the key.
type NodeKey struct {
	User    UserKey
	OrderID uint32
}

// node classes, in tie-break precedence at an equal effective price.
const (
	classVAMM      = 0
	classTaking    = 1 // market / triggered trigger-market
	classResting   = 2 // limit / triggered trigger-limit
	classUntracked = 3
)

// Node is a disposable read view over either one resting Order or the
// synthetic vAMM liquidity position. Nodes are created per query and never
// outlive it; they carry no state of their own beyond the FIFO sequence
// assigned at insertion time.
type Node struct {
	Order *Order // nil for the vAMM node
	User  UserKey

	// seq is the book-wide insertion sequence, the FIFO tie-break.
	seq uint64

	// vammPrice is the externally supplied reference price; only set on
	// the vAMM node.
	vammPrice int64
}

func newVAMMNode(price int64) *Node {
	return &Node{vammPrice: price}
}

// IsVAMM reports whether the node is the synthetic AMM liquidity position.
func (n *Node) IsVAMM() bool {
	return n.Order == nil
}

func (n *Node) Key() NodeKey {
	if n.Order == nil {
		return NodeKey{}
	}
	return NodeKey{User: n.User, OrderID: n.Order.OrderID}
}

// Price evaluates the node's effective price at (oracle, slot). This is the
// only place in the engine that turns an Order into a price; every view and
// scanner goes through it so that auction and oracle-relative prices stay
// consistent.
func (n *Node) Price(oracle OraclePriceData, slot uint64) int64 {
	if n.Order == nil {
		return n.vammPrice
	}
	o := n.Order
	switch o.OrderType {
	case LimitOrder, TriggerLimitOrder:
		if o.OraclePriceOffset != 0 {
			return oracle.Price + o.OraclePriceOffset
		}
		return o.Price
	case MarketOrder, TriggerMarketOrder:
		return auctionPrice(o, slot)
	default:
		return o.Price
	}
}

// auctionPrice linearly interpolates between the auction endpoints over
// [o.Slot, o.Slot+o.AuctionDuration], clamped to the end price once the
// auction has elapsed. A zero-duration auction is already at its end price.
func auctionPrice(o *Order, slot uint64) int64 {
	if o.AuctionComplete(slot) {
		return o.AuctionEndPrice
	}
	if slot <= o.Slot {
		return o.AuctionStartPrice
	}
	elapsed := int64(slot - o.Slot)
	delta := (o.AuctionEndPrice - o.AuctionStartPrice) * elapsed / int64(o.AuctionDuration)
	return o.AuctionStartPrice + delta
}

// class buckets the node for tie-breaking at an equal effective price:
// vAMM first, then marketable orders, then resting limit orders.
func (n *Node) class() int {
	switch {
	case n.Order == nil:
		return classVAMM
	case n.Order.IsMarketable():
		return classTaking
	case n.Order.IsResting():
		return classResting
	default:
		return classUntracked
	}
}

// NodeToFill is a candidate (taker, maker) pair proposed for external
// settlement. Maker is nil when the taker must be force-resolved (expiry)
// or can fill against the vAMM alone.
type NodeToFill struct {
	Node  *Node
	Maker *Node
}

// NodeToTrigger is a conditional order whose trigger condition is now
// satisfied. Triggering it on the ledger is the caller's job.
type NodeToTrigger struct {
	Node *Node
}
