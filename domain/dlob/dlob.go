package dlob

import "iter"

type marketKey struct {
	marketType  MarketType
	marketIndex uint16
}

// marketBook is one market's pair of side indexes plus its untriggered
// conditional orders. Trigger orders are not part of the price-ordered book
// until triggered, so they live in a plain insertion-order list.
type marketBook struct {
	bids *sideIndex
	asks *sideIndex

	triggers []*Node

	// nextSeq is book-wide so FIFO tie-breaks are valid across sides.
	nextSeq uint64
}

func newMarketBook() *marketBook {
	return &marketBook{
		bids: newSideIndex(Long),
		asks: newSideIndex(Short),
	}
}

// DLOB mirrors the remote ledger's resting orders for every market. It is
// single-writer and synchronous: callers serialize all access, and every
// query is a pure function of current contents plus the supplied
// (oracle, slot).
type DLOB struct {
	markets map[marketKey]*marketBook
}

func NewDLOB() *DLOB {
	return &DLOB{markets: make(map[marketKey]*marketBook)}
}

func (d *DLOB) market(mt MarketType, idx uint16) (*marketBook, bool) {
	mb, ok := d.markets[marketKey{marketType: mt, marketIndex: idx}]
	return mb, ok
}

func (d *DLOB) marketOrCreate(mt MarketType, idx uint16) *marketBook {
	key := marketKey{marketType: mt, marketIndex: idx}
	mb, ok := d.markets[key]
	if !ok {
		mb = newMarketBook()
		d.markets[key] = mb
	}
	return mb
}

// InsertOrder adds an order to its market's book. Non-open orders are
// silently ignored: events routinely arrive for orders the caller already
// considers dead.
func (d *DLOB) InsertOrder(o *Order, user UserKey) {
	if o == nil || o.Status != Open {
		return
	}
	mb := d.marketOrCreate(o.MarketType, o.MarketIndex)
	n := &Node{Order: o, User: user, seq: mb.nextSeq}
	mb.nextSeq++

	if o.MustBeTriggered() && !o.Triggered {
		mb.triggers = append(mb.triggers, n)
		return
	}
	if o.IsBid() {
		mb.bids.insert(n)
	} else {
		mb.asks.insert(n)
	}
}

// RemoveOrder drops the order reference if present; removing an unknown
// order is a no-op so out-of-order event delivery converges.
func (d *DLOB) RemoveOrder(user UserKey, orderID uint32, mt MarketType, idx uint16) {
	mb, ok := d.market(mt, idx)
	if !ok {
		return
	}
	key := NodeKey{User: user, OrderID: orderID}
	mb.bids.remove(key)
	mb.asks.remove(key)
	for i, n := range mb.triggers {
		if n.Key() == key {
			mb.triggers = append(mb.triggers[:i], mb.triggers[i+1:]...)
			break
		}
	}
}

// GetOrder returns the live order reference, or nil if unknown. Callers use
// it to apply confirmed fill progress from ledger events.
func (d *DLOB) GetOrder(user UserKey, orderID uint32, mt MarketType, idx uint16) *Order {
	mb, ok := d.market(mt, idx)
	if !ok {
		return nil
	}
	key := NodeKey{User: user, OrderID: orderID}
	if n := mb.bids.get(key); n != nil {
		return n.Order
	}
	if n := mb.asks.get(key); n != nil {
		return n.Order
	}
	for _, n := range mb.triggers {
		if n.Key() == key {
			return n.Order
		}
	}
	return nil
}

// Trigger marks a conditional order as triggered (a confirmed ledger
// event) and moves it into the price-ordered book.
func (d *DLOB) Trigger(user UserKey, orderID uint32, mt MarketType, idx uint16) {
	mb, ok := d.market(mt, idx)
	if !ok {
		return
	}
	key := NodeKey{User: user, OrderID: orderID}
	for i, n := range mb.triggers {
		if n.Key() != key {
			continue
		}
		mb.triggers = append(mb.triggers[:i], mb.triggers[i+1:]...)
		n.Order.Triggered = true
		if n.Order.IsBid() {
			mb.bids.insert(n)
		} else {
			mb.asks.insert(n)
		}
		return
	}
}

var emptyView = func(yield func(*Node) bool) {}

// GetBids returns the descending-by-effective-price bid view. The vAMM node
// participates only when a reference price is supplied; spot markets pass
// nil. Unknown markets yield an empty view, since markets register lazily.
func (d *DLOB) GetBids(idx uint16, vBid *int64, slot uint64, mt MarketType, oracle OraclePriceData) iter.Seq[*Node] {
	mb, ok := d.market(mt, idx)
	if !ok {
		return emptyView
	}
	return mb.bids.view(vBid, slot, oracle)
}

// GetAsks is symmetric to GetBids, ascending by effective price.
func (d *DLOB) GetAsks(idx uint16, vAsk *int64, slot uint64, mt MarketType, oracle OraclePriceData) iter.Seq[*Node] {
	mb, ok := d.market(mt, idx)
	if !ok {
		return emptyView
	}
	return mb.asks.view(vAsk, slot, oracle)
}

// BestBid returns the top-of-book bid price, if any node exists.
func (d *DLOB) BestBid(idx uint16, vBid *int64, slot uint64, mt MarketType, oracle OraclePriceData) (int64, bool) {
	for n := range d.GetBids(idx, vBid, slot, mt, oracle) {
		return n.Price(oracle, slot), true
	}
	return 0, false
}

// BestAsk returns the top-of-book ask price, if any node exists.
func (d *DLOB) BestAsk(idx uint16, vAsk *int64, slot uint64, mt MarketType, oracle OraclePriceData) (int64, bool) {
	for n := range d.GetAsks(idx, vAsk, slot, mt, oracle) {
		return n.Price(oracle, slot), true
	}
	return 0, false
}

// OpenOrderCount reports the number of enumerable orders in a market,
// excluding untriggered conditionals.
func (d *DLOB) OpenOrderCount(mt MarketType, idx uint16) int {
	mb, ok := d.market(mt, idx)
	if !ok {
		return 0
	}
	return mb.bids.size() + mb.asks.size()
}
