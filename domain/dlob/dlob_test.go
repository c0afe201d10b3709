package dlob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var nextTestOrderID uint32

func limitOrder(user UserKey, dir Direction, price int64, size int64) (*Order, UserKey) {
	nextTestOrderID++
	return &Order{
		OrderID:         nextTestOrderID,
		MarketType:      Perp,
		OrderType:       LimitOrder,
		Direction:       dir,
		Status:          Open,
		Price:           price,
		BaseAssetAmount: size,
	}, user
}

func marketOrder(user UserKey, dir Direction, endPrice int64, size int64, slot, duration uint64) (*Order, UserKey) {
	nextTestOrderID++
	return &Order{
		OrderID:           nextTestOrderID,
		MarketType:        Perp,
		OrderType:         MarketOrder,
		Direction:         dir,
		Status:            Open,
		AuctionStartPrice: endPrice,
		AuctionEndPrice:   endPrice,
		AuctionDuration:   duration,
		Slot:              slot,
		BaseAssetAmount:   size,
	}, user
}

func collect(seq func(yield func(*Node) bool)) []*Node {
	var out []*Node
	for n := range seq {
		out = append(out, n)
	}
	return out
}

func ref(p int64) *int64 { return &p }

func TestInsertIgnoresNonOpenOrders(t *testing.T) {
	d := NewDLOB()
	o, u := limitOrder("alice", Long, 10*px, 1)
	o.Status = Canceled
	d.InsertOrder(o, u)

	require.Zero(t, d.OpenOrderCount(Perp, 0))
}

func TestRemoveIsIdempotent(t *testing.T) {
	d := NewDLOB()
	o, u := limitOrder("alice", Long, 10*px, 1)
	d.InsertOrder(o, u)

	d.RemoveOrder(u, o.OrderID, Perp, 0)
	require.Zero(t, d.OpenOrderCount(Perp, 0))

	// Removing again, or from a market that never existed, is a no-op.
	d.RemoveOrder(u, o.OrderID, Perp, 0)
	d.RemoveOrder(u, o.OrderID, Spot, 99)
}

func TestUnknownMarketYieldsEmptyView(t *testing.T) {
	d := NewDLOB()
	require.Empty(t, collect(d.GetBids(7, ref(10*px), 1, Perp, OraclePriceData{})))
	require.Empty(t, collect(d.GetAsks(7, nil, 1, Spot, OraclePriceData{})))
}

func TestPerpAndSpotMarketsDoNotCollide(t *testing.T) {
	d := NewDLOB()
	o, u := limitOrder("alice", Long, 10*px, 1)
	d.InsertOrder(o, u)

	s, su := limitOrder("bob", Long, 11*px, 1)
	s.MarketType = Spot
	d.InsertOrder(s, su)

	require.Equal(t, 1, d.OpenOrderCount(Perp, 0))
	require.Equal(t, 1, d.OpenOrderCount(Spot, 0))
	require.Len(t, collect(d.GetBids(0, nil, 1, Perp, OraclePriceData{})), 1)
}

func TestOrderingInvariant(t *testing.T) {
	d := NewDLOB()
	oracle := OraclePriceData{Price: 10 * px, Slot: 20}

	prices := []int64{9 * px, 12 * px, 8 * px, 11 * px, 10 * px}
	for _, p := range prices {
		d.InsertOrder(limitOrder("alice", Long, p, 1))
		d.InsertOrder(limitOrder("bob", Short, p+5*px, 1))
	}
	// Oracle-relative bid: effective 10 - 1 = 9.
	off, ou := limitOrder("carol", Long, 0, 1)
	off.OraclePriceOffset = -1 * px
	d.InsertOrder(off, ou)

	bids := collect(d.GetBids(0, ref(10*px), 20, Perp, oracle))
	require.Len(t, bids, 7)
	for i := 1; i < len(bids); i++ {
		require.GreaterOrEqual(t,
			bids[i-1].Price(oracle, 20), bids[i].Price(oracle, 20),
			"bids must be non-increasing at index %d", i)
	}

	asks := collect(d.GetAsks(0, ref(11*px), 20, Perp, oracle))
	require.Len(t, asks, 6)
	for i := 1; i < len(asks); i++ {
		require.LessOrEqual(t,
			asks[i-1].Price(oracle, 20), asks[i].Price(oracle, 20),
			"asks must be non-decreasing at index %d", i)
	}
}

func TestVAMMPlacementAndTieBreak(t *testing.T) {
	d := NewDLOB()
	oracle := OraclePriceData{Price: 10 * px, Slot: 5}

	d.InsertOrder(limitOrder("alice", Long, 11*px, 1))
	d.InsertOrder(limitOrder("bob", Long, 10*px, 1)) // same price as vAMM
	d.InsertOrder(limitOrder("carol", Long, 9*px, 1))

	bids := collect(d.GetBids(0, ref(10*px), 5, Perp, oracle))
	require.Len(t, bids, 4)
	require.False(t, bids[0].IsVAMM())
	require.Equal(t, 11*px, bids[0].Price(oracle, 5))
	require.True(t, bids[1].IsVAMM(), "vAMM wins the tie at its reference price")
	require.Equal(t, UserKey("bob"), bids[2].User)
	require.Equal(t, UserKey("carol"), bids[3].User)

	// Without a reference price the vAMM node is excluded entirely.
	bare := collect(d.GetBids(0, nil, 5, Perp, oracle))
	require.Len(t, bare, 3)
	for _, n := range bare {
		require.False(t, n.IsVAMM())
	}
}

// End-to-end book shape from the protocol fixtures: resting bids at
// {12, 11, 9, 8}, three market buys, vBid=10 — at slot 12 the view must be
// 12, 11, vAMM(10), market, market, market, 9, 8.
func TestGetBids_EndToEndShape(t *testing.T) {
	d := NewDLOB()
	oracle := OraclePriceData{Price: 10 * px, Slot: 12}

	for _, p := range []int64{12 * px, 11 * px, 9 * px, 8 * px} {
		d.InsertOrder(limitOrder("maker", Long, p, 1))
	}
	var marketUsers []UserKey
	for _, u := range []UserKey{"t1", "t2", "t3"} {
		// Auctions placed at slot 1 with duration 5 have clamped to their
		// end price of 10 by slot 12.
		d.InsertOrder(marketOrder(u, Long, 10*px, 1, 1, 5))
		marketUsers = append(marketUsers, u)
	}

	bids := collect(d.GetBids(0, ref(10*px), 12, Perp, oracle))
	require.Len(t, bids, 8)

	require.Equal(t, 12*px, bids[0].Price(oracle, 12))
	require.Equal(t, 11*px, bids[1].Price(oracle, 12))
	require.True(t, bids[2].IsVAMM())
	for i, u := range marketUsers {
		node := bids[3+i]
		require.False(t, node.IsVAMM())
		require.True(t, node.Order.IsMarketable(), "node %d should be a market order", 3+i)
		require.Equal(t, u, node.User, "market orders keep FIFO order")
	}
	require.Equal(t, 9*px, bids[6].Price(oracle, 12))
	require.Equal(t, 8*px, bids[7].Price(oracle, 12))
}

func TestFullyFilledOrdersAreInvisible(t *testing.T) {
	d := NewDLOB()
	o, u := limitOrder("alice", Long, 10*px, 5)
	d.InsertOrder(o, u)

	o.BaseAssetAmountFilled = o.BaseAssetAmount
	require.Empty(t, collect(d.GetBids(0, nil, 1, Perp, OraclePriceData{})))
}

func TestViewIsRestartableAndLive(t *testing.T) {
	d := NewDLOB()
	oracle := OraclePriceData{Price: 10 * px}
	d.InsertOrder(limitOrder("alice", Long, 10*px, 1))

	view := d.GetBids(0, nil, 1, Perp, oracle)
	require.Len(t, collect(view), 1)

	// The same sequence re-reads current contents on the next range.
	d.InsertOrder(limitOrder("bob", Long, 11*px, 1))
	require.Len(t, collect(view), 2)
}

func TestBestBidAsk(t *testing.T) {
	d := NewDLOB()
	oracle := OraclePriceData{Price: 10 * px}
	d.InsertOrder(limitOrder("alice", Long, 9*px, 1))
	d.InsertOrder(limitOrder("bob", Short, 12*px, 1))

	bid, ok := d.BestBid(0, ref(10*px), 1, Perp, oracle)
	require.True(t, ok)
	require.Equal(t, 10*px, bid, "vAMM reference outbids the resting order")

	ask, ok := d.BestAsk(0, nil, 1, Perp, oracle)
	require.True(t, ok)
	require.Equal(t, 12*px, ask)

	_, ok = d.BestBid(3, nil, 1, Perp, oracle)
	require.False(t, ok)
}

func TestTriggerMovesOrderIntoBook(t *testing.T) {
	d := NewDLOB()
	nextTestOrderID++
	o := &Order{
		OrderID:          nextTestOrderID,
		MarketType:       Perp,
		OrderType:        TriggerLimitOrder,
		Direction:        Short,
		Status:           Open,
		Price:            13 * px,
		TriggerPrice:     12 * px,
		TriggerCondition: Above,
		BaseAssetAmount:  1,
	}
	d.InsertOrder(o, "alice")
	require.Empty(t, collect(d.GetAsks(0, nil, 1, Perp, OraclePriceData{})), "untriggered order hidden")
	require.NotNil(t, d.GetOrder("alice", o.OrderID, Perp, 0))

	d.Trigger("alice", o.OrderID, Perp, 0)
	require.True(t, o.Triggered)
	asks := collect(d.GetAsks(0, nil, 1, Perp, OraclePriceData{}))
	require.Len(t, asks, 1)
	require.Equal(t, o.OrderID, asks[0].Order.OrderID)

	// Once in the book it stops being a trigger candidate.
	require.Empty(t, d.FindNodesToTrigger(0, 1, 20*px, Perp))
}
