package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fenrir/api/pb"
	"fenrir/domain/dlob"
	"fenrir/infra/feed"
	"fenrir/infra/journal"
	"fenrir/infra/mirror"
)

type fixture struct {
	svc     *BookService
	jnlDir  string
	mir     *mirror.Store
	oracles *feed.OracleCache
	clock   *feed.SlotClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	jnlDir := t.TempDir()
	jnl, err := journal.Open(journal.Config{Dir: jnlDir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = jnl.Close() })

	mir, err := mirror.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mir.Close() })

	oracles := feed.NewOracleCache()
	clock := feed.NewSlotClock(0)

	svc := NewBookService(dlob.NewDLOB(), jnl, jnlDir, mir, oracles, clock, zap.NewNop(), nil)
	return &fixture{svc: svc, jnlDir: jnlDir, mir: mir, oracles: oracles, clock: clock}
}

func placeEvent(user string, id uint32, dir uint32, price, size int64) *pb.OrderEvent {
	return &pb.OrderEvent{
		Kind:        pb.EventPlace,
		User:        user,
		OrderId:     id,
		MarketType:  uint32(dlob.Perp),
		MarketIndex: 0,
		Order: &pb.Order{
			User:            user,
			OrderId:         id,
			MarketType:      uint32(dlob.Perp),
			MarketIndex:     0,
			OrderType:       uint32(dlob.LimitOrder),
			Direction:       dir,
			Status:          uint32(dlob.Open),
			Price:           price,
			BaseAssetAmount: size,
		},
	}
}

func TestBookService_ApplyPlace(t *testing.T) {
	f := newFixture(t)

	seq, err := f.svc.Apply(placeEvent("alice", 1, uint32(dlob.Long), 100, 5))
	require.NoError(t, err)
	require.Equal(t, uint64(1), seq)

	seq, err = f.svc.Apply(placeEvent("bob", 1, uint32(dlob.Short), 110, 5))
	require.NoError(t, err)
	require.Equal(t, uint64(2), seq)

	resp := f.svc.OrderBook(dlob.Perp, 0, nil)
	require.Len(t, resp.Bids, 1)
	require.Len(t, resp.Asks, 1)
	require.Equal(t, int64(100), resp.Bids[0].Price)
	require.Equal(t, int64(110), resp.Asks[0].Price)
}

func TestBookService_ApplyCancel(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Apply(placeEvent("alice", 1, uint32(dlob.Long), 100, 5))
	require.NoError(t, err)

	_, err = f.svc.Apply(&pb.OrderEvent{
		Kind:        pb.EventCancel,
		User:        "alice",
		OrderId:     1,
		MarketType:  uint32(dlob.Perp),
		MarketIndex: 0,
	})
	require.NoError(t, err)

	resp := f.svc.OrderBook(dlob.Perp, 0, nil)
	require.Empty(t, resp.Bids)

	// mirror must agree
	count := 0
	require.NoError(t, f.mir.ForEach(func(*pb.Order) error { count++; return nil }))
	require.Zero(t, count)
}

func TestBookService_ApplyUpdateRemovesWhenFilled(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Apply(placeEvent("alice", 1, uint32(dlob.Long), 100, 5))
	require.NoError(t, err)

	// partial fill keeps the order visible with reduced remaining
	_, err = f.svc.Apply(&pb.OrderEvent{
		Kind:                  pb.EventUpdate,
		User:                  "alice",
		OrderId:               1,
		MarketType:            uint32(dlob.Perp),
		MarketIndex:           0,
		BaseAssetAmountFilled: 3,
	})
	require.NoError(t, err)
	resp := f.svc.OrderBook(dlob.Perp, 0, nil)
	require.Len(t, resp.Bids, 1)
	require.Equal(t, int64(3), resp.Bids[0].Order.BaseAssetAmountFilled)

	// full fill removes it everywhere
	_, err = f.svc.Apply(&pb.OrderEvent{
		Kind:                  pb.EventUpdate,
		User:                  "alice",
		OrderId:               1,
		MarketType:            uint32(dlob.Perp),
		MarketIndex:           0,
		BaseAssetAmountFilled: 5,
	})
	require.NoError(t, err)
	resp = f.svc.OrderBook(dlob.Perp, 0, nil)
	require.Empty(t, resp.Bids)

	count := 0
	require.NoError(t, f.mir.ForEach(func(*pb.Order) error { count++; return nil }))
	require.Zero(t, count)
}

func TestBookService_ApplyTrigger(t *testing.T) {
	f := newFixture(t)

	ev := placeEvent("alice", 1, uint32(dlob.Long), 100, 5)
	ev.Order.OrderType = uint32(dlob.TriggerLimitOrder)
	ev.Order.TriggerPrice = 90
	ev.Order.TriggerCondition = uint32(dlob.Below)
	_, err := f.svc.Apply(ev)
	require.NoError(t, err)

	// untriggered conditional is invisible to the book
	resp := f.svc.OrderBook(dlob.Perp, 0, nil)
	require.Empty(t, resp.Bids)

	_, err = f.svc.Apply(&pb.OrderEvent{
		Kind:        pb.EventTrigger,
		User:        "alice",
		OrderId:     1,
		MarketType:  uint32(dlob.Perp),
		MarketIndex: 0,
	})
	require.NoError(t, err)

	resp = f.svc.OrderBook(dlob.Perp, 0, nil)
	require.Len(t, resp.Bids, 1)
	require.True(t, resp.Bids[0].Order.Triggered)
}

func TestBookService_RejectsUnknownKind(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Apply(&pb.OrderEvent{Kind: 99})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestBookService_ToleratesMissingOrder(t *testing.T) {
	f := newFixture(t)

	// a journaled update for an order the book never saw is logged, not fatal
	seq, err := f.svc.Apply(&pb.OrderEvent{
		Kind:        pb.EventUpdate,
		User:        "ghost",
		OrderId:     404,
		MarketType:  uint32(dlob.Perp),
		MarketIndex: 0,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), seq)
}

func TestBookService_RebuildFromJournal(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Apply(placeEvent("alice", 1, uint32(dlob.Long), 100, 5))
	require.NoError(t, err)
	_, err = f.svc.Apply(placeEvent("bob", 1, uint32(dlob.Short), 110, 5))
	require.NoError(t, err)
	require.NoError(t, f.svc.jnl.Sync())

	// fresh book, same durable state: journal replays on top of the mirror
	rebuilt := NewBookService(dlob.NewDLOB(), f.svc.jnl, f.jnlDir, f.mir,
		f.oracles, f.clock, zap.NewNop(), nil)
	require.NoError(t, rebuilt.Rebuild())

	require.Equal(t, uint64(2), rebuilt.Seq())
	resp := rebuilt.OrderBook(dlob.Perp, 0, nil)
	require.Len(t, resp.Bids, 1)
	require.Len(t, resp.Asks, 1)
}

func TestBookService_RebuildAfterCheckpoint(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Apply(placeEvent("alice", 1, uint32(dlob.Long), 100, 5))
	require.NoError(t, err)
	require.NoError(t, f.svc.Checkpoint())

	_, err = f.svc.Apply(placeEvent("bob", 1, uint32(dlob.Short), 110, 5))
	require.NoError(t, err)
	require.NoError(t, f.svc.jnl.Sync())

	rebuilt := NewBookService(dlob.NewDLOB(), f.svc.jnl, f.jnlDir, f.mir,
		f.oracles, f.clock, zap.NewNop(), nil)
	require.NoError(t, rebuilt.Rebuild())

	// alice comes from the mirror, bob from the journal tail; no duplicates
	require.Equal(t, uint64(2), rebuilt.Seq())
	require.Equal(t, 2, rebuilt.book.OpenOrderCount(dlob.Perp, 0))
}

func TestBookService_FindFillsUsesOracleAndSlot(t *testing.T) {
	f := newFixture(t)

	f.oracles.Set(dlob.Perp, 0, dlob.OraclePriceData{Price: 105, Slot: 50})
	f.clock.Advance(50)

	_, err := f.svc.Apply(placeEvent("alice", 1, uint32(dlob.Long), 110, 5))
	require.NoError(t, err)
	_, err = f.svc.Apply(placeEvent("bob", 1, uint32(dlob.Short), 100, 5))
	require.NoError(t, err)

	fills, oracle, slot := f.svc.FindFills(dlob.Perp, 0, nil)
	require.Len(t, fills, 1)
	require.Equal(t, int64(105), oracle.Price)
	require.Equal(t, uint64(50), slot)
}

func TestBookService_FindTriggers(t *testing.T) {
	f := newFixture(t)

	f.oracles.Set(dlob.Perp, 0, dlob.OraclePriceData{Price: 95, Slot: 10})

	ev := placeEvent("alice", 1, uint32(dlob.Long), 100, 5)
	ev.Order.OrderType = uint32(dlob.TriggerMarketOrder)
	ev.Order.TriggerPrice = 98
	ev.Order.TriggerCondition = uint32(dlob.Below)
	_, err := f.svc.Apply(ev)
	require.NoError(t, err)

	triggers, oracle, _ := f.svc.FindTriggers(dlob.Perp, 0)
	require.Len(t, triggers, 1)
	require.Equal(t, int64(95), oracle.Price)
	require.Equal(t, uint32(1), triggers[0].Node.Order.OrderID)
}
