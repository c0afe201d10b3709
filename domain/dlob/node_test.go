package dlob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const px = PricePrecision

func TestNodePrice_Limit(t *testing.T) {
	o := &Order{OrderType: LimitOrder, Price: 42 * px}
	n := &Node{Order: o, User: "alice"}

	got := n.Price(OraclePriceData{Price: 100 * px}, 7)
	require.Equal(t, 42*px, got)
}

func TestNodePrice_OracleOffset(t *testing.T) {
	o := &Order{OrderType: LimitOrder, OraclePriceOffset: -2 * px}
	n := &Node{Order: o, User: "alice"}

	got := n.Price(OraclePriceData{Price: 100 * px}, 7)
	require.Equal(t, 98*px, got)
}

func TestNodePrice_AuctionInterpolation(t *testing.T) {
	o := &Order{
		OrderType:         MarketOrder,
		AuctionStartPrice: 10 * px,
		AuctionEndPrice:   20 * px,
		AuctionDuration:   10,
		Slot:              100,
	}
	n := &Node{Order: o, User: "alice"}
	oracle := OraclePriceData{}

	require.Equal(t, 10*px, n.Price(oracle, 100), "at placement")
	require.Equal(t, 15*px, n.Price(oracle, 105), "midpoint")
	require.Equal(t, 19*px, n.Price(oracle, 109), "one slot before end")
	require.Equal(t, 20*px, n.Price(oracle, 110), "clamped at duration")
	require.Equal(t, 20*px, n.Price(oracle, 500), "clamped long after")
	require.Equal(t, 10*px, n.Price(oracle, 99), "before placement slot")
}

func TestNodePrice_AuctionDescending(t *testing.T) {
	// Sell auctions walk from a high start down to the end price.
	o := &Order{
		OrderType:         MarketOrder,
		Direction:         Short,
		AuctionStartPrice: 20 * px,
		AuctionEndPrice:   10 * px,
		AuctionDuration:   4,
		Slot:              50,
	}
	n := &Node{Order: o, User: "bob"}

	require.Equal(t, 15*px, n.Price(OraclePriceData{}, 52))
}

func TestNodePrice_ZeroDurationAuctionIsEndPrice(t *testing.T) {
	o := &Order{OrderType: TriggerMarketOrder, AuctionEndPrice: 9 * px, Slot: 10}
	n := &Node{Order: o, User: "bob"}

	require.Equal(t, 9*px, n.Price(OraclePriceData{}, 10))
}

func TestNodePrice_VAMM(t *testing.T) {
	n := newVAMMNode(55 * px)
	require.True(t, n.IsVAMM())
	require.Equal(t, 55*px, n.Price(OraclePriceData{Price: 1}, 999))
	require.Equal(t, NodeKey{}, n.Key())
}

func TestOrderExpired(t *testing.T) {
	o := &Order{OrderType: MarketOrder, Slot: 100, TimeInForce: 10}
	require.False(t, o.Expired(109))
	require.True(t, o.Expired(110))
	require.True(t, o.Expired(200))

	limit := &Order{OrderType: LimitOrder, Slot: 100, TimeInForce: 10}
	require.False(t, limit.Expired(500), "limit orders never expire here")

	noTIF := &Order{OrderType: MarketOrder, Slot: 100}
	require.False(t, noTIF.Expired(500))
}

func TestOrderEligible(t *testing.T) {
	require.True(t, (&Order{Status: Open, OrderType: LimitOrder}).Eligible())
	require.False(t, (&Order{Status: Canceled, OrderType: LimitOrder}).Eligible())
	require.False(t, (&Order{Status: Open, OrderType: TriggerLimitOrder}).Eligible())
	require.True(t, (&Order{Status: Open, OrderType: TriggerLimitOrder, Triggered: true}).Eligible())
}
