package dlob

// Fixed-point precisions shared with the on-ledger program. All price and
// amount arithmetic is integer; tie-breaks must be deterministic across
// implementations, so floats are banned from this package.
const (
	PricePrecision int64 = 1_000_000     // 1e6
	BasePrecision  int64 = 1_000_000_000 // 1e9
)

type MarketType uint8

const (
	Perp MarketType = iota
	Spot
)

func (m MarketType) String() string {
	if m == Spot {
		return "spot"
	}
	return "perp"
}

type OrderType uint8

const (
	MarketOrder OrderType = iota
	LimitOrder
	TriggerMarketOrder
	TriggerLimitOrder
)

func (t OrderType) String() string {
	switch t {
	case MarketOrder:
		return "market"
	case LimitOrder:
		return "limit"
	case TriggerMarketOrder:
		return "triggerMarket"
	case TriggerLimitOrder:
		return "triggerLimit"
	default:
		return "unknown"
	}
}

type Direction uint8

const (
	Long Direction = iota
	Short
)

func (d Direction) String() string {
	if d == Short {
		return "short"
	}
	return "long"
}

type TriggerCondition uint8

const (
	Above TriggerCondition = iota
	Below
)

type OrderStatus uint8

const (
	Init OrderStatus = iota
	Open
	Filled
	Canceled
)

// UserKey identifies the owning ledger account of an order.
type UserKey string

// OraclePriceData is the freshest (price, slot) snapshot supplied by the
// subscription layer. The engine never fetches it; callers pass it into
// every query.
type OraclePriceData struct {
	Price                   int64
	Confidence              uint64
	Slot                    uint64
	HasSufficientDataPoints bool
}

// Order is the canonical representation of one resting intent, decoded from
// ledger records. Identity is immutable; only fill progress and the
// triggered flag change over its lifetime, and only in response to
// confirmed ledger events.
type Order struct {
	OrderID     uint32
	UserOrderID uint8

	MarketType  MarketType
	MarketIndex uint16
	OrderType   OrderType
	Direction   Direction
	Status      OrderStatus

	Price             int64
	OraclePriceOffset int64
	TriggerPrice      int64
	TriggerCondition  TriggerCondition
	Triggered         bool

	// Auction fields: only meaningful for market-type orders.
	AuctionStartPrice int64
	AuctionEndPrice   int64
	AuctionDuration   uint64
	Slot              uint64

	BaseAssetAmount        int64
	BaseAssetAmountFilled  int64
	QuoteAssetAmount       int64
	QuoteAssetAmountFilled int64

	ReduceOnly                bool
	PostOnly                  bool
	ImmediateOrCancel         bool
	TimeInForce               uint64
	Ts                        int64
	ExistingPositionDirection Direction
}

func (o *Order) Remaining() int64 {
	return o.BaseAssetAmount - o.BaseAssetAmountFilled
}

// IsBid reports whether the order rests on the bid side of the book.
func (o *Order) IsBid() bool {
	return o.Direction == Long
}

// IsMarketable reports whether the order takes liquidity (market archetype).
func (o *Order) IsMarketable() bool {
	return o.OrderType == MarketOrder || o.OrderType == TriggerMarketOrder
}

// IsResting reports whether the order provides liquidity (limit archetype).
func (o *Order) IsResting() bool {
	return o.OrderType == LimitOrder || o.OrderType == TriggerLimitOrder
}

// MustBeTriggered reports whether the order is conditional and therefore
// invisible to price-ordered views until its trigger fires.
func (o *Order) MustBeTriggered() bool {
	return o.OrderType == TriggerMarketOrder || o.OrderType == TriggerLimitOrder
}

// Eligible reports whether the order may appear in bid/ask enumeration:
// it must be open and, if conditional, already triggered.
func (o *Order) Eligible() bool {
	if o.Status != Open {
		return false
	}
	if o.MustBeTriggered() && !o.Triggered {
		return false
	}
	return true
}

// AuctionComplete reports whether the order's price auction has run its
// course at the given slot. Orders without an auction are complete
// immediately.
func (o *Order) AuctionComplete(slot uint64) bool {
	if slot < o.Slot {
		return o.AuctionDuration == 0
	}
	return slot-o.Slot >= o.AuctionDuration
}

// Expired reports whether a market-type order has outlived its time in
// force at the given slot and must be force-resolved regardless of price.
func (o *Order) Expired(slot uint64) bool {
	if !o.IsMarketable() || o.TimeInForce == 0 {
		return false
	}
	return slot >= o.Slot+o.TimeInForce
}

// TriggerSatisfied reports whether the trigger condition holds at the given
// oracle price. ABOVE and BELOW are strict comparisons.
func (o *Order) TriggerSatisfied(oraclePrice int64) bool {
	if o.TriggerCondition == Above {
		return oraclePrice > o.TriggerPrice
	}
	return oraclePrice < o.TriggerPrice
}
