// Package margin computes position health from oracle prices. It consumes
// position state independently of the order book and shares its fixed-point
// conventions with package dlob.
package margin

import (
	"math/big"

	"fenrir/domain/dlob"
)

// MarginPrecision scales margin ratios: a ratio of 1000 is 10%.
const MarginPrecision int64 = 10_000

type Category uint8

const (
	Initial Category = iota
	Maintenance
)

// MarketConfig carries the per-market risk weights published by the
// protocol. Ratios use MarginPrecision.
type MarketConfig struct {
	MarketIndex            uint16
	InitialMarginRatio     int64
	MaintenanceMarginRatio int64
}

func (c MarketConfig) ratio(cat Category) int64 {
	if cat == Maintenance {
		return c.MaintenanceMarginRatio
	}
	return c.InitialMarginRatio
}

// Position is one perp position. BaseAssetAmount is signed: positive long,
// negative short. QuoteEntryAmount is the signed quote paid or received at
// entry (negative for longs).
type Position struct {
	MarketIndex      uint16
	BaseAssetAmount  int64
	QuoteEntryAmount int64
}

func (p Position) absBase() int64 {
	if p.BaseAssetAmount < 0 {
		return -p.BaseAssetAmount
	}
	return p.BaseAssetAmount
}

// NotionalValue is |base| * oracle, in quote precision.
func (p Position) NotionalValue(oraclePrice int64) int64 {
	return p.absBase() * oraclePrice / dlob.BasePrecision
}

// UnrealizedPnL marks the position against the oracle price.
func (p Position) UnrealizedPnL(oraclePrice int64) int64 {
	return p.BaseAssetAmount*oraclePrice/dlob.BasePrecision + p.QuoteEntryAmount
}

// MarginRequirement is the collateral the position must be backed by at the
// given oracle price and category.
func MarginRequirement(p Position, cfg MarketConfig, oraclePrice int64, cat Category) int64 {
	return p.NotionalValue(oraclePrice) * cfg.ratio(cat) / MarginPrecision
}

// TotalCollateral is deposited quote plus unrealized pnl across positions.
func TotalCollateral(deposits int64, positions []Position, oracles map[uint16]int64) int64 {
	total := deposits
	for _, p := range positions {
		total += p.UnrealizedPnL(oracles[p.MarketIndex])
	}
	return total
}

// FreeCollateral is total collateral minus the aggregate requirement; a
// negative value means the account cannot open or increase positions (at
// Initial) or is liquidatable (at Maintenance).
func FreeCollateral(deposits int64, positions []Position, cfgs map[uint16]MarketConfig, oracles map[uint16]int64, cat Category) int64 {
	total := TotalCollateral(deposits, positions, oracles)
	var required int64
	for _, p := range positions {
		required += MarginRequirement(p, cfgs[p.MarketIndex], oracles[p.MarketIndex], cat)
	}
	return total - required
}

// Health is total collateral relative to the aggregate requirement, scaled
// by MarginPrecision: 10_000 means exactly at the requirement, below that the
// account is deficient. The second return is false when nothing is required
// (no positions), where the ratio is undefined.
func Health(deposits int64, positions []Position, cfgs map[uint16]MarketConfig, oracles map[uint16]int64, cat Category) (int64, bool) {
	var required int64
	for _, p := range positions {
		required += MarginRequirement(p, cfgs[p.MarketIndex], oracles[p.MarketIndex], cat)
	}
	if required == 0 {
		return 0, false
	}
	total := TotalCollateral(deposits, positions, oracles)
	h := new(big.Int).SetInt64(total)
	h.Mul(h, big.NewInt(MarginPrecision))
	h.Quo(h, big.NewInt(required))
	if !h.IsInt64() {
		return 0, false
	}
	return h.Int64(), true
}

// LiquidationPrice solves for the oracle price at which the account's
// maintenance free collateral reaches zero, holding every other position at
// its current oracle price. The second return is false when the position
// cannot be liquidated by price movement alone (for example a long whose
// collateral covers the worst case down to zero).
func LiquidationPrice(pos Position, cfg MarketConfig, deposits int64, others []Position, cfgs map[uint16]MarketConfig, oracles map[uint16]int64) (int64, bool) {
	if pos.BaseAssetAmount == 0 {
		return 0, false
	}

	// Collateral and requirements contributed by everything except pos,
	// which stay constant as pos's oracle price moves.
	fixed := deposits + pos.QuoteEntryAmount
	for _, p := range others {
		fixed += p.UnrealizedPnL(oracles[p.MarketIndex])
		fixed -= MarginRequirement(p, cfgs[p.MarketIndex], oracles[p.MarketIndex], Maintenance)
	}

	// Zero crossing of: fixed + base*p/BASE - |base|*p/BASE * ratio/MARGIN.
	// Done in big.Int: fixed*BASE*MARGIN overflows int64 for realistic
	// account sizes.
	slope := pos.BaseAssetAmount*MarginPrecision - pos.absBase()*cfg.MaintenanceMarginRatio
	if slope == 0 {
		return 0, false
	}

	num := new(big.Int).SetInt64(-fixed)
	num.Mul(num, big.NewInt(dlob.BasePrecision))
	num.Mul(num, big.NewInt(MarginPrecision))
	num.Quo(num, big.NewInt(slope))

	if !num.IsInt64() {
		return 0, false
	}
	price := num.Int64()
	if price <= 0 {
		// A non-positive solution means price movement alone cannot
		// liquidate the position.
		return 0, false
	}
	return price, true
}
