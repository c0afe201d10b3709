package service

import (
	"fenrir/api/pb"
	"fenrir/domain/dlob"
)

// OrderFromPB decodes a wire order into the domain representation.
func OrderFromPB(o *pb.Order) *dlob.Order {
	return &dlob.Order{
		OrderID:     o.OrderId,
		UserOrderID: uint8(o.UserOrderId),

		MarketType:  dlob.MarketType(o.MarketType),
		MarketIndex: uint16(o.MarketIndex),
		OrderType:   dlob.OrderType(o.OrderType),
		Direction:   dlob.Direction(o.Direction),
		Status:      dlob.OrderStatus(o.Status),

		Price:             o.Price,
		OraclePriceOffset: o.OraclePriceOffset,
		TriggerPrice:      o.TriggerPrice,
		TriggerCondition:  dlob.TriggerCondition(o.TriggerCondition),
		Triggered:         o.Triggered,

		AuctionStartPrice: o.AuctionStartPrice,
		AuctionEndPrice:   o.AuctionEndPrice,
		AuctionDuration:   o.AuctionDuration,
		Slot:              o.Slot,

		BaseAssetAmount:        o.BaseAssetAmount,
		BaseAssetAmountFilled:  o.BaseAssetAmountFilled,
		QuoteAssetAmount:       o.QuoteAssetAmount,
		QuoteAssetAmountFilled: o.QuoteAssetAmountFilled,

		ReduceOnly:        o.ReduceOnly,
		PostOnly:          o.PostOnly,
		ImmediateOrCancel: o.ImmediateOrCancel,
		TimeInForce:       o.TimeInForce,
		Ts:                o.Ts,
	}
}

func OrderToPB(o *dlob.Order, user dlob.UserKey) *pb.Order {
	return &pb.Order{
		User:        string(user),
		OrderId:     o.OrderID,
		UserOrderId: uint32(o.UserOrderID),

		MarketType:  uint32(o.MarketType),
		MarketIndex: uint32(o.MarketIndex),
		OrderType:   uint32(o.OrderType),
		Direction:   uint32(o.Direction),
		Status:      uint32(o.Status),

		Price:             o.Price,
		OraclePriceOffset: o.OraclePriceOffset,
		TriggerPrice:      o.TriggerPrice,
		TriggerCondition:  uint32(o.TriggerCondition),
		Triggered:         o.Triggered,

		AuctionStartPrice: o.AuctionStartPrice,
		AuctionEndPrice:   o.AuctionEndPrice,
		AuctionDuration:   o.AuctionDuration,
		Slot:              o.Slot,

		BaseAssetAmount:        o.BaseAssetAmount,
		BaseAssetAmountFilled:  o.BaseAssetAmountFilled,
		QuoteAssetAmount:       o.QuoteAssetAmount,
		QuoteAssetAmountFilled: o.QuoteAssetAmountFilled,

		ReduceOnly:        o.ReduceOnly,
		PostOnly:          o.PostOnly,
		ImmediateOrCancel: o.ImmediateOrCancel,
		TimeInForce:       o.TimeInForce,
		Ts:                o.Ts,
	}
}

// NodeToPB snapshots a book node with its effective price at (oracle, slot).
func NodeToPB(n *dlob.Node, oracle dlob.OraclePriceData, slot uint64) *pb.BookNode {
	bn := &pb.BookNode{
		Vamm:  n.IsVAMM(),
		Price: n.Price(oracle, slot),
	}
	if n.Order != nil {
		bn.Order = OrderToPB(n.Order, n.User)
	}
	return bn
}

func FillToPB(f dlob.NodeToFill, oracle dlob.OraclePriceData, slot uint64) *pb.FillPair {
	p := &pb.FillPair{
		Taker: NodeToPB(f.Node, oracle, slot),
	}
	if f.Maker != nil {
		p.Maker = NodeToPB(f.Maker, oracle, slot)
		p.HasMaker = true
	}
	return p
}
