// Package pb holds the wire types of fenrir.proto. They are hand-maintained
// legacy-style messages: the protobuf runtime derives their descriptors from
// the struct tags, which keeps them usable with both proto.Marshal (via
// protoadapt) and the standard gRPC proto codec without generated code.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

// Event kinds carried by OrderEvent.Kind.
const (
	EventPlace uint32 = iota
	EventCancel
	EventUpdate
	EventTrigger
)

type Order struct {
	User                   string `protobuf:"bytes,1,opt,name=user,proto3" json:"user,omitempty"`
	OrderId                uint32 `protobuf:"varint,2,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	UserOrderId            uint32 `protobuf:"varint,3,opt,name=user_order_id,json=userOrderId,proto3" json:"user_order_id,omitempty"`
	MarketType             uint32 `protobuf:"varint,4,opt,name=market_type,json=marketType,proto3" json:"market_type,omitempty"`
	MarketIndex            uint32 `protobuf:"varint,5,opt,name=market_index,json=marketIndex,proto3" json:"market_index,omitempty"`
	OrderType              uint32 `protobuf:"varint,6,opt,name=order_type,json=orderType,proto3" json:"order_type,omitempty"`
	Direction              uint32 `protobuf:"varint,7,opt,name=direction,proto3" json:"direction,omitempty"`
	Status                 uint32 `protobuf:"varint,8,opt,name=status,proto3" json:"status,omitempty"`
	Price                  int64  `protobuf:"varint,9,opt,name=price,proto3" json:"price,omitempty"`
	OraclePriceOffset      int64  `protobuf:"varint,10,opt,name=oracle_price_offset,json=oraclePriceOffset,proto3" json:"oracle_price_offset,omitempty"`
	TriggerPrice           int64  `protobuf:"varint,11,opt,name=trigger_price,json=triggerPrice,proto3" json:"trigger_price,omitempty"`
	TriggerCondition       uint32 `protobuf:"varint,12,opt,name=trigger_condition,json=triggerCondition,proto3" json:"trigger_condition,omitempty"`
	Triggered              bool   `protobuf:"varint,13,opt,name=triggered,proto3" json:"triggered,omitempty"`
	AuctionStartPrice      int64  `protobuf:"varint,14,opt,name=auction_start_price,json=auctionStartPrice,proto3" json:"auction_start_price,omitempty"`
	AuctionEndPrice        int64  `protobuf:"varint,15,opt,name=auction_end_price,json=auctionEndPrice,proto3" json:"auction_end_price,omitempty"`
	AuctionDuration        uint64 `protobuf:"varint,16,opt,name=auction_duration,json=auctionDuration,proto3" json:"auction_duration,omitempty"`
	Slot                   uint64 `protobuf:"varint,17,opt,name=slot,proto3" json:"slot,omitempty"`
	BaseAssetAmount        int64  `protobuf:"varint,18,opt,name=base_asset_amount,json=baseAssetAmount,proto3" json:"base_asset_amount,omitempty"`
	BaseAssetAmountFilled  int64  `protobuf:"varint,19,opt,name=base_asset_amount_filled,json=baseAssetAmountFilled,proto3" json:"base_asset_amount_filled,omitempty"`
	QuoteAssetAmount       int64  `protobuf:"varint,20,opt,name=quote_asset_amount,json=quoteAssetAmount,proto3" json:"quote_asset_amount,omitempty"`
	QuoteAssetAmountFilled int64  `protobuf:"varint,21,opt,name=quote_asset_amount_filled,json=quoteAssetAmountFilled,proto3" json:"quote_asset_amount_filled,omitempty"`
	ReduceOnly             bool   `protobuf:"varint,22,opt,name=reduce_only,json=reduceOnly,proto3" json:"reduce_only,omitempty"`
	PostOnly               bool   `protobuf:"varint,23,opt,name=post_only,json=postOnly,proto3" json:"post_only,omitempty"`
	ImmediateOrCancel      bool   `protobuf:"varint,24,opt,name=immediate_or_cancel,json=immediateOrCancel,proto3" json:"immediate_or_cancel,omitempty"`
	TimeInForce            uint64 `protobuf:"varint,25,opt,name=time_in_force,json=timeInForce,proto3" json:"time_in_force,omitempty"`
	Ts                     int64  `protobuf:"varint,26,opt,name=ts,proto3" json:"ts,omitempty"`
}

func (m *Order) Reset()         { *m = Order{} }
func (m *Order) String() string { return fmt.Sprintf("%+v", *m) }
func (*Order) ProtoMessage()    {}

type OrderEvent struct {
	Kind                   uint32 `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	User                   string `protobuf:"bytes,2,opt,name=user,proto3" json:"user,omitempty"`
	OrderId                uint32 `protobuf:"varint,3,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	MarketType             uint32 `protobuf:"varint,4,opt,name=market_type,json=marketType,proto3" json:"market_type,omitempty"`
	MarketIndex            uint32 `protobuf:"varint,5,opt,name=market_index,json=marketIndex,proto3" json:"market_index,omitempty"`
	Slot                   uint64 `protobuf:"varint,6,opt,name=slot,proto3" json:"slot,omitempty"`
	Order                  *Order `protobuf:"bytes,7,opt,name=order,proto3" json:"order,omitempty"`
	BaseAssetAmountFilled  int64  `protobuf:"varint,8,opt,name=base_asset_amount_filled,json=baseAssetAmountFilled,proto3" json:"base_asset_amount_filled,omitempty"`
	QuoteAssetAmountFilled int64  `protobuf:"varint,9,opt,name=quote_asset_amount_filled,json=quoteAssetAmountFilled,proto3" json:"quote_asset_amount_filled,omitempty"`
}

func (m *OrderEvent) Reset()         { *m = OrderEvent{} }
func (m *OrderEvent) String() string { return fmt.Sprintf("%+v", *m) }
func (*OrderEvent) ProtoMessage()    {}

type BookNode struct {
	Vamm  bool   `protobuf:"varint,1,opt,name=vamm,proto3" json:"vamm,omitempty"`
	Price int64  `protobuf:"varint,2,opt,name=price,proto3" json:"price,omitempty"`
	Order *Order `protobuf:"bytes,3,opt,name=order,proto3" json:"order,omitempty"`
}

func (m *BookNode) Reset()         { *m = BookNode{} }
func (m *BookNode) String() string { return fmt.Sprintf("%+v", *m) }
func (*BookNode) ProtoMessage()    {}

type FillPair struct {
	Taker    *BookNode `protobuf:"bytes,1,opt,name=taker,proto3" json:"taker,omitempty"`
	Maker    *BookNode `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	HasMaker bool      `protobuf:"varint,3,opt,name=has_maker,json=hasMaker,proto3" json:"has_maker,omitempty"`
}

func (m *FillPair) Reset()         { *m = FillPair{} }
func (m *FillPair) String() string { return fmt.Sprintf("%+v", *m) }
func (*FillPair) ProtoMessage()    {}

type GetOrderBookRequest struct {
	MarketType   uint32 `protobuf:"varint,1,opt,name=market_type,json=marketType,proto3" json:"market_type,omitempty"`
	MarketIndex  uint32 `protobuf:"varint,2,opt,name=market_index,json=marketIndex,proto3" json:"market_index,omitempty"`
	HasReference bool   `protobuf:"varint,3,opt,name=has_reference,json=hasReference,proto3" json:"has_reference,omitempty"`
	VBid         int64  `protobuf:"varint,4,opt,name=v_bid,json=vBid,proto3" json:"v_bid,omitempty"`
	VAsk         int64  `protobuf:"varint,5,opt,name=v_ask,json=vAsk,proto3" json:"v_ask,omitempty"`
}

func (m *GetOrderBookRequest) Reset()         { *m = GetOrderBookRequest{} }
func (m *GetOrderBookRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetOrderBookRequest) ProtoMessage()    {}

type GetOrderBookResponse struct {
	Bids        []*BookNode `protobuf:"bytes,1,rep,name=bids,proto3" json:"bids,omitempty"`
	Asks        []*BookNode `protobuf:"bytes,2,rep,name=asks,proto3" json:"asks,omitempty"`
	Slot        uint64      `protobuf:"varint,3,opt,name=slot,proto3" json:"slot,omitempty"`
	OraclePrice int64       `protobuf:"varint,4,opt,name=oracle_price,json=oraclePrice,proto3" json:"oracle_price,omitempty"`
}

func (m *GetOrderBookResponse) Reset()         { *m = GetOrderBookResponse{} }
func (m *GetOrderBookResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetOrderBookResponse) ProtoMessage()    {}

type FindFillsRequest struct {
	MarketType   uint32 `protobuf:"varint,1,opt,name=market_type,json=marketType,proto3" json:"market_type,omitempty"`
	MarketIndex  uint32 `protobuf:"varint,2,opt,name=market_index,json=marketIndex,proto3" json:"market_index,omitempty"`
	HasReference bool   `protobuf:"varint,3,opt,name=has_reference,json=hasReference,proto3" json:"has_reference,omitempty"`
	VBid         int64  `protobuf:"varint,4,opt,name=v_bid,json=vBid,proto3" json:"v_bid,omitempty"`
	VAsk         int64  `protobuf:"varint,5,opt,name=v_ask,json=vAsk,proto3" json:"v_ask,omitempty"`
}

func (m *FindFillsRequest) Reset()         { *m = FindFillsRequest{} }
func (m *FindFillsRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*FindFillsRequest) ProtoMessage()    {}

type FindFillsResponse struct {
	Pairs []*FillPair `protobuf:"bytes,1,rep,name=pairs,proto3" json:"pairs,omitempty"`
	Slot  uint64      `protobuf:"varint,2,opt,name=slot,proto3" json:"slot,omitempty"`
}

func (m *FindFillsResponse) Reset()         { *m = FindFillsResponse{} }
func (m *FindFillsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*FindFillsResponse) ProtoMessage()    {}

type FindTriggersRequest struct {
	MarketType  uint32 `protobuf:"varint,1,opt,name=market_type,json=marketType,proto3" json:"market_type,omitempty"`
	MarketIndex uint32 `protobuf:"varint,2,opt,name=market_index,json=marketIndex,proto3" json:"market_index,omitempty"`
}

func (m *FindTriggersRequest) Reset()         { *m = FindTriggersRequest{} }
func (m *FindTriggersRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*FindTriggersRequest) ProtoMessage()    {}

type FindTriggersResponse struct {
	Nodes       []*BookNode `protobuf:"bytes,1,rep,name=nodes,proto3" json:"nodes,omitempty"`
	OraclePrice int64       `protobuf:"varint,2,opt,name=oracle_price,json=oraclePrice,proto3" json:"oracle_price,omitempty"`
}

func (m *FindTriggersResponse) Reset()         { *m = FindTriggersResponse{} }
func (m *FindTriggersResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*FindTriggersResponse) ProtoMessage()    {}

// Marshal encodes any message of this package to proto wire format.
func Marshal(m protoadapt.MessageV1) ([]byte, error) {
	return proto.Marshal(protoadapt.MessageV2Of(m))
}

// Unmarshal decodes proto wire format into a message of this package.
func Unmarshal(b []byte, m protoadapt.MessageV1) error {
	return proto.Unmarshal(b, protoadapt.MessageV2Of(m))
}
