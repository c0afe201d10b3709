// Package feed ingests chain-derived state: oracle price updates and slot
// ticks arrive on Kafka topics and are folded into in-memory caches the
// scanners read from.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"fenrir/domain/dlob"
)

// OracleUpdate is the wire shape of one oracle observation.
type OracleUpdate struct {
	MarketType  string `json:"market_type"`
	MarketIndex uint16 `json:"market_index"`
	Price       int64  `json:"price"`
	Confidence  uint64 `json:"confidence"`
	Slot        uint64 `json:"slot"`
	Sufficient  bool   `json:"has_sufficient_data_points"`
}

// SlotUpdate is the wire shape of one slot tick.
type SlotUpdate struct {
	Slot uint64 `json:"slot"`
}

// Consumer drains a Kafka topic and applies each message through a handler.
// One Consumer per topic; Run blocks until the context is canceled.
type Consumer struct {
	reader *kafka.Reader
	log    *zap.Logger
	handle func([]byte) error
}

func NewConsumer(brokers []string, topic, groupID string, log *zap.Logger, handle func([]byte) error) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		log:    log.With(zap.String("topic", topic)),
		handle: handle,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("feed: read message: %w", err)
		}
		if err := c.handle(msg.Value); err != nil {
			// A malformed message must not wedge the partition.
			c.log.Warn("dropping message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// OracleHandler decodes oracle updates into the cache and advances the slot
// clock as a side effect, since oracle observations carry slots too.
func OracleHandler(cache *OracleCache, clock *SlotClock) func([]byte) error {
	return func(value []byte) error {
		var u OracleUpdate
		if err := json.Unmarshal(value, &u); err != nil {
			return fmt.Errorf("feed: decode oracle update: %w", err)
		}
		mt, err := parseMarketType(u.MarketType)
		if err != nil {
			return err
		}
		cache.Set(mt, u.MarketIndex, dlob.OraclePriceData{
			Price:                   u.Price,
			Confidence:              u.Confidence,
			Slot:                    u.Slot,
			HasSufficientDataPoints: u.Sufficient,
		})
		clock.Advance(u.Slot)
		return nil
	}
}

// SlotHandler decodes slot ticks into the clock.
func SlotHandler(clock *SlotClock) func([]byte) error {
	return func(value []byte) error {
		var u SlotUpdate
		if err := json.Unmarshal(value, &u); err != nil {
			return fmt.Errorf("feed: decode slot update: %w", err)
		}
		clock.Advance(u.Slot)
		return nil
	}
}

func parseMarketType(s string) (dlob.MarketType, error) {
	switch s {
	case "perp":
		return dlob.Perp, nil
	case "spot":
		return dlob.Spot, nil
	default:
		return 0, fmt.Errorf("feed: unknown market type %q", s)
	}
}
