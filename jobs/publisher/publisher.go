// Package publisher drains the candidate outbox to Kafka. Delivery is
// at-least-once: a candidate is marked SENT before the produce attempt and
// ACKED only after the broker confirms it, so a crash between the two
// re-sends rather than drops.
package publisher

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"fenrir/infra/outbox"
)

const maxRetries = 5

type Publisher struct {
	box      *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
	log      *zap.Logger
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(
	box *outbox.Outbox,
	brokers []string,
	topic string,
	interval time.Duration,
	log *zap.Logger,
) (*Publisher, error) {

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		box:      box,
		producer: producer,
		topic:    topic,
		interval: interval,
		log:      log,
	}, nil
}

// ------------------------------------------------
// DRAIN LOOP
// ------------------------------------------------

func (p *Publisher) Run(ctx context.Context) {
	p.log.Info("publisher started", zap.String("topic", p.topic))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.drainOnce()
		}
	}
}

func (p *Publisher) drainOnce() {
	// SENT first: these were in flight when a previous drain (or process)
	// died and must be retried before anything new goes out.
	_ = p.box.ScanByState(outbox.StateSent, p.sendOne)
	_ = p.box.ScanByState(outbox.StateNew, p.sendOne)
}

func (p *Publisher) sendOne(rec outbox.Record) error {
	if rec.Retries >= maxRetries {
		p.log.Warn("abandoning candidate",
			zap.String("id", rec.ID),
			zap.Uint32("retries", rec.Retries))
		return p.box.UpdateState(rec.ID, outbox.StateFailed, rec.Retries)
	}

	// Mark SENT before producing (idempotent).
	if err := p.box.UpdateState(rec.ID, outbox.StateSent, rec.Retries); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(rec.ID),
		Value: sarama.ByteEncoder(rec.Payload),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.log.Warn("produce failed, will retry",
			zap.String("id", rec.ID),
			zap.Error(err))
		return p.box.UpdateState(rec.ID, outbox.StateSent, rec.Retries+1)
	}

	return p.box.UpdateState(rec.ID, outbox.StateAcked, rec.Retries)
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (p *Publisher) Close() error {
	return p.producer.Close()
}
