package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fenrir/api/pb"
	"fenrir/domain/dlob"
	"fenrir/infra/outbox"
)

// Market names one market the filler watches. SpreadBps, when non-zero,
// derives the vAMM bid/ask reference from the oracle price; zero disables
// the synthetic node for the market.
type Market struct {
	Type      dlob.MarketType
	Index     uint16
	SpreadBps int64
}

// Filler periodically scans every configured market and writes fill and
// trigger candidates into the outbox. It proposes, it never settles.
type Filler struct {
	svc      *BookService
	box      *outbox.Outbox
	markets  []Market
	interval time.Duration
	log      *zap.Logger
	metrics  *Metrics
}

func NewFiller(
	svc *BookService,
	box *outbox.Outbox,
	markets []Market,
	interval time.Duration,
	log *zap.Logger,
	metrics *Metrics,
) *Filler {
	return &Filler{
		svc:      svc,
		box:      box,
		markets:  markets,
		interval: interval,
		log:      log,
		metrics:  metrics,
	}
}

// Run blocks and scans on a ticker until the context is canceled.
func (f *Filler) Run(ctx context.Context) {
	f.log.Info("filler started",
		zap.Int("markets", len(f.markets)),
		zap.Duration("interval", f.interval))

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.scanOnce()
		}
	}
}

func (f *Filler) scanOnce() {
	start := time.Now()
	batch := uuid.NewString()

	for _, m := range f.markets {
		f.scanMarket(m, batch)
	}
	f.metrics.scanSeconds(time.Since(start).Seconds())
}

func (f *Filler) scanMarket(m Market, batch string) {
	ref := f.reference(m)

	fills, oracle, slot := f.svc.FindFills(m.Type, m.Index, ref)
	for _, fill := range fills {
		payload, err := pb.Marshal(FillToPB(fill, oracle, slot))
		if err != nil {
			f.log.Error("encode fill candidate", zap.Error(err))
			continue
		}
		if err := f.box.PutNew(fillID(m, fill, slot), envelope(batch, "fill", payload)); err != nil {
			f.log.Error("persist fill candidate", zap.Error(err))
		}
	}
	f.metrics.candidate("fill", len(fills))

	triggers, oracle, slot := f.svc.FindTriggers(m.Type, m.Index)
	for _, tr := range triggers {
		payload, err := pb.Marshal(NodeToPB(tr.Node, oracle, slot))
		if err != nil {
			f.log.Error("encode trigger candidate", zap.Error(err))
			continue
		}
		if err := f.box.PutNew(triggerID(m, tr), envelope(batch, "trigger", payload)); err != nil {
			f.log.Error("persist trigger candidate", zap.Error(err))
		}
	}
	f.metrics.candidate("trigger", len(triggers))
}

// reference derives vAMM bid/ask from the oracle when a spread is set.
func (f *Filler) reference(m Market) *Reference {
	if m.SpreadBps == 0 {
		return nil
	}
	oracle, ok := f.svc.oracles.Get(m.Type, m.Index)
	if !ok || oracle.Price == 0 {
		return nil
	}
	half := oracle.Price * m.SpreadBps / 20_000
	return &Reference{
		VBid: oracle.Price - half,
		VAsk: oracle.Price + half,
	}
}

// Candidate IDs are deterministic so that rescanning the same book state is
// idempotent against the outbox. Expiry candidates carry the slot; a crossing
// pair is identified by its participants alone.
func fillID(m Market, f dlob.NodeToFill, slot uint64) string {
	taker := f.Node.Key()
	if f.Maker == nil {
		return fmt.Sprintf("fill/%s/%d/%s/%d/expire/%d",
			m.Type, m.Index, taker.User, taker.OrderID, slot)
	}
	maker := f.Maker.Key()
	return fmt.Sprintf("fill/%s/%d/%s/%d/%s/%d",
		m.Type, m.Index, taker.User, taker.OrderID, maker.User, maker.OrderID)
}

func triggerID(m Market, t dlob.NodeToTrigger) string {
	key := t.Node.Key()
	return fmt.Sprintf("trigger/%s/%d/%s/%d", m.Type, m.Index, key.User, key.OrderID)
}

// envelope frames a candidate payload as "kind|batch|payload". The publisher
// forwards it whole; consumers split on the first two pipes.
func envelope(batch string, kind string, payload []byte) []byte {
	head := kind + "|" + batch + "|"
	out := make([]byte, 0, len(head)+len(payload))
	out = append(out, head...)
	return append(out, payload...)
}
