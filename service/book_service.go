// Package service coordinates the engine: it is the only write entry point
// into the book, owns durability (journal + mirror), and runs the scan loop
// that proposes fill and trigger candidates.
package service

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fenrir/api/pb"
	"fenrir/domain/dlob"
	"fenrir/infra/feed"
	"fenrir/infra/journal"
	"fenrir/infra/mirror"
)

var (
	ErrMissingOrder = errors.New("service: event carries no order")
	ErrUnknownKind  = errors.New("service: unknown event kind")
	ErrUnknownOrder = errors.New("service: event references unknown order")
)

// Reference carries the vAMM bid/ask reference prices for one query. A nil
// Reference excludes the synthetic node from views and scans.
type Reference struct {
	VBid int64
	VAsk int64
}

// BookService is the ONLY write entry point into the book.
//
// All coordination between:
// - domain (dlob)
// - infra (journal, mirror, feed)
// happens here. Every mutation is journaled before it touches the book, and
// the mirror is kept current so restart cost stays bounded.
type BookService struct {
	mu sync.Mutex

	book   *dlob.DLOB
	jnl    *journal.Journal
	jnlDir string
	mir    *mirror.Store

	oracles *feed.OracleCache
	clock   *feed.SlotClock

	seq     uint64
	log     *zap.Logger
	metrics *Metrics
}

func NewBookService(
	book *dlob.DLOB,
	jnl *journal.Journal,
	jnlDir string,
	mir *mirror.Store,
	oracles *feed.OracleCache,
	clock *feed.SlotClock,
	log *zap.Logger,
	metrics *Metrics,
) *BookService {
	return &BookService{
		book:    book,
		jnl:     jnl,
		jnlDir:  jnlDir,
		mir:     mir,
		oracles: oracles,
		clock:   clock,
		log:     log,
		metrics: metrics,
	}
}

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

// Apply journals an order event and folds it into the book. It returns the
// sequence number assigned to the event.
func (s *BookService) Apply(ev *pb.OrderEvent) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, err := recordTypeFor(ev.Kind)
	if err != nil {
		s.metrics.rejected()
		return 0, err
	}

	payload, err := pb.Marshal(ev)
	if err != nil {
		s.metrics.rejected()
		return 0, fmt.Errorf("service: encode event: %w", err)
	}

	seq := s.seq + 1
	if err := s.jnl.Append(journal.NewRecord(rt, seq, payload)); err != nil {
		return 0, fmt.Errorf("service: journal event: %w", err)
	}
	s.seq = seq

	if err := s.applyLocked(ev); err != nil {
		// Journaled but inapplicable. Replay will hit the same condition and
		// skip it the same way, so log and move on.
		s.metrics.rejected()
		s.log.Warn("event not applied",
			zap.Uint64("seq", seq),
			zap.Uint32("kind", ev.Kind),
			zap.String("user", ev.User),
			zap.Uint32("order_id", ev.OrderId),
			zap.Error(err))
		return seq, nil
	}

	s.metrics.applied(kindName(ev.Kind))
	s.metrics.openOrders(s.book.OpenOrderCount(dlob.MarketType(ev.MarketType), uint16(ev.MarketIndex)))
	return seq, nil
}

// applyLocked mutates book and mirror for one event. Caller holds s.mu.
func (s *BookService) applyLocked(ev *pb.OrderEvent) error {
	user := dlob.UserKey(ev.User)
	mt := dlob.MarketType(ev.MarketType)
	idx := uint16(ev.MarketIndex)

	switch ev.Kind {
	case pb.EventPlace:
		if ev.Order == nil {
			return ErrMissingOrder
		}
		s.book.InsertOrder(OrderFromPB(ev.Order), user)
		return s.mir.Put(ev.Order)

	case pb.EventCancel:
		s.book.RemoveOrder(user, ev.OrderId, mt, idx)
		return s.mir.Delete(ev.User, ev.OrderId)

	case pb.EventUpdate:
		o := s.book.GetOrder(user, ev.OrderId, mt, idx)
		if o == nil {
			return ErrUnknownOrder
		}
		o.BaseAssetAmountFilled = ev.BaseAssetAmountFilled
		o.QuoteAssetAmountFilled = ev.QuoteAssetAmountFilled
		if o.Remaining() <= 0 {
			o.Status = dlob.Filled
			s.book.RemoveOrder(user, ev.OrderId, mt, idx)
			return s.mir.Delete(ev.User, ev.OrderId)
		}
		return s.mir.Put(OrderToPB(o, user))

	case pb.EventTrigger:
		s.book.Trigger(user, ev.OrderId, mt, idx)
		o := s.book.GetOrder(user, ev.OrderId, mt, idx)
		if o == nil {
			return ErrUnknownOrder
		}
		return s.mir.Put(OrderToPB(o, user))

	default:
		return ErrUnknownKind
	}
}

// Rebuild restores the book from the mirror snapshot plus the journal tail.
// Must run before Apply is first called.
func (s *BookService) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mir.ForEach(func(o *pb.Order) error {
		s.book.InsertOrder(OrderFromPB(o), dlob.UserKey(o.User))
		return nil
	}); err != nil {
		return fmt.Errorf("service: load mirror: %w", err)
	}

	fromSeq, err := s.mir.LastSeq()
	if err != nil {
		return fmt.Errorf("service: read mirror seq: %w", err)
	}

	lastSeq, err := journal.Replay(s.jnlDir, fromSeq, func(rec *journal.Record) error {
		var ev pb.OrderEvent
		if err := pb.Unmarshal(rec.Data, &ev); err != nil {
			return err
		}
		if err := s.applyLocked(&ev); err != nil {
			// Same tolerance as the live path.
			s.log.Warn("replayed event not applied",
				zap.Uint64("seq", rec.Seq), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("service: replay journal: %w", err)
	}

	s.seq = lastSeq
	s.log.Info("book rebuilt",
		zap.Uint64("mirror_seq", fromSeq),
		zap.Uint64("last_seq", lastSeq))
	return nil
}

// Checkpoint records the current sequence in the mirror and drops journal
// segments the mirror now covers.
func (s *BookService) Checkpoint() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.jnl.Sync(); err != nil {
		return err
	}
	if err := s.mir.SetLastSeq(s.seq); err != nil {
		return err
	}
	return s.jnl.TruncateBefore(s.seq)
}

// Seq returns the last assigned event sequence.
func (s *BookService) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

// market resolves the freshest (oracle, slot) pair for one market.
func (s *BookService) market(mt dlob.MarketType, idx uint16) (dlob.OraclePriceData, uint64) {
	oracle, _ := s.oracles.Get(mt, idx)
	slot := s.clock.Current()
	if oracle.Slot > slot {
		slot = oracle.Slot
	}
	return oracle, slot
}

func refPrices(ref *Reference) (vBid, vAsk *int64) {
	if ref == nil {
		return nil, nil
	}
	return &ref.VBid, &ref.VAsk
}

// OrderBook returns both price-ordered sides as of the current slot.
func (s *BookService) OrderBook(mt dlob.MarketType, idx uint16, ref *Reference) *pb.GetOrderBookResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	oracle, slot := s.market(mt, idx)
	vBid, vAsk := refPrices(ref)

	resp := &pb.GetOrderBookResponse{
		Slot:        slot,
		OraclePrice: oracle.Price,
	}
	for n := range s.book.GetBids(idx, vBid, slot, mt, oracle) {
		resp.Bids = append(resp.Bids, NodeToPB(n, oracle, slot))
	}
	for n := range s.book.GetAsks(idx, vAsk, slot, mt, oracle) {
		resp.Asks = append(resp.Asks, NodeToPB(n, oracle, slot))
	}
	return resp
}

// FindFills runs the expiry and crossing scans for one market.
func (s *BookService) FindFills(mt dlob.MarketType, idx uint16, ref *Reference) ([]dlob.NodeToFill, dlob.OraclePriceData, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oracle, slot := s.market(mt, idx)
	vBid, vAsk := refPrices(ref)
	return s.book.FindNodesToFill(idx, vBid, vAsk, slot, mt, oracle), oracle, slot
}

// FindTriggers returns conditional orders whose condition holds at the
// current oracle price.
func (s *BookService) FindTriggers(mt dlob.MarketType, idx uint16) ([]dlob.NodeToTrigger, dlob.OraclePriceData, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oracle, slot := s.market(mt, idx)
	return s.book.FindNodesToTrigger(idx, slot, oracle.Price, mt), oracle, slot
}

func recordTypeFor(kind uint32) (journal.RecordType, error) {
	switch kind {
	case pb.EventPlace:
		return journal.RecordPlace, nil
	case pb.EventCancel:
		return journal.RecordCancel, nil
	case pb.EventUpdate:
		return journal.RecordUpdate, nil
	case pb.EventTrigger:
		return journal.RecordTrigger, nil
	default:
		return 0, ErrUnknownKind
	}
}

func kindName(kind uint32) string {
	switch kind {
	case pb.EventPlace:
		return "place"
	case pb.EventCancel:
		return "cancel"
	case pb.EventUpdate:
		return "update"
	case pb.EventTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}
