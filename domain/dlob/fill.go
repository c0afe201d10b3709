package dlob

import "iter"

// FindNodesToFill is the composed fill scan: expired market orders first
// (forced resolution regardless of price), then crossing candidates. A
// taker already emitted as expired is not proposed again by the crossing
// scan within the same call.
func (d *DLOB) FindNodesToFill(idx uint16, vBid, vAsk *int64, slot uint64, mt MarketType, oracle OraclePriceData) []NodeToFill {
	expired := d.FindExpiredNodesToFill(idx, slot, mt)

	seen := make(map[NodeKey]struct{}, len(expired))
	for _, f := range expired {
		seen[f.Node.Key()] = struct{}{}
	}

	out := expired
	for _, f := range d.FindCrossingNodesToFill(idx, vBid, vAsk, slot, mt, oracle) {
		if _, dup := seen[f.Node.Key()]; dup {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FindCrossingNodesToFill walks the best-bid and best-ask views and emits
// candidate (taker, maker) pairs while the book crosses. The engine only
// proposes: makers are never decremented within a scan, so a large maker
// may legitimately appear in several pairs of one call. Callers must
// refresh the book before re-scanning.
func (d *DLOB) FindCrossingNodesToFill(idx uint16, vBid, vAsk *int64, slot uint64, mt MarketType, oracle OraclePriceData) []NodeToFill {
	nextBid, stopBid := iter.Pull(d.GetBids(idx, vBid, slot, mt, oracle))
	defer stopBid()
	nextAsk, stopAsk := iter.Pull(d.GetAsks(idx, vAsk, slot, mt, oracle))
	defer stopAsk()

	bid, okBid := nextBid()
	ask, okAsk := nextAsk()

	var out []NodeToFill

	// takerCovered tracks how much of the current taker's remaining size
	// has been accounted for by makers already emitted in this scan. It is
	// scratch state of the scan, never written back to the order.
	var takerCovered int64
	var lastTaker NodeKey

	for okBid && okAsk {
		bidPrice := bid.Price(oracle, slot)
		askPrice := ask.Price(oracle, slot)
		if bidPrice < askPrice {
			break
		}
		// Two vAMM nodes cannot trade with each other.
		if bid.IsVAMM() && ask.IsVAMM() {
			break
		}

		taker, maker, ok := determineTakerAndMaker(bid, ask)
		if !ok {
			// Neither side may take (both post-only). Skip the newer
			// node; it cannot initiate against anything deeper either.
			if pickNewer(bid, ask) == bid {
				bid, okBid = nextBid()
			} else {
				ask, okAsk = nextAsk()
			}
			takerCovered = 0
			continue
		}

		if taker.Key() != lastTaker {
			takerCovered = 0
			lastTaker = taker.Key()
		}

		out = append(out, NodeToFill{Node: taker, Maker: maker})

		advanceTaker := func() {
			takerCovered = 0
			if taker == bid {
				bid, okBid = nextBid()
			} else {
				ask, okAsk = nextAsk()
			}
		}
		advanceMaker := func() {
			if maker == bid {
				bid, okBid = nextBid()
			} else {
				ask, okAsk = nextAsk()
			}
		}

		if maker.IsVAMM() {
			// The vAMM is a backstop with no resting size; it absorbs
			// the taker entirely.
			advanceTaker()
			continue
		}

		makerRemaining := maker.Order.Remaining()
		takerRemaining := taker.Order.Remaining() - takerCovered
		switch {
		case makerRemaining > takerRemaining:
			// Maker outsizes the taker; it stays put, undecremented,
			// available to the next taker.
			advanceTaker()
		case makerRemaining < takerRemaining:
			takerCovered += makerRemaining
			advanceMaker()
		default:
			// Exact match: both nodes are used up.
			advanceMaker()
			advanceTaker()
		}
	}
	return out
}

// determineTakerAndMaker decides which crossing node initiates the trade.
// The vAMM never takes; a marketable order takes against a resting one;
// between peers the more recently inserted node takes. Post-only orders
// cannot take. ok is false when no valid assignment exists.
func determineTakerAndMaker(bid, ask *Node) (taker, maker *Node, ok bool) {
	switch {
	case bid.IsVAMM():
		taker, maker = ask, bid
	case ask.IsVAMM():
		taker, maker = bid, ask
	case bid.Order.IsMarketable() && !ask.Order.IsMarketable():
		taker, maker = bid, ask
	case ask.Order.IsMarketable() && !bid.Order.IsMarketable():
		taker, maker = ask, bid
	default:
		if pickNewer(bid, ask) == bid {
			taker, maker = bid, ask
		} else {
			taker, maker = ask, bid
		}
	}

	if taker.Order != nil && taker.Order.PostOnly {
		// Try the other assignment before giving up.
		if maker.Order == nil || maker.Order.PostOnly {
			return nil, nil, false
		}
		taker, maker = maker, taker
	}
	return taker, maker, true
}

func pickNewer(a, b *Node) *Node {
	if a.seq >= b.seq {
		return a
	}
	return b
}

// FindMarketNodesToFill returns market-type orders that can fill against
// the vAMM alone: their auction has completed, so the protocol allows the
// backstop to take the other side without any resting maker. Takers are
// emitted in FIFO order, bids before asks.
func (d *DLOB) FindMarketNodesToFill(idx uint16, slot uint64, mt MarketType) []NodeToFill {
	mb, ok := d.market(mt, idx)
	if !ok {
		return nil
	}
	var out []NodeToFill
	for _, side := range []*sideIndex{mb.bids, mb.asks} {
		for _, n := range side.taking() {
			if !n.Order.AuctionComplete(slot) {
				continue
			}
			out = append(out, NodeToFill{Node: n})
		}
	}
	return out
}
