package dlob

// FindExpiredNodesToFill returns resting market-type orders whose time in
// force has elapsed at the given slot. They are emitted with a nil maker:
// the caller must force-resolve them regardless of price. Bids first, then
// asks, each in FIFO order.
func (d *DLOB) FindExpiredNodesToFill(idx uint16, slot uint64, mt MarketType) []NodeToFill {
	mb, ok := d.market(mt, idx)
	if !ok {
		return nil
	}
	var out []NodeToFill
	for _, side := range []*sideIndex{mb.bids, mb.asks} {
		for _, n := range side.taking() {
			if !n.Order.Expired(slot) {
				continue
			}
			out = append(out, NodeToFill{Node: n})
		}
	}
	return out
}
