package dlob

// FindNodesToTrigger returns every untriggered conditional order of the
// market whose trigger condition holds at oraclePrice, in insertion order.
// Trigger orders are outside the price-ordered book, so no side or price
// priority applies; an already triggered order never reappears.
func (d *DLOB) FindNodesToTrigger(idx uint16, slot uint64, oraclePrice int64, mt MarketType) []NodeToTrigger {
	mb, ok := d.market(mt, idx)
	if !ok {
		return nil
	}
	var out []NodeToTrigger
	for _, n := range mb.triggers {
		o := n.Order
		if o.Triggered || o.Status != Open {
			continue
		}
		if o.TriggerSatisfied(oraclePrice) {
			out = append(out, NodeToTrigger{Node: n})
		}
	}
	return out
}
