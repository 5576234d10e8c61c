package engine

// Less is a strict total order over the orders of one side: Less(a, b)
// reports whether a ranks strictly ahead of b (a would trade first).
// The minimum element under Less is the "best" order on that side.
type Less func(a, b Order) bool

// AskLess implements §4.1's ask-side ordering: market orders rank
// ahead of every limit ask; among limit asks, lower price first, then
// earlier timestamp, then lexicographically smaller UUID.
func AskLess(a, b Order) bool {
	if a.Type != b.Type {
		return a.Type == Market
	}
	if a.Type == Limit && a.Price != b.Price {
		return a.Price < b.Price
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return compareUUID(a.UUID, b.UUID) < 0
}

// BidLess implements §4.1's bid-side ordering: market orders rank
// ahead of every limit bid; among limit bids, higher price first, then
// earlier timestamp, then lexicographically smaller UUID.
func BidLess(a, b Order) bool {
	if a.Type != b.Type {
		return a.Type == Market
	}
	if a.Type == Limit && a.Price != b.Price {
		return a.Price > b.Price
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return compareUUID(a.UUID, b.UUID) < 0
}

// lessFor returns the ordering appropriate for side.
func lessFor(side Side) Less {
	if side == Ask {
		return AskLess
	}
	return BidLess
}
