package engine

// Fill is the immutable record of one match, per §4.4. Exactly one of
// ResidualAsk/ResidualBid may be set when the traded quantities were
// unequal; both are nil when they were equal. Conservation law:
// AskOrder.Quantity == Quantity + ResidualAsk.Quantity (if present),
// and symmetrically for BidOrder.
type Fill struct {
	AskOrder    Order
	BidOrder    Order
	Price       int64
	Quantity    int64
	ResidualAsk *Order
	ResidualBid *Order
}

// askBidOrder returns (ask, bid) regardless of which argument was the
// incoming order and which was resting.
func askBidOrder(a, b Order) (ask, bid Order) {
	if a.Side == Ask {
		return a, b
	}
	return b, a
}
