// Package engine implements the matching core of a continuous
// double-auction market: two price-time-priority half-books for a
// single tradable, and the algorithm that pairs incoming orders
// against resting ones.
package engine

import (
	"bytes"

	"github.com/google/uuid"
)

// Side identifies which half-book an order belongs to.
type Side int

const (
	// Ask indicates a sell order.
	Ask Side = iota
	// Bid indicates a buy order.
	Bid
)

func (s Side) String() string {
	if s == Ask {
		return "ask"
	}
	return "bid"
}

// OrderType distinguishes priced orders from reference-priced ones.
type OrderType int

const (
	// Limit orders carry their own price and rest on the book until
	// matched or canceled.
	Limit OrderType = iota
	// Market orders have no price of their own.
	Market
)

func (t OrderType) String() string {
	if t == Limit {
		return "limit"
	}
	return "market"
}

// Tradable is the opaque symbol identity an order and an Engine are
// bound to. Two Tradables are equal iff both Symbol and ID match.
type Tradable struct {
	Symbol string
	ID     uuid.UUID
}

// Order is the common representation of all four variants described
// in the spec — LimitAsk, LimitBid, MarketAsk, MarketBid — obtained
// from the cross of Side and OrderType. Price is meaningless (and
// ignored by Crosses and the orderings) for Market orders.
type Order struct {
	UUID      uuid.UUID
	IssuerID  string
	Tradable  Tradable
	Side      Side
	Type      OrderType
	Price     int64
	Quantity  int64
	Timestamp int64
}

// NewLimitAsk builds a resting-eligible sell order priced at price.
func NewLimitAsk(id uuid.UUID, issuerID string, tradable Tradable, price, quantity, timestamp int64) Order {
	return Order{UUID: id, IssuerID: issuerID, Tradable: tradable, Side: Ask, Type: Limit, Price: price, Quantity: quantity, Timestamp: timestamp}
}

// NewLimitBid builds a resting-eligible buy order priced at price.
func NewLimitBid(id uuid.UUID, issuerID string, tradable Tradable, price, quantity, timestamp int64) Order {
	return Order{UUID: id, IssuerID: issuerID, Tradable: tradable, Side: Bid, Type: Limit, Price: price, Quantity: quantity, Timestamp: timestamp}
}

// NewMarketAsk builds an unpriced sell order.
func NewMarketAsk(id uuid.UUID, issuerID string, tradable Tradable, quantity, timestamp int64) Order {
	return Order{UUID: id, IssuerID: issuerID, Tradable: tradable, Side: Ask, Type: Market, Quantity: quantity, Timestamp: timestamp}
}

// NewMarketBid builds an unpriced buy order.
func NewMarketBid(id uuid.UUID, issuerID string, tradable Tradable, quantity, timestamp int64) Order {
	return Order{UUID: id, IssuerID: issuerID, Tradable: tradable, Side: Bid, Type: Market, Quantity: quantity, Timestamp: timestamp}
}

// IsLimit reports whether the order carries its own price.
func (o Order) IsLimit() bool { return o.Type == Limit }

// Split divides o into a filled part and a residual part. residualQty
// must be in [1, o.Quantity-1]. Both parts preserve IssuerID,
// Timestamp, Tradable, UUID, Price and variant; o itself is untouched.
func (o Order) Split(residualQty int64) (filled, residual Order, err error) {
	if residualQty < 1 || residualQty > o.Quantity-1 {
		return Order{}, Order{}, ErrInvalidQuantity
	}
	filled = o
	filled.Quantity = o.Quantity - residualQty
	residual = o
	residual.Quantity = residualQty
	return filled, residual, nil
}

// compareUUID gives a deterministic total order over UUIDs, used as
// the final tiebreak in §4.1 when price and timestamp both agree.
func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// Crosses reports whether two opposite-side orders are compatible on
// price to trade, per the Crosses relation in §3. Calling Crosses on
// two same-side orders is meaningless; callers never do so.
func Crosses(a, b Order) bool {
	ask, bid := a, b
	if a.Side == Bid {
		ask, bid = b, a
	}
	if ask.Side != Ask || bid.Side != Bid {
		return false
	}
	if ask.Type == Market || bid.Type == Market {
		return true
	}
	return ask.Price <= bid.Price
}
