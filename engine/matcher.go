package engine

import (
	"github.com/google/uuid"
)

// EngineOption configures an Engine at construction time, the same
// functional-options shape the pack's logger.NewLogger(opts ...Options)
// uses for optional knobs.
type EngineOption func(*Engine)

// WithMaxDepth caps each half-book at depth resting orders, evicting
// the worst-priority order on overflow. Zero (the default) means
// unbounded.
func WithMaxDepth(depth int) EngineOption {
	return func(e *Engine) { e.maxDepth = depth }
}

// WithInvariantChecks enables the extra consistency assertions noted
// in §4.2/§7's design notes ("invariant-check helpers guarded by debug
// flags"). They are redundant with the data structures' own
// bookkeeping and exist to catch a bug in the engine itself, not bad
// input; leave disabled in production for the extra cost.
func WithInvariantChecks() EngineOption {
	return func(e *Engine) { e.debug = true }
}

// Engine owns one ask half-book and one bid half-book for a single
// Tradable, an ask_ordering/bid_ordering pair, a reference price, and
// a price-formation strategy, per §3/§4.3. It is single-threaded
// cooperative: FindMatch and Cancel run to completion with no internal
// yielding, and perform no locking of their own — concurrent hosts
// serialize calls themselves (§5).
type Engine struct {
	tradable       Tradable
	askBook        *HalfBook
	bidBook        *HalfBook
	referencePrice int64
	pricing        PriceFormation
	askOrdering    Less
	bidOrdering    Less
	maxDepth       int
	debug          bool
}

// NewEngine constructs an Engine per §6's literal constructor
// (ask_ordering, bid_ordering, initial_reference_price,
// price_formation): askOrdering and bidOrdering rank resting orders
// within each half-book, exactly like pricing ranks execution price,
// and are both overridable the same way. Pass nil for either to get
// the default AskLess/BidLess policy from engine/ordering.go.
func NewEngine(tradable Tradable, askOrdering, bidOrdering Less, initialReferencePrice int64, pricing PriceFormation, opts ...EngineOption) (*Engine, error) {
	if initialReferencePrice < 1 {
		return nil, ErrInvalidPrice
	}
	if askOrdering == nil {
		askOrdering = lessFor(Ask)
	}
	if bidOrdering == nil {
		bidOrdering = lessFor(Bid)
	}
	e := &Engine{
		tradable:       tradable,
		referencePrice: initialReferencePrice,
		pricing:        pricing,
		askOrdering:    askOrdering,
		bidOrdering:    bidOrdering,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.askBook = NewHalfBook(tradable, Ask, e.askOrdering, e.maxDepth)
	e.bidBook = NewHalfBook(tradable, Bid, e.bidOrdering, e.maxDepth)
	return e, nil
}

// bookFor returns the half-book an order of this side rests in.
func (e *Engine) bookFor(side Side) *HalfBook {
	if side == Ask {
		return e.askBook
	}
	return e.bidBook
}

// oppositeOf returns the half-book on the other side of side.
func (e *Engine) oppositeOf(side Side) *HalfBook {
	if side == Ask {
		return e.bidBook
	}
	return e.askBook
}

// isResting reports whether an order with this uuid is currently
// resting in either half-book.
func (e *Engine) isResting(id uuid.UUID) bool {
	if _, ok := e.askBook.index[id]; ok {
		return true
	}
	_, ok := e.bidBook.index[id]
	return ok
}

// FindMatch attempts to match incoming against the opposite half-book,
// repeatedly, per the algorithm in §4.3.1. It returns the fills
// produced, oldest first, or nil if no fill occurred (incoming simply
// rested, or was fully absorbed with no crossing resting order at
// all — which cannot happen for a non-empty incoming order, since
// resting requires no fills). Input errors are returned without
// mutating engine state; the half-books and reference price are
// touched only after validation succeeds.
func (e *Engine) FindMatch(incoming Order) ([]Fill, error) {
	if incoming.Tradable != e.tradable {
		return nil, ErrInvalidTradable
	}
	if incoming.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if incoming.IsLimit() && incoming.Price < 1 {
		return nil, ErrInvalidPrice
	}
	if e.isResting(incoming.UUID) {
		return nil, ErrDuplicateOrder
	}
	defer e.checkUncrossed()

	var fills []Fill
	current := incoming
	opposite := e.oppositeOf(current.Side)

	for {
		best, ok := opposite.PeekBest()
		if !ok || !Crosses(current, best) {
			if err := e.bookFor(current.Side).Add(current); err != nil {
				checkInvariant(false, "rest of validated incoming order failed: "+err.Error())
			}
			return fills, nil
		}

		popped, ok := opposite.PopBest()
		checkInvariant(ok, "peeked best disappeared before pop")
		best = popped

		tradeQty := min64(current.Quantity, best.Quantity)
		price := e.price(current, best)
		checkInvariant(price >= 1, "price formation produced a non-positive price")
		e.referencePrice = price

		switch {
		case current.Quantity > best.Quantity:
			// The conservation law in §4.4 ties the fill's recorded
			// order quantities to quantity+residual, so the fill
			// carries the pre-split (original) orders; Split's
			// "filled" half is discarded here, only the residual and
			// its range validation are needed.
			_, residualCurrent, err := current.Split(current.Quantity - best.Quantity)
			checkInvariant(err == nil, "split of incoming order failed")
			fills = append(fills, buildFill(current, best, price, tradeQty, &residualCurrent, nil))
			current = residualCurrent
			// continue the loop: the incoming residual may match
			// further against the next best resting order.

		case current.Quantity < best.Quantity:
			_, residualBest, err := best.Split(best.Quantity - current.Quantity)
			checkInvariant(err == nil, "split of resting order failed")
			if err := opposite.Add(residualBest); err != nil {
				checkInvariant(false, "re-insert of resting residual failed: "+err.Error())
			}
			fills = append(fills, buildFill(current, best, price, tradeQty, nil, &residualBest))
			return fills, nil

		default:
			fills = append(fills, buildFill(current, best, price, tradeQty, nil, nil))
			return fills, nil
		}
	}
}

// price computes the execution price for current (the order still
// being matched, incoming or its residual) against best (the resting
// order about to be popped), consulting the ask half-book for a
// market-vs-market anchor per §4.5's refinement and the Open Question
// decision recorded in SPEC_FULL.md.
func (e *Engine) price(current, best Order) int64 {
	var anchor *int64
	if !current.IsLimit() && !best.IsLimit() {
		if limitAsk, ok := e.askBook.Find(func(o Order) bool { return o.IsLimit() }); ok {
			price := limitAsk.Price
			anchor = &price
		}
	}
	return e.pricing.Price(PricingContext{
		Incoming:       current,
		Resting:        best,
		ReferencePrice: e.referencePrice,
		AskAnchor:      anchor,
	})
}

// buildFill assembles a Fill from whichever of (current, best) is the
// ask and which is the bid, and assigns the residual to the matching
// side.
func buildFill(current, best Order, price, quantity int64, residualCurrent, residualBest *Order) Fill {
	ask, bid := askBidOrder(current, best)

	fill := Fill{AskOrder: ask, BidOrder: bid, Price: price, Quantity: quantity}
	// residualCurrent/residualBest are mutually exclusive by
	// construction (FindMatch only ever sets one per call).
	if residualCurrent != nil {
		if current.Side == Ask {
			fill.ResidualAsk = residualCurrent
		} else {
			fill.ResidualBid = residualCurrent
		}
	}
	if residualBest != nil {
		if best.Side == Ask {
			fill.ResidualAsk = residualBest
		} else {
			fill.ResidualBid = residualBest
		}
	}
	return fill
}

// Cancel removes a resting order by uuid from whichever half-book its
// side indicates, per §4.3.2. Idempotent: a second Cancel of the same
// order returns ok=false.
func (e *Engine) Cancel(order Order) (Order, bool) {
	return e.bookFor(order.Side).Remove(order.UUID)
}

// Amend reprices and/or requantifies a resting order in place,
// preserving its uuid and priority re-keyed under the new values (see
// SPEC_FULL.md's supplemented-features section). A new price that would
// cross the best order on the opposite side is rejected with
// ErrInvalidPrice, so amending never crosses the book and Amend never
// produces fills.
func (e *Engine) Amend(order Order, newPrice, newQuantity *int64) (Order, error) {
	book := e.bookFor(order.Side)
	existing, ok := book.Remove(order.UUID)
	if !ok {
		return Order{}, ErrNotResting
	}

	updated := existing
	if newQuantity != nil {
		if *newQuantity < 1 {
			_ = book.Add(existing) // restore prior state before reporting the error
			return Order{}, ErrInvalidQuantity
		}
		updated.Quantity = *newQuantity
	}
	if newPrice != nil {
		if !updated.IsLimit() || *newPrice < 1 {
			_ = book.Add(existing)
			return Order{}, ErrInvalidPrice
		}
		updated.Price = *newPrice
	}
	if best, ok := e.oppositeOf(order.Side).PeekBest(); ok && Crosses(updated, best) {
		_ = book.Add(existing)
		return Order{}, ErrInvalidPrice
	}

	if err := book.Add(updated); err != nil {
		checkInvariant(false, "re-insert of amended order failed: "+err.Error())
	}
	e.checkUncrossed()
	return updated, nil
}

// checkUncrossed re-verifies §8 property 2 (no crossed limit book) when
// the engine was built with WithInvariantChecks. It is a no-op
// otherwise — redundant with correct matching logic, kept as a guard
// against a bug in the engine itself rather than bad input, per the
// "invariant-check helpers guarded by debug flags" design note.
func (e *Engine) checkUncrossed() {
	if !e.debug {
		return
	}
	askLimit, okAsk := e.askBook.Find(func(o Order) bool { return o.IsLimit() })
	bidLimit, okBid := e.bidBook.Find(func(o Order) bool { return o.IsLimit() })
	if okAsk && okBid {
		checkInvariant(askLimit.Price >= bidLimit.Price, "book crossed: best limit ask below best limit bid")
	}
}

// TopOfBook is a copy of the best resting ask and bid, built on
// PeekBest, per SPEC_FULL.md's supplemented snapshot feature. Like every
// other Engine method, Snapshot takes no lock of its own.
type TopOfBook struct {
	BestAsk *Order
	BestBid *Order
}

// Snapshot returns the current top of book.
func (e *Engine) Snapshot() TopOfBook {
	var view TopOfBook
	if o, ok := e.askBook.PeekBest(); ok {
		view.BestAsk = &o
	}
	if o, ok := e.bidBook.PeekBest(); ok {
		view.BestBid = &o
	}
	return view
}

// ReferencePrice returns the engine's current reference price.
func (e *Engine) ReferencePrice() int64 { return e.referencePrice }

// LenAsks returns the number of resting ask orders.
func (e *Engine) LenAsks() int { return e.askBook.Len() }

// LenBids returns the number of resting bid orders.
func (e *Engine) LenBids() int { return e.bidBook.Len() }

// AskBookIter returns every resting ask order in priority order.
func (e *Engine) AskBookIter() []Order { return e.askBook.Iter() }

// BidBookIter returns every resting bid order in priority order.
func (e *Engine) BidBookIter() []Order { return e.bidBook.Iter() }
