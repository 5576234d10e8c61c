package engine

// PricingContext carries everything a PriceFormation strategy needs to
// choose an execution price, per §4.5. AskAnchor is the price of the
// best resting limit ask at the moment of the match (nil if the ask
// half-book currently holds no limit order); the engine computes it
// before invoking the strategy so the strategy itself stays a pure
// function of its input, with no book access of its own.
type PricingContext struct {
	Incoming       Order
	Resting        Order
	ReferencePrice int64
	AskAnchor      *int64
}

// PriceFormation chooses the execution price for a match.
// Implementations must be pure: same input, same output, no side
// effects.
type PriceFormation interface {
	Price(ctx PricingContext) int64
}

// DefaultPriceFormation implements the default CDA policy from §4.5:
// limit-vs-limit executes at the resting price (price improvement
// accrues to the aggressor); limit-vs-market executes at the limit
// price, refined toward the reference when the limit is the
// aggressor; market-vs-market executes at the reference price,
// anchored by the best resting limit ask when one exists.
type DefaultPriceFormation struct{}

// Price implements PriceFormation.
func (DefaultPriceFormation) Price(ctx PricingContext) int64 {
	in, rest := ctx.Incoming, ctx.Resting

	switch {
	case in.IsLimit() && rest.IsLimit():
		return rest.Price

	case !in.IsLimit() && rest.IsLimit():
		// Market order trading against the best resting limit: the
		// execution price is the limit price.
		return rest.Price

	case in.IsLimit() && !rest.IsLimit():
		// Incoming limit crosses a resting market order. Use the
		// incoming limit price bounded by the reference, per §4.5's
		// refinement, so a limit priced worse than the reference can
		// still clear at a reasonable price.
		if in.Side == Ask {
			return max64(ctx.ReferencePrice, in.Price)
		}
		return min64(ctx.ReferencePrice, in.Price)

	default:
		// Both market: anchor on the best resting limit ask if one
		// exists, else fall back to the reference price alone.
		if ctx.AskAnchor != nil {
			return min64(*ctx.AskAnchor, ctx.ReferencePrice)
		}
		return ctx.ReferencePrice
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
