package engine

import "errors"

// Input errors: recoverable, reported to the caller without mutating
// engine state. Validation happens before any book is touched.
var (
	// ErrInvalidTradable is returned when an order's Tradable differs
	// from the engine's (or, at the half-book boundary, from the
	// book's own Tradable).
	ErrInvalidTradable = errors.New("engine: order tradable does not match")
	// ErrWrongSide is returned when an order is added to the half-book
	// of the opposite side.
	ErrWrongSide = errors.New("engine: order side does not match half-book side")
	// ErrDuplicateOrder is returned when an order with the same UUID
	// is already resting.
	ErrDuplicateOrder = errors.New("engine: order with this uuid is already resting")
	// ErrInvalidQuantity is returned for a non-positive quantity, or a
	// Split residual outside [1, quantity-1].
	ErrInvalidQuantity = errors.New("engine: quantity must be positive and, for a split, leave a positive residual")
	// ErrInvalidPrice is returned for a non-positive price on a limit
	// order, a non-positive initial reference price, or an Amend whose
	// new price is not applicable (a market order, or a price that would
	// cross the opposite side's best order).
	ErrInvalidPrice = errors.New("engine: price must be positive")
	// ErrNotResting is returned by Amend when no resting order with
	// the given uuid exists on the given side. Cancel/Remove/Find
	// express the same "not found" condition as a plain bool instead,
	// per §7 ("not-found conditions... expressed as absence"); Amend
	// needs an error return alongside its Order result, so it gets a
	// dedicated sentinel rather than overloading one of the above.
	ErrNotResting = errors.New("engine: no resting order with this uuid on this side")
)

// InvariantViolation is the fatal error kind: internal consistency
// failures that must never occur from well-formed input. The engine
// is not recoverable after one is raised; checkInvariant panics with
// this type rather than returning an error, so that the failure
// cannot be silently swallowed by a caller that only checks the
// return value of FindMatch/Cancel.
type InvariantViolation struct {
	Msg string
}

func (e InvariantViolation) Error() string {
	return "engine: invariant violation: " + e.Msg
}

// checkInvariant panics with InvariantViolation if cond is false.
func checkInvariant(cond bool, msg string) {
	if !cond {
		panic(InvariantViolation{Msg: msg})
	}
}
