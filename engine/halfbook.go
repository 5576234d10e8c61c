package engine

import (
	"container/heap"

	"github.com/google/uuid"
)

// heapEntry wraps a resting order for heap bookkeeping. index is
// maintained by entryHeap.Swap so Remove can locate it in O(log n).
type heapEntry struct {
	order Order
	index int
}

// entryHeap is a container/heap.Interface over heapEntry pointers,
// ordered by an injected Less function. This is the same hybrid the
// teacher's priceTimeQueue uses (heap.Interface plus an identity
// index kept in the owning half-book), generalized to take its
// comparator as a value instead of branching on a fixed isBid flag.
type entryHeap struct {
	entries []*heapEntry
	less    Less
}

func (h *entryHeap) Len() int { return len(h.entries) }

func (h *entryHeap) Less(i, j int) bool {
	return h.less(h.entries[i].order, h.entries[j].order)
}

func (h *entryHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.entries[i].index = i
	h.entries[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*heapEntry)
	e.index = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *entryHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	e.index = -1
	h.entries = old[:n-1]
	return e
}

// HalfBook is the mutable collection of resting orders for one side of
// one Tradable's market: a priceTimeQueue-style heap keyed by the
// side's ordering, kept in sync with a uuid index, per §4.2.
type HalfBook struct {
	tradable Tradable
	side     Side
	h        entryHeap
	index    map[uuid.UUID]*heapEntry
	maxDepth int // 0 means unbounded
}

// NewHalfBook builds an empty half-book for side, bound to tradable and
// ordered by less (the engine's ask_ordering or bid_ordering,
// per §3/§6 — callers pass lessFor(side) for the default AskLess/
// BidLess policy, or their own Less to override it). maxDepth, if
// positive, caps the number of resting orders; Add evicts the
// worst-priority order once the cap is exceeded (the teacher's
// MaxDepth/trimDepth, carried as an opt-in resource bound — see
// SPEC_FULL.md).
func NewHalfBook(tradable Tradable, side Side, less Less, maxDepth int) *HalfBook {
	return &HalfBook{
		tradable: tradable,
		side:     side,
		h:        entryHeap{less: less},
		index:    make(map[uuid.UUID]*heapEntry),
		maxDepth: maxDepth,
	}
}

// Add inserts order into the book, or fails without mutating the book.
func (hb *HalfBook) Add(order Order) error {
	if order.Tradable != hb.tradable {
		return ErrInvalidTradable
	}
	if order.Side != hb.side {
		return ErrWrongSide
	}
	if order.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if order.IsLimit() && order.Price < 1 {
		return ErrInvalidPrice
	}
	if _, exists := hb.index[order.UUID]; exists {
		return ErrDuplicateOrder
	}

	entry := &heapEntry{order: order}
	heap.Push(&hb.h, entry)
	hb.index[order.UUID] = entry

	if hb.maxDepth > 0 && hb.h.Len() > hb.maxDepth {
		hb.evictWorst()
	}
	return nil
}

// evictWorst removes the lowest-priority resting order once the book
// exceeds maxDepth. It is the inverse of pop_best: a linear scan for
// the maximum element under the side's Less.
func (hb *HalfBook) evictWorst() {
	worst := 0
	for i := 1; i < hb.h.Len(); i++ {
		if hb.h.less(hb.h.entries[worst].order, hb.h.entries[i].order) {
			worst = i
		}
	}
	entry := heap.Remove(&hb.h, worst).(*heapEntry)
	delete(hb.index, entry.order.UUID)
}

// Remove removes and returns the order with the given uuid, if present.
func (hb *HalfBook) Remove(id uuid.UUID) (Order, bool) {
	entry, ok := hb.index[id]
	if !ok {
		return Order{}, false
	}
	removed := heap.Remove(&hb.h, entry.index).(*heapEntry)
	delete(hb.index, id)
	checkInvariant(removed.order.UUID == id, "removed entry uuid mismatch")
	return removed.order, true
}

// PopBest removes and returns the minimum element of the ordering.
func (hb *HalfBook) PopBest() (Order, bool) {
	if hb.h.Len() == 0 {
		return Order{}, false
	}
	entry := heap.Pop(&hb.h).(*heapEntry)
	delete(hb.index, entry.order.UUID)
	return entry.order, true
}

// PeekBest returns the minimum element of the ordering without
// removing it.
func (hb *HalfBook) PeekBest() (Order, bool) {
	if hb.h.Len() == 0 {
		return Order{}, false
	}
	return hb.h.entries[0].order, true
}

// sorted returns every resting order in priority order without
// mutating the book: the heap array is copied (new heapEntry values,
// so popping the copy cannot perturb the real index bookkeeping) and
// then fully drained.
func (hb *HalfBook) sorted() []Order {
	tmp := entryHeap{less: hb.h.less, entries: make([]*heapEntry, len(hb.h.entries))}
	for i, e := range hb.h.entries {
		tmp.entries[i] = &heapEntry{order: e.order, index: e.index}
	}
	out := make([]Order, 0, tmp.Len())
	for tmp.Len() > 0 {
		out = append(out, heap.Pop(&tmp).(*heapEntry).order)
	}
	return out
}

// Find returns the first order in priority order matching pred, or
// ok=false if none matches.
func (hb *HalfBook) Find(pred func(Order) bool) (Order, bool) {
	for _, o := range hb.sorted() {
		if pred(o) {
			return o, true
		}
	}
	return Order{}, false
}

// Filter returns every resting order matching pred, in priority order,
// or nil when nothing matches — the "None means no matches" option
// semantics from §4.2's design note, expressed idiomatically as a nil
// slice rather than a wrapped option type.
func (hb *HalfBook) Filter(pred func(Order) bool) []Order {
	var out []Order
	for _, o := range hb.sorted() {
		if pred(o) {
			out = append(out, o)
		}
	}
	return out
}

// Iter returns every resting order in priority order.
func (hb *HalfBook) Iter() []Order { return hb.sorted() }

// IsEmpty reports whether the book holds no resting orders.
func (hb *HalfBook) IsEmpty() bool { return hb.h.Len() == 0 }

// Len reports the number of resting orders.
func (hb *HalfBook) Len() int { return hb.h.Len() }
