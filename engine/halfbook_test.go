package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newHalfBook(side Side) *HalfBook {
	return NewHalfBook(aapl, side, lessFor(side), 0)
}

func TestHalfBookAddValidatesTradableAndSide(t *testing.T) {
	hb := newHalfBook(Ask)
	other := Tradable{Symbol: "GOOG", ID: uuid.New()}

	err := hb.Add(NewLimitAsk(u(1), "X", other, 1, 1, 1))
	require.ErrorIs(t, err, ErrInvalidTradable)

	err = hb.Add(NewLimitBid(u(2), "X", aapl, 1, 1, 1))
	require.ErrorIs(t, err, ErrWrongSide)
}

func TestHalfBookAddRejectsDuplicateUUID(t *testing.T) {
	hb := newHalfBook(Ask)
	require.NoError(t, hb.Add(NewLimitAsk(u(1), "X", aapl, 10, 1, 1)))

	err := hb.Add(NewLimitAsk(u(1), "X", aapl, 20, 1, 2))
	require.ErrorIs(t, err, ErrDuplicateOrder)
	require.Equal(t, 1, hb.Len())
}

func TestHalfBookPopBestOrdersMarketFirstThenByPrice(t *testing.T) {
	hb := newHalfBook(Ask)
	require.NoError(t, hb.Add(NewLimitAsk(u(3), "X", aapl, 50, 1, 5)))
	require.NoError(t, hb.Add(NewLimitAsk(u(1), "X", aapl, 40, 1, 9)))
	require.NoError(t, hb.Add(NewMarketAsk(u(2), "X", aapl, 1, 1)))

	best, ok := hb.PopBest()
	require.True(t, ok)
	require.Equal(t, u(2), best.UUID, "market order ranks ahead of any limit")

	best, ok = hb.PopBest()
	require.True(t, ok)
	require.Equal(t, u(1), best.UUID, "lower-priced limit ranks next")

	best, ok = hb.PopBest()
	require.True(t, ok)
	require.Equal(t, u(3), best.UUID)

	require.True(t, hb.IsEmpty())
}

func TestHalfBookBidOrderingPrefersHigherPrice(t *testing.T) {
	hb := newHalfBook(Bid)
	require.NoError(t, hb.Add(NewLimitBid(u(1), "X", aapl, 40, 1, 1)))
	require.NoError(t, hb.Add(NewLimitBid(u(2), "X", aapl, 60, 1, 2)))

	best, ok := hb.PeekBest()
	require.True(t, ok)
	require.Equal(t, u(2), best.UUID)
}

func TestHalfBookRemoveAndFindFilter(t *testing.T) {
	hb := newHalfBook(Ask)
	require.NoError(t, hb.Add(NewLimitAsk(u(1), "X", aapl, 10, 1, 1)))
	require.NoError(t, hb.Add(NewLimitAsk(u(2), "X", aapl, 20, 1, 2)))
	require.NoError(t, hb.Add(NewLimitAsk(u(3), "X", aapl, 30, 1, 3)))

	removed, ok := hb.Remove(u(2))
	require.True(t, ok)
	require.Equal(t, int64(20), removed.Price)

	_, ok = hb.Remove(u(2))
	require.False(t, ok, "removing twice returns ok=false")

	found, ok := hb.Find(func(o Order) bool { return o.Price >= 30 })
	require.True(t, ok)
	require.Equal(t, u(3), found.UUID)

	_, ok = hb.Find(func(o Order) bool { return o.Price > 1000 })
	require.False(t, ok)

	matches := hb.Filter(func(o Order) bool { return o.Price >= 10 })
	require.Len(t, matches, 2)
	require.Equal(t, u(1), matches[0].UUID, "filter preserves priority order")

	require.Nil(t, hb.Filter(func(o Order) bool { return o.Price > 1000 }), "no matches means nil, not an empty slice")
}

func TestHalfBookMaxDepthEvictsWorst(t *testing.T) {
	hb := NewHalfBook(aapl, Bid, lessFor(Bid), 2)
	require.NoError(t, hb.Add(NewLimitBid(u(1), "X", aapl, 10, 1, 1)))
	require.NoError(t, hb.Add(NewLimitBid(u(2), "X", aapl, 9, 1, 2)))
	require.NoError(t, hb.Add(NewLimitBid(u(3), "X", aapl, 8, 1, 3)))

	require.Equal(t, 2, hb.Len())
	_, ok := hb.Find(func(o Order) bool { return o.UUID == u(3) })
	require.False(t, ok, "the worst-priced resting bid should have been trimmed")
}
