package lelang

import (
	"testing"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

func TestIncrementFlatFloor(t *testing.T) {
	p := DefaultIncrementPolicy()
	check.Equal(t, int64(1000), p.Increment(50000))
	check.Equal(t, int64(1000), p.Increment(10_000_000))

	item := &model.AuctionItem{StartingPrice: 50000}
	check.Equal(t, int64(51000), p.MinimumBid(item))

	highest := int64(60000)
	item.HighestBid = &highest
	check.Equal(t, int64(61000), p.MinimumBid(item))
}

func TestIncrementPercentBeatsFloor(t *testing.T) {
	p := IncrementPolicy{Floor: 1000, Percent: decimal.RequireFromString("2.5")}
	check.Equal(t, int64(1000), p.Increment(10000))  // 250 < floor
	check.Equal(t, int64(2500), p.Increment(100000)) // exact
	check.Equal(t, int64(1251), p.Increment(50001))  // 1250.025 rounds up
}

func TestIncrementNeverBelowOne(t *testing.T) {
	p := IncrementPolicy{}
	check.Equal(t, int64(1), p.Increment(0))
	check.Equal(t, int64(1), p.Increment(100))
}

func TestIncrementCappedAtMaxAmount(t *testing.T) {
	p := IncrementPolicy{Floor: 1000, Percent: decimal.NewFromInt(1_000_000)}
	check.Equal(t, MaxAmount, p.Increment(MaxAmount))

	p = IncrementPolicy{Floor: MaxAmount * 4}
	check.Equal(t, MaxAmount, p.Increment(1))
}

func TestMinimumBidAtCeilingDoesNotOverflow(t *testing.T) {
	top := MaxAmount
	item := &model.AuctionItem{StartingPrice: 1, HighestBid: &top}
	p := IncrementPolicy{Floor: 1000, Percent: decimal.NewFromInt(500)}
	minBid := p.MinimumBid(item)
	check.True(t, minBid > MaxAmount)
	check.Equal(t, 2*MaxAmount, minBid)
}

func TestMinimumBidUsesStartingPriceWhenHigherThanBid(t *testing.T) {
	// A highest bid can never be below the starting price, but the
	// reference is the larger of the two regardless.
	low := int64(100)
	item := &model.AuctionItem{StartingPrice: 50000, HighestBid: &low}
	check.Equal(t, int64(51000), DefaultIncrementPolicy().MinimumBid(item))
}
