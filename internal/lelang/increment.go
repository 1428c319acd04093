package lelang

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

// MaxAmount is the largest price the engine accepts, in minor units
// (one quadrillion).  Keeping every price at or below it means
// reference + increment can never overflow int64.
const MaxAmount int64 = 1_000_000_000_000_000

// IncrementPolicy decides how far above the reference price a new bid must
// be.  The increment is the larger of Floor and Percent percent of the
// reference price, rounded up to a whole minor unit.  A zero Percent gives
// a flat floor.  The same policy applies to every bid path.
type IncrementPolicy struct {
	Floor   int64
	Percent decimal.Decimal
}

// DefaultIncrementPolicy is a flat 1,000 minor unit floor.
func DefaultIncrementPolicy() IncrementPolicy {
	return IncrementPolicy{Floor: 1000, Percent: decimal.Zero}
}

// Increment returns the minimum step above reference.
func (p IncrementPolicy) Increment(reference int64) int64 {
	inc := p.Floor
	if p.Percent.IsPositive() {
		pct := decimal.NewFromInt(reference).Mul(p.Percent).Div(decimal.NewFromInt(100)).Ceil()
		if pct.GreaterThan(decimal.NewFromInt(MaxAmount)) {
			inc = MaxAmount
		} else if n := pct.IntPart(); n > inc {
			inc = n
		}
	}
	if inc < 1 {
		inc = 1
	}
	if inc > MaxAmount {
		inc = MaxAmount
	}
	return inc
}

// MinimumBid returns the smallest amount that would be accepted for item.
// With the reference at or below MaxAmount the result is at most
// 2*MaxAmount; a result above MaxAmount means no bid can be accepted.
func (p IncrementPolicy) MinimumBid(item *model.AuctionItem) int64 {
	ref := item.ReferencePrice()
	return ref + p.Increment(ref)
}
