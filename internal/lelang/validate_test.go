package lelang

import (
	"errors"
	"strings"
	"testing"

	"github.com/peterldowns/testy/check"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

func TestNormalizeBidder(t *testing.T) {
	name, ok := normalizeBidder("  Bu Siti  ")
	check.True(t, ok)
	check.Equal(t, "Bu Siti", name)

	_, ok = normalizeBidder(" A ")
	check.False(t, ok)
	_, ok = normalizeBidder("")
	check.False(t, ok)

	_, ok = normalizeBidder("Ää") // two runes, four bytes
	check.True(t, ok)
	_, ok = normalizeBidder(strings.Repeat("x", 100))
	check.True(t, ok)
	_, ok = normalizeBidder(strings.Repeat("x", 101))
	check.False(t, ok)
}

func TestNormalizeContact(t *testing.T) {
	for _, good := range []string{"", "   ", "0812345678", "081234567890123", " 08123456789 "} {
		_, ok := normalizeContact(good)
		check.True(t, ok)
	}
	for _, bad := range []string{"081234567", "0812345678901234", "0812-3456-789", "+6281234567890", "o812345678"} {
		_, ok := normalizeContact(bad)
		check.False(t, ok)
	}
	c, _ := normalizeContact(" 08123456789 ")
	check.Equal(t, "08123456789", c)
}

func TestMaskContact(t *testing.T) {
	check.Equal(t, "********7890", MaskContact("081234567890"))
	check.Equal(t, "", MaskContact(""))
	check.Equal(t, "1234", MaskContact("1234"))
}

func TestCreateInputValidate(t *testing.T) {
	good := CreateInput{Name: "Sajadah", Condition: model.ConditionNew, StartingPrice: 50000, DurationHours: 24}
	check.NoError(t, good.validate())

	bad := []CreateInput{
		{Name: " ", Condition: model.ConditionNew, StartingPrice: 1, DurationHours: 1},
		{Name: strings.Repeat("n", 151), Condition: model.ConditionNew, StartingPrice: 1, DurationHours: 1},
		{Name: "x", Condition: "broken", StartingPrice: 1, DurationHours: 1},
		{Name: "x", Condition: model.ConditionUsedGood, StartingPrice: 0, DurationHours: 1},
		{Name: "x", Condition: model.ConditionUsedDamaged, StartingPrice: 1, DurationHours: 0},
		{Name: "x", Condition: model.ConditionNew, StartingPrice: MaxAmount + 1, DurationHours: 1},
		{Name: "x", Condition: model.ConditionNew, StartingPrice: 1, DurationHours: maxDurationHours + 1},
		{Name: "x", Condition: model.ConditionNew, StartingPrice: 1, DurationHours: 3_000_000},
		{Name: "x", Condition: model.ConditionNew, StartingPrice: 1, DurationHours: 1, ImageRef: strings.Repeat("i", 513)},
		{Name: "x", Condition: model.ConditionNew, StartingPrice: 1, DurationHours: 1, CreatedBy: strings.Repeat("u", 65)},
	}
	for _, in := range bad {
		check.True(t, errors.Is(in.validate(), ErrInvalidItem))
	}
}

func TestCreateInputValidateUpperBounds(t *testing.T) {
	in := CreateInput{
		Name:          "Mimbar",
		Condition:     model.ConditionUsedGood,
		StartingPrice: MaxAmount,
		DurationHours: 24 * 365,
		ImageRef:      strings.Repeat("i", 512),
		CreatedBy:     strings.Repeat("u", 64),
	}
	check.NoError(t, in.validate())

	in.DurationHours = 24*365 + 1
	err := in.validate()
	check.True(t, errors.Is(err, ErrInvalidItem))
	check.True(t, strings.Contains(err.Error(), "duration_hours"))
}

func TestRejectionErrorUnwraps(t *testing.T) {
	err := error(&RejectionError{Err: ErrBidTooLow, MinimumBid: 51000, Detail: "minimum acceptable bid is 51000"})
	check.True(t, errors.Is(err, ErrBidTooLow))
	minBid, ok := MinimumBidOf(err)
	check.True(t, ok)
	check.Equal(t, int64(51000), minBid)
	check.Equal(t, "bid amount too low: minimum acceptable bid is 51000", err.Error())

	_, ok = MinimumBidOf(reject(ErrAuctionExpired, "late"))
	check.False(t, ok)
}
