package lelang

import (
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

const (
	minBidderName = 2
	maxBidderName = 100
	minContact    = 10
	maxContact    = 15
	maxItemName   = 150
	maxImageRef   = 512
	maxCreatedBy  = 64
	maxReason     = 255

	// maxDurationHours is one year.
	maxDurationHours = 24 * 365
)

// normalizeBidder trims the display name and checks its length in runes.
func normalizeBidder(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)
	return name, n >= minBidderName && n <= maxBidderName
}

// normalizeContact trims the contact and checks it is 10-15 ASCII digits.
// An empty contact is allowed.
func normalizeContact(raw string) (string, bool) {
	c := strings.TrimSpace(raw)
	if c == "" {
		return "", true
	}
	if len(c) < minContact || len(c) > maxContact {
		return "", false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < '0' || c[i] > '9' {
			return "", false
		}
	}
	return c, true
}

// MaskContact hides all but the last four digits of a contact so bid
// history can be shown publicly.
func MaskContact(c string) string {
	if len(c) <= 4 {
		return c
	}
	return strings.Repeat("*", len(c)-4) + c[len(c)-4:]
}

// CreateInput carries the organizer supplied fields of a new draft item.
type CreateInput struct {
	Name          string
	Description   string
	Condition     model.Condition
	ImageRef      string
	StartingPrice int64
	DurationHours int
	CreatedBy     string
}

func (in CreateInput) validate() error {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return reject(ErrInvalidItem, "name is required")
	case utf8.RuneCountInString(name) > maxItemName:
		return reject(ErrInvalidItem, "name must be at most %d characters", maxItemName)
	case !in.Condition.Valid():
		return reject(ErrInvalidItem, "unknown condition %q", in.Condition)
	case utf8.RuneCountInString(strings.TrimSpace(in.ImageRef)) > maxImageRef:
		return reject(ErrInvalidItem, "image_ref must be at most %d characters", maxImageRef)
	case utf8.RuneCountInString(in.CreatedBy) > maxCreatedBy:
		return reject(ErrInvalidItem, "created_by must be at most %d characters", maxCreatedBy)
	case in.StartingPrice <= 0:
		return reject(ErrInvalidItem, "starting_price must be positive")
	case in.StartingPrice > MaxAmount:
		return reject(ErrInvalidItem, "starting_price must be at most %d", MaxAmount)
	case in.DurationHours <= 0 || in.DurationHours > maxDurationHours:
		return reject(ErrInvalidItem, "duration_hours must be between 1 and %d", maxDurationHours)
	}
	return nil
}
