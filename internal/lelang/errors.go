package lelang

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine.  Handlers translate them into
// HTTP responses with errors.Is.
var (
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrAuctionExpired    = errors.New("auction deadline has passed")
	ErrInvalidBidder     = errors.New("bidder name must be 2-100 characters")
	ErrInvalidContact    = errors.New("contact must be 10-15 digits")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrBidTooHigh        = errors.New("bid amount exceeds the maximum")
	ErrReasonRequired    = errors.New("cancellation reason is required")
	ErrInvalidItem       = errors.New("invalid auction item")
)

// RejectionError describes why a request was refused.  It unwraps to one
// of the sentinel errors above.  MinimumBid is set for ErrBidTooLow so the
// caller can show the smallest acceptable amount.
type RejectionError struct {
	Err        error
	MinimumBid int64
	Detail     string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Detail)
}

func (e *RejectionError) Unwrap() error { return e.Err }

func reject(err error, format string, args ...any) *RejectionError {
	return &RejectionError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// MinimumBidOf extracts the minimum acceptable amount carried by a
// BidTooLow rejection.  ok is false for any other error.
func MinimumBidOf(err error) (int64, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) && errors.Is(rej.Err, ErrBidTooLow) {
		return rej.MinimumBid, true
	}
	return 0, false
}
