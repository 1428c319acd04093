package lelang

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

// BidInput is a bid as submitted by a member of the public.
type BidInput struct {
	BidderName string
	Contact    string
	Amount     int64
}

// SubmitBid evaluates a bid against the current state of the auction and
// records it when every precondition holds.  Checks run in a fixed order
// inside the auction's critical section:
//
//  1. the auction exists and is ACTIVE
//  2. the clock is strictly before the effective deadline
//  3. the bidder name is 2-100 characters after trimming
//  4. the contact, when given, is 10-15 digits
//  5. the amount reaches the policy's minimum bid and is at most MaxAmount
//
// Acceptance appends the bid, moves the highest bid and leading bidder,
// and extends the deadline when the bid lands inside the anti-snipe
// window, all in the same store transaction.
func (s *Service) SubmitBid(ctx context.Context, auctionID uint64, in BidInput) (*model.Bid, error) {
	unlock := s.locks.Lock(auctionID)
	defer unlock()

	var (
		accepted *model.Bid
		previous *int64
		extended bool
	)
	item, err := s.store.Mutate(ctx, auctionID, func(item *model.AuctionItem) (*model.Bid, error) {
		now := s.clock.Now()
		if item.State != model.StateActive {
			return nil, reject(ErrAuctionNotActive, "auction %d is %s", item.ID, item.State)
		}
		if !now.Before(item.Deadline) {
			return nil, reject(ErrAuctionExpired, "deadline was %s", item.Deadline.Format(time.RFC3339))
		}
		name, ok := normalizeBidder(in.BidderName)
		if !ok {
			return nil, &RejectionError{Err: ErrInvalidBidder}
		}
		contact, ok := normalizeContact(in.Contact)
		if !ok {
			return nil, &RejectionError{Err: ErrInvalidContact}
		}
		minBid := s.policy.MinimumBid(item)
		if in.Amount < minBid {
			return nil, &RejectionError{Err: ErrBidTooLow, MinimumBid: minBid, Detail: fmt.Sprintf("minimum acceptable bid is %d", minBid)}
		}
		if in.Amount > MaxAmount {
			return nil, reject(ErrBidTooHigh, "maximum accepted bid is %d", MaxAmount)
		}

		if item.HighestBid != nil {
			prev := *item.HighestBid
			previous = &prev
		}
		amount := in.Amount
		bid := &model.Bid{
			ID:         uuid.NewString(),
			AuctionID:  item.ID,
			Amount:     amount,
			BidderName: name,
			Contact:    contact,
			Sequence:   item.BidCount + 1,
			AcceptedAt: now,
		}
		item.HighestBid = &amount
		item.LeadingBidder = name
		item.BidCount = bid.Sequence
		deadline := ExtendDeadline(now, item.Deadline, s.window)
		extended = deadline.After(item.Deadline)
		item.Deadline = deadline
		item.UpdatedAt = now
		accepted = bid
		return bid, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("lelang: bid accepted",
		slog.Uint64("auction_id", auctionID),
		slog.Int("sequence", accepted.Sequence),
		slog.Int64("amount", accepted.Amount),
		slog.Bool("extended", extended))

	if s.bidEvents != nil {
		ev := model.BidEvent{
			EventID:     uuid.NewString(),
			AuctionID:   auctionID,
			BidID:       accepted.ID,
			BidderName:  accepted.BidderName,
			Amount:      accepted.Amount,
			PreviousBid: previous,
			Sequence:    accepted.Sequence,
			Deadline:    item.Deadline,
			Extended:    extended,
			Timestamp:   accepted.AcceptedAt,
		}
		s.goHandOff(func(ctx context.Context) error { return s.bidEvents.BidAccepted(ctx, ev) },
			"bid event", slog.Uint64("auction_id", auctionID))
	}
	return accepted, nil
}
