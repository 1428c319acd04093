package lelang

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

// Create stores a new DRAFT auction item.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.AuctionItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	item := &model.AuctionItem{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Condition:     in.Condition,
		ImageRef:      strings.TrimSpace(in.ImageRef),
		StartingPrice: in.StartingPrice,
		DurationHours: in.DurationHours,
		State:         model.StateDraft,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info("lelang: draft created", slog.Uint64("auction_id", item.ID), slog.String("name", item.Name))
	return item, nil
}

// Start opens a DRAFT auction for bidding.  The effective deadline starts
// at now plus the declared duration.
func (s *Service) Start(ctx context.Context, id uint64) (*model.AuctionItem, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	item, err := s.store.Mutate(ctx, id, func(item *model.AuctionItem) (*model.Bid, error) {
		if item.State != model.StateDraft {
			return nil, reject(ErrInvalidTransition, "cannot start a %s auction", item.State)
		}
		now := s.clock.Now()
		item.State = model.StateActive
		item.StartedAt = now
		item.Deadline = now.Add(item.Duration())
		item.UpdatedAt = now
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("lelang: auction started",
		slog.Uint64("auction_id", id),
		slog.Time("deadline", item.Deadline))
	return item, nil
}

// Finish closes an ACTIVE auction, recording the highest bid as the sale
// price and the leading bidder as winner.  Finishing an auction that is
// already COMPLETED succeeds without changing anything, so a manual finish
// racing the sweep is harmless.
func (s *Service) Finish(ctx context.Context, id uint64) (*model.AuctionItem, error) {
	item, _, err := s.finish(ctx, id, false)
	return item, err
}

// finish performs the ACTIVE -> COMPLETED transition.  With onlyExpired
// the deadline is re-checked under the lock and the call is a no-op when a
// late bid has pushed it out, or when the auction already left ACTIVE.
func (s *Service) finish(ctx context.Context, id uint64, onlyExpired bool) (*model.AuctionItem, bool, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	var current model.AuctionItem
	item, err := s.store.Mutate(ctx, id, func(item *model.AuctionItem) (*model.Bid, error) {
		now := s.clock.Now()
		current = *item
		switch {
		case item.State == model.StateCompleted:
			return nil, ErrNoChange
		case item.State != model.StateActive && onlyExpired:
			return nil, ErrNoChange
		case item.State != model.StateActive:
			return nil, reject(ErrInvalidTransition, "cannot finish a %s auction", item.State)
		case onlyExpired && now.Before(item.Deadline):
			return nil, ErrNoChange
		}
		if item.HighestBid != nil {
			price := *item.HighestBid
			item.FinalPrice = &price
		}
		item.Winner = item.LeadingBidder
		item.State = model.StateCompleted
		item.FinishedAt = &now
		item.UpdatedAt = now
		return nil, nil
	})
	if errors.Is(err, ErrNoChange) {
		return &current, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	attrs := []any{slog.Uint64("auction_id", id), slog.Int("bid_count", item.BidCount), slog.Bool("swept", onlyExpired)}
	if item.FinalPrice != nil {
		attrs = append(attrs, slog.Int64("final_price", *item.FinalPrice), slog.String("winner", item.Winner))
	}
	s.log.Info("lelang: auction completed", attrs...)

	if s.settlements != nil && item.FinalPrice != nil && *item.FinalPrice > 0 {
		fact := model.Settlement{
			EventID:    uuid.NewString(),
			AuctionID:  item.ID,
			ItemName:   item.Name,
			Amount:     *item.FinalPrice,
			WinnerName: item.Winner,
			Timestamp:  *item.FinishedAt,
		}
		s.goHandOff(func(ctx context.Context) error { return s.settlements.Settle(ctx, fact) },
			"settlement", slog.Uint64("auction_id", id))
	}
	return item, true, nil
}

// Cancel withdraws a DRAFT or ACTIVE auction.  A non-blank reason of at
// most 255 characters is required.  Cancelled auctions produce no settlement.
func (s *Service) Cancel(ctx context.Context, id uint64, reason string) (*model.AuctionItem, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, &RejectionError{Err: ErrReasonRequired}
	}
	if utf8.RuneCountInString(reason) > maxReason {
		return nil, reject(ErrInvalidItem, "reason must be at most %d characters", maxReason)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	item, err := s.store.Mutate(ctx, id, func(item *model.AuctionItem) (*model.Bid, error) {
		if item.State != model.StateDraft && item.State != model.StateActive {
			return nil, reject(ErrInvalidTransition, "cannot cancel a %s auction", item.State)
		}
		now := s.clock.Now()
		item.State = model.StateCancelled
		item.CancelReason = reason
		item.CancelledAt = &now
		item.UpdatedAt = now
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("lelang: auction cancelled", slog.Uint64("auction_id", id), slog.String("reason", reason))
	return item, nil
}
