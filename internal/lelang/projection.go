package lelang

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

// View is the poll-friendly projection of an auction.
type View struct {
	ID               uint64          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Condition        model.Condition `json:"condition"`
	ImageRef         string          `json:"image_ref,omitempty"`
	State            model.State     `json:"state"`
	StartingPrice    int64           `json:"starting_price"`
	HighestBid       *int64          `json:"highest_bid"`
	MinimumBid       int64           `json:"minimum_bid"`
	BidCount         int             `json:"bid_count"`
	LeadingBidder    string          `json:"leading_bidder,omitempty"`
	FinalPrice       *int64          `json:"final_price,omitempty"`
	Winner           string          `json:"winner,omitempty"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	SecondsRemaining int64           `json:"seconds_remaining"`
	BiddingOpen      bool            `json:"bidding_open"`
	ServerTime       time.Time       `json:"server_time"`
}

// Project derives the public view of item at now.  It never mutates item
// and never triggers a transition, so it may be computed on every poll.
func Project(now time.Time, item model.AuctionItem, policy IncrementPolicy) View {
	v := View{
		ID:            item.ID,
		Name:          item.Name,
		Description:   item.Description,
		Condition:     item.Condition,
		ImageRef:      item.ImageRef,
		State:         item.State,
		StartingPrice: item.StartingPrice,
		HighestBid:    item.HighestBid,
		MinimumBid:    policy.MinimumBid(&item),
		BidCount:      item.BidCount,
		LeadingBidder: item.LeadingBidder,
		FinalPrice:    item.FinalPrice,
		Winner:        item.Winner,
		ServerTime:    now,
	}
	if !item.Deadline.IsZero() {
		d := item.Deadline
		v.Deadline = &d
	}
	if item.State == model.StateActive {
		if left := item.Deadline.Sub(now); left > 0 {
			v.SecondsRemaining = int64(left / time.Second)
			v.BiddingOpen = true
		}
	}
	return v
}

// ListActive returns the views of all ACTIVE auctions, soonest deadline
// first.  Auctions past their deadline but not yet swept are included
// with zero seconds remaining and bidding closed.
func (s *Service) ListActive(ctx context.Context) ([]View, error) {
	return s.list(ctx, model.StateActive)
}

// List returns the views of auctions in state, or of all auctions when
// state is empty.
func (s *Service) List(ctx context.Context, state model.State) ([]View, error) {
	if state != "" && !state.Valid() {
		return nil, reject(ErrInvalidItem, "unknown state %q", state)
	}
	return s.list(ctx, state)
}

func (s *Service) list(ctx context.Context, state model.State) ([]View, error) {
	items, err := s.store.ListItems(ctx, state)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	views := make([]View, 0, len(items))
	for _, it := range items {
		views = append(views, Project(now, it, s.policy))
	}
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		switch {
		case a.Deadline == nil && b.Deadline == nil:
			return a.ID < b.ID
		case a.Deadline == nil:
			return false
		case b.Deadline == nil:
			return true
		case !a.Deadline.Equal(*b.Deadline):
			return a.Deadline.Before(*b.Deadline)
		}
		return a.ID < b.ID
	})
	return views, nil
}

// GetDetail returns the view of a single auction.
func (s *Service) GetDetail(ctx context.Context, id uint64) (View, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return View{}, err
	}
	return Project(s.clock.Now(), *item, s.policy), nil
}

// GetBidHistory returns the accepted bids of an auction ordered by
// sequence.  Histories of COMPLETED and CANCELLED auctions can no longer
// change and are served from an LRU cache.
func (s *Service) GetBidHistory(ctx context.Context, id uint64) ([]model.Bid, error) {
	if cached, ok := s.history.Get(id); ok {
		return append([]model.Bid(nil), cached.([]model.Bid)...), nil
	}
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	bids, err := s.store.ListBids(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.State.Terminal() {
		s.history.Add(id, append([]model.Bid(nil), bids...))
	}
	return bids, nil
}
