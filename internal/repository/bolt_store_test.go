package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/iliyamo/lelang-masjid/internal/lelang"
	"github.com/iliyamo/lelang-masjid/internal/model"
)

func openBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltCreateGetList(t *testing.T) {
	s := openBolt(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	a := &model.AuctionItem{Name: "Sajadah", State: model.StateDraft, StartingPrice: 1000, DurationHours: 1, CreatedAt: now}
	b := &model.AuctionItem{Name: "Mushaf", State: model.StateActive, StartingPrice: 2000, DurationHours: 2, Deadline: now.Add(2 * time.Hour)}
	assert.NoError(t, s.CreateItem(ctx, a))
	assert.NoError(t, s.CreateItem(ctx, b))
	check.Equal(t, uint64(1), a.ID)
	check.Equal(t, uint64(2), b.ID)

	got, err := s.GetItem(ctx, b.ID)
	assert.NoError(t, err)
	check.Equal(t, "Mushaf", got.Name)
	check.True(t, got.Deadline.Equal(b.Deadline))

	all, err := s.ListItems(ctx, "")
	assert.NoError(t, err)
	check.Equal(t, 2, len(all))
	active, err := s.ListItems(ctx, model.StateActive)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(active))
	check.Equal(t, b.ID, active[0].ID)

	_, err = s.GetItem(ctx, 99)
	check.True(t, errors.Is(err, lelang.ErrAuctionNotFound))
	_, err = s.ListBids(ctx, 99)
	check.True(t, errors.Is(err, lelang.ErrAuctionNotFound))

	bids, err := s.ListBids(ctx, a.ID)
	assert.NoError(t, err)
	check.True(t, bids != nil)
	check.Equal(t, 0, len(bids))
}

func TestBoltMutateAppendsBidAtomically(t *testing.T) {
	s := openBolt(t)
	ctx := context.Background()
	item := &model.AuctionItem{Name: "Jam dinding", State: model.StateActive, StartingPrice: 1000}
	assert.NoError(t, s.CreateItem(ctx, item))

	for seq := 1; seq <= 3; seq++ {
		amount := int64(1000 + seq*500)
		_, err := s.Mutate(ctx, item.ID, func(it *model.AuctionItem) (*model.Bid, error) {
			it.HighestBid = &amount
			it.BidCount = seq
			return &model.Bid{ID: "b", AuctionID: it.ID, Amount: amount, Sequence: seq}, nil
		})
		assert.NoError(t, err)
	}
	bids, err := s.ListBids(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(bids))
	for i, b := range bids {
		check.Equal(t, i+1, b.Sequence)
	}

	// A duplicate sequence aborts the whole unit of work.
	_, err = s.Mutate(ctx, item.ID, func(it *model.AuctionItem) (*model.Bid, error) {
		it.BidCount = 99
		return &model.Bid{Sequence: 2}, nil
	})
	check.Error(t, err)
	got, err := s.GetItem(ctx, item.ID)
	assert.NoError(t, err)
	check.Equal(t, 3, got.BidCount)
}

func TestBoltMutateErrorsLeaveNoTrace(t *testing.T) {
	s := openBolt(t)
	ctx := context.Background()
	item := &model.AuctionItem{Name: "Kaligrafi", State: model.StateActive, StartingPrice: 1000}
	assert.NoError(t, s.CreateItem(ctx, item))

	boom := errors.New("boom")
	_, err := s.Mutate(ctx, item.ID, func(it *model.AuctionItem) (*model.Bid, error) {
		it.State = model.StateCancelled
		return nil, boom
	})
	check.True(t, errors.Is(err, boom))

	_, err = s.Mutate(ctx, item.ID, func(it *model.AuctionItem) (*model.Bid, error) {
		it.State = model.StateCompleted
		return nil, lelang.ErrNoChange
	})
	check.True(t, errors.Is(err, lelang.ErrNoChange))

	got, err := s.GetItem(ctx, item.ID)
	assert.NoError(t, err)
	check.Equal(t, model.StateActive, got.State)

	_, err = s.Mutate(ctx, 404, func(*model.AuctionItem) (*model.Bid, error) { return nil, nil })
	check.True(t, errors.Is(err, lelang.ErrAuctionNotFound))
}
