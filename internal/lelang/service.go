// Package lelang implements the auction bidding engine: the bid arbiter,
// the lifecycle controller with its expiry sweep and the read projection
// polled by clients.
package lelang

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/iliyamo/lelang-masjid/internal/clock"
	"github.com/iliyamo/lelang-masjid/internal/model"
)

// ErrNoChange is returned by a MutateFunc to end the unit of work without
// writing anything.  Stores roll back and return it unchanged.
var ErrNoChange = errors.New("no change")

// MutateFunc inspects and modifies an auction inside the store's atomic
// unit.  A non-nil bid is appended to the bid ledger together with the
// item update.  Returning an error aborts the unit without any write.
type MutateFunc func(item *model.AuctionItem) (*model.Bid, error)

// Store persists auction items and their bid ledger.  Mutate must load
// the item under an exclusive lock, call fn and commit the item and the
// optional bid in one transaction.  Missing items are reported as
// ErrAuctionNotFound.
type Store interface {
	CreateItem(ctx context.Context, item *model.AuctionItem) error
	GetItem(ctx context.Context, id uint64) (*model.AuctionItem, error)
	// ListItems returns items in state, or every item when state is empty.
	ListItems(ctx context.Context, state model.State) ([]model.AuctionItem, error)
	// ListBids returns accepted bids ordered by sequence.
	ListBids(ctx context.Context, auctionID uint64) ([]model.Bid, error)
	Mutate(ctx context.Context, id uint64, fn MutateFunc) (*model.AuctionItem, error)
}

// SettlementSink receives the sale of a completed auction.  It is the
// hand-off point to the kas ledger.
type SettlementSink interface {
	Settle(ctx context.Context, s model.Settlement) error
}

// BidEventSink receives committed bids.
type BidEventSink interface {
	BidAccepted(ctx context.Context, ev model.BidEvent) error
}

// Options configures a Service.  Zero values fall back to defaults.
type Options struct {
	Clock            clock.Clock
	Policy           IncrementPolicy
	ExtensionWindow  time.Duration
	Settlements      SettlementSink
	BidEvents        BidEventSink
	HistoryCacheSize int
	Logger           *slog.Logger
}

// DefaultExtensionWindow is the anti-snipe window used when none is set.
const DefaultExtensionWindow = 2 * time.Minute

const handOffTimeout = 10 * time.Second

// Service is the auction engine.  All state changes of an auction go
// through the per-auction lock and a single Store.Mutate call.
type Service struct {
	store       Store
	clock       clock.Clock
	policy      IncrementPolicy
	window      time.Duration
	locks       *keyedMutex
	settlements SettlementSink
	bidEvents   BidEventSink
	history     *lru.Cache
	log         *slog.Logger
	handoffs    sync.WaitGroup
}

// NewService builds a Service on top of store.  It panics if store is nil.
func NewService(store Store, opts Options) *Service {
	if store == nil {
		panic("nil store passed to lelang.NewService")
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Policy.Floor <= 0 && !opts.Policy.Percent.IsPositive() {
		opts.Policy = DefaultIncrementPolicy()
	}
	if opts.ExtensionWindow <= 0 {
		opts.ExtensionWindow = DefaultExtensionWindow
	}
	if opts.HistoryCacheSize <= 0 {
		opts.HistoryCacheSize = 256
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	history, err := lru.New(opts.HistoryCacheSize)
	if err != nil {
		panic(err)
	}
	return &Service{
		store:       store,
		clock:       opts.Clock,
		policy:      opts.Policy,
		window:      opts.ExtensionWindow,
		locks:       newKeyedMutex(),
		settlements: opts.Settlements,
		bidEvents:   opts.BidEvents,
		history:     history,
		log:         opts.Logger,
	}
}

// Policy returns the increment policy applied to every bid.
func (s *Service) Policy() IncrementPolicy { return s.policy }

// Wait blocks until background hand-offs started so far have returned.
func (s *Service) Wait() { s.handoffs.Wait() }

func (s *Service) goHandOff(fn func(ctx context.Context) error, what string, attrs ...any) {
	s.handoffs.Add(1)
	go func() {
		defer s.handoffs.Done()
		ctx, cancel := context.WithTimeout(context.Background(), handOffTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Error("lelang: "+what+" hand-off failed",
				append(attrs, slog.String("error", err.Error()))...)
		}
	}()
}
