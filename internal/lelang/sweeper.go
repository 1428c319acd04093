package lelang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iliyamo/lelang-masjid/internal/model"
)

// Sweep finishes every ACTIVE auction whose effective deadline has passed
// and returns how many it completed.  Each auction is finished under its
// own lock with the deadline re-checked there, so a bid that extends the
// deadline after the listing keeps the auction open.  Running Sweep
// redundantly is safe.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	items, err := s.store.ListItems(ctx, model.StateActive)
	if err != nil {
		return 0, fmt.Errorf("list active auctions: %w", err)
	}
	now := s.clock.Now()
	var (
		finished int
		errs     []error
	)
	for _, it := range items {
		if now.Before(it.Deadline) {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		_, done, err := s.finish(ctx, it.ID, true)
		if err != nil {
			s.log.Error("lelang: failed to finish expired auction",
				slog.Uint64("auction_id", it.ID),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("finish auction %d: %w", it.ID, err))
			continue
		}
		if done {
			finished++
		}
	}
	return finished, errors.Join(errs...)
}

// Sweeper runs Service.Sweep on a fixed interval.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	timeout  time.Duration
}

// NewSweeper returns a sweeper ticking every interval.
func NewSweeper(svc *Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Sweeper{svc: svc, interval: interval, timeout: 30 * time.Second}
}

// Run sweeps until ctx is cancelled.  It always returns nil once ctx is
// done; individual sweep failures are logged and retried on the next tick.
func (w *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.svc.log.Info("lelang: sweeper stopped")
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Sweeper) tick(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	n, err := w.svc.Sweep(sctx)
	if err != nil {
		w.svc.log.Error("lelang: sweep failed", slog.String("error", err.Error()))
	}
	if n > 0 {
		w.svc.log.Info("lelang: sweep finished auctions", slog.Int("count", n))
	}
}
