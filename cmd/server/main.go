package main // entry point of the lelang API server

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/lelang-masjid/internal/config"
	"github.com/iliyamo/lelang-masjid/internal/database"
	"github.com/iliyamo/lelang-masjid/internal/events"
	"github.com/iliyamo/lelang-masjid/internal/handler"
	"github.com/iliyamo/lelang-masjid/internal/lelang"
	"github.com/iliyamo/lelang-masjid/internal/middleware"
	"github.com/iliyamo/lelang-masjid/internal/queue"
	"github.com/iliyamo/lelang-masjid/internal/repository"
	"github.com/iliyamo/lelang-masjid/internal/router"
)

func main() {
	cfg := config.Load()
	auctionCfg, err := config.LoadAuctionConfig()
	if err != nil {
		log.Fatalf("auction config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, ping, closeStore := openStore(ctx, cfg)
	defer closeStore()

	opts := lelang.Options{
		Policy:           auctionCfg.Policy,
		ExtensionWindow:  auctionCfg.ExtensionWindow,
		HistoryCacheSize: auctionCfg.HistoryCacheSize,
	}
	if cfg.AMQPURL != "" {
		opts.Settlements = queue.NewSettlementPublisher(cfg.AMQPURL, cfg.SettlementQueue)
	} else {
		log.Printf("settlement hand-off disabled: RABBITMQ_URL not set")
	}
	if cfg.NATSURL != "" {
		pub, err := events.Connect(cfg.NATSURL)
		if err != nil {
			log.Printf("bid events disabled: %v", err)
		} else {
			defer pub.Close()
			opts.BidEvents = pub
		}
	}
	svc := lelang.NewService(store, opts)

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Printf("redis unavailable: response cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	h := handler.NewLelangHandler(svc)
	router.RegisterRoutes(e, ping)
	router.RegisterPublic(e, h,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterOrganizer(e, h, cfg.JWTSecret)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(sctx)
	})
	g.Go(func() error {
		return lelang.NewSweeper(svc, auctionCfg.SweepInterval).Run(gctx)
	})
	if cfg.LedgerConsumer && cfg.AMQPURL != "" {
		g.Go(func() error {
			return queue.StartSettlementConsumer(gctx, cfg.AMQPURL, cfg.SettlementQueue, cfg.LedgerLogPath)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "err", err)
	}
	svc.Wait()
	log.Printf("bye")
}

// openStore returns the configured store, a health ping (nil for bolt)
// and a close function.
func openStore(ctx context.Context, cfg config.Config) (lelang.Store, func(context.Context) error, func()) {
	switch cfg.StoreDriver {
	case config.DriverBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o755); err != nil {
			log.Fatalf("bolt dir: %v", err)
		}
		bs, err := repository.NewBoltStore(cfg.BoltPath)
		if err != nil {
			log.Fatalf("open bolt: %v", err)
		}
		return bs, nil, func() { _ = bs.Close() }
	default:
		db, err := database.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("open mysql: %v", err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		return repository.NewAuctionRepo(db), db.PingContext, func() { _ = db.Close() }
	}
}
