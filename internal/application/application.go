package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"phone_hunter/internal/config"
	"phone_hunter/internal/domain/entity"
	"phone_hunter/internal/domain/service/dedup"
	"phone_hunter/internal/infrastructure/analyzer"
	"phone_hunter/internal/infrastructure/notifier"
	"phone_hunter/internal/infrastructure/persistence"
	"phone_hunter/internal/infrastructure/scraper"
	"phone_hunter/internal/server"
	bottransport "phone_hunter/internal/transport/bot"
	"phone_hunter/internal/worker"
	"phone_hunter/pkg/application/connectors"
	"phone_hunter/pkg/application/modules"
	"phone_hunter/pkg/httpx"
	"phone_hunter/pkg/logx"
	"phone_hunter/pkg/middlewarex"
)

const (
	appName    = "phone-hunter"
	appVersion = "dev"

	dealsBuffer   = 100
	matchesBuffer = 20

	scraperPageTimeout = 90 * time.Second
)

func Run(ctx context.Context, log *slog.Logger, cancel context.CancelFunc) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	hunting, err := config.LoadHunting(cfg.Hunting.CatalogPath)
	if err != nil {
		return fmt.Errorf("hunting config load: %w", err)
	}

	catalogStore := config.NewCatalogStore(hunting.Catalog())

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	// 3. Dedup ledger
	ledgerRepo := persistence.NewLedgerRepository(db)
	fingerprintStore := dedup.NewStore(ledgerRepo)

	// 4. Notify bot
	dealsCh := make(chan entity.Deal, dealsBuffer)
	matchesCh := make(chan entity.SmartMatch, matchesBuffer)

	alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return fmt.Errorf("notifier bot: %w", err)
	}
	if err = alertBot.SendText(ctx, "🚀 Phone Hunter startuje"); err != nil {
		log.Error("bot test message failed, check token and chat id", "error", err)
	}

	go func() {
		if err := alertBot.Run(ctx, dealsCh, matchesCh); err != nil {
			if ctx.Err() == nil {
				log.Error("notifier bot stopped", "error", err)
			}
		}
	}()

	// 5. Scrapers
	browser := scraper.NewBrowser(scraperPageTimeout)
	defer browser.Close()

	var sources []worker.Source
	if hunting.Sources.OLX.Enabled {
		sources = append(sources, scraper.NewOLX(browser, hunting.Sources.OLX.URL))
	}
	if hunting.Sources.Allegro.Enabled {
		sources = append(sources, scraper.NewAllegro(browser, hunting.Sources.Allegro.URL))
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources enabled in %s", cfg.Hunting.CatalogPath)
	}

	g, ctx := errgroup.WithContext(ctx)

	// 6. Scanner
	scanner := worker.NewHuntScanner(catalogStore, fingerprintStore, dealsCh, matchesCh).
		WithSources(sources...).
		WithNotifyPolicy(hunting.Notify.SendAll, hunting.Notify.TopMatches).
		WithInterval(
			time.Duration(hunting.General.CheckIntervalMin)*time.Second,
			time.Duration(hunting.General.CheckIntervalMax)*time.Second,
		)

	// 7. Optional AI second opinion over asynq
	if hunting.AI.Enabled {
		rd := &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		_ = rd.Client(ctx)
		defer rd.Close(ctx)

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DatabaseNumber,
		})
		defer asynqClient.Close()

		scanner = scanner.WithAnalyzer(analyzer.NewQueue(asynqClient))

		llm := analyzer.NewClient(
			cfg.Analyzer.BaseURL,
			cfg.Analyzer.APIKey,
			cfg.Analyzer.Model,
			cfg.Analyzer.RequestTimeout,
			httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		)

		modules.AsynqServer{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DatabaseNumber,
		}.Run(ctx, g,
			modules.AsynqQueues{"analyzer": 1},
			modules.AsynqHandler{
				Pattern: analyzer.TaskAnalyzeListing,
				Handle:  analyzer.NewHandler(llm, alertBot).Handle,
			},
		)
	}

	if err = scanner.Start(ctx); err != nil {
		return fmt.Errorf("scanner start: %w", err)
	}
	log.Info("scanner started", "sources", len(sources))

	// 8. Command bot
	commandBot, err := bottransport.New(cfg, scanner, catalogStore)
	if err != nil {
		return fmt.Errorf("command bot: %w", err)
	}

	g.Go(func() error {
		if err := commandBot.Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("commandBot.Run: %w", err)
		}
		return nil
	})

	// 9. HTTP API + probes + metrics
	huntServer := server.NewHuntServer(catalogStore, scanner, ledgerRepo)

	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
	)
	server.NewServer(huntServer).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	})

	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
	}.Run(ctx, g)

	g.Go(func() error {
		<-ctx.Done()
		scanner.Stop()
		close(dealsCh)
		close(matchesCh)
		return nil
	})

	if err = g.Wait(); err != nil {
		cancel()
		return fmt.Errorf("application: %w", err)
	}

	log.Info("application stopping...")
	return nil
}
