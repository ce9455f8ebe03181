package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/config"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/probe"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/redis"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/scheduler"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/seed"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/storage"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/store"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *store.Store
	sweeper     *scheduler.ProbeSweeper
}

func New() *App {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the storage backend. File is the default; redis is opt-in
	// and fails fast when unreachable.
	var slots storage.Slots
	var redisClient *goredis.Client
	switch cfg.StorageBackend {
	case "redis":
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			log.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		slots = storage.NewRedisSlots(client)
	default:
		fileSlots, err := storage.NewFileSlots(cfg.DataDir)
		if err != nil {
			log.Errorf("Failed to prepare data dir %s: %v", cfg.DataDir, err)
			os.Exit(1)
		}
		slots = fileSlots
	}

	seedEntries, err := seed.Load()
	if err != nil {
		log.Errorf("Broken bundled seed list: %v", err)
		os.Exit(1)
	}

	st := store.New(slots, log)
	st.Initialize(context.Background(), seedEntries)

	prober := probe.New(cfg.ProbeTimeout, log)
	statusCache := probe.NewStatusCache()

	// Buffered so the sweep endpoint can trigger without blocking.
	sweepTrigger := make(chan struct{}, 1)
	sweeper := scheduler.NewProbeSweeper(st, prober, statusCache, log, cfg.SweepInterval, sweepTrigger)

	d := deps.Deps{
		Logger:             log,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		Store:              st,
		Prober:             prober,
		StatusCache:        statusCache,
		SweepTrigger:       sweepTrigger,
		RedisClient:        redisClient,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		ProbeRateBurst:     cfg.ProbeRateBurst,
		ProbeRatePerMinute: cfg.ProbeRatePerMinute,
	}

	server := httpserver.New(cfg, log, d)

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      server,
		redisClient: redisClient,
		store:       st,
		sweeper:     sweeper,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting serverlist v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("serverlist %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.sweeper.Start(ctx)
	if a.cfg.SweepInterval > 0 {
		a.logger.Info("probe sweeper started",
			logger.Duration("interval", a.cfg.SweepInterval))
	} else {
		a.logger.Info("periodic probe sweeps disabled, manual trigger only")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ serverlist stopped cleanly")
	return nil
}
