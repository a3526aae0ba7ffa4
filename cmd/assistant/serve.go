package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-assistant-client/docs"
	"github.com/johnquangdev/meeting-assistant-client/internal/adapter/handler"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/backend"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/speech"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/enrichment"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/media"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/session"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-assistant-client/pkg/logger"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
	pkgvalidator "github.com/johnquangdev/meeting-assistant-client/pkg/validator"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the session controller and the local control API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := pkglogger.New(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-API-Key"},
	}))
	e.Use(middleware.BodyLimit(bodyLimit(cfg.Upload.MaxBytes)))

	log.Println("🔧 Initializing dependencies...")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewAssistantMetrics(reg)

	log.Println("🌐 Connecting backend client...")
	client := backend.NewClient(&cfg.Backend, m)
	gateway := enrichment.NewService(client, enrichment.Options{
		Profile: entities.UserProfile{
			UserID: cfg.Session.UserID,
			Name:   cfg.Session.UserName,
			Role:   cfg.Session.UserRole,
		},
		MaxRetries: cfg.Backend.MaxRetries,
	}, logger, m)

	notices := cache.NewMemoryStore(0)
	defer notices.Close()

	var notifier ports.Notifier = cache.NopNotifier{}
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		notifier = cache.NewRedisNotifier(redisClient, cfg.Redis.ChannelPrefix, logger)
	}
	defer notifier.Close()

	var archive ports.MediaArchive
	if cfg.Storage.Enabled && cfg.Upload.Archive {
		log.Println("🗄️  Connecting to MinIO...")
		minioArchive, err := storage.NewMinIOArchive(ctx, &cfg.Storage)
		if err != nil {
			return err
		}
		archive = minioArchive
	}

	provider := speech.NewProvider(cfg, logger, m)
	log.Printf("🎙️  Speech provider: %s", provider.Name())

	controller := session.NewController(session.Options{
		Provider:          provider,
		Enrichment:        gateway,
		Notifier:          notifier,
		Notices:           notices,
		Logger:            logger,
		Metrics:           m,
		NoticeTTL:         cfg.Session.NoticeTTL,
		EnrichmentTimeout: cfg.Session.EnrichmentTimeout,
	})
	defer controller.Close()

	ingestion := media.NewService(client, controller, media.Options{
		MaxBytes:    cfg.Upload.MaxBytes,
		DefaultMode: entities.UploadMode(cfg.Upload.Mode),
		Archive:     archive,
	}, logger, m)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg,
		handler.NewSessionHandler(controller, ingestion, logger),
		handler.NewMeetingHandler(gateway, controller, logger),
		controller, reg, provider.Name())
	router.Setup(e)

	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("❌ Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return err
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}

// bodyLimit leaves room for multipart framing around the largest upload.
func bodyLimit(maxBytes int64) string {
	const overhead = 1 << 20
	return strconv.FormatInt(maxBytes+overhead, 10)
}
