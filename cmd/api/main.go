// @title          AnimalGuard API
// @version        1.0
// @description    Animal cruelty reporting, NGO dispatch and platform administration.
// @BasePath       /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Surajbalal/Animal-Guard/internal/api"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
	"github.com/Surajbalal/Animal-Guard/internal/core/service"
	"github.com/Surajbalal/Animal-Guard/internal/infrastructure/config"
	mongostore "github.com/Surajbalal/Animal-Guard/internal/infrastructure/db/mongo"
	redisstore "github.com/Surajbalal/Animal-Guard/internal/infrastructure/db/redis"
	httpserver "github.com/Surajbalal/Animal-Guard/internal/infrastructure/http"
	"github.com/Surajbalal/Animal-Guard/internal/infrastructure/http/handlers"
	"github.com/Surajbalal/Animal-Guard/internal/infrastructure/queue"
	"github.com/Surajbalal/Animal-Guard/internal/infrastructure/storage/objstore"
	"github.com/Surajbalal/Animal-Guard/pkg/logger"
)

const startupTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "animal-guard",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(startCtx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	accounts := mongostore.NewAccountRepository(db)
	reports := mongostore.NewReportRepository(db)
	if err := accounts.EnsureIndexes(startCtx); err != nil {
		return err
	}
	if err := reports.EnsureIndexes(startCtx); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(startCtx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	readiness := map[string]handlers.Check{
		"mongodb": handlers.MongoCheck(db),
		"redis":   handlers.RedisCheck(rdb),
	}

	var media ports.MediaStore
	if cfg.MediaEnabled() {
		store, err := objstore.New(objstore.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		}, logger.Component("objstore"))
		if err != nil {
			return err
		}
		if err := store.EnsureBucket(startCtx); err != nil {
			return err
		}
		media = store
		readiness["minio"] = store.Ping
	} else {
		log.Warn().Msg("object storage not configured, media uploads disabled")
	}

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongostore.NewEventRepository(db), logger.Component("audit"))
	// Detached so in-flight requests can still record events during graceful
	// shutdown; Stop drains the queues once the server has returned.
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Stop()

	// --- Services ---
	authService := service.NewAuthService(accounts, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	reportService := service.NewReportService(
		reports,
		accounts,
		media,
		redisstore.NewSubmissionDeduper(rdb, cfg.Redis.DedupTTL),
		dispatcher,
		logger.Component("reports"),
	)
	directoryService := service.NewDirectoryService(accounts, reports, logger.Component("directory"))
	adminService := service.NewAdminService(accounts, reports, logger.Component("admin"))

	if err := authService.EnsureSuperAdmin(startCtx, cfg.SuperAdmin.Name, cfg.SuperAdmin.Email, cfg.SuperAdmin.Password); err != nil {
		return err
	}

	// --- HTTP ---
	router := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Reports:   reportService,
		Directory: directoryService,
		Admin:     adminService,
		Readiness: readiness,
		Logger:    logger.Component("http"),
	})

	return httpserver.NewServer(router, cfg.Port, log).Run(ctx)
}
