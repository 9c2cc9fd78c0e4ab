package main

import (
	"context"
	"log"

	httpadapter "talentgate/internal/adapter/http"
	repo "talentgate/internal/adapter/repository"
	"talentgate/internal/config"
	"talentgate/internal/infrastructure/migration"
	"talentgate/internal/usecase"
	infra "talentgate/pkg/infrastructure"
	"talentgate/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// infra setup
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database not available", zap.Error(err))
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool, zlog); err != nil {
		zlog.Fatal("migrations failed", zap.Error(err))
	}

	blobs := infra.NewDiskBlobStore(cfg.BlobDir, cfg.BlobBaseURL, cfg.BlobSecret)
	verifier := infra.NewHS256Verifier(cfg.AuthSecret)

	tenants := repo.NewTenantsRepo(pool)
	users := repo.NewUsersRepo(pool)
	jobs := repo.NewJobsRepo(pool)
	candidates := repo.NewCandidatesRepo(pool)
	applications := repo.NewApplicationsRepo(pool)

	quota := usecase.NewQuotaEnforcer(tenants, jobs, applications, usecase.QuotaLimits{
		FreemiumJobs:       cfg.FreemiumJobLimit,
		ApplicationsPerJob: cfg.ApplicationsPerJob,
	})
	resolver := usecase.NewIdentityResolver(verifier, users)
	jobService := usecase.NewJobService(jobs, tenants, quota)
	intake := usecase.NewIntakeService(jobs, candidates, applications, blobs, quota, zlog)
	review := usecase.NewReviewService(jobs, candidates, applications, blobs, cfg.ResumeURLTTL)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	h := httpadapter.NewHandler(resolver, jobService, intake, review, blobs, zlog)
	h.Register(app)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
