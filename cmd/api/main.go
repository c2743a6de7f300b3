package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/config"
	"github.com/thiagolazarin/datathon-fiap/internal/db"
	apihttp "github.com/thiagolazarin/datathon-fiap/internal/http"
	"github.com/thiagolazarin/datathon-fiap/internal/metrics"
	"github.com/thiagolazarin/datathon-fiap/internal/model"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	artifact, err := model.Load(cfg.ModelArtifact)
	if err != nil {
		logger.Fatal("artifact load", zap.Error(err))
	}
	logger.Info("artifact loaded",
		zap.String("path", artifact.Path),
		zap.String("operating_mode", artifact.OperatingMode),
		zap.Float64("threshold", artifact.Threshold))

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	inferenceRepo := repository.NewPgInferenceRepository(pool)
	if err := inferenceRepo.EnsureTable(ctx); err != nil {
		// O log de inferência é best-effort; o serving sobe mesmo assim.
		logger.Warn("inference log table unavailable", zap.Error(err))
	}

	m := metrics.New()
	predictSvc := service.NewPredictService(artifact, inferenceRepo, m, logger)
	handlers := apihttp.NewHandlers(logger, predictSvc)
	router := apihttp.NewRouter(logger, handlers, m, cfg.JWTSecret)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
