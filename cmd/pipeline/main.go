// Package main é o binário de batch do pipeline de contratação: ingestão,
// features, rótulos, gold, baseline, monitoração e calibração.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/config"
	"github.com/thiagolazarin/datathon-fiap/internal/db"
)

var rootCmd = &cobra.Command{
	Use:           "pipeline",
	Short:         "Jobs de batch do modelo de likelihood de contratação",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtime agrupa as dependências comuns dos subcomandos.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, _ := zap.NewProduction()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("db connect: %w", err)
	}

	return &runtime{cfg: cfg, logger: logger, pool: pool}, nil
}

func (r *runtime) close() {
	r.pool.Close()
	_ = r.logger.Sync()
}
