package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
)

// BaselineTable guarda snapshots de estatística de referência, append-only,
// um por rodada de gravação.
const BaselineTable = "model_baseline"

// BaselineRepository persiste e recupera snapshots de baseline.
type BaselineRepository interface {
	EnsureTable(ctx context.Context) error
	Insert(ctx context.Context, modelPath string, stats map[string]domain.FeatureStat) error
	Latest(ctx context.Context) (*domain.Snapshot, error)
}

type PgBaselineRepository struct {
	pool *pgxpool.Pool
}

func NewPgBaselineRepository(pool *pgxpool.Pool) *PgBaselineRepository {
	return &PgBaselineRepository{pool: pool}
}

func (r *PgBaselineRepository) EnsureTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+BaselineTable+` (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		model_path TEXT,
		stats JSONB
	)`)
	return err
}

// Insert grava um snapshot novo. Snapshots nunca são atualizados depois.
func (r *PgBaselineRepository) Insert(ctx context.Context, modelPath string, stats map[string]domain.FeatureStat) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode baseline stats: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO `+BaselineTable+` (model_path, stats) VALUES ($1, CAST($2 AS JSONB))`,
		modelPath, string(payload))
	if err != nil {
		return fmt.Errorf("insert baseline: %w", err)
	}
	return nil
}

// Latest devolve o snapshot mais recente por created_at, ou nil quando ainda
// não existe nenhum.
func (r *PgBaselineRepository) Latest(ctx context.Context) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	var raw string
	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at, COALESCE(model_path, ''), stats::text
		 FROM `+BaselineTable+`
		 ORDER BY created_at DESC
		 LIMIT 1`).Scan(&snap.ID, &snap.CreatedAt, &snap.ModelPath, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest baseline: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Stats); err != nil {
		return nil, fmt.Errorf("decode baseline stats: %w", err)
	}
	return &snap, nil
}
