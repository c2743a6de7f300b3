package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
)

// DriftAlertsTable é o histórico de alertas para auditoria, append-only.
const DriftAlertsTable = "drift_alerts"

// DriftRepository persiste alertas de drift. A gravação é best-effort do
// ponto de vista do monitor: falhar aqui não pode impedir o alerta de chegar
// ao operador.
type DriftRepository interface {
	EnsureTable(ctx context.Context) error
	Insert(ctx context.Context, runID string, alert domain.Alert) error
}

type PgDriftRepository struct {
	pool *pgxpool.Pool
}

func NewPgDriftRepository(pool *pgxpool.Pool) *PgDriftRepository {
	return &PgDriftRepository{pool: pool}
}

func (r *PgDriftRepository) EnsureTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+DriftAlertsTable+` (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		run_id TEXT,
		feature TEXT,
		alert TEXT
	)`)
	return err
}

func (r *PgDriftRepository) Insert(ctx context.Context, runID string, alert domain.Alert) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO `+DriftAlertsTable+` (run_id, feature, alert) VALUES ($1, $2, $3)`,
		runID, alert.Feature, alert.Message)
	if err != nil {
		return fmt.Errorf("insert drift alert: %w", err)
	}
	return nil
}
