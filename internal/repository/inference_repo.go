package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
)

// InferenceLogTable acumula as predições servidas, com o payload de features
// original para o monitor de drift.
const InferenceLogTable = "inference_log"

// InferenceRepository grava predições e lê a janela recente.
type InferenceRepository interface {
	EnsureTable(ctx context.Context) error
	Insert(ctx context.Context, inf domain.Inference) error
	RecentPayloads(ctx context.Context, since time.Time) ([]map[string]any, error)
	HourlyVolume(ctx context.Context, since time.Time) ([]domain.VolumePoint, error)
}

type PgInferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgInferenceRepository(pool *pgxpool.Pool) *PgInferenceRepository {
	return &PgInferenceRepository{pool: pool}
}

func (r *PgInferenceRepository) EnsureTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+InferenceLogTable+` (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		model_mode TEXT,
		model_threshold DOUBLE PRECISION,
		model_created_at TEXT,
		model_path TEXT,
		score DOUBLE PRECISION,
		decision INTEGER,
		codigo_profissional BIGINT,
		payload JSONB
	)`)
	return err
}

func (r *PgInferenceRepository) Insert(ctx context.Context, inf domain.Inference) error {
	payload, err := json.Marshal(inf.Payload)
	if err != nil {
		return fmt.Errorf("encode inference payload: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO `+InferenceLogTable+`
		 (model_mode, model_threshold, model_created_at, model_path, score, decision, codigo_profissional, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, CAST($8 AS JSONB))`,
		inf.ModelMode, inf.ModelThreshold, inf.ModelCreatedAt, inf.ModelPath,
		inf.Score, inf.Decision, inf.CodigoProfissional, string(payload))
	if err != nil {
		return fmt.Errorf("insert inference: %w", err)
	}
	return nil
}

// RecentPayloads devolve os payloads de features logados desde o instante
// dado, já decodificados.
func (r *PgInferenceRepository) RecentPayloads(ctx context.Context, since time.Time) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT payload::text FROM `+InferenceLogTable+` WHERE created_at >= $1`, since)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", InferenceLogTable, err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		var p map[string]any
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			// Payload corrompido não derruba o monitor; só não entra na janela.
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// HourlyVolume resume contagem e score médio por hora desde o instante dado.
func (r *PgInferenceRepository) HourlyVolume(ctx context.Context, since time.Time) ([]domain.VolumePoint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT date_trunc('hour', created_at) AS hora, COUNT(*), AVG(score)
		 FROM `+InferenceLogTable+`
		 WHERE created_at >= $1
		 GROUP BY 1 ORDER BY 1`, since)
	if err != nil {
		return nil, fmt.Errorf("query volume: %w", err)
	}
	defer rows.Close()

	var out []domain.VolumePoint
	for rows.Next() {
		var p domain.VolumePoint
		if err := rows.Scan(&p.Hour, &p.Count, &p.AvgScore); err != nil {
			return nil, fmt.Errorf("read volume row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
