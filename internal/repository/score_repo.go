package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HoldoutScoresTable é a tabela de holdout pontuado que o job de treino
// (externo) deixa para a calibração do corte.
const HoldoutScoresTable = "holdout_scores"

// ScoreRepository lê pares (alvo verdadeiro, score previsto) do holdout.
type ScoreRepository interface {
	Fetch(ctx context.Context, table string) (y []float64, scores []float64, err error)
}

type PgScoreRepository struct {
	pool *pgxpool.Pool
}

func NewPgScoreRepository(pool *pgxpool.Pool) *PgScoreRepository {
	return &PgScoreRepository{pool: pool}
}

func (r *PgScoreRepository) Fetch(ctx context.Context, table string) ([]float64, []float64, error) {
	if table == "" {
		table = HoldoutScoresTable
	}
	rows, err := r.pool.Query(ctx, `SELECT target, score FROM `+quoteIdent(table))
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var y, scores []float64
	for rows.Next() {
		var target, score float64
		if err := rows.Scan(&target, &score); err != nil {
			return nil, nil, fmt.Errorf("read %s row: %w", table, err)
		}
		y = append(y, target)
		scores = append(scores, score)
	}
	return y, scores, rows.Err()
}
