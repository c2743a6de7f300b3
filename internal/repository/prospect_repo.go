package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
)

// Tabelas do pipeline de prospects.
const (
	ProspectsRawTable    = "prospects_raw"
	ProspectsLabelsTable = "prospects_labels"
)

// ProspectRepository cobre o lado de prospects: stream da tabela bruta e
// carga bulk da tabela de rótulos.
type ProspectRepository interface {
	CountRaw(ctx context.Context) (int64, error)
	StreamRaw(ctx context.Context, chunkSize int, fn func(chunk []domain.RawRecord) error) error
	ReplaceRawTable(ctx context.Context, columns []string) error
	CopyRaw(ctx context.Context, columns []string, rows [][]any) (int64, error)
	ReplaceLabelsTable(ctx context.Context) error
	CopyLabels(ctx context.Context, rows []domain.Label) (int64, error)
}

type PgProspectRepository struct {
	pool *pgxpool.Pool
}

func NewPgProspectRepository(pool *pgxpool.Pool) *PgProspectRepository {
	return &PgProspectRepository{pool: pool}
}

func (r *PgProspectRepository) CountRaw(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+ProspectsRawTable).Scan(&n)
	return n, err
}

// StreamRaw percorre prospects_raw em chunks limitados.
func (r *PgProspectRepository) StreamRaw(ctx context.Context, chunkSize int, fn func(chunk []domain.RawRecord) error) error {
	rows, err := r.pool.Query(ctx, `SELECT * FROM `+ProspectsRawTable)
	if err != nil {
		return fmt.Errorf("query %s: %w", ProspectsRawTable, err)
	}
	defer rows.Close()

	cols := fieldNames(rows)
	chunk := make([]domain.RawRecord, 0, chunkSize)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return fmt.Errorf("read %s row: %w", ProspectsRawTable, err)
		}
		rec := make(domain.RawRecord, len(cols))
		for i, c := range cols {
			rec[c] = vals[i]
		}
		chunk = append(chunk, rec)
		if len(chunk) >= chunkSize {
			if err := fn(chunk); err != nil {
				return err
			}
			chunk = make([]domain.RawRecord, 0, chunkSize)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("stream %s: %w", ProspectsRawTable, err)
	}
	if len(chunk) > 0 {
		return fn(chunk)
	}
	return nil
}

func (r *PgProspectRepository) ReplaceRawTable(ctx context.Context, columns []string) error {
	return replaceTextTable(ctx, r.pool, ProspectsRawTable, columns)
}

func (r *PgProspectRepository) CopyRaw(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	return r.pool.CopyFrom(ctx, pgx.Identifier{ProspectsRawTable}, columns, pgx.CopyFromRows(rows))
}

// ReplaceLabelsTable recria prospects_labels com o esquema fixo de rótulos.
func (r *PgProspectRepository) ReplaceLabelsTable(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS `+ProspectsLabelsTable); err != nil {
		return fmt.Errorf("drop %s: %w", ProspectsLabelsTable, err)
	}
	_, err := r.pool.Exec(ctx, `CREATE TABLE `+ProspectsLabelsTable+` (
		prospect_codigo BIGINT,
		prospect_situacao_candidado TEXT,
		target DOUBLE PRECISION
	)`)
	if err != nil {
		return fmt.Errorf("create %s: %w", ProspectsLabelsTable, err)
	}
	return nil
}

// CopyLabels grava um chunk de rótulos como um append bulk atômico.
func (r *PgProspectRepository) CopyLabels(ctx context.Context, rows []domain.Label) (int64, error) {
	cols := []string{"prospect_codigo", "prospect_situacao_candidado", "target"}
	return r.pool.CopyFrom(ctx, pgx.Identifier{ProspectsLabelsTable}, cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{rows[i].ProspectCodigo, rows[i].Situacao, rows[i].Target}, nil
		}))
}
