package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/features"
)

// Tabelas do pipeline de candidatos.
const (
	ApplicantsRawTable  = "applicants_raw"
	ApplicantsFeatTable = "applicants_feat"
)

// ApplicantRepository cobre o lado de candidatos: leitura bruta em stream,
// carga bulk das tabelas raw e feat.
type ApplicantRepository interface {
	CountRaw(ctx context.Context) (int64, error)
	StreamRaw(ctx context.Context, chunkSize int, fn func(chunk []domain.RawRecord) error) error
	ReplaceRawTable(ctx context.Context, columns []string) error
	CopyRaw(ctx context.Context, columns []string, rows [][]any) (int64, error)
	ReplaceFeatureTable(ctx context.Context) error
	CopyFeatures(ctx context.Context, rows []domain.FeatureRow) (int64, error)
}

type PgApplicantRepository struct {
	pool *pgxpool.Pool
}

func NewPgApplicantRepository(pool *pgxpool.Pool) *PgApplicantRepository {
	return &PgApplicantRepository{pool: pool}
}

func (r *PgApplicantRepository) CountRaw(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+ApplicantsRawTable).Scan(&n)
	return n, err
}

// StreamRaw percorre applicants_raw inteira em chunks limitados, entregando
// cada chunk como registros chave→valor. Erro do callback aborta o stream.
func (r *PgApplicantRepository) StreamRaw(ctx context.Context, chunkSize int, fn func(chunk []domain.RawRecord) error) error {
	rows, err := r.pool.Query(ctx, `SELECT * FROM `+ApplicantsRawTable)
	if err != nil {
		return fmt.Errorf("query %s: %w", ApplicantsRawTable, err)
	}
	defer rows.Close()

	cols := fieldNames(rows)
	chunk := make([]domain.RawRecord, 0, chunkSize)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return fmt.Errorf("read %s row: %w", ApplicantsRawTable, err)
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
		return fmt.Errorf("stream %s: %w", ApplicantsRawTable, err)
	}
	if len(chunk) > 0 {
		return fn(chunk)
	}
	return nil
}

// ReplaceRawTable recria applicants_raw com as colunas pontilhadas vindas do
// json achatado, todas texto.
func (r *PgApplicantRepository) ReplaceRawTable(ctx context.Context, columns []string) error {
	return replaceTextTable(ctx, r.pool, ApplicantsRawTable, columns)
}

// CopyRaw grava um lote bruto via protocolo COPY.
func (r *PgApplicantRepository) CopyRaw(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	return r.pool.CopyFrom(ctx, pgx.Identifier{ApplicantsRawTable}, columns, pgx.CopyFromRows(rows))
}

// ReplaceFeatureTable recria applicants_feat com o esquema fixo de features.
func (r *PgApplicantRepository) ReplaceFeatureTable(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS `+ApplicantsFeatTable); err != nil {
		return fmt.Errorf("drop %s: %w", ApplicantsFeatTable, err)
	}
	defs := make([]string, 0, len(features.TableColumns))
	for _, c := range features.TableColumns {
		switch c {
		case features.IDColumn:
			defs = append(defs, quoteIdent(c)+" BIGINT")
		case features.SalaryColumn:
			defs = append(defs, quoteIdent(c)+" DOUBLE PRECISION")
		default:
			defs = append(defs, quoteIdent(c)+" INTEGER")
		}
	}
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, ApplicantsFeatTable, strings.Join(defs, ", ")))
	if err != nil {
		return fmt.Errorf("create %s: %w", ApplicantsFeatTable, err)
	}
	return nil
}

// CopyFeatures grava um chunk de linhas de feature como um append bulk
// atômico. Falha aqui é fatal para a rodada inteira.
func (r *PgApplicantRepository) CopyFeatures(ctx context.Context, rows []domain.FeatureRow) (int64, error) {
	return r.pool.CopyFrom(ctx, pgx.Identifier{ApplicantsFeatTable}, features.TableColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			vals := make([]any, len(features.TableColumns))
			for j, c := range features.TableColumns {
				vals[j] = row.Value(c)
			}
			return vals, nil
		}))
}

// fieldNames devolve os nomes de coluna do result set.
func fieldNames(rows pgx.Rows) []string {
	descs := rows.FieldDescriptions()
	cols := make([]string, len(descs))
	for i, d := range descs {
		cols[i] = string(d.Name)
	}
	return cols
}

// replaceTextTable recria uma tabela bruta só de colunas TEXT.
func replaceTextTable(ctx context.Context, pool *pgxpool.Pool, table string, columns []string) error {
	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	if _, err := pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, table, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

// quoteIdent protege identificadores com ponto (colunas pontilhadas).
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
