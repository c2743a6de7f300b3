package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/features"
)

// GoldTable é o dataset de referência: features + rótulo, join interno por
// código de candidato.
const GoldTable = "gold_applicants"

const goldJoinSQL = `
	SELECT a.*,
	       l.prospect_situacao_candidado AS status_label,
	       l.target
	FROM ` + ApplicantsFeatTable + ` AS a
	INNER JOIN ` + ProspectsLabelsTable + ` AS l
	    ON l.prospect_codigo = a.` + features.IDColumn

// GoldRepository constrói e lê o dataset de referência.
type GoldRepository interface {
	CountJoin(ctx context.Context) (int64, error)
	Rebuild(ctx context.Context) (int64, error)
	FetchFeatureValues(ctx context.Context) ([]domain.FeatureValues, error)
}

type PgGoldRepository struct {
	pool *pgxpool.Pool
}

func NewPgGoldRepository(pool *pgxpool.Pool) *PgGoldRepository {
	return &PgGoldRepository{pool: pool}
}

func (r *PgGoldRepository) CountJoin(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM (`+goldJoinSQL+`) AS q`).Scan(&n)
	return n, err
}

// Rebuild recria gold_applicants a partir do join. O insert roda inteiro do
// lado do servidor; depois, índices best-effort, ANALYZE e contagem final.
// Pré-condição do chamador: as duas tabelas de origem já terminaram de ser
// reconstruídas.
func (r *PgGoldRepository) Rebuild(ctx context.Context) (int64, error) {
	if _, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS `+GoldTable); err != nil {
		return 0, fmt.Errorf("drop %s: %w", GoldTable, err)
	}
	if _, err := r.pool.Exec(ctx, `CREATE TABLE `+GoldTable+` AS `+goldJoinSQL); err != nil {
		return 0, fmt.Errorf("build %s: %w", GoldTable, err)
	}

	// Índices e estatísticas ajudam consultas de treino, mas não são
	// condição de sucesso da carga.
	for _, idx := range []string{
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s__cod ON %s(%s)`, GoldTable, GoldTable, features.IDColumn),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s__target ON %s(target)`, GoldTable, GoldTable),
	} {
		ctxIdx, cancel := context.WithTimeout(ctx, 30*time.Second)
		_, _ = r.pool.Exec(ctxIdx, idx)
		cancel()
	}
	_, _ = r.pool.Exec(ctx, `ANALYZE `+GoldTable)

	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+GoldTable).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", GoldTable, err)
	}
	return n, nil
}

// FetchFeatureValues materializa as colunas canônicas do gold para o cálculo
// de baseline, preservando nulos.
func (r *PgGoldRepository) FetchFeatureValues(ctx context.Context) ([]domain.FeatureValues, error) {
	quoted := make([]string, len(features.Columns))
	for i, c := range features.Columns {
		quoted[i] = quoteIdent(c)
	}
	rows, err := r.pool.Query(ctx, `SELECT `+strings.Join(quoted, ", ")+` FROM `+GoldTable)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", GoldTable, err)
	}
	defer rows.Close()

	var out []domain.FeatureValues
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s row: %w", GoldTable, err)
		}
		fv := make(domain.FeatureValues, len(features.Columns))
		for i, c := range features.Columns {
			fv[c] = asNullableFloat(vals[i])
		}
		out = append(out, fv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", GoldTable, err)
	}
	return out, nil
}

// asNullableFloat coage o valor do driver preservando nulo.
func asNullableFloat(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return &t
	case float32:
		f := float64(t)
		return &f
	case int16:
		f := float64(t)
		return &f
	case int32:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return nil
		}
		return &f
	default:
		return nil
	}
}
