package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/labels"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/textnorm"
)

// Colunas brutas de prospects. "situacao_candidado" preserva a grafia da
// origem.
const (
	rawProspectCode   = "codigo"
	rawProspectStatus = "situacao_candidado"
)

// LabelService reconstrói prospects_labels a partir de prospects_raw:
// classifica status pelo vocabulário fixo e descarta linhas sem código ou
// com status fora dos dois conjuntos.
type LabelService struct {
	prospects repository.ProspectRepository
	logger    *zap.Logger
}

func NewLabelService(prospects repository.ProspectRepository, logger *zap.Logger) *LabelService {
	return &LabelService{prospects: prospects, logger: logger}
}

// Rebuild devolve quantos rótulos foram gravados.
func (s *LabelService) Rebuild(ctx context.Context, chunkRows int) (int64, error) {
	total, err := s.prospects.CountRaw(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", repository.ProspectsRawTable, err)
	}
	if total == 0 {
		fmt.Printf("Nenhuma linha em '%s'.\n", repository.ProspectsRawTable)
		return 0, nil
	}

	chunkRows = adaptChunk(total, chunkRows)
	runID := uuid.NewString()
	s.logger.Info("rebuilding prospect labels",
		zap.String("run_id", runID), zap.Int64("raw_rows", total), zap.Int("chunk_rows", chunkRows))
	fmt.Printf("Lendo %d linhas de '%s' em chunks de ~%d...\n", total, repository.ProspectsRawTable, chunkRows)

	var (
		created   bool
		inserted  int64
		processed int64
	)
	progress := newProgress(total)

	err = s.prospects.StreamRaw(ctx, chunkRows, func(chunk []domain.RawRecord) error {
		processed += int64(len(chunk))

		rows := make([]domain.Label, 0, len(chunk))
		for _, rec := range chunk {
			codigo, ok := textnorm.ParseID(rec.Str(rawProspectCode))
			if !ok {
				continue
			}
			if label, ok := labels.FromRaw(codigo, rec.Str(rawProspectStatus)); ok {
				rows = append(rows, label)
			}
		}
		if len(rows) == 0 {
			progress.step(processed)
			return nil
		}

		if !created {
			if err := s.prospects.ReplaceLabelsTable(ctx); err != nil {
				return err
			}
			created = true
		}
		n, err := s.prospects.CopyLabels(ctx, rows)
		if err != nil {
			return fmt.Errorf("copy labels chunk: %w", err)
		}
		inserted += n
		progress.step(processed)
		return nil
	})
	if err != nil {
		return inserted, err
	}
	progress.finish()

	s.logger.Info("prospect labels rebuilt",
		zap.String("run_id", runID), zap.Int64("inserted", inserted), zap.Int64("raw_rows", total))
	fmt.Printf("'%s' escrito com %d linhas (a partir de %d brutas).\n", repository.ProspectsLabelsTable, inserted, total)
	return inserted, nil
}
