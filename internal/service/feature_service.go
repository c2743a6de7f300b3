package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/features"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

// FeatureService reconstrói applicants_feat a partir de applicants_raw em
// chunks limitados, com progresso percentual no console. Rodar de novo com a
// mesma entrada produz saída idêntica (semântica replace).
type FeatureService struct {
	applicants repository.ApplicantRepository
	logger     *zap.Logger
}

func NewFeatureService(applicants repository.ApplicantRepository, logger *zap.Logger) *FeatureService {
	return &FeatureService{applicants: applicants, logger: logger}
}

// Rebuild devolve quantas linhas de feature foram gravadas. Falha de um
// chunk aborta a rodada inteira; a tabela destino pode ficar parcialmente
// populada e o chamador recupera rodando de novo.
func (s *FeatureService) Rebuild(ctx context.Context, chunkRows int) (int64, error) {
	total, err := s.applicants.CountRaw(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", repository.ApplicantsRawTable, err)
	}
	if total == 0 {
		fmt.Printf("Nenhuma linha em %s.\n", repository.ApplicantsRawTable)
		return 0, nil
	}

	chunkRows = adaptChunk(total, chunkRows)
	runID := uuid.NewString()
	s.logger.Info("rebuilding applicant features",
		zap.String("run_id", runID), zap.Int64("raw_rows", total), zap.Int("chunk_rows", chunkRows))
	fmt.Printf("Lendo %d linhas de '%s' em chunks de ~%d...\n", total, repository.ApplicantsRawTable, chunkRows)

	var (
		created   bool
		inserted  int64
		processed int64
	)
	progress := newProgress(total)

	err = s.applicants.StreamRaw(ctx, chunkRows, func(chunk []domain.RawRecord) error {
		processed += int64(len(chunk))

		rows := make([]domain.FeatureRow, 0, len(chunk))
		for _, rec := range chunk {
			// Linha sem código interpretável é descartada em silêncio.
			if row, ok := features.Extract(rec); ok {
				rows = append(rows, row)
			}
		}

		if !created {
			if err := s.applicants.ReplaceFeatureTable(ctx); err != nil {
				return err
			}
			created = true
		}
		n, err := s.applicants.CopyFeatures(ctx, rows)
		if err != nil {
			return fmt.Errorf("copy features chunk: %w", err)
		}
		inserted += n
		progress.step(processed)
		return nil
	})
	if err != nil {
		return inserted, err
	}
	progress.finish()

	s.logger.Info("applicant features rebuilt",
		zap.String("run_id", runID), zap.Int64("inserted", inserted), zap.Int64("raw_rows", total))
	fmt.Printf("'%s' escrito com %d linhas (a partir de %d brutas).\n", repository.ApplicantsFeatTable, inserted, total)
	return inserted, nil
}
