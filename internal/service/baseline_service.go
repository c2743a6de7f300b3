package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/baseline"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

// BaselineService calcula e grava um snapshot novo de estatísticas de
// referência sobre o dataset gold.
type BaselineService struct {
	gold      repository.GoldRepository
	baselines repository.BaselineRepository
	logger    *zap.Logger
}

func NewBaselineService(gold repository.GoldRepository, baselines repository.BaselineRepository, logger *zap.Logger) *BaselineService {
	return &BaselineService{gold: gold, baselines: baselines, logger: logger}
}

// Record devolve erro quando o gold está vazio: baseline sem população de
// referência não tem significado.
func (s *BaselineService) Record(ctx context.Context, modelPath string) error {
	rows, err := s.gold.FetchFeatureValues(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s vazio: rode o rebuild do gold antes de gravar baseline", repository.GoldTable)
	}

	stats := baseline.Build(rows)

	if err := s.baselines.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure %s: %w", repository.BaselineTable, err)
	}
	if err := s.baselines.Insert(ctx, modelPath, stats); err != nil {
		return err
	}

	s.logger.Info("baseline recorded",
		zap.Int("reference_rows", len(rows)), zap.Int("features", len(stats)), zap.String("model_path", modelPath))
	fmt.Printf("baseline salvo em %s (%d linhas de referência)\n", repository.BaselineTable, len(rows))
	return nil
}
