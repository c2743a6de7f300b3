package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/calibration"
	"github.com/thiagolazarin/datathon-fiap/internal/model"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

// CalibrateService fixa o corte de operação do artefato a partir do holdout
// pontuado. O corte escolhido fica gravado no artefato e passa a ser
// imutável: o serving usa exatamente esse valor.
type CalibrateService struct {
	scores repository.ScoreRepository
	logger *zap.Logger
}

func NewCalibrateService(scores repository.ScoreRepository, logger *zap.Logger) *CalibrateService {
	return &CalibrateService{scores: scores, logger: logger}
}

// Calibrate devolve o threshold escolhido depois de regravar o artefato.
func (s *CalibrateService) Calibrate(ctx context.Context, artifactPath, scoresTable string, minPrec float64) (float64, error) {
	art, err := model.Load(artifactPath)
	if err != nil {
		return 0, err
	}

	y, scores, err := s.scores.Fetch(ctx, scoresTable)
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, fmt.Errorf("holdout vazio em %s", scoresTable)
	}

	thr := calibration.ThresholdForMinPrecision(y, scores, minPrec)
	art.Threshold = thr
	art.OperatingMode = fmt.Sprintf("prec%d", int(minPrec*100))

	if err := model.Save(artifactPath, art); err != nil {
		return 0, err
	}

	s.logger.Info("threshold calibrated",
		zap.Float64("threshold", thr),
		zap.Float64("min_precision", minPrec),
		zap.Int("holdout_rows", len(scores)),
		zap.String("artifact", artifactPath))
	return thr, nil
}
