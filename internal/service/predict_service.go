package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/metrics"
	"github.com/thiagolazarin/datathon-fiap/internal/model"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

// PredictService pontua payloads de features com o artefato carregado no
// startup e registra cada predição no inference_log. O registro é
// best-effort: falha de log nunca derruba a predição.
type PredictService struct {
	artifact   *model.Artifact
	inferences repository.InferenceRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewPredictService(artifact *model.Artifact, inferences repository.InferenceRepository, m *metrics.Metrics, logger *zap.Logger) *PredictService {
	return &PredictService{artifact: artifact, inferences: inferences, metrics: m, logger: logger}
}

// Artifact expõe o artefato imutável (para o endpoint /version).
func (s *PredictService) Artifact() *model.Artifact {
	return s.artifact
}

// Predict devolve o score e a decisão pelo corte de operação do artefato.
func (s *PredictService) Predict(ctx context.Context, payload map[string]any, codigo *int64) (float64, int) {
	score := s.artifact.Score(payload)
	decision := s.artifact.Decide(score)

	s.metrics.ObservePrediction(score, decision)
	s.logInference(ctx, payload, score, decision, codigo)

	return score, decision
}

func (s *PredictService) logInference(ctx context.Context, payload map[string]any, score float64, decision int, codigo *int64) {
	createdAt := ""
	if v, ok := s.artifact.Metadata["created_at"].(string); ok {
		createdAt = v
	}
	err := s.inferences.Insert(ctx, domain.Inference{
		ModelMode:          s.artifact.OperatingMode,
		ModelThreshold:     s.artifact.Threshold,
		ModelCreatedAt:     createdAt,
		ModelPath:          s.artifact.Path,
		Score:              score,
		Decision:           decision,
		CodigoProfissional: codigo,
		Payload:            payload,
	})
	if err != nil {
		s.metrics.IncLogFailure()
		s.logger.Warn("inference log write failed", zap.Error(err))
	}
}
