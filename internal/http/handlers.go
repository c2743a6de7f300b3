package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

// Handlers mantém as dependências dos endpoints do serving. O artefato vem
// pelo PredictService, imutável desde o startup; nada de estado global
// mutável de modelo no processo.
type Handlers struct {
	logger   *zap.Logger
	predicts *service.PredictService
}

func NewHandlers(logger *zap.Logger, predicts *service.PredictService) *Handlers {
	return &Handlers{logger: logger, predicts: predicts}
}

// Health responde GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Version responde GET /version com os metadados do artefato carregado.
func (h *Handlers) Version(c *gin.Context) {
	art := h.predicts.Artifact()
	c.JSON(http.StatusOK, gin.H{
		"operating_mode":  art.OperatingMode,
		"threshold":       art.Threshold,
		"feature_columns": art.FeatureColumns,
		"metadata":        art.Metadata,
		"artifact_path":   art.Path,
	})
}

// Predict responde POST /predict: pontua o mapa de features com o corte de
// operação do artefato.
func (h *Handlers) Predict(c *gin.Context) {
	var req struct {
		Features           map[string]any `json:"features" binding:"required"`
		CodigoProfissional *int64         `json:"codigo_profissional"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid predict request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	score, decision := h.predicts.Predict(c.Request.Context(), req.Features, req.CodigoProfissional)

	c.JSON(http.StatusOK, gin.H{
		"probabilidade_contratacao": score,
		"aprovado_pelo_modelo":      decision == 1,
		"threshold":                 h.predicts.Artifact().Threshold,
		"operating_mode":            h.predicts.Artifact().OperatingMode,
		"codigo_profissional":       req.CodigoProfissional,
	})
}
