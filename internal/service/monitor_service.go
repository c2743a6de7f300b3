package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/drift"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

// Janela fixa de monitoração: o último dia de predições.
const monitorWindow = 24 * time.Hour

// BaselineCache é um cache opcional do snapshot mais recente, na frente do
// Postgres. Implementação nil-safe: o monitor funciona igual sem ele.
type BaselineCache interface {
	Get(ctx context.Context) (*domain.Snapshot, bool)
	Set(ctx context.Context, snap *domain.Snapshot)
}

// MonitorService roda uma rodada de detecção de drift: resume o volume das
// últimas 24h, reconstrói a janela de payloads e compara com o baseline.
type MonitorService struct {
	inferences repository.InferenceRepository
	baselines  repository.BaselineRepository
	alerts     repository.DriftRepository
	cache      BaselineCache
	logger     *zap.Logger
}

func NewMonitorService(
	inferences repository.InferenceRepository,
	baselines repository.BaselineRepository,
	alerts repository.DriftRepository,
	cache BaselineCache,
	logger *zap.Logger,
) *MonitorService {
	return &MonitorService{
		inferences: inferences,
		baselines:  baselines,
		alerts:     alerts,
		cache:      cache,
		logger:     logger,
	}
}

// Run devolve o report da rodada. Persistir alertas é best-effort: falha de
// gravação vira warning no log e o alerta continua no report.
func (s *MonitorService) Run(ctx context.Context) (domain.Report, error) {
	since := time.Now().UTC().Add(-monitorWindow)

	s.printVolume(ctx, since)

	payloads, err := s.inferences.RecentPayloads(ctx, since)
	if err != nil {
		return domain.Report{}, fmt.Errorf("load inference window: %w", err)
	}

	snap, err := s.latestBaseline(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	report := drift.Detect(snap, payloads)
	s.logger.Info("drift check finished",
		zap.String("status", report.Status),
		zap.Int("window_size", report.WindowSize),
		zap.Int("alerts", len(report.Alerts)))

	if len(report.Alerts) > 0 {
		s.persistAlerts(ctx, report.Alerts)
	}
	return report, nil
}

func (s *MonitorService) latestBaseline(ctx context.Context) (*domain.Snapshot, error) {
	if s.cache != nil {
		if snap, ok := s.cache.Get(ctx); ok {
			return snap, nil
		}
	}
	snap, err := s.baselines.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}
	if snap != nil && s.cache != nil {
		s.cache.Set(ctx, snap)
	}
	return snap, nil
}

func (s *MonitorService) persistAlerts(ctx context.Context, alerts []domain.Alert) {
	if err := s.alerts.EnsureTable(ctx); err != nil {
		s.logger.Warn("drift alert table unavailable", zap.Error(err))
		return
	}
	runID := uuid.NewString()
	for _, a := range alerts {
		if err := s.alerts.Insert(ctx, runID, a); err != nil {
			s.logger.Warn("drift alert not persisted",
				zap.Error(err), zap.String("feature", a.Feature))
		}
	}
}

// printVolume imprime o resumo horário para o operador; falha aqui não
// impede a checagem de drift.
func (s *MonitorService) printVolume(ctx context.Context, since time.Time) {
	fmt.Println("== Volume últimas 24h ==")
	vol, err := s.inferences.HourlyVolume(ctx, since)
	if err != nil {
		s.logger.Warn("volume summary failed", zap.Error(err))
		return
	}
	if len(vol) == 0 {
		fmt.Println("Sem predições.")
		return
	}
	for _, p := range vol {
		fmt.Printf("%s  n=%d  avg_score=%.4f\n", p.Hour.Format("2006-01-02 15:04"), p.Count, p.AvgScore)
	}
}
