package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/model"
)

type fakeScoreRepo struct {
	y      []float64
	scores []float64
}

func (f *fakeScoreRepo) Fetch(context.Context, string) ([]float64, []float64, error) {
	return f.y, f.scores, nil
}

func writeTestArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelo.json")
	body := `{
		"model": {"bias": 0, "weights": {"tem_email": 1}},
		"feature_columns": ["tem_email"],
		"threshold": 0.5,
		"operating_mode": "default",
		"metadata": {}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestCalibrateRewritesArtifact(t *testing.T) {
	path := writeTestArtifact(t)
	repo := &fakeScoreRepo{
		y:      []float64{0, 0, 1, 1},
		scores: []float64{0.1, 0.4, 0.35, 0.8},
	}
	svc := NewCalibrateService(repo, zap.NewNop())

	thr, err := svc.Calibrate(context.Background(), path, "", 0.99)
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if thr != 0.8 {
		t.Fatalf("threshold = %f; want 0.8", thr)
	}

	art, err := model.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if art.Threshold != 0.8 {
		t.Fatalf("threshold gravado = %f; want 0.8", art.Threshold)
	}
	if art.OperatingMode != "prec99" {
		t.Fatalf("operating_mode = %q; want prec99", art.OperatingMode)
	}
}

func TestCalibrateEmptyHoldout(t *testing.T) {
	path := writeTestArtifact(t)
	svc := NewCalibrateService(&fakeScoreRepo{}, zap.NewNop())
	if _, err := svc.Calibrate(context.Background(), path, "", 0.8); err == nil {
		t.Fatalf("holdout vazio deveria falhar")
	}
}

func TestCalibrateMissingArtifact(t *testing.T) {
	svc := NewCalibrateService(&fakeScoreRepo{y: []float64{1}, scores: []float64{0.9}}, zap.NewNop())
	if _, err := svc.Calibrate(context.Background(), filepath.Join(t.TempDir(), "nada.json"), "", 0.8); err == nil {
		t.Fatalf("artefato inexistente deveria falhar")
	}
}
