package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
)

// LinearModel é a forma de serving exportada pelo job de treino (externo):
// score logístico calibrado sobre as colunas de feature, com defaults de
// imputação por coluna.
type LinearModel struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
	Fill    map[string]float64 `json:"fill,omitempty"`
}

// Artifact é o artefato persistido junto ao modelo treinado. Depois de
// carregado no startup ele é imutável e passado explicitamente aos handlers,
// nunca como estado global do processo.
type Artifact struct {
	Model          LinearModel    `json:"model"`
	FeatureColumns []string       `json:"feature_columns"`
	Threshold      float64        `json:"threshold"`
	OperatingMode  string         `json:"operating_mode"`
	Metadata       map[string]any `json:"metadata"`
	Path           string         `json:"-"`
}

// Load lê e valida o artefato do caminho dado.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if len(a.FeatureColumns) == 0 {
		return nil, fmt.Errorf("artifact %s: feature_columns vazio", path)
	}
	if a.Threshold <= 0 || a.Threshold > 1 {
		return nil, fmt.Errorf("artifact %s: threshold %v fora de (0,1]", path, a.Threshold)
	}
	a.Path = path
	return &a, nil
}

// Save grava o artefato (usado pelo comando de calibração para fixar o
// threshold escolhido).
func Save(path string, a *Artifact) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Score calcula a probabilidade de contratação para um mapa de features.
// Coluna ausente ou não numérica usa o default de imputação (ou 0).
func (a *Artifact) Score(payload map[string]any) float64 {
	sum := a.Model.Bias
	for _, col := range a.FeatureColumns {
		x, ok := numeric(payload[col])
		if !ok {
			x = a.Model.Fill[col]
		}
		sum += a.Model.Weights[col] * x
	}
	return 1.0 / (1.0 + math.Exp(-sum))
}

// Decide aplica o corte de operação ao score.
func (a *Artifact) Decide(score float64) int {
	if score >= a.Threshold {
		return 1
	}
	return 0
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}
