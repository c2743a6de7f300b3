package domain

import "time"

const (
	StatBinary  = "binary"
	StatNumeric = "numeric"
)

// FeatureStat é a estatística de referência de uma feature. Binárias levam
// rate1; numéricas levam mean e std. Invariante: Std nunca é gravado como 0
// (piso em 1.0 para evitar divisão por zero no monitor).
type FeatureStat struct {
	Type  string   `json:"type"`
	Rate1 *float64 `json:"rate1,omitempty"`
	Mean  *float64 `json:"mean,omitempty"`
	Std   *float64 `json:"std,omitempty"`
}

// Snapshot é uma foto imutável das estatísticas de baseline, uma por rodada
// de gravação. Consumidores sempre usam a mais recente por CreatedAt.
type Snapshot struct {
	ID        int64
	CreatedAt time.Time
	ModelPath string
	Stats     map[string]FeatureStat
}
