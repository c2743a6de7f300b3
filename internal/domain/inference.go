package domain

import "time"

// Inference é uma predição registrada no log de serving. Payload guarda o
// mapa de features exatamente como recebido, para o monitor de drift
// reconstruir a distribuição ao vivo.
type Inference struct {
	ModelMode          string
	ModelThreshold     float64
	ModelCreatedAt     string
	ModelPath          string
	Score              float64
	Decision           int
	CodigoProfissional *int64
	Payload            map[string]any
}

// VolumePoint é um ponto do resumo horário de volume das últimas 24h.
type VolumePoint struct {
	Hour     time.Time
	Count    int64
	AvgScore float64
}
