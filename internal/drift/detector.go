package drift

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
)

// Limiares de política do detector. São constantes fixas, não configuração.
const (
	binaryRateDelta = 0.15
	numericZLimit   = 3.0
)

// Detect compara a janela recente de payloads de inferência com o snapshot
// de baseline mais recente. O baseline é autoritativo: features ao vivo que
// não existem nele são ignoradas. Sem baseline ou sem dados na janela, o
// report sai com o estado informativo correspondente em vez de um falso
// "tudo limpo".
func Detect(snap *domain.Snapshot, payloads []map[string]any) domain.Report {
	if snap == nil || len(snap.Stats) == 0 {
		return domain.Report{Status: domain.ReportNoBaseline}
	}
	if len(payloads) == 0 {
		return domain.Report{Status: domain.ReportNoData}
	}

	// Ordem estável de avaliação para reports e testes determinísticos.
	cols := make([]string, 0, len(snap.Stats))
	for c := range snap.Stats {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	var alerts []domain.Alert
	for _, col := range cols {
		if a, fired := checkFeature(col, snap.Stats[col], payloads); fired {
			alerts = append(alerts, a)
		}
	}

	status := domain.ReportClean
	if len(alerts) > 0 {
		status = domain.ReportAlerts
	}
	return domain.Report{Status: status, Alerts: alerts, WindowSize: len(payloads)}
}

func checkFeature(col string, stat domain.FeatureStat, payloads []map[string]any) (domain.Alert, bool) {
	present := false
	for _, p := range payloads {
		if _, ok := p[col]; ok {
			present = true
			break
		}
	}
	if !present {
		return domain.Alert{
			Feature: col,
			Kind:    domain.AlertMissing,
			Message: fmt.Sprintf("[MISSING] %s sumiu do serving", col),
		}, true
	}

	if stat.Type == domain.StatBinary {
		base := 0.0
		if stat.Rate1 != nil {
			base = *stat.Rate1
		}
		rate := liveRate(col, payloads)
		delta := math.Abs(rate - base)
		if delta > binaryRateDelta {
			return domain.Alert{
				Feature: col,
				Kind:    domain.AlertBinaryDrift,
				Message: fmt.Sprintf("[DRIFT BIN] %s: base=%.2f | now=%.2f | Δ=%.2f", col, base, rate, delta),
			}, true
		}
		return domain.Alert{}, false
	}

	baseMean := 0.0
	if stat.Mean != nil {
		baseMean = *stat.Mean
	}
	std := 1.0
	if stat.Std != nil && *stat.Std != 0 {
		std = *stat.Std
	}
	liveMean, ok := liveMean(col, payloads)
	if !ok {
		// Presente mas sem nenhum valor numérico interpretável: nada a medir.
		return domain.Alert{}, false
	}
	z := math.Abs(liveMean-baseMean) / std
	if z > numericZLimit {
		return domain.Alert{
			Feature: col,
			Kind:    domain.AlertNumericDrift,
			Message: fmt.Sprintf("[DRIFT NUM] %s: mean_base=%.2f | mean_now=%.2f | z=%.2f", col, baseMean, liveMean, z),
		}, true
	}
	return domain.Alert{}, false
}

// liveRate conta payloads com valor 1 sobre o total da janela: payload sem a
// chave (ou com valor não numérico) conta no denominador como não-1.
func liveRate(col string, payloads []map[string]any) float64 {
	ones := 0
	for _, p := range payloads {
		if v, ok := toFloat(p[col]); ok && v == 1 {
			ones++
		}
	}
	return float64(ones) / float64(len(payloads))
}

// liveMean é a média dos valores presentes e interpretáveis.
func liveMean(col string, payloads []map[string]any) (float64, bool) {
	var sum float64
	var n int
	for _, p := range payloads {
		raw, ok := p[col]
		if !ok {
			continue
		}
		if v, ok := toFloat(raw); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// toFloat coage os tipos que aparecem em payloads vindos de JSON.
func toFloat(v any) (float64, bool) {
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
	case int32:
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
