package baseline

import (
	"math"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/features"
)

// Build calcula as estatísticas de referência de um dataset gold: rate1 para
// colunas binárias e média/desvio para a coluna numérica de salário, sempre
// ignorando valores nulos. O desvio tem piso em 1.0 para nunca ser gravado
// como zero.
func Build(rows []domain.FeatureValues) map[string]domain.FeatureStat {
	stats := make(map[string]domain.FeatureStat, len(features.Columns))

	for _, col := range features.BinaryColumns() {
		rate := binaryRate(rows, col)
		stats[col] = domain.FeatureStat{Type: domain.StatBinary, Rate1: &rate}
	}

	mean, std := meanStd(rows, features.SalaryColumn)
	stats[features.SalaryColumn] = domain.FeatureStat{Type: domain.StatNumeric, Mean: &mean, Std: &std}

	return stats
}

// binaryRate é a fração de valores iguais a 1 entre os não nulos.
func binaryRate(rows []domain.FeatureValues, col string) float64 {
	var ones, total int
	for _, row := range rows {
		v := row[col]
		if v == nil || math.IsNaN(*v) {
			continue
		}
		total++
		if *v == 1 {
			ones++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(ones) / float64(total)
}

// meanStd calcula média e desvio padrão populacional ignorando nulos. Sem
// dados ou com desvio zero, devolve o piso std=1.0.
func meanStd(rows []domain.FeatureValues, col string) (mean, std float64) {
	var sum float64
	var n int
	for _, row := range rows {
		v := row[col]
		if v == nil || math.IsNaN(*v) {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0, 1.0
	}
	mean = sum / float64(n)

	var sq float64
	for _, row := range rows {
		v := row[col]
		if v == nil || math.IsNaN(*v) {
			continue
		}
		d := *v - mean
		sq += d * d
	}
	std = math.Sqrt(sq / float64(n))
	if std == 0 || math.IsNaN(std) {
		std = 1.0
	}
	return mean, std
}
