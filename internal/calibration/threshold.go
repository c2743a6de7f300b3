package calibration

import "sort"

// Curve calcula a curva precisão-recall de um conjunto de holdout.
// Os cortes são os scores distintos em ordem crescente; em cada corte t a
// predição positiva é score >= t. Os três slices voltam alinhados.
func Curve(y []float64, scores []float64) (precision, recall, thresholds []float64) {
	n := len(scores)
	if n == 0 || len(y) != n {
		return nil, nil, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	// Positivos no sufixo que começa em i (scores ordenados).
	sufPos := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		sufPos[i] = sufPos[i+1]
		if y[idx[i]] == 1 {
			sufPos[i]++
		}
	}
	totalPos := sufPos[0]

	for i := 0; i < n; i++ {
		// Um corte por score distinto.
		if i > 0 && scores[idx[i]] == scores[idx[i-1]] {
			continue
		}
		predicted := n - i
		tp := sufPos[i]
		precision = append(precision, float64(tp)/float64(predicted))
		if totalPos > 0 {
			recall = append(recall, float64(tp)/float64(totalPos))
		} else {
			recall = append(recall, 0)
		}
		thresholds = append(thresholds, scores[idx[i]])
	}
	return precision, recall, thresholds
}

// ThresholdForMinPrecision escolhe o menor corte de probabilidade cuja
// precisão empírica atinge o alvo. Sem corte viável, cai para o maior corte
// disponível; com curva degenerada/vazia, 0.5. Uma vez gravado no artefato o
// corte é imutável: o serving usa exatamente este valor, nunca recalcula.
func ThresholdForMinPrecision(y []float64, scores []float64, minPrec float64) float64 {
	precision, _, thresholds := Curve(y, scores)
	if len(thresholds) == 0 {
		return 0.5
	}
	for i, p := range precision {
		if p >= minPrec {
			return thresholds[i]
		}
	}
	return thresholds[len(thresholds)-1]
}
