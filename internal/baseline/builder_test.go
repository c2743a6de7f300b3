package baseline

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/features"
)

func row(vals map[string]float64) domain.FeatureValues {
	out := make(domain.FeatureValues, len(vals))
	for k, v := range vals {
		vv := v
		out[k] = &vv
	}
	return out
}

func TestBuildBinaryRate(t *testing.T) {
	rows := []domain.FeatureValues{
		row(map[string]float64{"tem_email": 1}),
		row(map[string]float64{"tem_email": 1}),
		row(map[string]float64{"tem_email": 0}),
		row(map[string]float64{"tem_email": 0}),
	}
	stats := Build(rows)

	st, ok := stats["tem_email"]
	if !ok || st.Type != domain.StatBinary {
		t.Fatalf("tem_email ausente ou com tipo errado: %+v", st)
	}
	if st.Rate1 == nil || *st.Rate1 != 0.5 {
		t.Fatalf("rate1 = %v; want 0.5", st.Rate1)
	}
}

func TestBuildBinaryRateIgnoresNulls(t *testing.T) {
	rows := []domain.FeatureValues{
		row(map[string]float64{"tem_email": 1}),
		{"tem_email": nil},
		row(map[string]float64{"tem_email": 1}),
	}
	stats := Build(rows)
	if got := *stats["tem_email"].Rate1; got != 1.0 {
		t.Fatalf("rate1 = %f; want 1.0 ignorando nulos", got)
	}
}

func TestBuildSalaryMeanStd(t *testing.T) {
	rows := []domain.FeatureValues{
		row(map[string]float64{"salario_valor": 1000}),
		row(map[string]float64{"salario_valor": 3000}),
	}
	stats := Build(rows)

	st := stats[features.SalaryColumn]
	if st.Type != domain.StatNumeric {
		t.Fatalf("salario_valor tipo = %s; want %s", st.Type, domain.StatNumeric)
	}
	if *st.Mean != 2000 {
		t.Fatalf("mean = %f; want 2000", *st.Mean)
	}
	if *st.Std != 1000 {
		t.Fatalf("std = %f; want 1000 (populacional)", *st.Std)
	}
}

func TestBuildStdFloor(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.FeatureValues
	}{
		{"constant salary", []domain.FeatureValues{
			row(map[string]float64{"salario_valor": 2500}),
			row(map[string]float64{"salario_valor": 2500}),
		}},
		{"all null salary", []domain.FeatureValues{
			{"salario_valor": nil},
		}},
		{"empty dataset", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Build(tt.rows)
			if got := *stats[features.SalaryColumn].Std; got != 1.0 {
				t.Fatalf("std = %f; want piso 1.0", got)
			}
		})
	}
}

func TestBuildCoversEveryColumn(t *testing.T) {
	stats := Build(nil)
	for _, c := range features.Columns {
		if _, ok := stats[c]; !ok {
			t.Fatalf("coluna %s sem estatística", c)
		}
	}
	if len(stats) != len(features.Columns) {
		t.Fatalf("len(stats) = %d; want %d", len(stats), len(features.Columns))
	}
}

func TestBuildIgnoresNaN(t *testing.T) {
	nan := math.NaN()
	one := 1.0
	rows := []domain.FeatureValues{
		{"tem_email": &nan},
		{"tem_email": &one},
	}
	stats := Build(rows)
	if got := *stats["tem_email"].Rate1; got != 1.0 {
		t.Fatalf("rate1 = %f; want 1.0 ignorando NaN", got)
	}
}

func TestStatsJSONShape(t *testing.T) {
	rows := []domain.FeatureValues{
		row(map[string]float64{"tem_email": 1, "salario_valor": 2000}),
	}
	data, err := json.Marshal(Build(rows))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]domain.FeatureStat
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	bin := decoded["tem_email"]
	if bin.Type != domain.StatBinary || bin.Rate1 == nil || bin.Mean != nil {
		t.Fatalf("estatística binária serializou campos errados: %+v", bin)
	}
	num := decoded[features.SalaryColumn]
	if num.Type != domain.StatNumeric || num.Mean == nil || num.Std == nil || num.Rate1 != nil {
		t.Fatalf("estatística numérica serializou campos errados: %+v", num)
	}
}
