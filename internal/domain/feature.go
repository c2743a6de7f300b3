package domain

// FeatureRow é a codificação numérica de esquema fixo de um candidato.
// Flags guarda todas as colunas binárias/one-hot (sempre 0/1 depois da
// construção); SalarioValor é o único campo contínuo e fica nil quando a
// remuneração não pôde ser interpretada; nunca é preenchido com zero.
type FeatureRow struct {
	CodigoProfissional int64
	SalarioValor       *float64
	Flags              map[string]int
}

// Value devolve o valor de uma coluna pelo nome canônico, na forma aceita
// pelos writers (int para binárias, *float64 para salario_valor).
func (f FeatureRow) Value(col string) any {
	switch col {
	case "codigo_profissional":
		return f.CodigoProfissional
	case "salario_valor":
		if f.SalarioValor == nil {
			return nil
		}
		return *f.SalarioValor
	default:
		return f.Flags[col]
	}
}

// FeatureValues é uma linha de referência (gold) já materializada: valor por
// coluna, nil onde o dado é nulo.
type FeatureValues map[string]*float64
