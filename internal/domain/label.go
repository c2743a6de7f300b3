package domain

// Label é uma linha da tabela de rótulos: candidato, status original e alvo
// binário. Invariante: Target é sempre 0.0 ou 1.0; status ambíguos nunca
// chegam a virar Label.
type Label struct {
	ProspectCodigo int64
	Situacao       string
	Target         float64
}
