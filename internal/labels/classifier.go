package labels

import (
	"strings"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
)

// Vocabulários fixos de status. Pertinência EXATA (sem fuzzy matching): as
// strings são contrato com a base de rótulos já existente; não altere nem
// "corrija" grafia.
var approved = map[string]struct{}{
	"Aprovado":                {},
	"Contratado pela Decision": {},
	"Contratado como Hunting":  {},
	"Proposta Aceita":          {},
	"Encaminhar Proposta":      {},
}

var rejected = map[string]struct{}{
	"Não Aprovado pelo Cliente":     {},
	"Não Aprovado pelo RH":          {},
	"Não Aprovado pelo Requisitante": {},
	"Recusado":                      {},
	"Desistiu":                      {},
	"Desistiu da Contratação":       {},
	"Sem interesse nesta vaga":      {},
}

// Classify mapeia o status para o alvo binário. ok=false significa status
// fora dos dois vocabulários: o registro é excluído da tabela de rótulos por
// decisão de política (status ambíguo não contribui sinal de treino).
func Classify(status string) (target float64, ok bool) {
	s := strings.TrimSpace(status)
	if _, in := approved[s]; in {
		return 1.0, true
	}
	if _, in := rejected[s]; in {
		return 0.0, true
	}
	return 0, false
}

// FromRaw monta o rótulo de um registro bruto de prospect. Descarta linhas
// sem código interpretável ou com status fora dos vocabulários.
func FromRaw(codigo int64, status string) (domain.Label, bool) {
	target, ok := Classify(status)
	if !ok {
		return domain.Label{}, false
	}
	return domain.Label{
		ProspectCodigo: codigo,
		Situacao:       strings.TrimSpace(status),
		Target:         target,
	}, true
}
