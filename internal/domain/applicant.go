package domain

import (
	"fmt"
	"strings"
)

// RawRecord é um registro semiestruturado de candidato: chaves em caminho
// pontilhado (ex.: "infos_basicas.email") vindas do json achatado, valores
// opcionais. Chave ausente é legal e vira valor vazio.
type RawRecord map[string]any

// Str devolve o valor da chave como texto trimado. Ausente/nil viram "".
func (r RawRecord) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case *string:
		if t == nil {
			return ""
		}
		return strings.TrimSpace(*t)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// StrFallback tenta a primeira chave e cai para a segunda se vier vazia.
// Usado para campos duplicados na origem (email, telefone, area_atucao).
func (r RawRecord) StrFallback(key, fallback string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	return r.Str(fallback)
}
