package textnorm

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o",
	"ç", "c",
)

var (
	nonDigitRe    = regexp.MustCompile(`\D+`)
	emailDomainRe = regexp.MustCompile(`@([^@\s]+)$`)
)

// Clean trata campos opcionais: nil/vazio viram "", o resto é trimado.
func Clean(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Normalize deixa o texto minúsculo e sem acentos, pronto para matching
// por substring/regex.
func Normalize(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// StripAccents remove as variantes acentuadas usadas na língua de origem.
func StripAccents(s string) string {
	return accentReplacer.Replace(s)
}

// Digits remove tudo que não for dígito. Serve para testar presença de
// telefone, não para validar formato.
func Digits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// EmailDomain extrai o domínio depois do "@", ou "" se não houver.
func EmailDomain(email string) string {
	m := emailDomainRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(email)))
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseID interpreta códigos numéricos de candidato, aceitando também a
// forma "31001.0" que o achatamento do json produz às vezes. ok=false quando
// não há número interpretável.
func ParseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// ParseSalary interpreta remunerações como "R$ 3.000,50": descarta tudo que
// não for dígito ou vírgula, troca a vírgula decimal por ponto e converte.
// Valores <= 0 ou impossíveis de interpretar viram nil (ausente, nunca zero).
func ParseSalary(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
		}
	}
	txt := strings.ReplaceAll(b.String(), ",", ".")
	val, err := strconv.ParseFloat(txt, 64)
	if err != nil || val <= 0 {
		return nil
	}
	return &val
}
