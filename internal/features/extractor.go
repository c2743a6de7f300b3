package features

import (
	"strings"
	"unicode/utf8"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/textnorm"
)

// Chaves pontilhadas do registro bruto. O fallback de area_atucao tolera o
// nome errado que veio da origem.
const (
	keyCodigo        = "infos_basicas.codigo_profissional"
	keyEmail         = "infos_basicas.email"
	keyEmailAlt      = "informacoes_pessoais.email"
	keyTelefone      = "infos_basicas.telefone"
	keyTelefoneAlt   = "informacoes_pessoais.telefone_celular"
	keyLinkedin      = "informacoes_pessoais.url_linkedin"
	keyLocal         = "infos_basicas.local"
	keyObjetivo      = "infos_basicas.objetivo_profissional"
	keyTitulo        = "informacoes_profissionais.titulo_profissional"
	keyArea          = "informacoes_profissionais.area_atucao"
	keyAreaAlt       = "informacoes_profissionais.area_atuacao"
	keyRemuneracao   = "informacoes_profissionais.remuneracao"
	keyCertificacoes = "informacoes_profissionais.certificacoes"
	keyOutrasCert    = "informacoes_profissionais.outras_certificacoes"
	keyConhecimentos = "informacoes_profissionais.conhecimentos_tecnicos"
	keyNivelAcad     = "formacao_e_idiomas.nivel_academico"
	keyNivelIngles   = "formacao_e_idiomas.nivel_ingles"
	keyNivelEspanhol = "formacao_e_idiomas.nivel_espanhol"
	keyOutroIdioma   = "formacao_e_idiomas.outro_idioma"
)

// Extract transforma um registro bruto em uma linha de features de esquema
// fixo. É total: campo malformado ou ausente degrada para 0/vazio/nil, nunca
// para erro. O único motivo de descarte (ok=false) é código de profissional
// que não dá para interpretar.
func Extract(raw domain.RawRecord) (domain.FeatureRow, bool) {
	codigo, ok := textnorm.ParseID(raw.Str(keyCodigo))
	if !ok {
		return domain.FeatureRow{}, false
	}

	flags := make(map[string]int, len(Columns))

	// Indicadores de presença.
	email := raw.StrFallback(keyEmail, keyEmailAlt)
	flags["tem_email"] = boolInt(email != "")
	flags["tem_telefone"] = boolInt(textnorm.Digits(raw.StrFallback(keyTelefone, keyTelefoneAlt)) != "")
	flags["tem_linkedin"] = boolInt(raw.Str(keyLinkedin) != "")
	flags["tem_local"] = boolInt(raw.Str(keyLocal) != "")
	flags["tem_objetivo"] = boolInt(raw.Str(keyObjetivo) != "")

	// E-mail sem domínio conhecido (ou ausente) fica 0; domínio fora do
	// conjunto gratuito marca corporativo.
	flags["email_corporativo"] = 0
	if dom := textnorm.EmailDomain(email); dom != "" {
		if _, free := freeEmailDomains[dom]; !free {
			flags["email_corporativo"] = 1
		}
	}

	// One-hot de idiomas: cada grupo soma exatamente 1.
	setLanguageOneHot(flags, "ingl", raw.Str(keyNivelIngles))
	setLanguageOneHot(flags, "esp", raw.Str(keyNivelEspanhol))
	outro := raw.Str(keyOutroIdioma)
	flags["outro_idioma_presente"] = boolInt(outro != "" && outro != "-")

	// One-hot de escolaridade: grupo todo zerado é legal.
	setEducationOneHot(flags, raw.Str(keyNivelAcad))

	// Flags independentes de área e de título/objetivo.
	for _, f := range areaFlags {
		flags[f] = 0
	}
	area := strings.ToLower(raw.StrFallback(keyArea, keyAreaAlt))
	for _, k := range areaKeywords {
		if strings.Contains(area, k.substr) {
			flags[k.flag] = 1
		}
	}

	for _, f := range titleFlags {
		flags[f] = 0
	}
	titleBlob := strings.ToLower(raw.Str(keyTitulo) + " " + raw.Str(keyObjetivo))
	for _, k := range titleKeywords {
		if strings.Contains(titleBlob, k.substr) {
			flags[k.flag] = 1
		}
	}

	// Certificações.
	certBlob := strings.ToLower(raw.Str(keyCertificacoes) + " " + raw.Str(keyOutrasCert))
	flags["has_cert"] = boolInt(strings.TrimSpace(certBlob) != "")
	for _, p := range certPatterns {
		flags[p.flag] = boolInt(p.re.MatchString(certBlob))
	}

	// Currículo + conhecimentos técnicos, normalizados antes dos regexes.
	cv := raw.Str("cv_pt")
	cvBlob := textnorm.StripAccents(strings.ToLower(cv + " " + raw.Str(keyConhecimentos)))
	for _, p := range cvPatterns {
		flags[p.flag] = boolInt(p.re.MatchString(cvBlob))
	}
	flags["cv_tamanho_maior_1500"] = boolInt(utf8.RuneCountInString(cv) > 1500)

	// Garante 0 em qualquer coluna binária que não tenha sido tocada.
	for _, c := range Columns {
		if c == SalaryColumn {
			continue
		}
		if _, exists := flags[c]; !exists {
			flags[c] = 0
		}
	}

	return domain.FeatureRow{
		CodigoProfissional: codigo,
		SalarioValor:       textnorm.ParseSalary(raw.Str(keyRemuneracao)),
		Flags:              flags,
	}, true
}

// setLanguageOneHot zera o grupo do prefixo e acende exatamente um balde:
// nivel vazio ou "-" vira "nenhum", texto não reconhecido vira "outro".
func setLanguageOneHot(flags map[string]int, prefix, rawLevel string) {
	for _, b := range languageBuckets {
		flags[prefix+"_"+b] = 0
	}
	s := textnorm.Normalize(rawLevel)
	bucket := ""
	for _, k := range languageLevels {
		if strings.Contains(s, k.substr) {
			bucket = k.flag
			break
		}
	}
	if bucket == "" {
		if s == "" || s == "-" {
			bucket = "nenhum"
		} else {
			bucket = "outro"
		}
	}
	flags[prefix+"_"+bucket] = 1
}

// setEducationOneHot acende no máximo um indicador de escolaridade; sem
// match, o grupo inteiro fica em zero.
func setEducationOneHot(flags map[string]int, rawLevel string) {
	for _, f := range educationFlags {
		flags[f] = 0
	}
	s := textnorm.Normalize(rawLevel)
	for _, k := range educationLevels {
		if strings.Contains(s, k.substr) {
			flags["esc_"+k.flag] = 1
			return
		}
	}
}

func boolInt(cond bool) int {
	if cond {
		return 1
	}
	return 0
}
