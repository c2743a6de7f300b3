package features

import "regexp"

// Domínios de e-mail gratuito: presença aqui derruba email_corporativo.
var freeEmailDomains = map[string]struct{}{
	"gmail.com":    {},
	"hotmail.com":  {},
	"yahoo.com":    {},
	"outlook.com":  {},
	"live.com":     {},
	"icloud.com":   {},
	"bol.com.br":   {},
	"uol.com.br":   {},
	"terra.com.br": {},
}

// keywordFlag liga um fragmento literal a uma coluna de flag. As tabelas
// abaixo são dados, não fluxo de controle: para cobrir um termo novo basta
// acrescentar uma entrada.
type keywordFlag struct {
	substr string
	flag   string
}

// Níveis canônicos de idioma, testados por substring no texto normalizado.
// Primeira ocorrência vence.
var languageLevels = []keywordFlag{
	{"nenhum", "nenhum"},
	{"basico", "basico"},
	{"intermediario", "intermediario"},
	{"avancado", "avancado"},
}

// languageBuckets são os sufixos válidos do one-hot de idioma.
var languageBuckets = []string{"nenhum", "basico", "intermediario", "avancado", "outro"}

// Vocabulário de escolaridade, em ordem de prioridade (incompleto antes de
// completo, pos-graduacao antes do atalho "pos"). Primeira ocorrência vence;
// grupo todo zerado é legal quando nada casa.
var educationLevels = []keywordFlag{
	{"ensino superior incompleto", "superior_incompleto"},
	{"ensino superior completo", "superior_completo"},
	{"pos-graduacao", "pos"},
	{"pos", "pos"},
	{"tecnologo", "tecnologo"},
	{"ensino medio", "medio"},
}

var educationFlags = []string{"esc_pos", "esc_tecnologo", "esc_medio", "esc_superior_completo", "esc_superior_incompleto"}

// Flags de área de atuação: independentes, não mutuamente exclusivas.
var areaKeywords = []keywordFlag{
	{"administrativa", "area_admin"},
	{"financeira", "area_financeiro"},
	{"financeiro", "area_financeiro"},
	{"ti", "area_ti"},
	{"tecnologia", "area_ti"},
}

var areaFlags = []string{"area_admin", "area_financeiro", "area_ti"}

// Flags de título/objetivo, testadas no blob título+objetivo em minúsculas.
var titleKeywords = []keywordFlag{
	{"administr", "titulo_admin"},
	{"finance", "titulo_financeiro"},
	{"bi", "titulo_dados_bi"},
	{"dados", "titulo_dados_bi"},
	{"analist", "titulo_admin"},
	{"ti", "titulo_ti"},
}

var titleFlags = []string{"titulo_admin", "titulo_financeiro", "titulo_dados_bi", "titulo_ti"}

// patternFlag liga um regex a uma coluna de flag.
type patternFlag struct {
	re   *regexp.Regexp
	flag string
}

// Certificações específicas (códigos MOS e SAP FI), sobre o blob de
// certificações em minúsculas.
var certPatterns = []patternFlag{
	{regexp.MustCompile(`(?i)\b77-418\b`), "cert_mos_word"},
	{regexp.MustCompile(`(?i)\b77-420\b`), "cert_mos_excel"},
	{regexp.MustCompile(`(?i)\b77-423\b`), "cert_mos_outlook"},
	{regexp.MustCompile(`(?i)\b77-422\b`), "cert_mos_powerpoint"},
	{regexp.MustCompile(`(?i)\bsap\s*fi\b`), "cert_sap_fi"},
}

// Palavras-chave do currículo, sobre o blob cv+conhecimentos normalizado
// (minúsculas, sem acentos).
var cvPatterns = []patternFlag{
	{regexp.MustCompile(`(?i)\bexcel\s+avancado\b`), "cv_excel_avancado"},
	{regexp.MustCompile(`(?i)\bkpi`), "cv_kpi"},
	{regexp.MustCompile(`(?i)\bcontrolador`), "cv_controladoria"},
	{regexp.MustCompile(`(?i)\bcontab`), "cv_contabil"},
	{regexp.MustCompile(`(?i)\bfinanceir`), "cv_financeiro"},
	{regexp.MustCompile(`(?i)\badministr`), "cv_administrativo"},
	{regexp.MustCompile(`(?i)\bsap\b`), "cv_sap"},
	{regexp.MustCompile(`(?i)\bprotheus\b`), "cv_protheus"},
	{regexp.MustCompile(`(?i)\bnavision\b`), "cv_navision"},
}
