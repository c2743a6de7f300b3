package features

// IDColumn é a identidade do candidato. Linhas sem código interpretável são
// descartadas inteiras.
const IDColumn = "codigo_profissional"

// SalaryColumn é a única feature contínua; fica nula quando a remuneração
// não pôde ser interpretada.
const SalaryColumn = "salario_valor"

// Columns é a lista canônica e ORDENADA das colunas de feature. A ordem e os
// nomes são contrato com o artefato do modelo (feature_columns) e com as
// tabelas já existentes; não reordene nem renomeie.
var Columns = []string{
	"tem_email", "tem_telefone", "tem_linkedin", "tem_local", "tem_objetivo", "email_corporativo",
	"salario_valor", "ingl_nenhum", "ingl_basico", "ingl_intermediario", "ingl_avancado", "ingl_outro",
	"esp_nenhum", "esp_basico", "esp_intermediario", "esp_avancado", "esp_outro", "outro_idioma_presente",
	"esc_pos", "esc_tecnologo", "esc_medio", "esc_superior_completo", "esc_superior_incompleto",
	"area_admin", "area_ti", "area_financeiro", "titulo_admin", "titulo_ti",
	"titulo_dados_bi", "titulo_financeiro", "cert_mos_word", "cert_mos_excel", "cert_mos_outlook",
	"cert_mos_powerpoint", "cert_sap_fi", "has_cert", "cv_excel_avancado", "cv_kpi", "cv_controladoria",
	"cv_contabil", "cv_financeiro", "cv_administrativo", "cv_sap", "cv_protheus", "cv_navision", "cv_tamanho_maior_1500",
}

// TableColumns é a ordem física da tabela applicants_feat: identidade
// seguida das colunas canônicas.
var TableColumns = append([]string{IDColumn}, Columns...)

// BinaryColumns devolve as colunas de indicador (tudo menos identidade e
// salário); é a partição usada pelo baseline.
func BinaryColumns() []string {
	out := make([]string, 0, len(Columns)-1)
	for _, c := range Columns {
		if c != SalaryColumn {
			out = append(out, c)
		}
	}
	return out
}
