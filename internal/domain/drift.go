package domain

// Tipos de alerta de drift.
const (
	AlertMissing      = "missing"
	AlertBinaryDrift  = "binary_drift"
	AlertNumericDrift = "numeric_drift"
)

// Alert é produzido a cada rodada de detecção e nunca é mutado depois.
type Alert struct {
	Feature string
	Kind    string
	Message string
}

// Estados possíveis de uma rodada de detecção. NoBaseline e NoData são
// informativos: não são erro nem um falso "tudo limpo".
const (
	ReportClean      = "clean"
	ReportAlerts     = "alerts"
	ReportNoBaseline = "no_baseline"
	ReportNoData     = "no_data"
)

// Report resume uma rodada do detector de drift.
type Report struct {
	Status     string
	Alerts     []Alert
	WindowSize int
}
