package service

import "fmt"

// batch padrão de leitura; encolhe para dar ~100 passos visíveis de progresso.
const defaultChunkRows = 50_000

// adaptChunk limita o tamanho do chunk para ~1% do total por passo.
func adaptChunk(total int64, chunkRows int) int {
	if chunkRows <= 0 {
		chunkRows = defaultChunkRows
	}
	onePct := (total + 99) / 100
	if onePct < 1 {
		onePct = 1
	}
	if int64(chunkRows) > onePct {
		chunkRows = int(onePct)
	}
	return chunkRows
}

// progressPrinter imprime percentual monotônico no console, no mesmo formato
// dos jobs históricos.
type progressPrinter struct {
	total   int64
	lastPct int
}

func newProgress(total int64) *progressPrinter {
	return &progressPrinter{total: total, lastPct: -1}
}

func (p *progressPrinter) step(done int64) {
	pct := 100
	if p.total > 0 {
		pct = int(done * 100 / p.total)
	}
	if pct > p.lastPct {
		fmt.Printf("\rProgresso: %3d%%", pct)
		p.lastPct = pct
	}
}

func (p *progressPrinter) finish() {
	fmt.Print("\rProgresso: 100%\n")
}
