package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

// IngestService carrega os arquivos json de origem nas tabelas brutas, com
// semântica replace e progresso percentual. As colunas são os caminhos
// pontilhados do json achatado, todas texto.
type IngestService struct {
	applicants repository.ApplicantRepository
	prospects  repository.ProspectRepository
	logger     *zap.Logger
}

func NewIngestService(applicants repository.ApplicantRepository, prospects repository.ProspectRepository, logger *zap.Logger) *IngestService {
	return &IngestService{applicants: applicants, prospects: prospects, logger: logger}
}

// IngestApplicants lê applicants.json (mapa id → bloco aninhado) e recria
// applicants_raw.
func (s *IngestService) IngestApplicants(ctx context.Context, jsonPath string, chunkRows int) (int64, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", jsonPath, err)
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("decode %s: %w", jsonPath, err)
	}

	// Ordena por id para rodadas reproduzíveis.
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]map[string]string, 0, len(raw))
	for _, id := range ids {
		flat := map[string]string{}
		flattenJSON("", raw[id], flat)
		records = append(records, flat)
	}

	n, err := s.writeRaw(ctx, s.applicants, repository.ApplicantsRawTable, records, chunkRows)
	if err != nil {
		return n, err
	}
	s.logger.Info("applicants ingested", zap.String("file", jsonPath), zap.Int64("rows", n))
	return n, nil
}

// IngestProspects lê o json de vagas e recria prospects_raw, uma linha por
// prospect de cada vaga.
func (s *IngestService) IngestProspects(ctx context.Context, jsonPath string, chunkRows int) (int64, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", jsonPath, err)
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("decode %s: %w", jsonPath, err)
	}

	vagas := make([]string, 0, len(raw))
	for id := range raw {
		vagas = append(vagas, id)
	}
	sort.Strings(vagas)

	var records []map[string]string
	for _, id := range vagas {
		prospects, _ := raw[id]["prospects"].([]any)
		for _, p := range prospects {
			block, ok := p.(map[string]any)
			if !ok {
				continue
			}
			flat := map[string]string{}
			flattenJSON("", block, flat)
			records = append(records, flat)
		}
	}

	n, err := s.writeRaw(ctx, s.prospects, repository.ProspectsRawTable, records, chunkRows)
	if err != nil {
		return n, err
	}
	s.logger.Info("prospects ingested", zap.String("file", jsonPath), zap.Int64("rows", n))
	return n, nil
}

// rawTableWriter é o pedaço dos repositórios que a ingestão usa.
type rawTableWriter interface {
	ReplaceRawTable(ctx context.Context, columns []string) error
	CopyRaw(ctx context.Context, columns []string, rows [][]any) (int64, error)
}

func (s *IngestService) writeRaw(ctx context.Context, w rawTableWriter, table string, records []map[string]string, chunkRows int) (int64, error) {
	total := int64(len(records))
	if total == 0 {
		fmt.Printf("Nenhuma linha para inserir em %s.\n", table)
		return 0, nil
	}

	// União ordenada das colunas vistas em todos os registros.
	colSet := map[string]struct{}{}
	for _, rec := range records {
		for k := range rec {
			colSet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(colSet))
	for c := range colSet {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	if err := w.ReplaceRawTable(ctx, columns); err != nil {
		return 0, err
	}

	chunkRows = adaptChunk(total, chunkRows)
	fmt.Printf("Carregando %d linhas em '%s' (chunks de ~%d):\n", total, table, chunkRows)
	progress := newProgress(total)
	progress.step(0)

	var inserted int64
	for start := 0; start < len(records); start += chunkRows {
		end := start + chunkRows
		if end > len(records) {
			end = len(records)
		}
		rows := make([][]any, 0, end-start)
		for _, rec := range records[start:end] {
			vals := make([]any, len(columns))
			for i, c := range columns {
				if v, ok := rec[c]; ok {
					vals[i] = v
				}
			}
			rows = append(rows, vals)
		}
		n, err := w.CopyRaw(ctx, columns, rows)
		if err != nil {
			return inserted, fmt.Errorf("copy raw chunk into %s: %w", table, err)
		}
		inserted += n
		progress.step(int64(end))
	}
	progress.finish()
	return inserted, nil
}

// flattenJSON achata mapas aninhados em caminhos pontilhados. Escalares
// viram texto; listas são serializadas como json; null é ausência.
func flattenJSON(prefix string, block map[string]any, out map[string]string) {
	for k, v := range block {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch t := v.(type) {
		case nil:
			continue
		case map[string]any:
			flattenJSON(key, t, out)
		case string:
			out[key] = t
		case float64, bool:
			out[key] = fmt.Sprint(t)
		default:
			if data, err := json.Marshal(t); err == nil {
				out[key] = string(data)
			}
		}
	}
}
