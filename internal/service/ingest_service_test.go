package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

type fakeRawWriter struct {
	columns  []string
	rows     [][]any
	replaced int
	copies   int
}

func (f *fakeRawWriter) ReplaceRawTable(_ context.Context, columns []string) error {
	f.replaced++
	f.columns = columns
	return nil
}

func (f *fakeRawWriter) CopyRaw(_ context.Context, _ []string, rows [][]any) (int64, error) {
	f.copies++
	f.rows = append(f.rows, rows...)
	return int64(len(rows)), nil
}

func TestFlattenJSON(t *testing.T) {
	block := map[string]any{
		"infos_basicas": map[string]any{
			"codigo_profissional": "31001",
			"email":               "a@empresa.com",
		},
		"idade":    33.0,
		"ativo":    true,
		"nulo":     nil,
		"telefones": []any{"11 1111", "22 2222"},
	}

	out := map[string]string{}
	flattenJSON("", block, out)

	if out["infos_basicas.codigo_profissional"] != "31001" {
		t.Fatalf("caminho aninhado = %q; want 31001", out["infos_basicas.codigo_profissional"])
	}
	if out["idade"] != "33" {
		t.Fatalf("escalar numérico = %q; want 33", out["idade"])
	}
	if out["ativo"] != "true" {
		t.Fatalf("booleano = %q; want true", out["ativo"])
	}
	if _, ok := out["nulo"]; ok {
		t.Fatalf("null deveria ser ausência, não chave vazia")
	}

	var lista []string
	if err := json.Unmarshal([]byte(out["telefones"]), &lista); err != nil || len(lista) != 2 {
		t.Fatalf("lista = %q; want json com 2 itens", out["telefones"])
	}
}

func TestWriteRawColumnsAreSortedUnion(t *testing.T) {
	svc := NewIngestService(nil, nil, zap.NewNop())
	w := &fakeRawWriter{}

	records := []map[string]string{
		{"b_col": "1"},
		{"a_col": "2", "c_col": "3"},
	}
	n, err := svc.writeRaw(context.Background(), w, "qualquer", records, 0)
	if err != nil {
		t.Fatalf("writeRaw: %v", err)
	}
	if n != 2 || w.replaced != 1 {
		t.Fatalf("inserted=%d replaced=%d; want 2 e 1", n, w.replaced)
	}
	want := []string{"a_col", "b_col", "c_col"}
	if len(w.columns) != 3 {
		t.Fatalf("colunas = %v; want %v", w.columns, want)
	}
	for i, c := range want {
		if w.columns[i] != c {
			t.Fatalf("colunas = %v; want %v", w.columns, want)
		}
	}
	// Célula sem valor vai como nil, não como string vazia.
	if w.rows[0][0] != nil {
		t.Fatalf("célula ausente = %v; want nil", w.rows[0][0])
	}
	if w.rows[0][1] != "1" {
		t.Fatalf("b_col da primeira linha = %v; want 1", w.rows[0][1])
	}
}

func TestWriteRawEmptyInputSkipsTable(t *testing.T) {
	svc := NewIngestService(nil, nil, zap.NewNop())
	w := &fakeRawWriter{}
	n, err := svc.writeRaw(context.Background(), w, "qualquer", nil, 0)
	if err != nil || n != 0 {
		t.Fatalf("writeRaw vazio = (%d, %v); want (0, nil)", n, err)
	}
	if w.replaced != 0 || w.copies != 0 {
		t.Fatalf("entrada vazia não deveria tocar a tabela")
	}
}

func TestIngestProspectsFlattensEachProspect(t *testing.T) {
	doc := map[string]any{
		"5185": map[string]any{
			"titulo": "Analista",
			"prospects": []any{
				map[string]any{"codigo": "31001", "situacao_candidado": "Aprovado"},
				map[string]any{"codigo": "31002", "situacao_candidado": "Desistiu"},
			},
		},
		"5186": map[string]any{
			"titulo":    "Consultor",
			"prospects": []any{},
		},
	}
	path := filepath.Join(t.TempDir(), "vagas.json")
	data, _ := json.Marshal(doc)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := &fakeRawWriter{}
	svc := NewIngestService(nil, fakeProspectRepo{w}, zap.NewNop())
	n, err := svc.IngestProspects(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if n != 2 {
		t.Fatalf("linhas = %d; want 2 (uma por prospect)", n)
	}
}

// fakeProspectRepo delega a parte de escrita bruta usada pela ingestão.
type fakeProspectRepo struct{ *fakeRawWriter }

func (f fakeProspectRepo) CountRaw(context.Context) (int64, error) { return 0, nil }

func (f fakeProspectRepo) StreamRaw(context.Context, int, func([]domain.RawRecord) error) error {
	return nil
}

func (f fakeProspectRepo) ReplaceLabelsTable(context.Context) error { return nil }

func (f fakeProspectRepo) CopyLabels(context.Context, []domain.Label) (int64, error) { return 0, nil }

var _ repository.ProspectRepository = fakeProspectRepo{}
