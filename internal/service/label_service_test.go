package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

type fakeLabelRepo struct {
	raw      []domain.RawRecord
	labels   []domain.Label
	replaced int
}

func (f *fakeLabelRepo) CountRaw(context.Context) (int64, error) {
	return int64(len(f.raw)), nil
}

func (f *fakeLabelRepo) StreamRaw(_ context.Context, chunkSize int, fn func([]domain.RawRecord) error) error {
	for start := 0; start < len(f.raw); start += chunkSize {
		end := start + chunkSize
		if end > len(f.raw) {
			end = len(f.raw)
		}
		if err := fn(f.raw[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLabelRepo) ReplaceRawTable(context.Context, []string) error { return nil }

func (f *fakeLabelRepo) CopyRaw(context.Context, []string, [][]any) (int64, error) { return 0, nil }

func (f *fakeLabelRepo) ReplaceLabelsTable(context.Context) error {
	f.replaced++
	f.labels = nil
	return nil
}

func (f *fakeLabelRepo) CopyLabels(_ context.Context, rows []domain.Label) (int64, error) {
	f.labels = append(f.labels, rows...)
	return int64(len(rows)), nil
}

var _ repository.ProspectRepository = (*fakeLabelRepo)(nil)

func TestLabelRebuild(t *testing.T) {
	repo := &fakeLabelRepo{raw: []domain.RawRecord{
		{"codigo": "31001", "situacao_candidado": "Aprovado"},
		{"codigo": "31002", "situacao_candidado": "Desistiu"},
		{"codigo": "31003", "situacao_candidado": "Em análise"}, // fora do vocabulário
		{"codigo": "abc", "situacao_candidado": "Aprovado"},     // sem código
	}}
	svc := NewLabelService(repo, zap.NewNop())

	n, err := svc.Rebuild(context.Background(), 10)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted = %d; want 2", n)
	}
	if repo.labels[0].Target != 1.0 || repo.labels[1].Target != 0.0 {
		t.Fatalf("targets = %f,%f; want 1,0", repo.labels[0].Target, repo.labels[1].Target)
	}
}

func TestLabelRebuildAllFiltered(t *testing.T) {
	repo := &fakeLabelRepo{raw: []domain.RawRecord{
		{"codigo": "1", "situacao_candidado": "Entrevista Técnica"},
	}}
	svc := NewLabelService(repo, zap.NewNop())

	n, err := svc.Rebuild(context.Background(), 10)
	if err != nil || n != 0 {
		t.Fatalf("rebuild = (%d, %v); want (0, nil)", n, err)
	}
	// Nenhum chunk útil: a tabela de rótulos não é tocada.
	if repo.replaced != 0 {
		t.Fatalf("tabela recriada sem nenhum rótulo válido")
	}
}
