package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
)

// GoldService materializa o dataset de referência (features ⋈ rótulos).
// Pré-condição do chamador: os rebuilds de features e rótulos já terminaram;
// o sistema não coordena isso.
type GoldService struct {
	gold   repository.GoldRepository
	logger *zap.Logger
}

func NewGoldService(gold repository.GoldRepository, logger *zap.Logger) *GoldService {
	return &GoldService{gold: gold, logger: logger}
}

// Rebuild refaz gold_applicants inteira e devolve a contagem final.
func (s *GoldService) Rebuild(ctx context.Context) (int64, error) {
	total, err := s.gold.CountJoin(ctx)
	if err != nil {
		return 0, fmt.Errorf("count gold join: %w", err)
	}
	fmt.Printf("Construindo '%s' via JOIN (total=%d)...\n", repository.GoldTable, total)

	n, err := s.gold.Rebuild(ctx)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		s.logger.Warn("gold dataset is empty after join")
		fmt.Printf("Nenhuma linha no JOIN. '%s' criada vazia.\n", repository.GoldTable)
		return 0, nil
	}

	s.logger.Info("gold dataset rebuilt", zap.Int64("rows", n))
	fmt.Printf("'%s' criado com %d linhas.\n", repository.GoldTable, n)
	return n, nil
}
