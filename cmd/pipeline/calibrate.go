package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

var (
	calibrateScoresTable  string
	calibrateMinPrecision float64
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Recalibra o threshold do artefato para a precisão mínima alvo",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		minPrec := calibrateMinPrecision
		if minPrec == 0 {
			minPrec = rt.cfg.MinPrecision
		}

		svc := service.NewCalibrateService(repository.NewPgScoreRepository(rt.pool), rt.logger)
		thr, err := svc.Calibrate(cmd.Context(), rt.cfg.ModelArtifact, calibrateScoresTable, minPrec)
		if err != nil {
			return err
		}
		fmt.Printf("threshold=%.4f gravado em %s\n", thr, rt.cfg.ModelArtifact)
		return nil
	},
}

func init() {
	calibrateCmd.Flags().StringVar(&calibrateScoresTable, "scores-table", repository.HoldoutScoresTable, "tabela com colunas target e score")
	calibrateCmd.Flags().Float64Var(&calibrateMinPrecision, "min-precision", 0, "precisão mínima alvo (0 = usar MIN_PRECISION)")
	rootCmd.AddCommand(calibrateCmd)
}
