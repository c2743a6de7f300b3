package main

import (
	"github.com/spf13/cobra"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Calcula o snapshot de estatísticas da gold e grava em model_baseline",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		svc := service.NewBaselineService(
			repository.NewPgGoldRepository(rt.pool),
			repository.NewPgBaselineRepository(rt.pool),
			rt.logger)
		return svc.Record(cmd.Context(), rt.cfg.ModelArtifact)
	},
}

func init() {
	rootCmd.AddCommand(baselineCmd)
}
