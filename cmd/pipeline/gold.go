package main

import (
	"github.com/spf13/cobra"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

var goldCmd = &cobra.Command{
	Use:   "gold",
	Short: "Reconstrói gold_applicants (join de features com rótulos)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		svc := service.NewGoldService(repository.NewPgGoldRepository(rt.pool), rt.logger)
		_, err = svc.Rebuild(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(goldCmd)
}
