package main

import (
	"github.com/spf13/cobra"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

var featuresChunk int

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Reconstrói applicants_feat a partir de applicants_raw",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		svc := service.NewFeatureService(repository.NewPgApplicantRepository(rt.pool), rt.logger)
		_, err = svc.Rebuild(cmd.Context(), featuresChunk)
		return err
	},
}

func init() {
	featuresCmd.Flags().IntVar(&featuresChunk, "chunk-rows", 0, "linhas por chunk (0 = automático)")
	rootCmd.AddCommand(featuresCmd)
}
