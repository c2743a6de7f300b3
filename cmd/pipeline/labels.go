package main

import (
	"github.com/spf13/cobra"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

var labelsChunk int

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Reconstrói prospects_labels a partir de prospects_raw",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		svc := service.NewLabelService(repository.NewPgProspectRepository(rt.pool), rt.logger)
		_, err = svc.Rebuild(cmd.Context(), labelsChunk)
		return err
	},
}

func init() {
	labelsCmd.Flags().IntVar(&labelsChunk, "chunk-rows", 0, "linhas por chunk (0 = automático)")
	rootCmd.AddCommand(labelsCmd)
}
