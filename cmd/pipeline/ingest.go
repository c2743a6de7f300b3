package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

var (
	ingestApplicantsJSON  string
	ingestApplicantsChunk int
	ingestProspectsJSON   string
	ingestProspectsChunk  int
)

var ingestApplicantsCmd = &cobra.Command{
	Use:   "ingest-applicants",
	Short: "Carrega applicants.json na tabela applicants_raw (replace)",
	RunE:  runIngestApplicants,
}

var ingestProspectsCmd = &cobra.Command{
	Use:   "ingest-prospects",
	Short: "Carrega o json de vagas/prospects na tabela prospects_raw (replace)",
	RunE:  runIngestProspects,
}

func init() {
	ingestApplicantsCmd.Flags().StringVar(&ingestApplicantsJSON, "json", "", "caminho do applicants.json")
	ingestApplicantsCmd.Flags().IntVar(&ingestApplicantsChunk, "chunk-rows", 0, "linhas por chunk (0 = automático)")
	_ = ingestApplicantsCmd.MarkFlagRequired("json")

	ingestProspectsCmd.Flags().StringVar(&ingestProspectsJSON, "json", "", "caminho do vagas.json")
	ingestProspectsCmd.Flags().IntVar(&ingestProspectsChunk, "chunk-rows", 0, "linhas por chunk (0 = automático)")
	_ = ingestProspectsCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(ingestApplicantsCmd, ingestProspectsCmd)
}

func runIngestApplicants(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	svc := service.NewIngestService(
		repository.NewPgApplicantRepository(rt.pool),
		repository.NewPgProspectRepository(rt.pool),
		rt.logger)
	n, err := svc.IngestApplicants(cmd.Context(), ingestApplicantsJSON, ingestApplicantsChunk)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d linhas\n", repository.ApplicantsRawTable, n)
	return nil
}

func runIngestProspects(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	svc := service.NewIngestService(
		repository.NewPgApplicantRepository(rt.pool),
		repository.NewPgProspectRepository(rt.pool),
		rt.logger)
	n, err := svc.IngestProspects(cmd.Context(), ingestProspectsJSON, ingestProspectsChunk)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d linhas\n", repository.ProspectsRawTable, n)
	return nil
}
