package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
	"github.com/thiagolazarin/datathon-fiap/internal/repository"
	"github.com/thiagolazarin/datathon-fiap/internal/service"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Roda uma rodada de detecção de drift sobre as últimas 24h",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		var cache service.BaselineCache
		if rt.cfg.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     rt.cfg.RedisAddr,
				Password: rt.cfg.RedisPassword,
				DB:       rt.cfg.RedisDB,
			})
			defer client.Close()
			cache = service.NewRedisBaselineCache(client, 0)
		}

		svc := service.NewMonitorService(
			repository.NewPgInferenceRepository(rt.pool),
			repository.NewPgBaselineRepository(rt.pool),
			repository.NewPgDriftRepository(rt.pool),
			cache,
			rt.logger)
		report, err := svc.Run(cmd.Context())
		if err != nil {
			return err
		}

		printDriftReport(report)
		return nil
	},
}

func printDriftReport(report domain.Report) {
	fmt.Println("\n== Drift ==")
	switch report.Status {
	case domain.ReportNoBaseline:
		fmt.Println("Sem baseline salvo. Rode: pipeline baseline")
	case domain.ReportNoData:
		fmt.Println("Sem dados de ontem.")
	case domain.ReportAlerts:
		for _, a := range report.Alerts {
			fmt.Println(a.Message)
		}
	default:
		fmt.Println("Sem alertas de drift com regras simples.")
	}
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
