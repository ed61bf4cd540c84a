package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hilljasont-svg/Tradejournal/src/analytics"
	"github.com/hilljasont-svg/Tradejournal/src/config"
	"github.com/hilljasont-svg/Tradejournal/src/eventpubsub"
	"github.com/hilljasont-svg/Tradejournal/src/journal"
	"github.com/hilljasont-svg/Tradejournal/src/report"
	"github.com/hilljasont-svg/Tradejournal/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/report/main.go [--start-date 2025-01-01] [--end-date 2025-12-31]",
	Short: "Prints dashboard, per-symbol and per-hour tables for the journal.",
	Run: func(cmd *cobra.Command, args []string) {
		startDate, err := cmd.Flags().GetString("start-date")
		if err != nil {
			log.Fatalf("error getting start-date: %v", err)
		}

		endDate, err := cmd.Flags().GetString("end-date")
		if err != nil {
			log.Fatalf("error getting end-date: %v", err)
		}

		if err := Run(context.Background(), analytics.DateFilter{StartDate: startDate, EndDate: endDate}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(ctx context.Context, filter analytics.DateFilter) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	if err := utils.InitEnvironmentVariables(utils.GetEnvOrDefault("ENV_DIR", "."), os.Getenv("GO_ENV")); err != nil {
		return err
	}

	cfg, err := config.NewJournalConfigFromEnv()
	if err != nil {
		return err
	}

	cfg.ConfigureLogger()

	svc, err := journal.Setup(ctx, cfg, eventpubsub.New())
	if err != nil {
		return err
	}

	metrics, err := svc.Dashboard(filter)
	if err != nil {
		return err
	}

	trades, err := svc.Trades(journal.TradesQuery{StartDate: filter.StartDate, EndDate: filter.EndDate})
	if err != nil {
		return err
	}

	fmt.Println("Dashboard:")
	report.Dashboard(os.Stdout, metrics)

	fmt.Println("By symbol:")
	report.Symbols(os.Stdout, analytics.SymbolPerformance(trades))

	fmt.Println("By entry hour:")
	report.Hours(os.Stdout, analytics.TimeAnalysis(trades))

	return nil
}

func main() {
	runCmd.PersistentFlags().String("start-date", "", "First trade date to include (YYYY-MM-DD).")
	runCmd.PersistentFlags().String("end-date", "", "Last trade date to include (YYYY-MM-DD).")
	runCmd.Execute()
}
