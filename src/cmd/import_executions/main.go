package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hilljasont-svg/Tradejournal/src/config"
	"github.com/hilljasont-svg/Tradejournal/src/eventpubsub"
	"github.com/hilljasont-svg/Tradejournal/src/ingestion"
	"github.com/hilljasont-svg/Tradejournal/src/journal"
	"github.com/hilljasont-svg/Tradejournal/src/report"
	"github.com/hilljasont-svg/Tradejournal/src/utils"
)

type RunArgs struct {
	File    string
	Profile string
	Mapping string
	Format  string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/import_executions/main.go --file orders.csv [--profile fidelity]",
	Short: "Imports a brokerage execution export into the journal and prints the rebuilt ledger.",
	Run: func(cmd *cobra.Command, args []string) {
		file, err := cmd.Flags().GetString("file")
		if err != nil {
			log.Fatalf("error getting file: %v", err)
		}

		profile, err := cmd.Flags().GetString("profile")
		if err != nil {
			log.Fatalf("error getting profile: %v", err)
		}

		mapping, err := cmd.Flags().GetString("mapping")
		if err != nil {
			log.Fatalf("error getting mapping: %v", err)
		}

		format, err := cmd.Flags().GetString("format")
		if err != nil {
			log.Fatalf("error getting format: %v", err)
		}

		if err := Run(context.Background(), RunArgs{
			File:    file,
			Profile: profile,
			Mapping: mapping,
			Format:  format,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(ctx context.Context, args RunArgs) error {
	req := journal.ImportRequest{
		Profile: args.Profile,
		Format:  args.Format,
		Source:  filepath.Base(args.File),
	}

	if args.Mapping != "" {
		var mapping ingestion.ColumnMapping
		if err := json.Unmarshal([]byte(args.Mapping), &mapping); err != nil {
			return fmt.Errorf("invalid mapping: %w", err)
		}

		req.Mapping = &mapping
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

	f, err := os.Open(args.File)
	if err != nil {
		return fmt.Errorf("failed to open file: %v", err)
	}
	defer f.Close()

	result, err := svc.Import(ctx, f, req)
	if err != nil {
		return err
	}

	trades, err := svc.Trades(journal.TradesQuery{})
	if err != nil {
		return err
	}

	report.Ledger(os.Stdout, trades)

	if positions := svc.OpenPositions(); len(positions) > 0 {
		fmt.Println("Open positions:")
		report.OpenPositions(os.Stdout, positions)
	}

	for _, msg := range result.RejectedMessages {
		fmt.Printf("rejected: %s\n", msg)
	}

	fmt.Println(result.Message)

	return nil
}

func main() {
	runCmd.PersistentFlags().String("file", "", "The brokerage CSV export to import.")
	runCmd.PersistentFlags().String("profile", "", "A broker profile name, e.g. fidelity-history.")
	runCmd.PersistentFlags().String("mapping", "", "A column mapping as JSON.")
	runCmd.PersistentFlags().String("format", "", "A fixed export format, e.g. fidelity.")
	runCmd.MarkPersistentFlagRequired("file")
	runCmd.Execute()
}
