package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hilljasont-svg/Tradejournal/src/analytics"
	"github.com/hilljasont-svg/Tradejournal/src/config"
	"github.com/hilljasont-svg/Tradejournal/src/dbutils"
	"github.com/hilljasont-svg/Tradejournal/src/journal"
	"github.com/hilljasont-svg/Tradejournal/src/sheets"
	"github.com/hilljasont-svg/Tradejournal/src/utils"
)

type RunArgs struct {
	SpreadsheetID string
	SheetName     string
	Title         string
	FolderID      string
	StartDate     string
	EndDate       string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/export_sheets/main.go --spreadsheet-id <id> --sheet Trades",
	Short: "Appends the matched trade ledger to a Google Sheet.",
	Run: func(cmd *cobra.Command, args []string) {
		var runArgs RunArgs
		for flag, dst := range map[string]*string{
			"spreadsheet-id": &runArgs.SpreadsheetID,
			"sheet":          &runArgs.SheetName,
			"title":          &runArgs.Title,
			"folder-id":      &runArgs.FolderID,
			"start-date":     &runArgs.StartDate,
			"end-date":       &runArgs.EndDate,
		} {
			value, err := cmd.Flags().GetString(flag)
			if err != nil {
				log.Fatalf("error getting %s: %v", flag, err)
			}

			*dst = value
		}

		if err := Run(context.Background(), runArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(ctx context.Context, args RunArgs) error {
	if args.SpreadsheetID == "" && args.Title == "" {
		return fmt.Errorf("either --spreadsheet-id or --title is required")
	}

	if err := utils.InitEnvironmentVariables(utils.GetEnvOrDefault("ENV_DIR", "."), os.Getenv("GO_ENV")); err != nil {
		return err
	}

	cfg, err := config.NewJournalConfigFromEnv()
	if err != nil {
		return err
	}

	cfg.ConfigureLogger()

	st, err := dbutils.NewStore(cfg)
	if err != nil {
		return err
	}

	trades, err := journal.SavedTrades(ctx, st, analytics.DateFilter{StartDate: args.StartDate, EndDate: args.EndDate})
	if err != nil {
		return err
	}

	log.Infof("exporting %d saved trades", len(trades))

	sheetsSrv, driveSrv, err := sheets.NewClientFromEnv(ctx)
	if err != nil {
		return fmt.Errorf("failed to create google sheets client: %w", err)
	}

	spreadsheetID := args.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheet, err := sheets.CreateSpreadsheet(ctx, sheetsSrv, args.Title)
		if err != nil {
			return fmt.Errorf("failed to create spreadsheet: %w", err)
		}

		spreadsheetID = spreadsheet.SpreadsheetId
		log.Infof("created spreadsheet %s", spreadsheetID)

		if args.FolderID != "" {
			if err := sheets.MoveSpreadsheet(ctx, spreadsheetID, driveSrv, args.FolderID); err != nil {
				return err
			}
		}
	}

	return sheets.ExportLedger(ctx, sheetsSrv, spreadsheetID, args.SheetName, trades)
}

func main() {
	runCmd.PersistentFlags().String("spreadsheet-id", "", "The spreadsheet to append to.")
	runCmd.PersistentFlags().String("title", "", "Create a new spreadsheet with this title instead.")
	runCmd.PersistentFlags().String("folder-id", "", "Drive folder for a newly created spreadsheet.")
	runCmd.PersistentFlags().String("sheet", "Sheet1", "The sheet (tab) name.")
	runCmd.PersistentFlags().String("start-date", "", "First trade date to export (YYYY-MM-DD).")
	runCmd.PersistentFlags().String("end-date", "", "Last trade date to export (YYYY-MM-DD).")
	runCmd.Execute()
}
