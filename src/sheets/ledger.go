package sheets

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/sheets/v4"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

var LedgerHeader = []interface{}{
	"Trade Date", "Symbol", "Side", "Entry Action", "Exit Action", "Entry Time", "Exit Time",
	"Entry Price", "Exit Price", "Quantity", "PnL", "Fees", "Net PnL", "Result", "Hold Time", "Entry Hour", "ID",
}

// LedgerRows renders trades as sheet rows, header first.
func LedgerRows(trades []*eventmodels.MatchedTrade, withHeader bool) [][]interface{} {
	rows := make([][]interface{}, 0, len(trades)+1)
	if withHeader {
		rows = append(rows, LedgerHeader)
	}

	for _, dto := range eventmodels.ConvertMatchedTradesToDTO(trades) {
		rows = append(rows, []interface{}{
			dto.TradeDate, dto.Symbol, dto.Side, dto.EntryAction, dto.ExitAction, dto.EntryTime, dto.ExitTime,
			dto.EntryPrice, dto.ExitPrice, dto.Quantity, dto.PnL, dto.Fees, dto.NetPnL, dto.Result, dto.HoldTime, dto.EntryHour, dto.ID,
		})
	}

	return rows
}

// ExportLedger appends trades to sheetName, writing the header when the sheet
// is empty.
func ExportLedger(ctx context.Context, srv *sheets.Service, spreadsheetId string, sheetName string, trades []*eventmodels.MatchedTrade) error {
	existing, err := fetchRows(ctx, srv, spreadsheetId, sheetName, "A1:A1")
	if err != nil {
		return fmt.Errorf("ExportLedger: failed to read %s: %w", sheetName, err)
	}

	rows := LedgerRows(trades, len(existing) == 0)
	if len(rows) == 0 {
		log.Infof("ExportLedger: nothing to export")
		return nil
	}

	if err := AppendRows(ctx, srv, spreadsheetId, sheetName, rows); err != nil {
		return fmt.Errorf("ExportLedger: failed to append rows: %w", err)
	}

	log.Infof("ExportLedger: appended %d trades to %s", len(trades), sheetName)

	return nil
}
