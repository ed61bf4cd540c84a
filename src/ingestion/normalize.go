package ingestion

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

// Normalize turns mapped rows into executions. Rows that fail validation are
// skipped and reported; Sequence is the row's position among accepted rows.
func Normalize(table *Table, mapping ColumnMapping) ([]*eventmodels.Execution, []*eventmodels.ValidationError, error) {
	if err := mapping.Validate(table.Headers); err != nil {
		return nil, nil, fmt.Errorf("Normalize: %w", err)
	}

	var execs []*eventmodels.Execution
	var rejected []*eventmodels.ValidationError

	for i, row := range table.Rows {
		exec, verr := normalizeRow(i+1, row, mapping, len(execs))
		if verr != nil {
			log.Warnf("Normalize: skipping %v", verr)
			rejected = append(rejected, verr)
			continue
		}

		execs = append(execs, exec)
	}

	return execs, rejected, nil
}

func normalizeRow(rowNum int, row map[string]string, m ColumnMapping, sequence int) (*eventmodels.Execution, *eventmodels.ValidationError) {
	dateCell := row[m.Date]
	timeCell := ""
	if m.Time != "" {
		timeCell = row[m.Time]
	}

	ts, err := ParseTimestamp(dateCell, timeCell, m.DateTimeCombined)
	if err != nil {
		return nil, eventmodels.NewValidationError(rowNum, "timestamp", dateCell+" "+timeCell, err)
	}

	symbol := eventmodels.ExtractSymbol(row[m.Symbol])
	if symbol == "" {
		return nil, eventmodels.NewValidationError(rowNum, "symbol", row[m.Symbol], eventmodels.SymbolNotSetErr)
	}

	price, err := ParsePrice(row[m.Price])
	if err != nil {
		return nil, eventmodels.NewValidationError(rowNum, "price", row[m.Price], err)
	}

	qty, signed, err := ParseQuantity(row[m.Quantity])
	if err != nil {
		return nil, eventmodels.NewValidationError(rowNum, "quantity", row[m.Quantity], err)
	}

	action := ""
	if m.hasAction() {
		action = row[m.Action]
	}

	fee := ParseFee("")
	if m.Fees != "" {
		fee = ParseFee(row[m.Fees])
	}

	side := eventmodels.ClassifySide(action, signed)

	exec, err := eventmodels.NewExecution(symbol, side, qty, price, fee, ts, sequence)
	if err != nil {
		return nil, withRow(err, rowNum)
	}

	return exec, nil
}

func withRow(err error, rowNum int) *eventmodels.ValidationError {
	if verr, ok := err.(*eventmodels.ValidationError); ok {
		verr.Row = rowNum
		return verr
	}

	return eventmodels.NewValidationError(rowNum, "row", "", err)
}
