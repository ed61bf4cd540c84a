package ingestion

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

const FormatFidelityOrders = "fidelity"

// FidelityOrderRowDTO is one row of the Fidelity "Orders" export.
type FidelityOrderRowDTO struct {
	Symbol    string `csv:"Symbol"`
	Action    string `csv:"Action"`
	Status    string `csv:"Status"`
	Amount    string `csv:"Amount"`
	OrderTime string `csv:"Order Time"`
}

func (dto *FidelityOrderRowDTO) isFilled() bool {
	return strings.Contains(dto.Status, "Filled") && !strings.Contains(dto.Status, "Verified Canceled")
}

// ToExecution converts a filled order. Unfilled and cancelled orders return
// OrderNotFilledErr.
func (dto *FidelityOrderRowDTO) ToExecution(rowNum, sequence int) (*eventmodels.Execution, *eventmodels.ValidationError) {
	if !dto.isFilled() {
		return nil, eventmodels.NewValidationError(rowNum, "status", dto.Status, OrderNotFilledErr)
	}

	ts, err := ParseOrderTime(dto.OrderTime)
	if err != nil {
		return nil, eventmodels.NewValidationError(rowNum, "order time", dto.OrderTime, err)
	}

	price, err := ParsePrice(dto.Status)
	if err != nil {
		return nil, eventmodels.NewValidationError(rowNum, "status", dto.Status, err)
	}

	qty, signed, err := ParseQuantity(dto.Amount)
	if err != nil {
		return nil, eventmodels.NewValidationError(rowNum, "amount", dto.Amount, err)
	}

	side := eventmodels.ClassifySide(dto.Action, signed)

	exec, err := eventmodels.NewExecution(eventmodels.ExtractSymbol(dto.Symbol), side, qty, price, ParseFee(""), ts, sequence)
	if err != nil {
		return nil, withRow(err, rowNum)
	}

	return exec, nil
}

// ParseFidelityOrders reads the legacy orders export. Rows that are not fills
// are skipped quietly; malformed fills are reported.
func ParseFidelityOrders(r io.Reader) ([]*eventmodels.Execution, []*eventmodels.ValidationError, error) {
	text, err := cleanCSV(r)
	if err != nil {
		return nil, nil, fmt.Errorf("ParseFidelityOrders: %w", err)
	}

	var rows []*FidelityOrderRowDTO
	if err := gocsv.UnmarshalCSV(newCSVReader(text), &rows); err != nil {
		return nil, nil, fmt.Errorf("ParseFidelityOrders: failed to unmarshal CSV: %w", err)
	}

	var execs []*eventmodels.Execution
	var rejected []*eventmodels.ValidationError

	for i, row := range rows {
		exec, verr := row.ToExecution(i+1, len(execs))
		if verr != nil {
			if verr.Reason == OrderNotFilledErr {
				continue
			}

			log.Warnf("ParseFidelityOrders: skipping %v", verr)
			rejected = append(rejected, verr)
			continue
		}

		execs = append(execs, exec)
	}

	return execs, rejected, nil
}
