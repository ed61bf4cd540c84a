package matching

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

var baseTime = time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)

func newExec(t *testing.T, symbol string, side eventmodels.ExecutionSide, qty int, price, fee string, minute int, seq int) *eventmodels.Execution {
	t.Helper()

	e, err := eventmodels.NewExecution(symbol, side, qty, decimal.RequireFromString(price), decimal.RequireFromString(fee), baseTime.Add(time.Duration(minute)*time.Minute), seq)
	require.NoError(t, err)

	return e
}

func buy(t *testing.T, symbol string, qty int, price string, minute, seq int) *eventmodels.Execution {
	return newExec(t, symbol, eventmodels.ExecutionSideBuy, qty, price, "0", minute, seq)
}

func sell(t *testing.T, symbol string, qty int, price string, minute, seq int) *eventmodels.Execution {
	return newExec(t, symbol, eventmodels.ExecutionSideSell, qty, price, "0", minute, seq)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
