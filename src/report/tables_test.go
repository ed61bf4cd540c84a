package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hilljasont-svg/Tradejournal/src/analytics"
	"github.com/hilljasont-svg/Tradejournal/src/matching"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", money(1234.5))
	assert.Equal(t, "-$40.00", money(-40))
	assert.Equal(t, "$0.00", money(0))
}

func TestTables(t *testing.T) {
	t.Run("dashboard", func(t *testing.T) {
		var b strings.Builder
		Dashboard(&b, analytics.Dashboard(nil))

		out := b.String()
		assert.Contains(t, out, "Net PnL")
		assert.Contains(t, out, "00:00:00 / 00:00:00 / 00:00:00")
	})

	t.Run("symbols and hours", func(t *testing.T) {
		var b strings.Builder
		Symbols(&b, []analytics.SymbolStats{{Symbol: "AAPL", TradeCount: 2, TotalPnL: 1500, AvgPnL: 750, WinRate: 0.5}})
		Hours(&b, []analytics.HourBucket{{Hour: 9, TradeCount: 2, TotalPnL: 1500, AvgPnL: 750, WinCount: 1, LossCount: 1, WinRate: 0.5}})

		out := b.String()
		assert.Contains(t, out, "$1,500.00")
		assert.Contains(t, out, "50.00%")
		assert.Contains(t, out, "09:00")
	})

	t.Run("open positions", func(t *testing.T) {
		var b strings.Builder
		OpenPositions(&b, []*matching.OpenPositionDTO{
			{Symbol: "TSLA", Side: "Short", Quantity: 10, AveragePrice: 200, CostBasis: 2000},
			{Symbol: "SPY251219P670", Description: "SPY Dec 19 2025 $670.00 Put", Side: "Long", Quantity: 2, AveragePrice: 1.5, CostBasis: 300, IsOption: true},
		})

		assert.Contains(t, b.String(), "TSLA")
		assert.Contains(t, b.String(), "$2,000.00")
		assert.Contains(t, b.String(), "SPY Dec 19 2025 $670.00 Put")
	})
}
