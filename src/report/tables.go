package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hilljasont-svg/Tradejournal/src/analytics"
	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
	"github.com/hilljasont-svg/Tradejournal/src/matching"
)

var p = message.NewPrinter(language.English)

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%s", p.Sprintf("%.2f", -v))
	}

	return fmt.Sprintf("$%s", p.Sprintf("%.2f", v))
}

func percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

// Ledger renders matched trades in ledger order.
func Ledger(w io.Writer, trades []*eventmodels.MatchedTrade) {
	table := newTable(w, []string{"Date", "Symbol", "Side", "Qty", "Entry", "Exit", "PnL", "Fees", "Result", "Hold"})

	for _, dto := range eventmodels.ConvertMatchedTradesToDTO(trades) {
		table.Append([]string{
			dto.TradeDate,
			dto.Symbol,
			dto.Side,
			fmt.Sprintf("%d", dto.Quantity),
			money(dto.EntryPrice),
			money(dto.ExitPrice),
			money(dto.PnL),
			money(dto.Fees),
			dto.Result,
			dto.HoldTime,
		})
	}

	table.SetFooter([]string{"", "", "", "", "", "Trades", fmt.Sprintf("%d", len(trades)), "", "", ""})
	table.Render()
}

func OpenPositions(w io.Writer, positions []*matching.OpenPositionDTO) {
	table := newTable(w, []string{"Symbol", "Contract", "Side", "Qty", "Avg Price", "Cost Basis", "Lots"})

	for _, pos := range positions {
		table.Append([]string{
			pos.Symbol,
			pos.Description,
			pos.Side,
			fmt.Sprintf("%d", pos.Quantity),
			p.Sprintf("%.4f", pos.AveragePrice),
			money(pos.CostBasis),
			fmt.Sprintf("%d", len(pos.Lots)),
		})
	}

	table.Render()
}

func Dashboard(w io.Writer, m analytics.DashboardMetrics) {
	table := newTable(w, []string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.AppendBulk([][]string{
		{"Total PnL", money(m.TotalPnL)},
		{"Total Fees", money(m.TotalFees)},
		{"Net PnL", money(m.NetPnL)},
		{"Avg Daily PnL", money(m.AvgDailyPnL)},
		{"Avg Trade PnL", money(m.AvgTradePnL)},
		{"Trades", fmt.Sprintf("%d (%d W / %d L / %d S)", m.TotalTrades, m.WinningTrades, m.LosingTrades, m.ScratchTrades)},
		{"Win Rate", percent(m.WinRate)},
		{"Loss Rate", percent(m.LossRate)},
		{"Scratch Rate", percent(m.ScratchRate)},
		{"Avg Win / Avg Loss", fmt.Sprintf("%s / %s", money(m.AvgWinningTrade), money(m.AvgLosingTrade))},
		{"Largest Gain / Loss", fmt.Sprintf("%s / %s", money(m.LargestGain), money(m.LargestLoss))},
		{"Max Consecutive W / L", fmt.Sprintf("%d / %d", m.MaxConsecutiveWins, m.MaxConsecutiveLosses)},
		{"Avg Hold W / L / S", strings.Join([]string{m.AvgHoldTimeWinning, m.AvgHoldTimeLosing, m.AvgHoldTimeScratch}, " / ")},
	})

	table.Render()
}

func Symbols(w io.Writer, stats []analytics.SymbolStats) {
	table := newTable(w, []string{"Symbol", "Trades", "Total PnL", "Avg PnL", "Win Rate"})

	for _, s := range stats {
		table.Append([]string{s.Symbol, fmt.Sprintf("%d", s.TradeCount), money(s.TotalPnL), money(s.AvgPnL), percent(s.WinRate)})
	}

	table.Render()
}

func Hours(w io.Writer, buckets []analytics.HourBucket) {
	table := newTable(w, []string{"Hour", "Trades", "Total PnL", "Avg PnL", "W / L", "Win Rate"})

	for _, b := range buckets {
		table.Append([]string{
			fmt.Sprintf("%02d:00", b.Hour),
			fmt.Sprintf("%d", b.TradeCount),
			money(b.TotalPnL),
			money(b.AvgPnL),
			fmt.Sprintf("%d / %d", b.WinCount, b.LossCount),
			percent(b.WinRate),
		})
	}

	table.Render()
}
