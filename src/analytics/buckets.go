package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

type CalendarDay struct {
	Date       string  `json:"date"`
	PnL        float64 `json:"pnl"`
	Fees       float64 `json:"fees"`
	NetPnL     float64 `json:"net_pnl"`
	TradeCount int     `json:"trade_count"`
}

type HourBucket struct {
	Hour       int     `json:"hour"`
	TradeCount int     `json:"trade_count"`
	TotalPnL   float64 `json:"total_pnl"`
	AvgPnL     float64 `json:"avg_pnl"`
	WinCount   int     `json:"win_count"`
	LossCount  int     `json:"loss_count"`
	WinRate    float64 `json:"win_rate"`
}

type SymbolStats struct {
	Symbol     string  `json:"symbol"`
	TradeCount int     `json:"trade_count"`
	TotalPnL   float64 `json:"total_pnl"`
	AvgPnL     float64 `json:"avg_pnl"`
	WinRate    float64 `json:"win_rate"`
}

type CumulativePoint struct {
	Date          string  `json:"date"`
	PnL           float64 `json:"pnl"`
	CumulativePnL float64 `json:"cumulative_pnl"`
}

// Calendar buckets trades by trade date, oldest first.
func Calendar(trades []*eventmodels.MatchedTrade) []CalendarDay {
	byDay := make(map[string][]*eventmodels.MatchedTrade)
	for _, t := range trades {
		if t.TradeDate != "" {
			byDay[t.TradeDate] = append(byDay[t.TradeDate], t)
		}
	}

	days := make([]CalendarDay, 0, len(byDay))
	for date, dayTrades := range byDay {
		pnl := sum(pnls(dayTrades))
		fee := sum(fees(dayTrades))

		days = append(days, CalendarDay{
			Date:       date,
			PnL:        roundMoney(pnl),
			Fees:       roundMoney(fee),
			NetPnL:     roundMoney(pnl - fee),
			TradeCount: len(dayTrades),
		})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days
}

// TimeAnalysis buckets trades by the hour they were entered. Hours without
// trades are left out.
func TimeAnalysis(trades []*eventmodels.MatchedTrade) []HourBucket {
	var byHour [24][]*eventmodels.MatchedTrade
	for _, t := range trades {
		if t.EntryHour >= 0 && t.EntryHour < 24 {
			byHour[t.EntryHour] = append(byHour[t.EntryHour], t)
		}
	}

	buckets := make([]HourBucket, 0, 24)
	for hour, hourTrades := range byHour {
		if len(hourTrades) == 0 {
			continue
		}

		wins, losses := countResults(hourTrades)
		data := pnls(hourTrades)

		buckets = append(buckets, HourBucket{
			Hour:       hour,
			TradeCount: len(hourTrades),
			TotalPnL:   roundMoney(sum(data)),
			AvgPnL:     roundMoney(mean(data)),
			WinCount:   wins,
			LossCount:  losses,
			WinRate:    ratio(wins, len(hourTrades)),
		})
	}

	return buckets
}

// SymbolPerformance ranks symbols by total P&L, best first.
func SymbolPerformance(trades []*eventmodels.MatchedTrade) []SymbolStats {
	bySymbol := make(map[string][]*eventmodels.MatchedTrade)
	for _, t := range trades {
		if t.Symbol != "" {
			bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
		}
	}

	out := make([]SymbolStats, 0, len(bySymbol))
	for symbol, symbolTrades := range bySymbol {
		wins, _ := countResults(symbolTrades)
		data := pnls(symbolTrades)

		out = append(out, SymbolStats{
			Symbol:     symbol,
			TradeCount: len(symbolTrades),
			TotalPnL:   roundMoney(sum(data)),
			AvgPnL:     roundMoney(mean(data)),
			WinRate:    ratio(wins, len(symbolTrades)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPnL != out[j].TotalPnL {
			return out[i].TotalPnL > out[j].TotalPnL
		}

		return out[i].Symbol < out[j].Symbol
	})

	return out
}

// CumulativePnL is the running P&L ordered by trade date then exit time.
func CumulativePnL(trades []*eventmodels.MatchedTrade) []CumulativePoint {
	sorted := make([]*eventmodels.MatchedTrade, len(trades))
	copy(sorted, trades)

	sort.SliceStable(sorted, func(i, j int) bool {
		return pointLabel(sorted[i]) < pointLabel(sorted[j])
	})

	points := make([]CumulativePoint, 0, len(sorted))
	running := decimal.Zero

	for _, t := range sorted {
		running = running.Add(t.PnL)

		points = append(points, CumulativePoint{
			Date:          pointLabel(t),
			PnL:           eventmodels.MoneyToFloat(t.PnL),
			CumulativePnL: eventmodels.MoneyToFloat(running),
		})
	}

	return points
}

func pointLabel(t *eventmodels.MatchedTrade) string {
	return t.TradeDate + " " + t.ExitTime.Format("15:04:05")
}

func countResults(trades []*eventmodels.MatchedTrade) (int, int) {
	wins, losses := 0, 0
	for _, t := range trades {
		switch t.Result {
		case eventmodels.TradeResultWin:
			wins++
		case eventmodels.TradeResultLose:
			losses++
		}
	}

	return wins, losses
}
