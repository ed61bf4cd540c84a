package analytics

import (
	"github.com/montanaflynn/stats"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

type DashboardMetrics struct {
	TotalPnL             float64 `json:"total_pnl"`
	TotalFees            float64 `json:"total_fees"`
	NetPnL               float64 `json:"net_pnl"`
	AvgDailyPnL          float64 `json:"avg_daily_pnl"`
	AvgTradePnL          float64 `json:"avg_trade_pnl"`
	TotalTrades          int     `json:"total_trades"`
	WinningTrades        int     `json:"winning_trades"`
	LosingTrades         int     `json:"losing_trades"`
	ScratchTrades        int     `json:"scratch_trades"`
	WinRate              float64 `json:"win_rate"`
	LossRate             float64 `json:"loss_rate"`
	ScratchRate          float64 `json:"scratch_rate"`
	AvgWinningTrade      float64 `json:"avg_winning_trade"`
	AvgLosingTrade       float64 `json:"avg_losing_trade"`
	LargestGain          float64 `json:"largest_gain"`
	LargestLoss          float64 `json:"largest_loss"`
	MaxConsecutiveWins   int     `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses"`
	AvgHoldTimeWinning   string  `json:"avg_hold_time_winning"`
	AvgHoldTimeLosing    string  `json:"avg_hold_time_losing"`
	AvgHoldTimeScratch   string  `json:"avg_hold_time_scratch"`
}

func emptyDashboard() DashboardMetrics {
	zero := eventmodels.HoldTime(0).String()
	return DashboardMetrics{
		AvgHoldTimeWinning: zero,
		AvgHoldTimeLosing:  zero,
		AvgHoldTimeScratch: zero,
	}
}

// Dashboard summarises a ledger. Streaks follow ledger order; a scratch ends
// both a winning and a losing streak.
func Dashboard(trades []*eventmodels.MatchedTrade) DashboardMetrics {
	if len(trades) == 0 {
		return emptyDashboard()
	}

	byResult := make(map[eventmodels.TradeResult][]*eventmodels.MatchedTrade)
	days := make(map[string]struct{})

	for _, t := range trades {
		byResult[t.Result] = append(byResult[t.Result], t)
		if t.TradeDate != "" {
			days[t.TradeDate] = struct{}{}
		}
	}

	winning := byResult[eventmodels.TradeResultWin]
	losing := byResult[eventmodels.TradeResultLose]
	scratch := byResult[eventmodels.TradeResultScratch]

	all := pnls(trades)
	totalPnL := sum(all)
	totalFees := sum(fees(trades))

	largestGain, _ := stats.Max(all)
	largestLoss, _ := stats.Min(all)

	avgDaily := 0.0
	if len(days) > 0 {
		avgDaily = totalPnL / float64(len(days))
	}

	maxWins, maxLosses := streaks(trades)

	return DashboardMetrics{
		TotalPnL:             roundMoney(totalPnL),
		TotalFees:            roundMoney(totalFees),
		NetPnL:               roundMoney(totalPnL - totalFees),
		AvgDailyPnL:          roundMoney(avgDaily),
		AvgTradePnL:          roundMoney(mean(all)),
		TotalTrades:          len(trades),
		WinningTrades:        len(winning),
		LosingTrades:         len(losing),
		ScratchTrades:        len(scratch),
		WinRate:              ratio(len(winning), len(trades)),
		LossRate:             ratio(len(losing), len(trades)),
		ScratchRate:          ratio(len(scratch), len(trades)),
		AvgWinningTrade:      roundMoney(mean(pnls(winning))),
		AvgLosingTrade:       roundMoney(mean(pnls(losing))),
		LargestGain:          roundMoney(largestGain),
		LargestLoss:          roundMoney(largestLoss),
		MaxConsecutiveWins:   maxWins,
		MaxConsecutiveLosses: maxLosses,
		AvgHoldTimeWinning:   averageHoldTime(winning).String(),
		AvgHoldTimeLosing:    averageHoldTime(losing).String(),
		AvgHoldTimeScratch:   averageHoldTime(scratch).String(),
	}
}

func streaks(trades []*eventmodels.MatchedTrade) (int, int) {
	maxWins, maxLosses := 0, 0
	wins, losses := 0, 0

	for _, t := range trades {
		switch t.Result {
		case eventmodels.TradeResultWin:
			wins++
			losses = 0
			maxWins = max(maxWins, wins)
		case eventmodels.TradeResultLose:
			losses++
			wins = 0
			maxLosses = max(maxLosses, losses)
		default:
			wins, losses = 0, 0
		}
	}

	return maxWins, maxLosses
}

func averageHoldTime(trades []*eventmodels.MatchedTrade) eventmodels.HoldTime {
	holdTimes := make([]eventmodels.HoldTime, 0, len(trades))
	for _, t := range trades {
		holdTimes = append(holdTimes, t.HoldTime)
	}

	return eventmodels.AverageHoldTime(holdTimes)
}
