package analytics

import (
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

const RatePlaces = 4

func roundMoney(f float64) float64 {
	return eventmodels.MoneyToFloat(decimal.NewFromFloat(f))
}

func roundRate(f float64) float64 {
	return decimal.NewFromFloat(f).RoundBank(RatePlaces).InexactFloat64()
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}

	return roundRate(float64(n) / float64(total))
}

// sum and mean treat an empty series as zero.
func sum(data stats.Float64Data) float64 {
	s, err := stats.Sum(data)
	if err != nil {
		return 0
	}

	return s
}

func mean(data stats.Float64Data) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}

	return m
}

func pnls(trades []*eventmodels.MatchedTrade) stats.Float64Data {
	data := make(stats.Float64Data, 0, len(trades))
	for _, t := range trades {
		data = append(data, t.PnL.InexactFloat64())
	}

	return data
}

func fees(trades []*eventmodels.MatchedTrade) stats.Float64Data {
	data := make(stats.Float64Data, 0, len(trades))
	for _, t := range trades {
		data = append(data, t.Fees.InexactFloat64())
	}

	return data
}
