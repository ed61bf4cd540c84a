package analytics

import (
	"fmt"
	"time"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

// DateFilter bounds trades by trade date, inclusive on both ends. Empty bounds
// are open.
type DateFilter struct {
	StartDate string `schema:"start_date" json:"start_date,omitempty"`
	EndDate   string `schema:"end_date" json:"end_date,omitempty"`
}

func (f DateFilter) Validate() error {
	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}

		if _, err := time.Parse(eventmodels.TradeDateLayout, d); err != nil {
			return fmt.Errorf("%w: %q", eventmodels.InvalidTradeDateErr, d)
		}
	}

	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return fmt.Errorf("%w: start %s after end %s", eventmodels.InvalidTradeDateErr, f.StartDate, f.EndDate)
	}

	return nil
}

func (f DateFilter) IsZero() bool {
	return f.StartDate == "" && f.EndDate == ""
}

func (f DateFilter) Includes(tradeDate string) bool {
	if f.StartDate != "" && tradeDate < f.StartDate {
		return false
	}

	if f.EndDate != "" && tradeDate > f.EndDate {
		return false
	}

	return true
}

func (f DateFilter) Apply(trades []*eventmodels.MatchedTrade) []*eventmodels.MatchedTrade {
	if f.IsZero() {
		return trades
	}

	var out []*eventmodels.MatchedTrade
	for _, t := range trades {
		if f.Includes(t.TradeDate) {
			out = append(out, t)
		}
	}

	return out
}
