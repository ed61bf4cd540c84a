package journal

import (
	"context"
	"fmt"

	"github.com/hilljasont-svg/Tradejournal/src/analytics"
	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
	"github.com/hilljasont-svg/Tradejournal/src/matching"
	"github.com/hilljasont-svg/Tradejournal/src/store"
)

// TradesQuery narrows the ledger by trade date and, optionally, symbol.
type TradesQuery struct {
	StartDate string `schema:"start_date"`
	EndDate   string `schema:"end_date"`
	Symbol    string `schema:"symbol"`
}

func (q TradesQuery) DateFilter() analytics.DateFilter {
	return analytics.DateFilter{StartDate: q.StartDate, EndDate: q.EndDate}
}

func (s *Service) snapshot() []*eventmodels.MatchedTrade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.trades
}

func (s *Service) filtered(filter analytics.DateFilter) ([]*eventmodels.MatchedTrade, error) {
	if err := filter.Validate(); err != nil {
		return nil, eventmodels.NewBadRequestError("invalid date filter", err)
	}

	return filter.Apply(s.snapshot()), nil
}

func (s *Service) Trades(q TradesQuery) ([]*eventmodels.MatchedTrade, error) {
	trades, err := s.filtered(q.DateFilter())
	if err != nil {
		return nil, err
	}

	if q.Symbol == "" {
		return trades, nil
	}

	var out []*eventmodels.MatchedTrade
	for _, t := range trades {
		if t.Symbol == q.Symbol {
			out = append(out, t)
		}
	}

	return out, nil
}

func (s *Service) OpenPositions() []*matching.OpenPositionDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return matching.OpenPositions(s.openLots)
}

func (s *Service) Dashboard(filter analytics.DateFilter) (analytics.DashboardMetrics, error) {
	trades, err := s.filtered(filter)
	if err != nil {
		return analytics.DashboardMetrics{}, err
	}

	return analytics.Dashboard(trades), nil
}

func (s *Service) Calendar(filter analytics.DateFilter) ([]analytics.CalendarDay, error) {
	trades, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}

	return analytics.Calendar(trades), nil
}

func (s *Service) TimeAnalysis() []analytics.HourBucket {
	return analytics.TimeAnalysis(s.snapshot())
}

func (s *Service) SymbolPerformance() []analytics.SymbolStats {
	return analytics.SymbolPerformance(s.snapshot())
}

func (s *Service) CumulativePnL() []analytics.CumulativePoint {
	return analytics.CumulativePnL(s.snapshot())
}

// SavedTrades reads the ledger persisted by the last rebuild without
// rematching the stored executions.
func SavedTrades(ctx context.Context, st store.Store, filter analytics.DateFilter) ([]*eventmodels.MatchedTrade, error) {
	if err := filter.Validate(); err != nil {
		return nil, eventmodels.NewBadRequestError("invalid date filter", err)
	}

	trades, err := st.LoadTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("SavedTrades: %w", err)
	}

	return filter.Apply(trades), nil
}
