package matching

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

type OpenLotDTO struct {
	EntryTime  string  `json:"entry_time"`
	EntryPrice float64 `json:"entry_price"`
	Quantity   int     `json:"quantity"`
	Remaining  int     `json:"remaining"`
}

type OpenPositionDTO struct {
	Symbol       string        `json:"symbol"`
	Description  string        `json:"description,omitempty"`
	Side         string        `json:"side"`
	Quantity     int           `json:"quantity"`
	AveragePrice float64       `json:"average_price"`
	CostBasis    float64       `json:"cost_basis"`
	IsOption     bool          `json:"is_option"`
	Lots         []*OpenLotDTO `json:"lots"`
}

// OpenPositions summarises open lots per symbol, sorted by symbol. The average
// price is weighted by remaining quantity.
func OpenPositions(openLots map[string][]*Lot) []*OpenPositionDTO {
	positions := make([]*OpenPositionDTO, 0, len(openLots))

	for symbol, lots := range openLots {
		if len(lots) == 0 {
			continue
		}

		pos := &OpenPositionDTO{
			Symbol:   symbol,
			Side:     string(lots[0].Side()),
			IsOption: lots[0].Origin.IsOption,
		}

		if pos.IsOption {
			if desc, err := eventmodels.OptionSymbol(symbol).Description(); err == nil {
				pos.Description = desc
			}
		}

		weighted := decimal.Zero
		basis := decimal.Zero
		for _, lot := range lots {
			pos.Quantity += lot.Remaining
			weighted = weighted.Add(lot.Origin.Price.Mul(decimal.NewFromInt(int64(lot.Remaining))))
			basis = basis.Add(lot.BasisFor(lot.Remaining))

			pos.Lots = append(pos.Lots, &OpenLotDTO{
				EntryTime:  lot.Origin.Timestamp.Format(time.DateTime),
				EntryPrice: lot.Origin.Price.InexactFloat64(),
				Quantity:   lot.Quantity,
				Remaining:  lot.Remaining,
			})
		}

		if pos.Quantity > 0 {
			pos.AveragePrice = weighted.Div(decimal.NewFromInt(int64(pos.Quantity))).Round(4).InexactFloat64()
		}

		pos.CostBasis = eventmodels.MoneyToFloat(basis)
		positions = append(positions, pos)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})

	return positions
}
