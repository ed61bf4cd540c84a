package matching

import (
	"github.com/shopspring/decimal"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

// Lot is exposure left open by an execution. Basis is the cost (long) or the
// revenue (short) banked for Quantity units when the lot was opened.
type Lot struct {
	Origin    *eventmodels.Execution
	Quantity  int
	Remaining int
	Basis     decimal.Decimal
}

func NewLot(origin *eventmodels.Execution, quantity int) *Lot {
	return &Lot{
		Origin:    origin,
		Quantity:  quantity,
		Remaining: quantity,
		Basis:     prorate(origin.Notional(), quantity, origin.Quantity),
	}
}

func (l *Lot) Side() eventmodels.TradeSide {
	return eventmodels.TradeSideOpenedBy(l.Origin.Side)
}

func (l *Lot) UnitBasis() decimal.Decimal {
	return prorate(l.Basis, 1, l.Quantity)
}

// BasisFor is the share of Basis belonging to qty units of the lot.
func (l *Lot) BasisFor(qty int) decimal.Decimal {
	return prorate(l.Basis, qty, l.Quantity)
}

// EntryFeeFor is the share of the origin's fee belonging to qty units.
func (l *Lot) EntryFeeFor(qty int) decimal.Decimal {
	return prorate(l.Origin.Fee, qty, l.Origin.Quantity)
}

type Consumption struct {
	Lot      *Lot
	Quantity int
}
