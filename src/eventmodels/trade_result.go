package eventmodels

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type TradeResult string

const (
	TradeResultWin     TradeResult = "Win"
	TradeResultLose    TradeResult = "Lose"
	TradeResultScratch TradeResult = "Scratch"
)

// ScratchBand is the currency amount on either side of zero treated as noise.
var ScratchBand = decimal.NewFromInt(5)

func (r TradeResult) Validate() error {
	switch r {
	case TradeResultWin, TradeResultLose, TradeResultScratch:
		return nil
	default:
		return fmt.Errorf("%w: %s", UnknownResultErr, r)
	}
}

// ClassifyResult is exclusive at the band edges: exactly +5 or -5 is a scratch.
func ClassifyResult(pnl decimal.Decimal) TradeResult {
	if pnl.GreaterThan(ScratchBand) {
		return TradeResultWin
	}

	if pnl.LessThan(ScratchBand.Neg()) {
		return TradeResultLose
	}

	return TradeResultScratch
}
