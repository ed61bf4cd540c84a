package eventmodels

import "fmt"

type TradeSide string

const (
	TradeSideLong  TradeSide = "Long"
	TradeSideShort TradeSide = "Short"
)

func (s TradeSide) Validate() error {
	switch s {
	case TradeSideLong, TradeSideShort:
		return nil
	default:
		return fmt.Errorf("%w: %s", UnknownTradeSideErr, s)
	}
}

func (s TradeSide) EntryAction() ExecutionSide {
	if s == TradeSideShort {
		return ExecutionSideSell
	}

	return ExecutionSideBuy
}

func (s TradeSide) ExitAction() ExecutionSide {
	return s.EntryAction().Opposite()
}

// TradeSideOpenedBy returns the side of the round trip an opening execution starts.
func TradeSideOpenedBy(side ExecutionSide) TradeSide {
	if side == ExecutionSideSell {
		return TradeSideShort
	}

	return TradeSideLong
}
