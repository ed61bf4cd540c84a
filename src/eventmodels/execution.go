package eventmodels

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Execution is a single filled order, already normalised by ingestion. Quantity
// and Price are always positive; direction lives in Side.
type Execution struct {
	Symbol    string          `json:"symbol"`
	Side      ExecutionSide   `json:"side"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Fee       decimal.Decimal `json:"fee"`
	Timestamp time.Time       `json:"timestamp"`
	Sequence  int             `json:"sequence"`
	IsOption  bool            `json:"is_option"`
}

func NewExecution(symbol string, side ExecutionSide, quantity int, price decimal.Decimal, fee decimal.Decimal, timestamp time.Time, sequence int) (*Execution, error) {
	e := &Execution{
		Symbol:    strings.TrimSpace(symbol),
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Fee:       fee,
		Timestamp: timestamp,
		Sequence:  sequence,
		IsOption:  IsOptionSymbol(symbol),
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Execution) Validate() error {
	if e.Symbol == "" {
		return NewValidationError(0, "symbol", e.Symbol, SymbolNotSetErr)
	}

	if err := e.Side.Validate(); err != nil {
		return NewValidationError(0, "side", string(e.Side), err)
	}

	if e.Quantity <= 0 {
		return NewValidationError(0, "quantity", fmt.Sprintf("%d", e.Quantity), NonPositiveQtyErr)
	}

	if !e.Price.IsPositive() {
		return NewValidationError(0, "price", e.Price.String(), NonPositivePriceErr)
	}

	if e.Fee.IsNegative() {
		return NewValidationError(0, "fee", e.Fee.String(), NegativeFeeErr)
	}

	if e.Timestamp.IsZero() {
		return NewValidationError(0, "timestamp", "", NoTimestampErr)
	}

	return nil
}

func (e *Execution) Multiplier() decimal.Decimal {
	if e.IsOption {
		return decimal.NewFromInt(OptionContractMultiplier)
	}

	return decimal.NewFromInt(1)
}

// Notional is price x quantity x contract multiplier.
func (e *Execution) Notional() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))).Mul(e.Multiplier())
}

// DedupKey identifies an execution across repeated imports of overlapping
// brokerage exports. Fees and sequence are not part of it; the timestamp is
// compared in UTC to the second.
func (e *Execution) DedupKey() string {
	return strings.Join([]string{
		e.Symbol,
		string(e.Side),
		fmt.Sprintf("%d", e.Quantity),
		e.Price.String(),
		e.Timestamp.UTC().Format("2006-01-02T15:04:05"),
	}, "|")
}

func (e *Execution) String() string {
	return fmt.Sprintf("#%d %s %d %s @%s fee %s at %s", e.Sequence, e.Side, e.Quantity, e.Symbol, e.Price.StringFixed(2), e.Fee.StringFixed(2), e.Timestamp.Format(time.DateTime))
}
