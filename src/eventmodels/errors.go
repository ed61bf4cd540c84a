package eventmodels

import "fmt"

var (
	InvalidExecutionErr = fmt.Errorf("invalid execution")
	SymbolNotSetErr     = fmt.Errorf("symbol not set")
	NonPositiveQtyErr   = fmt.Errorf("quantity must be positive")
	NonPositivePriceErr = fmt.Errorf("price must be positive")
	NegativeFeeErr      = fmt.Errorf("fee must not be negative")
	NoTimestampErr      = fmt.Errorf("timestamp not set")
	UnknownTradeSideErr = fmt.Errorf("unknown trade side")
	UnknownResultErr    = fmt.Errorf("unknown trade result")
	InvalidHoldTimeErr  = fmt.Errorf("invalid hold time")
	InvalidTradeDateErr = fmt.Errorf("invalid trade date")
)

// ValidationError describes an execution that failed its preconditions. Rows
// carrying one are dropped before they reach the matching engine.
type ValidationError struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason error  `json:"-"`
}

func NewValidationError(row int, field string, value string, reason error) *ValidationError {
	return &ValidationError{
		Row:    row,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Reason)
	}

	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	return []error{InvalidExecutionErr, e.Reason}
}
