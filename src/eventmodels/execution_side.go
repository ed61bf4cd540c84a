package eventmodels

import (
	"fmt"
	"strings"
)

type ExecutionSide string

const (
	ExecutionSideBuy  ExecutionSide = "Buy"
	ExecutionSideSell ExecutionSide = "Sell"
)

func (s ExecutionSide) Validate() error {
	switch s {
	case ExecutionSideBuy, ExecutionSideSell:
		return nil
	default:
		return fmt.Errorf("invalid execution side: %s", s)
	}
}

func (s ExecutionSide) Opposite() ExecutionSide {
	if s == ExecutionSideBuy {
		return ExecutionSideSell
	}

	return ExecutionSideBuy
}

func ParseExecutionSide(s string) (ExecutionSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return ExecutionSideBuy, nil
	case "sell":
		return ExecutionSideSell, nil
	default:
		return "", fmt.Errorf("ParseExecutionSide: unknown side %q", s)
	}
}

var (
	buyKeywords  = []string{"buy", "bought", "cover"}
	sellKeywords = []string{"sell", "sold", "short"}
)

// ClassifySide maps a free-text brokerage action to a canonical side. Explicit
// buy wording wins over sell wording, so "buy to cover short" is a Buy. Then
// opening/closing wording, then the sign of the quantity column.
func ClassifySide(action string, signedQuantity float64) ExecutionSide {
	a := strings.ToLower(action)

	for _, kw := range buyKeywords {
		if strings.Contains(a, kw) {
			return ExecutionSideBuy
		}
	}

	for _, kw := range sellKeywords {
		if strings.Contains(a, kw) {
			return ExecutionSideSell
		}
	}

	if strings.Contains(a, "opening") {
		return ExecutionSideBuy
	}

	if strings.Contains(a, "closing") {
		return ExecutionSideSell
	}

	if signedQuantity < 0 {
		return ExecutionSideSell
	}

	return ExecutionSideBuy
}
