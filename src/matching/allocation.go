package matching

import (
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var AllocationAnomalyErr = fmt.Errorf("allocation against a non-positive quantity")

// prorate returns amount x part / whole. Multiplication happens first so that
// shares of a whole lot stay exact whenever the division terminates.
func prorate(amount decimal.Decimal, part, whole int) decimal.Decimal {
	if whole <= 0 {
		log.Warnf("prorate: %v: amount=%s part=%d whole=%d", AllocationAnomalyErr, amount, part, whole)
		return amount
	}

	if part == whole {
		return amount
	}

	return amount.Mul(decimal.NewFromInt(int64(part))).Div(decimal.NewFromInt(int64(whole)))
}
