package eventmodels

import "github.com/shopspring/decimal"

const MoneyPlaces = 2

// RoundMoney rounds half to even at cent precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyPlaces)
}

func MoneyToFloat(d decimal.Decimal) float64 {
	return RoundMoney(d).InexactFloat64()
}
