package eventmodels

import "time"

// OptionSymbolComponents is a compact option symbol split into its parts.
// OptionType is "C" or "P".
type OptionSymbolComponents struct {
	Underlying  string
	Expiration  time.Time
	OptionType  string
	StrikePrice float64
	Symbol      OptionSymbol
}
