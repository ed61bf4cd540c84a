package eventmodels

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const OptionContractMultiplier = 100

var (
	optionPattern        = regexp.MustCompile(`[A-Z]+\d{6}[PC]\d+`)
	compactOptionPattern = regexp.MustCompile(`^[A-Z]+\d+[PC]\d+$`)
	optionPartsPattern   = regexp.MustCompile(`^([A-Z]+)(\d{2})(\d{2})(\d{2})([PC])(\d+(?:\.\d+)?)$`)
	tickerPattern        = regexp.MustCompile(`^[A-Z]{2,5}$`)
)

type OptionSymbol string

func (s OptionSymbol) Description() (string, error) {
	components, err := NewOptionSymbolComponents(s)
	if err != nil {
		return "", fmt.Errorf("OptionSymbol.Description: failed to parse option symbol: %w", err)
	}

	expiration := components.Expiration.Format("Jan 2 2006")
	strikePrice := fmt.Sprintf("%.2f", components.StrikePrice)

	optionType := "Call"
	if components.OptionType == "P" {
		optionType = "Put"
	}

	return fmt.Sprintf("%s %s $%s %s", components.Underlying, expiration, strikePrice, optionType), nil
}

// NewOptionSymbolComponents parses the compact brokerage form, e.g. SPY251219P670.
// Strikes written in the 8-digit OCC form (00670000) are scaled down by 1000.
func NewOptionSymbolComponents(s OptionSymbol) (OptionSymbolComponents, error) {
	matches := optionPartsPattern.FindStringSubmatch(string(s))
	if matches == nil {
		return OptionSymbolComponents{}, fmt.Errorf("NewOptionSymbolComponents: invalid option symbol %q", s)
	}

	year, _ := strconv.Atoi(matches[2])
	month, _ := strconv.Atoi(matches[3])
	day, _ := strconv.Atoi(matches[4])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return OptionSymbolComponents{}, fmt.Errorf("NewOptionSymbolComponents: invalid expiration in %q", s)
	}

	strike, err := strconv.ParseFloat(matches[6], 64)
	if err != nil {
		return OptionSymbolComponents{}, fmt.Errorf("NewOptionSymbolComponents: invalid strike in %q: %w", s, err)
	}

	if len(matches[6]) == 8 && !strings.Contains(matches[6], ".") {
		strike = strike / 1000
	}

	return OptionSymbolComponents{
		Underlying:  matches[1],
		Expiration:  time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		OptionType:  matches[5],
		StrikePrice: strike,
		Symbol:      s,
	}, nil
}

// IsOptionSymbol reports whether the symbol embeds an expiry date, a put/call
// flag and a strike.
func IsOptionSymbol(symbol string) bool {
	return optionPattern.MatchString(symbol)
}

// ExtractSymbol cleans a brokerage symbol cell. It accepts plain tickers,
// compact option symbols with a leading minus (-SPY251219P670), and
// descriptions that embed either.
func ExtractSymbol(raw string) string {
	symbol := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "-"))
	if symbol == "" {
		return ""
	}

	if compactOptionPattern.MatchString(symbol) {
		return symbol
	}

	if match := optionPattern.FindString(symbol); match != "" {
		return match
	}

	if parts := strings.Fields(symbol); len(parts) > 0 {
		base := strings.Trim(parts[0], "-")
		if tickerPattern.MatchString(base) {
			return base
		}
	}

	return symbol
}
