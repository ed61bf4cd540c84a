package ingestion

import (
	"fmt"
	"strings"
)

// ColumnMapping names the CSV header holding each execution field. Action,
// Time and Fees are optional. DateTimeCombined means the Time column carries
// both date and time.
type ColumnMapping struct {
	Date             string `json:"date" yaml:"date"`
	Symbol           string `json:"symbol" yaml:"symbol"`
	Action           string `json:"action,omitempty" yaml:"action,omitempty"`
	Price            string `json:"price" yaml:"price"`
	Quantity         string `json:"quantity" yaml:"quantity"`
	Time             string `json:"time,omitempty" yaml:"time,omitempty"`
	Fees             string `json:"fees,omitempty" yaml:"fees,omitempty"`
	DateTimeCombined bool   `json:"date_time_combined,omitempty" yaml:"date_time_combined,omitempty"`
}

var (
	dateKeywords     = []string{"date", "run date", "trade date", "order date"}
	symbolKeywords   = []string{"symbol", "ticker", "security"}
	actionKeywords   = []string{"action", "side", "transaction", "type"}
	priceKeywords    = []string{"price", "trade price", "execution price", "status"}
	quantityKeywords = []string{"quantity", "qty", "amount", "shares"}
	timeKeywords     = []string{"time", "order time", "execution time"}
	feesKeywords     = []string{"fees", "commission", "charges"}
)

// firstMatch walks keywords in priority order and returns the first header
// containing one that passes accept.
func firstMatch(headers []string, keywords []string, accept func(string) bool) string {
	for _, kw := range keywords {
		for _, h := range headers {
			lower := strings.ToLower(h)
			if strings.Contains(lower, kw) && accept(lower) {
				return h
			}
		}
	}

	return ""
}

// lastMatch lets later, more specific keywords override earlier ones.
func lastMatch(headers []string, keywords []string) string {
	found := ""
	for _, kw := range keywords {
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), kw) {
				found = h
				break
			}
		}
	}

	return found
}

func acceptAll(string) bool { return true }

func notDescription(h string) bool {
	return !strings.Contains(h, "description")
}

func notExchangeOrCurrency(h string) bool {
	return !strings.Contains(h, "exchange") && !strings.Contains(h, "currency")
}

func SuggestColumnMapping(headers []string) ColumnMapping {
	m := ColumnMapping{
		Date:     firstMatch(headers, dateKeywords, acceptAll),
		Symbol:   firstMatch(headers, symbolKeywords, acceptAll),
		Action:   firstMatch(headers, actionKeywords, notDescription),
		Price:    firstMatch(headers, priceKeywords, acceptAll),
		Quantity: firstMatch(headers, quantityKeywords, notExchangeOrCurrency),
		Time:     lastMatch(headers, timeKeywords),
		Fees:     lastMatch(headers, feesKeywords),
	}

	if m.Quantity == "" {
		m.Quantity = firstMatch(headers, []string{"quantity"}, acceptAll)
	}

	return m
}

// Validate checks that the required fields are mapped and, when headers is
// non-nil, that every mapped column exists.
func (m ColumnMapping) Validate(headers []string) error {
	required := map[string]string{
		"date":     m.Date,
		"symbol":   m.Symbol,
		"price":    m.Price,
		"quantity": m.Quantity,
	}

	if m.DateTimeCombined && m.Time != "" {
		required["date"] = m.Time
	}

	for _, field := range []string{"date", "symbol", "price", "quantity"} {
		if required[field] == "" {
			return fmt.Errorf("%w: %s", MissingColumnErr, field)
		}
	}

	if headers == nil {
		return nil
	}

	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}

	for _, col := range []string{m.Date, m.Symbol, m.Action, m.Price, m.Quantity, m.Time, m.Fees} {
		if col == "" || strings.EqualFold(col, "none") {
			continue
		}

		if _, found := known[col]; !found {
			return fmt.Errorf("%w: %q", UnknownColumnErr, col)
		}
	}

	return nil
}

func (m ColumnMapping) hasAction() bool {
	return m.Action != "" && !strings.EqualFold(m.Action, "none")
}
