package ingestion

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	"Jan-2-2006 3:04:05 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
}

var filledAtPattern = regexp.MustCompile(`(?i)filled at\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// ParseDate tries each supported brokerage layout in turn.
func ParseDate(s string) (time.Time, error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", BadTimestampErr)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", BadTimestampErr, s)
}

// ParseOrderTime handles the "3:31:36 PM ET Dec-18-2025" form and falls back
// to ParseDate. The ET marker is dropped; timestamps stay wall-clock.
func ParseOrderTime(s string) (time.Time, error) {
	if clock, date, found := strings.Cut(s, " ET "); found {
		return ParseDate(strings.TrimSpace(date) + " " + strings.TrimSpace(clock))
	}

	return ParseDate(s)
}

// ParseTimestamp combines the mapped date and time cells of a row.
func ParseTimestamp(dateCell, timeCell string, combined bool) (time.Time, error) {
	if combined && timeCell != "" {
		return ParseOrderTime(timeCell)
	}

	if timeCell != "" {
		if t, err := ParseDate(dateCell + " " + timeCell); err == nil {
			return t, nil
		}

		if t, err := ParseOrderTime(timeCell); err == nil {
			return t, nil
		}
	}

	return ParseDate(dateCell)
}

func stripMoney(s string) string {
	return strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
}

// ParsePrice accepts plain amounts ("$1,234.50") and order status text
// ("Filled at $2.10, 1 contract").
func ParsePrice(s string) (decimal.Decimal, error) {
	if m := filledAtPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	price, err := decimal.NewFromString(stripMoney(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", BadPriceErr, s)
	}

	return price, nil
}

// ParseQuantity returns the unsigned quantity and the sign as written.
func ParseQuantity(s string) (int, float64, error) {
	d, err := decimal.NewFromString(stripMoney(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", BadQuantityErr, s)
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, 0, fmt.Errorf("%w: %q", FractionalQtyErr, s)
	}

	return int(d.Abs().IntPart()), d.InexactFloat64(), nil
}

// ParseFee never fails: unreadable fee cells count as zero.
func ParseFee(s string) decimal.Decimal {
	fee, err := decimal.NewFromString(stripMoney(s))
	if err != nil {
		return decimal.Zero
	}

	return fee.Abs()
}
