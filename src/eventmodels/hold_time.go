package eventmodels

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HoldTime is whole seconds between entry and exit, never negative.
type HoldTime int64

func NewHoldTime(entry, exit time.Time) HoldTime {
	seconds := int64(exit.Sub(entry) / time.Second)
	if seconds < 0 {
		return 0
	}

	return HoldTime(seconds)
}

func (h HoldTime) Seconds() int64 {
	return int64(h)
}

func (h HoldTime) Duration() time.Duration {
	return time.Duration(h) * time.Second
}

func (h HoldTime) String() string {
	s := int64(h)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

func (h HoldTime) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HoldTime) UnmarshalText(text []byte) error {
	parsed, err := ParseHoldTime(string(text))
	if err != nil {
		return err
	}

	*h = parsed
	return nil
}

func ParseHoldTime(s string) (HoldTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", InvalidHoldTimeErr, s)
	}

	var total int64
	for i, unit := range []int64{3600, 60, 1} {
		v, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", InvalidHoldTimeErr, s)
		}

		total += v * unit
	}

	return HoldTime(total), nil
}

// AverageHoldTime floors the mean to whole seconds.
func AverageHoldTime(holdTimes []HoldTime) HoldTime {
	if len(holdTimes) == 0 {
		return 0
	}

	var total int64
	for _, h := range holdTimes {
		total += int64(h)
	}

	return HoldTime(total / int64(len(holdTimes)))
}
