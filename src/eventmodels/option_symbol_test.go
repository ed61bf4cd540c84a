package eventmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOptionSymbol(t *testing.T) {
	assert.True(t, IsOptionSymbol("SPY251219P670"))
	assert.True(t, IsOptionSymbol("QQQ250117C500"))
	assert.False(t, IsOptionSymbol("SPY"))
	assert.False(t, IsOptionSymbol("spy251219p670"))
}

func TestExtractSymbol(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"AAPL", "AAPL"},
		{" -SPY251219P670 ", "SPY251219P670"},
		{"PUT (SPY) SPY251219P670 DEC 19", "SPY251219P670"},
		{"MSFT MICROSOFT CORP", "MSFT"},
		{"", ""},
		{"-", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractSymbol(tc.raw), "raw=%q", tc.raw)
	}
}

func TestNewOptionSymbolComponents(t *testing.T) {
	t.Run("compact strike", func(t *testing.T) {
		c, err := NewOptionSymbolComponents("SPY251219P670")
		require.NoError(t, err)

		assert.Equal(t, "SPY", c.Underlying)
		assert.Equal(t, "P", c.OptionType)
		assert.Equal(t, 670.0, c.StrikePrice)
		assert.Equal(t, time.Date(2025, time.December, 19, 0, 0, 0, 0, time.UTC), c.Expiration)
	})

	t.Run("occ strike", func(t *testing.T) {
		c, err := NewOptionSymbolComponents("AAPL250117C00150000")
		require.NoError(t, err)

		assert.Equal(t, 150.0, c.StrikePrice)
	})

	t.Run("description", func(t *testing.T) {
		desc, err := OptionSymbol("SPY251219P670").Description()
		require.NoError(t, err)

		assert.Equal(t, "SPY Dec 19 2025 $670.00 Put", desc)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewOptionSymbolComponents("SPY")
		assert.Error(t, err)

		_, err = NewOptionSymbolComponents("SPY251319P670")
		assert.Error(t, err)
	})
}
