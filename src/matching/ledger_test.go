package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

func TestMatchLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("concatenates symbols in first appearance order", func(t *testing.T) {
		execs := []*eventmodels.Execution{
			buy(t, "MSFT", 1, "100", 0, 0),
			buy(t, "AAPL", 1, "10", 1, 1),
			sell(t, "AAPL", 1, "12", 2, 2),
			sell(t, "MSFT", 1, "110", 3, 3),
			buy(t, "QQQ", 3, "400", 4, 4),
		}

		result, err := MatchLedger(ctx, execs, MatchOptions{Workers: 3})
		require.NoError(t, err)

		require.Len(t, result.Trades, 2)
		assert.Equal(t, "MSFT", result.Trades[0].Symbol)
		assert.Equal(t, "AAPL", result.Trades[1].Symbol)

		require.Contains(t, result.OpenLots, "QQQ")
		assert.Equal(t, 3, result.OpenLots["QQQ"][0].Remaining)
		assert.NotContains(t, result.OpenLots, "AAPL")
		assert.Empty(t, result.Failed)
	})

	t.Run("sorts by timestamp then sequence", func(t *testing.T) {
		// identical timestamps: the cheaper buy has the lower sequence
		execs := []*eventmodels.Execution{
			sell(t, "AAPL", 1, "20", 5, 3),
			buy(t, "AAPL", 1, "12", 0, 2),
			buy(t, "AAPL", 1, "10", 0, 1),
		}

		for i := 0; i < 5; i++ {
			result, err := MatchLedger(ctx, execs, MatchOptions{})
			require.NoError(t, err)

			require.Len(t, result.Trades, 1)
			assert.True(t, result.Trades[0].EntryPrice.Equal(dec("10")))
			assert.Equal(t, 1, result.Trades[0].EntrySeq)
			assert.Equal(t, 2, result.OpenLots["AAPL"][0].Origin.Sequence)
		}

		assert.Equal(t, 3, execs[0].Sequence, "input slice order is left alone")
	})

	t.Run("rematching is idempotent", func(t *testing.T) {
		execs := []*eventmodels.Execution{
			buy(t, "AAPL", 10, "10", 0, 0),
			sell(t, "TSLA", 5, "200", 1, 1),
			sell(t, "AAPL", 4, "11", 2, 2),
			buy(t, "TSLA", 5, "190", 3, 3),
			sell(t, "AAPL", 6, "9.5", 4, 4),
		}

		first, err := MatchLedger(ctx, execs, MatchOptions{Workers: 2})
		require.NoError(t, err)

		second, err := MatchLedger(ctx, execs, MatchOptions{Workers: 1})
		require.NoError(t, err)

		assert.Equal(t, first.Trades, second.Trades)
		assert.Len(t, first.Trades, 3)
	})

	t.Run("a failing symbol does not abort the others", func(t *testing.T) {
		original := matchSymbol
		defer func() { matchSymbol = original }()

		matchSymbol = func(symbol string, execs []*eventmodels.Execution) ([]*eventmodels.MatchedTrade, []*Lot) {
			if symbol == "BAD" {
				panic("corrupt lot")
			}

			return MatchSymbol(symbol, execs)
		}

		execs := []*eventmodels.Execution{
			buy(t, "BAD", 1, "1", 0, 0),
			buy(t, "AAPL", 1, "10", 1, 1),
			sell(t, "AAPL", 1, "12", 2, 2),
		}

		result, err := MatchLedger(ctx, execs, MatchOptions{})
		require.NoError(t, err)

		require.Len(t, result.Trades, 1)
		assert.Equal(t, "AAPL", result.Trades[0].Symbol)
		require.Contains(t, result.Failed, "BAD")
		assert.ErrorIs(t, result.Failed["BAD"], MatchPanicErr)
	})

	t.Run("empty input", func(t *testing.T) {
		result, err := MatchLedger(ctx, nil, MatchOptions{})
		require.NoError(t, err)
		assert.Empty(t, result.Trades)
		assert.Empty(t, result.OpenLots)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := MatchLedger(cancelled, []*eventmodels.Execution{buy(t, "AAPL", 1, "10", 0, 0)}, MatchOptions{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOpenPositions(t *testing.T) {
	result, err := MatchLedger(context.Background(), []*eventmodels.Execution{
		buy(t, "AAPL", 10, "10", 0, 0),
		buy(t, "AAPL", 10, "12", 1, 1),
		sell(t, "AAPL", 5, "13", 2, 2),
		sell(t, "SPY251219P670", 2, "1.50", 3, 3),
	}, MatchOptions{})
	require.NoError(t, err)

	positions := OpenPositions(result.OpenLots)
	require.Len(t, positions, 2)

	assert.Equal(t, "AAPL", positions[0].Symbol)
	assert.Equal(t, "Long", positions[0].Side)
	assert.Equal(t, 15, positions[0].Quantity)
	assert.InDelta(t, 11.3333, positions[0].AveragePrice, 0.0001)
	assert.Equal(t, 170.0, positions[0].CostBasis)
	assert.Len(t, positions[0].Lots, 2)

	assert.Equal(t, "SPY251219P670", positions[1].Symbol)
	assert.Equal(t, "Short", positions[1].Side)
	assert.True(t, positions[1].IsOption)
	assert.Equal(t, "SPY Dec 19 2025 $670.00 Put", positions[1].Description)
	assert.Empty(t, positions[0].Description)
	assert.Equal(t, 300.0, positions[1].CostBasis)
}
