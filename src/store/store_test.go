package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
	"github.com/hilljasont-svg/Tradejournal/src/matching"
)

func fixtures(t *testing.T) ([]*eventmodels.Execution, []*eventmodels.MatchedTrade) {
	ts := time.Date(2025, time.December, 18, 9, 45, 12, 0, time.UTC)

	newExec := func(symbol string, side eventmodels.ExecutionSide, qty int, price, fee string, minutes, seq int) *eventmodels.Execution {
		e, err := eventmodels.NewExecution(symbol, side, qty, decimal.RequireFromString(price), decimal.RequireFromString(fee), ts.Add(time.Duration(minutes)*time.Minute), seq)
		require.NoError(t, err)
		return e
	}

	execs := []*eventmodels.Execution{
		newExec("AAPL", eventmodels.ExecutionSideBuy, 100, "10.00", "1", 0, 0),
		newExec("SPY251219P670", eventmodels.ExecutionSideSell, 3, "2.15", "1.95", 1, 1),
		newExec("AAPL", eventmodels.ExecutionSideSell, 60, "12.125", "0.6", 2, 2),
		newExec("SPY251219P670", eventmodels.ExecutionSideBuy, 3, "1.80", "1.95", 90, 3),
	}

	result, err := matching.MatchLedger(context.Background(), execs, matching.MatchOptions{})
	require.NoError(t, err)
	require.Len(t, result.Trades, 2)

	return execs, result.Trades
}

func assertSameExecutions(t *testing.T, want, got []*eventmodels.Execution) {
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Symbol, got[i].Symbol)
		assert.Equal(t, want[i].Side, got[i].Side)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].Price.Equal(got[i].Price))
		assert.True(t, want[i].Fee.Equal(got[i].Fee))
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
		assert.Equal(t, want[i].Sequence, got[i].Sequence)
		assert.Equal(t, want[i].IsOption, got[i].IsOption)
	}
}

func assertSameTrades(t *testing.T, want, got []*eventmodels.MatchedTrade) {
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ConvertToDTO(), got[i].ConvertToDTO())
		assert.True(t, want[i].EntryTime.Equal(got[i].EntryTime))
		assert.True(t, want[i].ExitTime.Equal(got[i].ExitTime))
		assert.Equal(t, want[i].EntrySeq, got[i].EntrySeq)
		assert.Equal(t, want[i].ExitSeq, got[i].ExitSeq)
	}
}

func TestCSVStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing files load as empty", func(t *testing.T) {
		s, err := NewCSVStore(filepath.Join(t.TempDir(), "nested", "data"))
		require.NoError(t, err)

		execs, err := s.LoadExecutions(ctx)
		require.NoError(t, err)
		assert.Empty(t, execs)

		trades, err := s.LoadTrades(ctx)
		require.NoError(t, err)
		assert.Empty(t, trades)
	})

	t.Run("round trip", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewCSVStore(dir)
		require.NoError(t, err)

		execs, trades := fixtures(t)
		require.NoError(t, s.SaveExecutions(ctx, execs))
		require.NoError(t, s.SaveTrades(ctx, trades))

		loadedExecs, err := s.LoadExecutions(ctx)
		require.NoError(t, err)
		assertSameExecutions(t, execs, loadedExecs)

		loadedTrades, err := s.LoadTrades(ctx)
		require.NoError(t, err)
		assertSameTrades(t, trades, loadedTrades)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2, "no temp files left behind")
	})

	t.Run("trade file uses journal headers", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewCSVStore(dir)
		require.NoError(t, err)

		_, trades := fixtures(t)
		require.NoError(t, s.SaveTrades(ctx, trades))

		data, err := os.ReadFile(filepath.Join(dir, TradesFileName))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Trade Date,Symbol,Side,Entry Action,Exit Action,Entry Time,Exit Time,Entry Price,Exit Price,Quantity,PnL,Fees,Result,Hold Time,Entry Hour")
		assert.Contains(t, string(data), "2025-12-18,AAPL,Long,Buy,Sell,09:45:12,09:47:12,10,12.125,60,127.50,1.20,Win,00:02:00,9")
	})

	t.Run("empty save then reset", func(t *testing.T) {
		s, err := NewCSVStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, s.SaveTrades(ctx, nil))
		trades, err := s.LoadTrades(ctx)
		require.NoError(t, err)
		assert.Empty(t, trades)

		execs, _ := fixtures(t)
		require.NoError(t, s.SaveExecutions(ctx, execs))
		require.NoError(t, s.Reset(ctx))
		require.NoError(t, s.Reset(ctx))

		loaded, err := s.LoadExecutions(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("corrupt row is reported", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewCSVStore(dir)
		require.NoError(t, err)

		content := "Symbol,Action,Amount,Price,Fees,Order Time,Sequence\nAAPL,Hold,1,10,0,2025-12-18T09:45:12,0\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ExecutionsFileName), []byte(content), 0644))

		_, err = s.LoadExecutions(ctx)
		assert.Error(t, err)
	})
}

func TestPostgresRecords(t *testing.T) {
	execs, trades := fixtures(t)

	var loadedExecs []*eventmodels.Execution
	for _, e := range execs {
		got, err := NewExecutionRecord(e).ToModel()
		require.NoError(t, err)
		loadedExecs = append(loadedExecs, got)
	}
	assertSameExecutions(t, execs, loadedExecs)

	var loadedTrades []*eventmodels.MatchedTrade
	for i, tr := range trades {
		record := NewMatchedTradeRecord(i, tr)
		assert.Equal(t, i, record.Position)

		got, err := record.ToModel()
		require.NoError(t, err)
		loadedTrades = append(loadedTrades, got)
	}
	assertSameTrades(t, trades, loadedTrades)

	bad := NewMatchedTradeRecord(0, trades[0])
	bad.Result = "Draw"
	_, err := bad.ToModel()
	assert.ErrorIs(t, err, eventmodels.UnknownResultErr)
}
