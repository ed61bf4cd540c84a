package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotQueue(t *testing.T) {
	t.Run("empty queue", func(t *testing.T) {
		q := NewLotQueue()
		assert.Nil(t, q.PeekHead())
		assert.True(t, q.IsEmpty())
		assert.Empty(t, q.Consume(10))
	})

	t.Run("consume spans lots head to tail", func(t *testing.T) {
		q := NewLotQueue()
		a := NewLot(buy(t, "AAPL", 10, "10", 0, 0), 10)
		b := NewLot(buy(t, "AAPL", 20, "11", 1, 1), 20)
		c := NewLot(buy(t, "AAPL", 5, "12", 2, 2), 5)
		q.Enqueue(a)
		q.Enqueue(b)
		q.Enqueue(c)

		assert.Equal(t, 35, q.Remaining())
		assert.Equal(t, a, q.PeekHead())

		taken := q.Consume(15)
		require.Len(t, taken, 2)
		assert.Equal(t, a, taken[0].Lot)
		assert.Equal(t, 10, taken[0].Quantity)
		assert.Equal(t, b, taken[1].Lot)
		assert.Equal(t, 5, taken[1].Quantity)

		assert.Equal(t, 0, a.Remaining)
		assert.Equal(t, 15, b.Remaining)
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, b, q.PeekHead())
	})

	t.Run("exact fill removes the head lot", func(t *testing.T) {
		q := NewLotQueue()
		a := NewLot(buy(t, "AAPL", 10, "10", 0, 0), 10)
		q.Enqueue(a)

		taken := q.Consume(10)
		require.Len(t, taken, 1)
		assert.True(t, q.IsEmpty())
		assert.Equal(t, 0, q.Remaining())
	})

	t.Run("over consumption stops when the queue runs out", func(t *testing.T) {
		q := NewLotQueue()
		q.Enqueue(NewLot(buy(t, "AAPL", 3, "10", 0, 0), 3))

		taken := q.Consume(10)
		require.Len(t, taken, 1)
		assert.Equal(t, 3, taken[0].Quantity)
		assert.True(t, q.IsEmpty())
	})

	t.Run("compaction keeps order", func(t *testing.T) {
		q := NewLotQueue()
		for i := 0; i < 200; i++ {
			q.Enqueue(NewLot(buy(t, "AAPL", 1, "10", i, i), 1))
		}

		q.Consume(150)
		require.Equal(t, 50, q.Len())
		assert.Equal(t, 150, q.PeekHead().Origin.Sequence)

		lots := q.Lots()
		for i, lot := range lots {
			assert.Equal(t, 150+i, lot.Origin.Sequence)
		}
	})
}

func TestLot(t *testing.T) {
	t.Run("basis covers the leftover quantity only", func(t *testing.T) {
		origin := newExec(t, "AAPL", "Buy", 40, "10", "4", 0, 0)
		lot := NewLot(origin, 10)

		assert.True(t, lot.Basis.Equal(dec("100")))
		assert.True(t, lot.UnitBasis().Equal(dec("10")))
		assert.True(t, lot.BasisFor(5).Equal(dec("50")))
		assert.True(t, lot.EntryFeeFor(10).Equal(dec("1")))
	})

	t.Run("option basis uses the multiplier", func(t *testing.T) {
		lot := NewLot(buy(t, "SPY251219P670", 2, "2.00", 0, 0), 2)
		assert.True(t, lot.Basis.Equal(dec("400")))
		assert.True(t, lot.UnitBasis().Equal(dec("200")))
	})
}

func TestBook(t *testing.T) {
	b := NewBook()
	b.Enqueue("Buy", NewLot(buy(t, "AAPL", 1, "10", 0, 0), 1))
	b.Enqueue("Sell", NewLot(sell(t, "AAPL", 2, "10", 0, 1), 2))

	assert.Equal(t, 1, b.Longs.Remaining())
	assert.Equal(t, 2, b.Shorts.Remaining())
	assert.Len(t, b.OpenLots(), 2)
}
