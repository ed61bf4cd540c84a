package matching

import (
	"github.com/shopspring/decimal"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

// Engine folds one symbol's executions into matched trades. Executions must
// arrive ordered by (Timestamp, Sequence).
type Engine struct {
	symbol string
	book   *Book
}

func NewEngine(symbol string) *Engine {
	return &Engine{
		symbol: symbol,
		book:   NewBook(),
	}
}

func (e *Engine) Symbol() string {
	return e.symbol
}

func (e *Engine) Book() *Book {
	return e.book
}

// Process closes opposite exposure first, oldest lot first, then opens a lot
// with whatever quantity is left over.
func (e *Engine) Process(exec *eventmodels.Execution) []*eventmodels.MatchedTrade {
	var trades []*eventmodels.MatchedTrade
	remaining := exec.Quantity

	for _, c := range e.book.Queue(exec.Side.Opposite()).Consume(exec.Quantity) {
		trades = append(trades, e.close(c.Lot, exec, c.Quantity))
		remaining -= c.Quantity
	}

	if remaining > 0 {
		e.book.Enqueue(exec.Side, NewLot(exec, remaining))
	}

	return trades
}

func (e *Engine) Run(execs []*eventmodels.Execution) []*eventmodels.MatchedTrade {
	var trades []*eventmodels.MatchedTrade
	for _, exec := range execs {
		trades = append(trades, e.Process(exec)...)
	}

	return trades
}

func (e *Engine) OpenLots() []*Lot {
	return e.book.OpenLots()
}

func (e *Engine) close(lot *Lot, exit *eventmodels.Execution, qty int) *eventmodels.MatchedTrade {
	entry := lot.Origin
	side := lot.Side()

	entryAmount := lot.BasisFor(qty)
	exitAmount := prorate(exit.Notional(), qty, exit.Quantity)

	var pnl decimal.Decimal
	if side == eventmodels.TradeSideLong {
		pnl = exitAmount.Sub(entryAmount)
	} else {
		pnl = entryAmount.Sub(exitAmount)
	}

	fees := lot.EntryFeeFor(qty).Add(prorate(exit.Fee, qty, exit.Quantity))

	return &eventmodels.MatchedTrade{
		ID:          eventmodels.NewMatchedTradeID(e.symbol, entry.Sequence, exit.Sequence, qty),
		TradeDate:   exit.Timestamp.Format(eventmodels.TradeDateLayout),
		Symbol:      e.symbol,
		Side:        side,
		EntryAction: side.EntryAction(),
		ExitAction:  side.ExitAction(),
		EntryTime:   entry.Timestamp,
		ExitTime:    exit.Timestamp,
		EntryPrice:  entry.Price,
		ExitPrice:   exit.Price,
		Quantity:    qty,
		PnL:         eventmodels.RoundMoney(pnl),
		Fees:        eventmodels.RoundMoney(fees),
		Result:      eventmodels.ClassifyResult(pnl),
		HoldTime:    eventmodels.NewHoldTime(entry.Timestamp, exit.Timestamp),
		EntryHour:   entry.Timestamp.Hour(),
		EntrySeq:    entry.Sequence,
		ExitSeq:     exit.Sequence,
	}
}

// MatchSymbol runs a fresh engine over one symbol's ordered executions.
func MatchSymbol(symbol string, execs []*eventmodels.Execution) ([]*eventmodels.MatchedTrade, []*Lot) {
	engine := NewEngine(symbol)
	trades := engine.Run(execs)
	return trades, engine.OpenLots()
}
