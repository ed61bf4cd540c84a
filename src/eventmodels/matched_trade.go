package eventmodels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TradeDateLayout = "2006-01-02"

var tradeIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tradejournal/matched-trade"))

// MatchedTrade is a closed round trip. PnL and Fees are rounded to cents at
// emission; Result is decided on the unrounded figure.
type MatchedTrade struct {
	ID          uuid.UUID
	TradeDate   string
	Symbol      string
	Side        TradeSide
	EntryAction ExecutionSide
	ExitAction  ExecutionSide
	EntryTime   time.Time
	ExitTime    time.Time
	EntryPrice  decimal.Decimal
	ExitPrice   decimal.Decimal
	Quantity    int
	PnL         decimal.Decimal
	Fees        decimal.Decimal
	Result      TradeResult
	HoldTime    HoldTime
	EntryHour   int
	EntrySeq    int
	ExitSeq     int
}

func NewMatchedTradeID(symbol string, entrySeq, exitSeq, quantity int) uuid.UUID {
	name := fmt.Sprintf("%s|%d|%d|%d", symbol, entrySeq, exitSeq, quantity)
	return uuid.NewSHA1(tradeIDNamespace, []byte(name))
}

func (t *MatchedTrade) NetPnL() decimal.Decimal {
	return t.PnL.Sub(t.Fees)
}

func (t *MatchedTrade) ParseTradeDate() (time.Time, error) {
	d, err := time.Parse(TradeDateLayout, t.TradeDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", InvalidTradeDateErr, t.TradeDate)
	}

	return d, nil
}

func (t *MatchedTrade) ConvertToDTO() *MatchedTradeDTO {
	return &MatchedTradeDTO{
		ID:          t.ID.String(),
		TradeDate:   t.TradeDate,
		Symbol:      t.Symbol,
		Side:        string(t.Side),
		EntryAction: string(t.EntryAction),
		ExitAction:  string(t.ExitAction),
		EntryTime:   t.EntryTime.Format(time.TimeOnly),
		ExitTime:    t.ExitTime.Format(time.TimeOnly),
		EntryPrice:  t.EntryPrice.InexactFloat64(),
		ExitPrice:   t.ExitPrice.InexactFloat64(),
		Quantity:    t.Quantity,
		PnL:         MoneyToFloat(t.PnL),
		Fees:        MoneyToFloat(t.Fees),
		NetPnL:      MoneyToFloat(t.NetPnL()),
		Result:      string(t.Result),
		HoldTime:    t.HoldTime.String(),
		EntryHour:   t.EntryHour,
	}
}

func (t *MatchedTrade) String() string {
	return fmt.Sprintf("%s %s %s x%d %s -> %s pnl %s fees %s (%s, %s)", t.TradeDate, t.Side, t.Symbol, t.Quantity, t.EntryPrice.String(), t.ExitPrice.String(), t.PnL.StringFixed(2), t.Fees.StringFixed(2), t.Result, t.HoldTime)
}

type MatchedTradeDTO struct {
	ID          string  `json:"id"`
	TradeDate   string  `json:"trade_date"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	EntryAction string  `json:"entry_action"`
	ExitAction  string  `json:"exit_action"`
	EntryTime   string  `json:"entry_time"`
	ExitTime    string  `json:"exit_time"`
	EntryPrice  float64 `json:"entry_price"`
	ExitPrice   float64 `json:"exit_price"`
	Quantity    int     `json:"quantity"`
	PnL         float64 `json:"pnl"`
	Fees        float64 `json:"fees"`
	NetPnL      float64 `json:"net_pnl"`
	Result      string  `json:"result"`
	HoldTime    string  `json:"hold_time"`
	EntryHour   int     `json:"entry_hour"`
}

func ConvertMatchedTradesToDTO(trades []*MatchedTrade) []*MatchedTradeDTO {
	dtos := make([]*MatchedTradeDTO, 0, len(trades))
	for _, t := range trades {
		dtos = append(dtos, t.ConvertToDTO())
	}

	return dtos
}
