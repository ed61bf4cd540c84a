package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

const timestampLayout = "2006-01-02T15:04:05"

type ExecutionCsvRowDTO struct {
	Symbol    string `csv:"Symbol"`
	Action    string `csv:"Action"`
	Amount    int    `csv:"Amount"`
	Price     string `csv:"Price"`
	Fees      string `csv:"Fees"`
	OrderTime string `csv:"Order Time"`
	Sequence  int    `csv:"Sequence"`
}

func NewExecutionCsvRowDTO(e *eventmodels.Execution) *ExecutionCsvRowDTO {
	return &ExecutionCsvRowDTO{
		Symbol:    e.Symbol,
		Action:    string(e.Side),
		Amount:    e.Quantity,
		Price:     e.Price.String(),
		Fees:      e.Fee.String(),
		OrderTime: e.Timestamp.Format(timestampLayout),
		Sequence:  e.Sequence,
	}
}

func (dto *ExecutionCsvRowDTO) ToModel() (*eventmodels.Execution, error) {
	side, err := eventmodels.ParseExecutionSide(dto.Action)
	if err != nil {
		return nil, fmt.Errorf("ExecutionCsvRowDTO.ToModel: %w", err)
	}

	price, err := decimal.NewFromString(dto.Price)
	if err != nil {
		return nil, fmt.Errorf("ExecutionCsvRowDTO.ToModel: price: %w", err)
	}

	fee := decimal.Zero
	if dto.Fees != "" {
		if fee, err = decimal.NewFromString(dto.Fees); err != nil {
			return nil, fmt.Errorf("ExecutionCsvRowDTO.ToModel: fees: %w", err)
		}
	}

	ts, err := time.Parse(timestampLayout, dto.OrderTime)
	if err != nil {
		return nil, fmt.Errorf("ExecutionCsvRowDTO.ToModel: order time: %w", err)
	}

	return eventmodels.NewExecution(dto.Symbol, side, dto.Amount, price, fee, ts, dto.Sequence)
}

type MatchedTradeCsvRowDTO struct {
	TradeDate      string `csv:"Trade Date"`
	Symbol         string `csv:"Symbol"`
	Side           string `csv:"Side"`
	EntryAction    string `csv:"Entry Action"`
	ExitAction     string `csv:"Exit Action"`
	EntryTime      string `csv:"Entry Time"`
	ExitTime       string `csv:"Exit Time"`
	EntryPrice     string `csv:"Entry Price"`
	ExitPrice      string `csv:"Exit Price"`
	Quantity       int    `csv:"Quantity"`
	PnL            string `csv:"PnL"`
	Fees           string `csv:"Fees"`
	Result         string `csv:"Result"`
	HoldTime       string `csv:"Hold Time"`
	EntryHour      int    `csv:"Entry Hour"`
	ID             string `csv:"ID"`
	EntryTimestamp string `csv:"Entry Timestamp"`
	ExitTimestamp  string `csv:"Exit Timestamp"`
	EntrySeq       int    `csv:"Entry Seq"`
	ExitSeq        int    `csv:"Exit Seq"`
}

func NewMatchedTradeCsvRowDTO(t *eventmodels.MatchedTrade) *MatchedTradeCsvRowDTO {
	return &MatchedTradeCsvRowDTO{
		TradeDate:      t.TradeDate,
		Symbol:         t.Symbol,
		Side:           string(t.Side),
		EntryAction:    string(t.EntryAction),
		ExitAction:     string(t.ExitAction),
		EntryTime:      t.EntryTime.Format(time.TimeOnly),
		ExitTime:       t.ExitTime.Format(time.TimeOnly),
		EntryPrice:     t.EntryPrice.String(),
		ExitPrice:      t.ExitPrice.String(),
		Quantity:       t.Quantity,
		PnL:            t.PnL.StringFixed(eventmodels.MoneyPlaces),
		Fees:           t.Fees.StringFixed(eventmodels.MoneyPlaces),
		Result:         string(t.Result),
		HoldTime:       t.HoldTime.String(),
		EntryHour:      t.EntryHour,
		ID:             t.ID.String(),
		EntryTimestamp: t.EntryTime.Format(timestampLayout),
		ExitTimestamp:  t.ExitTime.Format(timestampLayout),
		EntrySeq:       t.EntrySeq,
		ExitSeq:        t.ExitSeq,
	}
}

func (dto *MatchedTradeCsvRowDTO) ToModel() (*eventmodels.MatchedTrade, error) {
	side := eventmodels.TradeSide(dto.Side)
	if err := side.Validate(); err != nil {
		return nil, fmt.Errorf("MatchedTradeCsvRowDTO.ToModel: %w", err)
	}

	result := eventmodels.TradeResult(dto.Result)
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("MatchedTradeCsvRowDTO.ToModel: %w", err)
	}

	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, fmt.Errorf("MatchedTradeCsvRowDTO.ToModel: id: %w", err)
	}

	entryTime, err := time.Parse(timestampLayout, dto.EntryTimestamp)
	if err != nil {
		return nil, fmt.Errorf("MatchedTradeCsvRowDTO.ToModel: entry timestamp: %w", err)
	}

	exitTime, err := time.Parse(timestampLayout, dto.ExitTimestamp)
	if err != nil {
		return nil, fmt.Errorf("MatchedTradeCsvRowDTO.ToModel: exit timestamp: %w", err)
	}

	holdTime, err := eventmodels.ParseHoldTime(dto.HoldTime)
	if err != nil {
		return nil, fmt.Errorf("MatchedTradeCsvRowDTO.ToModel: %w", err)
	}

	amounts := make([]decimal.Decimal, 4)
	for i, s := range []string{dto.EntryPrice, dto.ExitPrice, dto.PnL, dto.Fees} {
		if amounts[i], err = decimal.NewFromString(s); err != nil {
			return nil, fmt.Errorf("MatchedTradeCsvRowDTO.ToModel: amount %q: %w", s, err)
		}
	}

	return &eventmodels.MatchedTrade{
		ID:          id,
		TradeDate:   dto.TradeDate,
		Symbol:      dto.Symbol,
		Side:        side,
		EntryAction: side.EntryAction(),
		ExitAction:  side.ExitAction(),
		EntryTime:   entryTime,
		ExitTime:    exitTime,
		EntryPrice:  amounts[0],
		ExitPrice:   amounts[1],
		Quantity:    dto.Quantity,
		PnL:         amounts[2],
		Fees:        amounts[3],
		Result:      result,
		HoldTime:    holdTime,
		EntryHour:   dto.EntryHour,
		EntrySeq:    dto.EntrySeq,
		ExitSeq:     dto.ExitSeq,
	}, nil
}
