package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

const batchSize = 500

type ExecutionRecord struct {
	ID        uint            `gorm:"primaryKey"`
	Symbol    string          `gorm:"type:varchar(64);not null;index"`
	Side      string          `gorm:"type:varchar(8);not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	Fee       decimal.Decimal `gorm:"type:numeric;not null"`
	Timestamp time.Time       `gorm:"not null"`
	Sequence  int             `gorm:"not null;uniqueIndex"`
	IsOption  bool            `gorm:"not null"`
}

func (ExecutionRecord) TableName() string {
	return "executions"
}

func NewExecutionRecord(e *eventmodels.Execution) *ExecutionRecord {
	return &ExecutionRecord{
		Symbol:    e.Symbol,
		Side:      string(e.Side),
		Quantity:  e.Quantity,
		Price:     e.Price,
		Fee:       e.Fee,
		Timestamp: e.Timestamp,
		Sequence:  e.Sequence,
		IsOption:  e.IsOption,
	}
}

func (r *ExecutionRecord) ToModel() (*eventmodels.Execution, error) {
	side, err := eventmodels.ParseExecutionSide(r.Side)
	if err != nil {
		return nil, fmt.Errorf("ExecutionRecord.ToModel: %w", err)
	}

	return eventmodels.NewExecution(r.Symbol, side, r.Quantity, r.Price, r.Fee, r.Timestamp.UTC(), r.Sequence)
}

type MatchedTradeRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"not null;index"`
	TradeDate   string          `gorm:"type:char(10);not null;index"`
	Symbol      string          `gorm:"type:varchar(64);not null;index"`
	Side        string          `gorm:"type:varchar(8);not null"`
	EntryTime   time.Time       `gorm:"not null"`
	ExitTime    time.Time       `gorm:"not null"`
	EntryPrice  decimal.Decimal `gorm:"type:numeric;not null"`
	ExitPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity    int             `gorm:"not null"`
	PnL         decimal.Decimal `gorm:"column:pnl;type:numeric(18,2);not null"`
	Fees        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Result      string          `gorm:"type:varchar(8);not null"`
	HoldSeconds int64           `gorm:"not null"`
	EntryHour   int             `gorm:"not null"`
	EntrySeq    int             `gorm:"not null"`
	ExitSeq     int             `gorm:"not null"`
}

func (MatchedTradeRecord) TableName() string {
	return "matched_trades"
}

func NewMatchedTradeRecord(position int, t *eventmodels.MatchedTrade) *MatchedTradeRecord {
	return &MatchedTradeRecord{
		ID:          t.ID,
		Position:    position,
		TradeDate:   t.TradeDate,
		Symbol:      t.Symbol,
		Side:        string(t.Side),
		EntryTime:   t.EntryTime,
		ExitTime:    t.ExitTime,
		EntryPrice:  t.EntryPrice,
		ExitPrice:   t.ExitPrice,
		Quantity:    t.Quantity,
		PnL:         t.PnL,
		Fees:        t.Fees,
		Result:      string(t.Result),
		HoldSeconds: t.HoldTime.Seconds(),
		EntryHour:   t.EntryHour,
		EntrySeq:    t.EntrySeq,
		ExitSeq:     t.ExitSeq,
	}
}

func (r *MatchedTradeRecord) ToModel() (*eventmodels.MatchedTrade, error) {
	side := eventmodels.TradeSide(r.Side)
	if err := side.Validate(); err != nil {
		return nil, fmt.Errorf("MatchedTradeRecord.ToModel: %w", err)
	}

	result := eventmodels.TradeResult(r.Result)
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("MatchedTradeRecord.ToModel: %w", err)
	}

	return &eventmodels.MatchedTrade{
		ID:          r.ID,
		TradeDate:   r.TradeDate,
		Symbol:      r.Symbol,
		Side:        side,
		EntryAction: side.EntryAction(),
		ExitAction:  side.ExitAction(),
		EntryTime:   r.EntryTime.UTC(),
		ExitTime:    r.ExitTime.UTC(),
		EntryPrice:  r.EntryPrice,
		ExitPrice:   r.ExitPrice,
		Quantity:    r.Quantity,
		PnL:         r.PnL,
		Fees:        r.Fees,
		Result:      result,
		HoldTime:    eventmodels.HoldTime(r.HoldSeconds),
		EntryHour:   r.EntryHour,
		EntrySeq:    r.EntrySeq,
		ExitSeq:     r.ExitSeq,
	}, nil
}

// PostgresStore keeps the journal in two tables. Each save replaces a table's
// rows inside one transaction.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LoadExecutions(ctx context.Context) ([]*eventmodels.Execution, error) {
	var records []*ExecutionRecord
	if err := s.db.WithContext(ctx).Order("sequence asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("PostgresStore.LoadExecutions: %w", err)
	}

	execs := make([]*eventmodels.Execution, 0, len(records))
	for _, r := range records {
		e, err := r.ToModel()
		if err != nil {
			return nil, fmt.Errorf("PostgresStore.LoadExecutions: record %d: %w", r.ID, err)
		}

		execs = append(execs, e)
	}

	return execs, nil
}

func (s *PostgresStore) SaveExecutions(ctx context.Context, execs []*eventmodels.Execution) error {
	records := make([]*ExecutionRecord, 0, len(execs))
	for _, e := range execs {
		records = append(records, NewExecutionRecord(e))
	}

	if err := s.replace(ctx, &ExecutionRecord{}, records); err != nil {
		return fmt.Errorf("PostgresStore.SaveExecutions: %w", err)
	}

	return nil
}

func (s *PostgresStore) LoadTrades(ctx context.Context) ([]*eventmodels.MatchedTrade, error) {
	var records []*MatchedTradeRecord
	if err := s.db.WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("PostgresStore.LoadTrades: %w", err)
	}

	trades := make([]*eventmodels.MatchedTrade, 0, len(records))
	for _, r := range records {
		t, err := r.ToModel()
		if err != nil {
			return nil, fmt.Errorf("PostgresStore.LoadTrades: trade %s: %w", r.ID, err)
		}

		trades = append(trades, t)
	}

	return trades, nil
}

func (s *PostgresStore) SaveTrades(ctx context.Context, trades []*eventmodels.MatchedTrade) error {
	records := make([]*MatchedTradeRecord, 0, len(trades))
	for i, t := range trades {
		records = append(records, NewMatchedTradeRecord(i, t))
	}

	if err := s.replace(ctx, &MatchedTradeRecord{}, records); err != nil {
		return fmt.Errorf("PostgresStore.SaveTrades: %w", err)
	}

	return nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		if err := all.Delete(&MatchedTradeRecord{}).Error; err != nil {
			return fmt.Errorf("PostgresStore.Reset: trades: %w", err)
		}

		if err := all.Delete(&ExecutionRecord{}).Error; err != nil {
			return fmt.Errorf("PostgresStore.Reset: executions: %w", err)
		}

		return nil
	})
}

func (s *PostgresStore) replace(ctx context.Context, model interface{}, records interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}

		if err := tx.CreateInBatches(records, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert rows: %w", err)
		}

		return nil
	})
}
