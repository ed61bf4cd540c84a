package store

import (
	"context"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

// Store persists the raw executions and the ledger derived from them. Saves
// replace the previous contents.
type Store interface {
	LoadExecutions(ctx context.Context) ([]*eventmodels.Execution, error)
	SaveExecutions(ctx context.Context, execs []*eventmodels.Execution) error
	LoadTrades(ctx context.Context) ([]*eventmodels.MatchedTrade, error)
	SaveTrades(ctx context.Context, trades []*eventmodels.MatchedTrade) error
	Reset(ctx context.Context) error
}
