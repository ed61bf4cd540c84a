package matching

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

var MatchPanicErr = fmt.Errorf("matching panicked")

var matchSymbol = MatchSymbol

type MatchOptions struct {
	Workers int
}

type LedgerResult struct {
	Trades   []*eventmodels.MatchedTrade
	OpenLots map[string][]*Lot
	Failed   map[string]error
}

type symbolResult struct {
	index    int
	symbol   string
	trades   []*eventmodels.MatchedTrade
	openLots []*Lot
	err      error
}

// GroupBySymbol partitions executions by symbol. Symbols are listed in order of
// first appearance and each group keeps input order.
func GroupBySymbol(execs []*eventmodels.Execution) ([]string, map[string][]*eventmodels.Execution) {
	var symbols []string
	groups := make(map[string][]*eventmodels.Execution)

	for _, e := range execs {
		if _, found := groups[e.Symbol]; !found {
			symbols = append(symbols, e.Symbol)
		}

		groups[e.Symbol] = append(groups[e.Symbol], e)
	}

	return symbols, groups
}

// SortExecutions orders in place by timestamp, then by sequence.
func SortExecutions(execs []*eventmodels.Execution) {
	sort.SliceStable(execs, func(i, j int) bool {
		if !execs[i].Timestamp.Equal(execs[j].Timestamp) {
			return execs[i].Timestamp.Before(execs[j].Timestamp)
		}

		return execs[i].Sequence < execs[j].Sequence
	})
}

// MatchLedger matches every symbol independently on a bounded pool of workers
// and concatenates the trades in symbol first-appearance order. A symbol that
// panics is reported in Failed and does not affect the others.
func MatchLedger(ctx context.Context, execs []*eventmodels.Execution, opts MatchOptions) (*LedgerResult, error) {
	symbols, groups := GroupBySymbol(execs)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(symbols) {
		workers = len(symbols)
	}

	jobs := make(chan int)
	results := eventmodels.NewFIFOQueue[*symbolResult]("MatchLedger", len(symbols))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results.Enqueue(matchGroup(i, symbols[i], groups[symbols[i]]))
			}
		}()
	}

	var ctxErr error
	for i := range symbols {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}

		jobs <- i
	}

	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, fmt.Errorf("MatchLedger: %w", ctxErr)
	}

	ordered := make([]*symbolResult, len(symbols))
	for _, r := range results.Drain() {
		ordered[r.index] = r
	}
	results.Close()

	out := &LedgerResult{
		OpenLots: make(map[string][]*Lot),
		Failed:   make(map[string]error),
	}

	for _, r := range ordered {
		if r.err != nil {
			out.Failed[r.symbol] = r.err
			continue
		}

		out.Trades = append(out.Trades, r.trades...)
		if len(r.openLots) > 0 {
			out.OpenLots[r.symbol] = r.openLots
		}
	}

	log.Debugf("MatchLedger: %d executions, %d symbols, %d trades, %d failed", len(execs), len(symbols), len(out.Trades), len(out.Failed))

	return out, nil
}

func matchGroup(index int, symbol string, execs []*eventmodels.Execution) (result *symbolResult) {
	result = &symbolResult{index: index, symbol: symbol}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("MatchLedger: %s: %v", symbol, r)
			result.trades = nil
			result.openLots = nil
			result.err = fmt.Errorf("%w: %s: %v", MatchPanicErr, symbol, r)
		}
	}()

	SortExecutions(execs)
	result.trades, result.openLots = matchSymbol(symbol, execs)
	return result
}
