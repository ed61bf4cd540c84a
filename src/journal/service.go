package journal

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
	"github.com/hilljasont-svg/Tradejournal/src/eventpubsub"
	"github.com/hilljasont-svg/Tradejournal/src/ingestion"
	"github.com/hilljasont-svg/Tradejournal/src/matching"
	"github.com/hilljasont-svg/Tradejournal/src/store"
)

const instrumentationName = "journal"

// Service owns the journal: imports append executions to the store and rebuild
// the ledger, reads are served from the last rebuilt ledger.
type Service struct {
	store    store.Store
	bus      *eventpubsub.Bus
	profiles ingestion.Profiles
	opts     matching.MatchOptions

	tracer   trace.Tracer
	imported metric.Int64Counter

	writeMu sync.Mutex

	mu       sync.RWMutex
	trades   []*eventmodels.MatchedTrade
	openLots map[string][]*matching.Lot
}

func NewService(st store.Store, bus *eventpubsub.Bus, profiles ingestion.Profiles, opts matching.MatchOptions) (*Service, error) {
	if profiles == nil {
		profiles = ingestion.DefaultProfiles()
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"journal.executions.imported",
		metric.WithDescription("executions appended to the journal"),
	)
	if err != nil {
		return nil, fmt.Errorf("NewService: failed to create counter: %w", err)
	}

	return &Service{
		store:    st,
		bus:      bus,
		profiles: profiles,
		opts:     opts,
		tracer:   otel.Tracer(instrumentationName),
		imported: counter,
		openLots: make(map[string][]*matching.Lot),
	}, nil
}

func (s *Service) Profiles() []string {
	return s.profiles.Names()
}

// Load rebuilds the in-memory ledger from stored executions without writing.
func (s *Service) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	execs, err := s.store.LoadExecutions(ctx)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}

	ledger, err := matching.MatchLedger(ctx, execs, s.opts)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}

	s.setLedger(ledger)
	log.Infof("Load: %d executions, %d trades", len(execs), len(ledger.Trades))

	return nil
}

func (s *Service) Import(ctx context.Context, r io.Reader, req ImportRequest) (*ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "Journal.Import")
	defer span.End()

	incoming, rejected, err := s.parse(r, req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("Import: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	stored, err := s.store.LoadExecutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("Import: %w", err)
	}

	fresh, duplicates := dedupe(stored, incoming)
	result := newImportResult(len(fresh), duplicates, rejected)

	span.SetAttributes(
		attribute.Int("imported", result.Imported),
		attribute.Int("duplicates", result.Duplicates),
		attribute.Int("rejected", result.Rejected),
	)

	all := append(stored, fresh...)
	if len(fresh) > 0 {
		if err := s.store.SaveExecutions(ctx, all); err != nil {
			return nil, fmt.Errorf("Import: %w", err)
		}
	}

	ledger, err := s.rebuild(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("Import: %w", err)
	}

	result.MatchedTrades = len(ledger.Trades)
	result.OpenPositions = len(ledger.OpenLots)

	s.imported.Add(ctx, int64(result.Imported), metric.WithAttributes(attribute.String("source", req.Source)))

	s.bus.Publish(eventpubsub.ExecutionsImported, &eventpubsub.ExecutionsImportedEvent{
		BatchID:    result.BatchID,
		Source:     req.Source,
		Imported:   result.Imported,
		Duplicates: result.Duplicates,
		Rejected:   result.Rejected,
		At:         time.Now(),
	})

	log.Infof("Import: %s (%d rejected)", result.Message, result.Rejected)

	return result, nil
}

// Rematch rebuilds and stores the ledger from the stored executions.
func (s *Service) Rematch(ctx context.Context) (*matching.LedgerResult, error) {
	ctx, span := s.tracer.Start(ctx, "Journal.Rematch")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	execs, err := s.store.LoadExecutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("Rematch: %w", err)
	}

	ledger, err := s.rebuild(ctx, execs)
	if err != nil {
		return nil, fmt.Errorf("Rematch: %w", err)
	}

	return ledger, nil
}

func (s *Service) Reset(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("Reset: %w", err)
	}

	s.mu.Lock()
	s.trades = nil
	s.openLots = make(map[string][]*matching.Lot)
	s.mu.Unlock()

	s.bus.Publish(eventpubsub.JournalReset, &eventpubsub.JournalResetEvent{At: time.Now()})

	log.Info("Reset: journal cleared")

	return nil
}

// rebuild matches, stores and caches the ledger. The caller holds writeMu.
func (s *Service) rebuild(ctx context.Context, execs []*eventmodels.Execution) (*matching.LedgerResult, error) {
	ctx, span := s.tracer.Start(ctx, "Journal.MatchLedger")
	defer span.End()

	ledger, err := matching.MatchLedger(ctx, execs, s.opts)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveTrades(ctx, ledger.Trades); err != nil {
		return nil, err
	}

	s.setLedger(ledger)

	failed := make([]string, 0, len(ledger.Failed))
	for symbol, err := range ledger.Failed {
		log.Errorf("rebuild: %s not matched: %v", symbol, err)
		failed = append(failed, symbol)
	}

	sort.Strings(failed)

	span.SetAttributes(
		attribute.Int("executions", len(execs)),
		attribute.Int("trades", len(ledger.Trades)),
	)

	s.bus.Publish(eventpubsub.LedgerRebuilt, &eventpubsub.LedgerRebuiltEvent{
		Executions:    len(execs),
		Trades:        len(ledger.Trades),
		OpenPositions: len(ledger.OpenLots),
		FailedSymbols: failed,
		At:            time.Now(),
	})

	return ledger, nil
}

func (s *Service) setLedger(ledger *matching.LedgerResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = ledger.Trades
	s.openLots = ledger.OpenLots
}
