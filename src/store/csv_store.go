package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
)

const (
	ExecutionsFileName = "raw_imports.csv"
	TradesFileName     = "trades.csv"
)

// CSVStore keeps the journal as two flat files in one directory. Writes go to
// a temporary file that is renamed over the target.
type CSVStore struct {
	dir   string
	mutex sync.Mutex
}

func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("NewCSVStore: failed to create %s: %w", dir, err)
	}

	return &CSVStore{dir: dir}, nil
}

func (s *CSVStore) Dir() string {
	return s.dir
}

func (s *CSVStore) LoadExecutions(ctx context.Context) ([]*eventmodels.Execution, error) {
	var rows []*ExecutionCsvRowDTO
	if err := s.read(ExecutionsFileName, &rows); err != nil {
		return nil, fmt.Errorf("CSVStore.LoadExecutions: %w", err)
	}

	execs := make([]*eventmodels.Execution, 0, len(rows))
	for i, row := range rows {
		e, err := row.ToModel()
		if err != nil {
			return nil, fmt.Errorf("CSVStore.LoadExecutions: row %d: %w", i+1, err)
		}

		execs = append(execs, e)
	}

	return execs, nil
}

func (s *CSVStore) SaveExecutions(ctx context.Context, execs []*eventmodels.Execution) error {
	rows := make([]*ExecutionCsvRowDTO, 0, len(execs))
	for _, e := range execs {
		rows = append(rows, NewExecutionCsvRowDTO(e))
	}

	if err := s.write(ExecutionsFileName, &rows); err != nil {
		return fmt.Errorf("CSVStore.SaveExecutions: %w", err)
	}

	return nil
}

func (s *CSVStore) LoadTrades(ctx context.Context) ([]*eventmodels.MatchedTrade, error) {
	var rows []*MatchedTradeCsvRowDTO
	if err := s.read(TradesFileName, &rows); err != nil {
		return nil, fmt.Errorf("CSVStore.LoadTrades: %w", err)
	}

	trades := make([]*eventmodels.MatchedTrade, 0, len(rows))
	for i, row := range rows {
		t, err := row.ToModel()
		if err != nil {
			return nil, fmt.Errorf("CSVStore.LoadTrades: row %d: %w", i+1, err)
		}

		trades = append(trades, t)
	}

	return trades, nil
}

func (s *CSVStore) SaveTrades(ctx context.Context, trades []*eventmodels.MatchedTrade) error {
	rows := make([]*MatchedTradeCsvRowDTO, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, NewMatchedTradeCsvRowDTO(t))
	}

	if err := s.write(TradesFileName, &rows); err != nil {
		return fmt.Errorf("CSVStore.SaveTrades: %w", err)
	}

	return nil
}

func (s *CSVStore) Reset(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var errs []error
	for _, name := range []string{ExecutionsFileName, TradesFileName} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("CSVStore.Reset: %w", errors.Join(errs...))
	}

	return nil
}

// read leaves out untouched when the file does not exist yet.
func (s *CSVStore) read(name string, out interface{}) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil
		}

		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}

	return nil
}

func (s *CSVStore) write(name string, in interface{}) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}

	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("CSVStore: failed to remove %s: %v", tmpName, err)
		}
	}()

	if err := gocsv.MarshalFile(in, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}
