package journal

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
	"github.com/hilljasont-svg/Tradejournal/src/ingestion"
)

// MaxRejectedMessages caps how many row errors an ImportResult carries.
const MaxRejectedMessages = 10

// ImportRequest selects how an upload is read. Format takes precedence, then
// Mapping, then Profile. With none set the mapping is guessed from the header.
type ImportRequest struct {
	Mapping *ingestion.ColumnMapping
	Profile string
	Format  string
	Source  string
}

type ImportResult struct {
	BatchID          uuid.UUID `json:"batch_id"`
	Imported         int       `json:"imported"`
	Duplicates       int       `json:"duplicates"`
	Rejected         int       `json:"rejected"`
	RejectedMessages []string  `json:"rejected_messages,omitempty"`
	MatchedTrades    int       `json:"matched_trades"`
	OpenPositions    int       `json:"open_positions"`
	Message          string    `json:"message"`
}

func newImportResult(imported, duplicates int, rejected []*eventmodels.ValidationError) *ImportResult {
	result := &ImportResult{
		BatchID:    uuid.New(),
		Imported:   imported,
		Duplicates: duplicates,
		Rejected:   len(rejected),
		Message:    fmt.Sprintf("Imported %d new trades, %d duplicates skipped", imported, duplicates),
	}

	for i, verr := range rejected {
		if i >= MaxRejectedMessages {
			break
		}

		result.RejectedMessages = append(result.RejectedMessages, verr.Error())
	}

	return result
}

// dedupe drops incoming executions already present in stored and renumbers the
// rest after the highest stored sequence. Repeats inside incoming are kept.
func dedupe(stored, incoming []*eventmodels.Execution) ([]*eventmodels.Execution, int) {
	seen := make(map[string]struct{}, len(stored))
	next := 0

	for _, e := range stored {
		seen[e.DedupKey()] = struct{}{}
		if e.Sequence >= next {
			next = e.Sequence + 1
		}
	}

	var fresh []*eventmodels.Execution
	duplicates := 0

	for _, e := range incoming {
		if _, found := seen[e.DedupKey()]; found {
			duplicates++
			continue
		}

		copied := *e
		copied.Sequence = next
		next++

		fresh = append(fresh, &copied)
	}

	return fresh, duplicates
}

func (s *Service) parse(r io.Reader, req ImportRequest) ([]*eventmodels.Execution, []*eventmodels.ValidationError, error) {
	if strings.EqualFold(req.Format, ingestion.FormatFidelityOrders) {
		execs, rejected, err := ingestion.ParseFidelityOrders(r)
		if err != nil {
			return nil, nil, eventmodels.NewBadRequestError("failed to read fidelity orders", err)
		}

		return execs, rejected, nil
	}

	if req.Format != "" {
		return nil, nil, eventmodels.NewBadRequestError(fmt.Sprintf("unknown format %q", req.Format), nil)
	}

	table, err := ingestion.ReadCSV(r)
	if err != nil {
		return nil, nil, eventmodels.NewBadRequestError("failed to read csv", err)
	}

	var mapping ingestion.ColumnMapping
	switch {
	case req.Mapping != nil:
		mapping = *req.Mapping
	case req.Profile != "":
		if mapping, err = s.profiles.Lookup(req.Profile); err != nil {
			return nil, nil, eventmodels.NewBadRequestError("failed to select profile", err)
		}
	default:
		mapping = ingestion.SuggestColumnMapping(table.Headers)
	}

	execs, rejected, err := ingestion.Normalize(table, mapping)
	if err != nil {
		return nil, nil, eventmodels.NewBadRequestError("invalid column mapping", err)
	}

	return execs, rejected, nil
}
