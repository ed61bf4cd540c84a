package eventpubsub

import (
	"time"

	"github.com/google/uuid"
)

type ExecutionsImportedEvent struct {
	BatchID    uuid.UUID
	Source     string
	Imported   int
	Duplicates int
	Rejected   int
	At         time.Time
}

type LedgerRebuiltEvent struct {
	Executions    int
	Trades        int
	OpenPositions int
	FailedSymbols []string
	At            time.Time
}

type JournalResetEvent struct {
	At time.Time
}
