package eventpubsub

const (
	ExecutionsImported = "ExecutionsImported"
	LedgerRebuilt      = "LedgerRebuilt"
	JournalReset       = "JournalReset"
)
