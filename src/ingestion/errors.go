package ingestion

import "fmt"

var (
	EmptyCSVErr       = fmt.Errorf("csv has no header row")
	MissingColumnErr  = fmt.Errorf("required column not mapped")
	UnknownColumnErr  = fmt.Errorf("mapped column not in csv header")
	UnknownProfileErr = fmt.Errorf("unknown broker profile")
	BadTimestampErr   = fmt.Errorf("unrecognised date/time")
	BadPriceErr       = fmt.Errorf("unrecognised price")
	BadQuantityErr    = fmt.Errorf("unrecognised quantity")
	FractionalQtyErr  = fmt.Errorf("quantity must be a whole number")
	OrderNotFilledErr = fmt.Errorf("order not filled")
)
