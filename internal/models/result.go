package models

import "github.com/shopspring/decimal"

// Result is one completed-game row from the results CSV. Typed fields cover
// the columns the performance view computes over; Raw keeps every cell in
// header order so the full table renders untouched.
type Result struct {
	Week                  *int64
	SpreadPickHit         *bool
	TotalPickHit          *bool
	ModelBeatsVegasSpread *bool
	ModelBeatsVegasTotal  *bool
	ModelSpreadError      *decimal.Decimal
	ModelTotalError       *decimal.Decimal

	Raw []string
}

type ResultTable struct {
	Header  []string
	Rows    []Result
	Columns ColumnSet
	Source  string

	// UsedFallback is true when the file was not valid UTF-8 and was
	// decoded as Latin-1 instead.
	UsedFallback bool
}
