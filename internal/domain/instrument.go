package domain

import "github.com/shopspring/decimal"

// Instrument is a tradable symbol with a gateway-maintained synthetic price.
// Instruments are created at startup from the configured list and never
// removed during the process lifetime.
type Instrument struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// EntryType distinguishes bid and offer levels (FIX tag 269).
type EntryType string

const (
	EntryBid   EntryType = "0"
	EntryOffer EntryType = "1"
)

// BookLevel is one side of the two-level synthetic book published in
// market data snapshots.
type BookLevel struct {
	Type  EntryType       `json:"type"`
	Price decimal.Decimal `json:"price"`
	Size  int64           `json:"size"`
}
