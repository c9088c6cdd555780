package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInstrumentBook_ApplyDelta(t *testing.T) {
	book := newTestBook()

	px, ok := book.ApplyDelta("EUR/USD", decimal.NewFromFloat(0.05))
	if !ok {
		t.Fatal("EUR/USD should exist")
	}
	if !px.Equal(decimal.NewFromFloat(1.15)) {
		t.Errorf("Expected 1.15, got %s", px)
	}
}

func TestInstrumentBook_FloorClamp(t *testing.T) {
	book := newTestBook()

	// A drop far below the floor must clamp, never go to zero or negative.
	px, ok := book.ApplyDelta("EUR/USD", decimal.NewFromFloat(-5))
	if !ok {
		t.Fatal("EUR/USD should exist")
	}
	if !px.Equal(book.Floor()) {
		t.Errorf("Expected floor %s, got %s", book.Floor(), px)
	}

	// The next positive delta moves off the floor again.
	px, _ = book.ApplyDelta("EUR/USD", decimal.NewFromFloat(0.09))
	if !px.Equal(decimal.NewFromFloat(0.10)) {
		t.Errorf("Expected 0.10, got %s", px)
	}
}

func TestInstrumentBook_UnknownSymbol(t *testing.T) {
	book := newTestBook()

	if _, ok := book.Price("BTC-USD"); ok {
		t.Error("Unknown symbol should not have a price")
	}
	if _, ok := book.ApplyDelta("BTC-USD", decimal.NewFromFloat(1)); ok {
		t.Error("ApplyDelta on unknown symbol should fail")
	}
	if book.Has("BTC-USD") {
		t.Error("Has should be false for unknown symbol")
	}
}

func TestInstrumentBook_SnapshotSorted(t *testing.T) {
	book := newTestBook()

	snap := book.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Expected 2 instruments, got %d", len(snap))
	}
	if snap[0].Symbol != "AAPL" || snap[1].Symbol != "EUR/USD" {
		t.Errorf("Snapshot not sorted: %v", snap)
	}

	symbols := book.Symbols()
	if symbols[0] != "AAPL" || symbols[1] != "EUR/USD" {
		t.Errorf("Symbols not sorted: %v", symbols)
	}
}
