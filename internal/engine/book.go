package engine

import (
	"sort"
	"sync"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/shopspring/decimal"
)

// InstrumentBook owns the current synthetic price per instrument. The set of
// instruments is fixed at construction; prices are mutated only by the
// PriceSimulator and clamped to a floor so they never reach zero.
type InstrumentBook struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
	floor  decimal.Decimal
}

// NewInstrumentBook seeds the book from the configured instrument list.
func NewInstrumentBook(instruments []domain.Instrument, floor decimal.Decimal) *InstrumentBook {
	prices := make(map[string]decimal.Decimal, len(instruments))
	for _, inst := range instruments {
		prices[inst.Symbol] = inst.Price
	}
	return &InstrumentBook{prices: prices, floor: floor}
}

// Price returns the current price for symbol.
func (b *InstrumentBook) Price(symbol string) (decimal.Decimal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	px, ok := b.prices[symbol]
	return px, ok
}

// Has reports whether symbol is in the configured instrument list.
func (b *InstrumentBook) Has(symbol string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.prices[symbol]
	return ok
}

// Symbols returns all instrument symbols sorted for consistent ordering.
func (b *InstrumentBook) Symbols() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.prices))
	for s := range b.prices {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ApplyDelta perturbs one instrument's price by delta, clamping at the
// floor. Returns the resulting price.
func (b *InstrumentBook) ApplyDelta(symbol string, delta decimal.Decimal) (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	px, ok := b.prices[symbol]
	if !ok {
		return decimal.Decimal{}, false
	}
	px = px.Add(delta)
	if px.LessThan(b.floor) {
		px = b.floor
	}
	b.prices[symbol] = px
	return px, true
}

// Snapshot returns a copy of every instrument, sorted by symbol.
func (b *InstrumentBook) Snapshot() []domain.Instrument {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Instrument, 0, len(b.prices))
	for sym, px := range b.prices {
		out = append(out, domain.Instrument{Symbol: sym, Price: px})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Floor returns the configured minimum price.
func (b *InstrumentBook) Floor() decimal.Decimal {
	return b.floor
}
