package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra"

	"github.com/shopspring/decimal"
)

// PriceSimulator perturbs every instrument's price on a fixed cadence and
// triggers a market data broadcast after each full pass. The loop runs
// until the context is cancelled; Stop blocks until it has exited.
type PriceSimulator struct {
	book      *InstrumentBook
	publisher *MarketDataPublisher
	interval  time.Duration
	maxDelta  float64
	rng       *rand.Rand

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPriceSimulator creates the background price walk.
func NewPriceSimulator(book *InstrumentBook, publisher *MarketDataPublisher, interval time.Duration, maxDelta decimal.Decimal) *PriceSimulator {
	return &PriceSimulator{
		book:      book,
		publisher: publisher,
		interval:  interval,
		maxDelta:  maxDelta.InexactFloat64(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the tick loop.
func (s *PriceSimulator) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)
	slog.Info("Price simulator started",
		slog.Duration("interval", s.interval),
		slog.Float64("max_delta", s.maxDelta))
	return nil
}

func (s *PriceSimulator) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Price simulator stopping...")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick perturbs every instrument once, then broadcasts. Exposed so tests
// can drive the simulation deterministically without the timer.
func (s *PriceSimulator) Tick() {
	for _, symbol := range s.book.Symbols() {
		delta := decimal.NewFromFloat(s.uniformDelta()).Round(4)
		if _, ok := s.book.ApplyDelta(symbol, delta); !ok {
			continue
		}
	}
	infra.GlobalMetrics.RecordTick()
	s.publisher.Broadcast()
}

// uniformDelta draws from [-maxDelta, +maxDelta].
func (s *PriceSimulator) uniformDelta() float64 {
	return (s.rng.Float64()*2 - 1) * s.maxDelta
}

// Stop cancels the loop and waits for it to exit.
func (s *PriceSimulator) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
