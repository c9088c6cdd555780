package engine

import (
	"log/slog"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra"

	"github.com/shopspring/decimal"
)

// MarketDataPublisher fans the current book out to every standing
// subscription. Delivery is best-effort per subscription: a failure for one
// session never aborts delivery to the others. Broadcast is invoked from
// the single simulator goroutine, which keeps successive ticks for the same
// subscription in order.
type MarketDataPublisher struct {
	registry  *SessionRegistry
	book      *InstrumentBook
	sender    domain.Sender
	spread    decimal.Decimal
	entrySize int64
}

// NewMarketDataPublisher creates the per-tick update fan-out.
func NewMarketDataPublisher(registry *SessionRegistry, book *InstrumentBook, sender domain.Sender, spread decimal.Decimal, entrySize int64) *MarketDataPublisher {
	return &MarketDataPublisher{
		registry:  registry,
		book:      book,
		sender:    sender,
		spread:    spread,
		entrySize: entrySize,
	}
}

// Broadcast emits one update per active (session, instrument) pair.
func (p *MarketDataPublisher) Broadcast() {
	subs := p.registry.ActiveSubscriptions()
	for _, sub := range subs {
		px, ok := p.book.Price(sub.Symbol)
		if !ok {
			// Instruments are never removed; a miss here means a
			// subscription outlived its configuration.
			slog.Warn("Subscription for unknown instrument skipped",
				slog.String("session", string(sub.Session)),
				slog.String("symbol", sub.Symbol))
			continue
		}

		msg := &domain.MarketDataSnapshot{
			Session: sub.Session,
			MDReqID: sub.MDReqID,
			Symbol:  sub.Symbol,
			Price:   px,
			Levels:  SyntheticLevels(px, p.spread, p.entrySize),
		}
		if err := p.sender.Send(msg); err != nil {
			infra.GlobalMetrics.RecordBroadcastErr()
			slog.Warn("Update delivery failed",
				slog.String("session", string(sub.Session)),
				slog.String("symbol", sub.Symbol),
				slog.Any("error", err))
			continue
		}
		infra.GlobalMetrics.RecordUpdate()
	}
}
