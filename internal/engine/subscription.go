package engine

import (
	"log/slog"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra"

	"github.com/shopspring/decimal"
)

// SubscriptionService applies market data requests against the registry and
// emits immediate snapshots through the outbound transport.
type SubscriptionService struct {
	registry  *SessionRegistry
	book      *InstrumentBook
	sender    domain.Sender
	spread    decimal.Decimal
	entrySize int64
}

// NewSubscriptionService creates the handler for MarketDataRequest messages.
func NewSubscriptionService(registry *SessionRegistry, book *InstrumentBook, sender domain.Sender, spread decimal.Decimal, entrySize int64) *SubscriptionService {
	return &SubscriptionService{
		registry:  registry,
		book:      book,
		sender:    sender,
		spread:    spread,
		entrySize: entrySize,
	}
}

// HandleRequest processes one decoded MarketDataRequest. Each related
// symbol is handled independently; an unknown instrument is logged and
// ignored without aborting the rest of the request.
func (s *SubscriptionService) HandleRequest(req *domain.MarketDataRequest) {
	for _, symbol := range req.Symbols {
		if !s.book.Has(symbol) {
			slog.Error("Market data request for unknown instrument",
				slog.String("session", string(req.Session)),
				slog.String("md_req_id", req.MDReqID),
				slog.String("symbol", symbol))
			continue
		}

		switch req.SubType {
		case domain.SubSnapshotUpdates:
			if err := s.registry.Subscribe(req.Session, symbol, req.MDReqID); err != nil {
				slog.Error("Subscribe failed",
					slog.String("session", string(req.Session)),
					slog.String("symbol", symbol),
					slog.Any("error", err))
				continue
			}
			s.sendSnapshot(req.Session, req.MDReqID, symbol)

		case domain.SubSnapshot:
			// One-shot: no standing subscription is recorded.
			s.sendSnapshot(req.Session, req.MDReqID, symbol)

		case domain.SubDisablePrevious:
			if err := s.registry.Unsubscribe(req.Session, symbol); err != nil {
				slog.Error("Unsubscribe failed",
					slog.String("session", string(req.Session)),
					slog.String("symbol", symbol),
					slog.Any("error", err))
			}

		default:
			slog.Warn("Unsupported subscription request type",
				slog.String("session", string(req.Session)),
				slog.String("type", string(req.SubType)))
		}
	}
}

// sendSnapshot emits one full refresh with the current book price.
func (s *SubscriptionService) sendSnapshot(session domain.SessionID, mdReqID, symbol string) {
	px, ok := s.book.Price(symbol)
	if !ok {
		return
	}

	msg := &domain.MarketDataSnapshot{
		Session: session,
		MDReqID: mdReqID,
		Symbol:  symbol,
		Price:   px,
		Levels:  SyntheticLevels(px, s.spread, s.entrySize),
	}
	if err := s.sender.Send(msg); err != nil {
		slog.Error("Snapshot delivery failed",
			slog.String("session", string(session)),
			slog.String("symbol", symbol),
			slog.Any("error", err))
		return
	}
	infra.GlobalMetrics.RecordSnapshot()
}

// SyntheticLevels builds the two-level book published in snapshots:
// bid = price - spread, offer = price + spread, each with a fixed size.
func SyntheticLevels(price, spread decimal.Decimal, size int64) []domain.BookLevel {
	return []domain.BookLevel{
		{Type: domain.EntryBid, Price: price.Sub(spread), Size: size},
		{Type: domain.EntryOffer, Price: price.Add(spread), Size: size},
	}
}
