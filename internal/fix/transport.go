package fix

import (
	"log/slog"
	"sync"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/quickfixgo/quickfix"
)

// Transport delivers outbound messages over live quickfix sessions. The
// Application registers sessions as the engine creates them; sends to a
// session that no longer exists fail with ErrSessionNotFound and are left
// to the caller to log.
type Transport struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]quickfix.SessionID
	journal  domain.Journal
}

// NewTransport creates an empty transport. The journal may be nil.
func NewTransport(journal domain.Journal) *Transport {
	return &Transport{
		sessions: make(map[domain.SessionID]quickfix.SessionID),
		journal:  journal,
	}
}

func (t *Transport) register(sid quickfix.SessionID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[domain.SessionID(sid.String())] = sid
}

// Send encodes the message and hands it to the protocol engine for the
// target session.
func (t *Transport) Send(out domain.Outbound) error {
	t.mu.RLock()
	sid, ok := t.sessions[out.Target()]
	t.mu.RUnlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	msg, err := Encode(out)
	if err != nil {
		return err
	}
	if err := quickfix.SendToTarget(msg, sid); err != nil {
		return err
	}

	t.logOutbound(out)
	return nil
}

func (t *Transport) logOutbound(out domain.Outbound) {
	if t.journal == nil {
		return
	}
	entry := &domain.MessageLog{
		SessionID: string(out.Target()),
		Direction: "OUT",
		MsgType:   string(out.Type()),
	}
	switch m := out.(type) {
	case *domain.ExecutionReport:
		entry.Symbol = m.Symbol
		entry.Side = m.Side.String()
		entry.OrderQty = m.LastQty
		entry.Price = m.LastPx.String()
		entry.OrderID = m.OrderID
		entry.ExecType = m.ExecType
		entry.OrdStatus = m.OrdStatus
	case *domain.CancelReject:
		entry.OrderID = m.OrderID
		entry.OrdStatus = domain.OrdStatusRejected
	case *domain.MarketDataSnapshot:
		entry.Symbol = m.Symbol
		entry.Price = m.Price.String()
	}
	if err := t.journal.RecordMessage(entry); err != nil {
		slog.Error("Message journal write failed", slog.Any("error", err))
	}
}
