package engine

import (
	"errors"
	"sync"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/shopspring/decimal"
)

// captureSender records every outbound message so tests can assert on the
// exact replies the engine produced.
type captureSender struct {
	mu   sync.Mutex
	sent []domain.Outbound
	fail bool
}

func (c *captureSender) Send(out domain.Outbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("transport down")
	}
	c.sent = append(c.sent, out)
	return nil
}

func (c *captureSender) messages() []domain.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Outbound, len(c.sent))
	copy(out, c.sent)
	return out
}

func (c *captureSender) last() domain.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return nil
	}
	return c.sent[len(c.sent)-1]
}

func newTestBook() *InstrumentBook {
	return NewInstrumentBook([]domain.Instrument{
		{Symbol: "EUR/USD", Price: decimal.NewFromFloat(1.10)},
		{Symbol: "AAPL", Price: decimal.NewFromFloat(230)},
	}, decimal.NewFromFloat(0.01))
}

func loggedOnRegistry(ids ...domain.SessionID) *SessionRegistry {
	r := NewSessionRegistry()
	for _, id := range ids {
		r.OnSessionCreated(id)
		r.OnLogon(id)
	}
	return r
}
