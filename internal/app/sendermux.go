package app

import (
	"sync"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
)

// SenderMux routes outbound messages to a per-session transport, falling
// back to a default one. The gateway uses it to hand the local UI session's
// traffic to the websocket hub while every FIX session keeps flowing through
// the acceptor.
type SenderMux struct {
	mu       sync.RWMutex
	routes   map[domain.SessionID]domain.Sender
	fallback domain.Sender
}

// NewSenderMux creates a mux with the given default transport.
func NewSenderMux(fallback domain.Sender) *SenderMux {
	return &SenderMux{
		routes:   make(map[domain.SessionID]domain.Sender),
		fallback: fallback,
	}
}

// Route pins a session to a specific transport.
func (m *SenderMux) Route(id domain.SessionID, sender domain.Sender) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[id] = sender
}

// Send delivers the message via the session's pinned transport, or the
// fallback when no pin exists.
func (m *SenderMux) Send(out domain.Outbound) error {
	m.mu.RLock()
	sender, ok := m.routes[out.Target()]
	m.mu.RUnlock()
	if !ok {
		sender = m.fallback
	}
	return sender.Send(out)
}
