package engine

import (
	"log/slog"
	"sync"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra"
)

// ActiveSub is one (session, instrument) standing subscription pair.
type ActiveSub struct {
	Session domain.SessionID
	Symbol  string
	MDReqID string
}

// SessionRegistry owns session lifecycle state and each session's
// subscription set. Sessions are keyed by the opaque transport id; a session
// that logs out and reconnects with the same id re-enters LoggedOn.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

// OnSessionCreated inserts a session in Created state. Re-creating an
// existing id keeps its current state.
func (r *SessionRegistry) OnSessionCreated(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; ok {
		return
	}
	r.sessions[id] = &domain.Session{
		ID:         id,
		State:      domain.SessionCreated,
		Subscribed: make(map[string]domain.Subscription),
	}
	slog.Info("Session created", slog.String("session", string(id)))
}

// OnLogon transitions a session to LoggedOn. Unknown ids are logged and
// ignored.
func (r *SessionRegistry) OnLogon(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		slog.Error("Logon for unknown session", slog.String("session", string(id)))
		return
	}
	sess.State = domain.SessionLoggedOn
	infra.GlobalMetrics.SessionUp()
	slog.Info("Logon", slog.String("session", string(id)))
}

// OnLogout transitions a session to LoggedOut and clears its subscription
// set: every subscription of that session is implicitly cancelled.
func (r *SessionRegistry) OnLogout(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		slog.Error("Logout for unknown session", slog.String("session", string(id)))
		return
	}
	if sess.State == domain.SessionLoggedOn {
		infra.GlobalMetrics.SessionDown()
	}
	sess.State = domain.SessionLoggedOut
	sess.Subscribed = make(map[string]domain.Subscription)
	slog.Info("Logout", slog.String("session", string(id)))
}

// IsLoggedOn reports whether business messages may flow on the session.
func (r *SessionRegistry) IsLoggedOn(id domain.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[id].IsLoggedOn()
}

// Subscribe adds (session, symbol) to the subscription set. Subscribing an
// already subscribed pair is idempotent. The session must be LoggedOn.
func (r *SessionRegistry) Subscribe(id domain.SessionID, symbol, mdReqID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok || !sess.IsLoggedOn() {
		return domain.ErrNoActiveSession
	}
	sess.Subscribed[symbol] = domain.Subscription{
		Kind:    domain.SubSnapshotUpdates,
		MDReqID: mdReqID,
	}
	return nil
}

// Unsubscribe removes (session, symbol); removing an absent pair is a no-op.
// The session must be LoggedOn.
func (r *SessionRegistry) Unsubscribe(id domain.SessionID, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok || !sess.IsLoggedOn() {
		return domain.ErrNoActiveSession
	}
	delete(sess.Subscribed, symbol)
	return nil
}

// IsSubscribed reports whether (session, symbol) is an active subscription.
func (r *SessionRegistry) IsSubscribed(id domain.SessionID, symbol string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	if !ok {
		return false
	}
	_, sub := sess.Subscribed[symbol]
	return sub
}

// ActiveSubscriptions returns a copy of every (session, instrument) pair
// with a standing subscription. Callers iterate and send without any
// registry lock held.
func (r *SessionRegistry) ActiveSubscriptions() []ActiveSub {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ActiveSub
	for id, sess := range r.sessions {
		if !sess.IsLoggedOn() {
			continue
		}
		for symbol, sub := range sess.Subscribed {
			out = append(out, ActiveSub{
				Session: id,
				Symbol:  symbol,
				MDReqID: sub.MDReqID,
			})
		}
	}
	return out
}

// SubscriptionCount returns the number of standing subscriptions for one
// session.
func (r *SessionRegistry) SubscriptionCount(id domain.SessionID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	if !ok {
		return 0
	}
	return len(sess.Subscribed)
}
