package domain

// SessionID is the opaque identifier of a transport connection.
// The FIX boundary derives it from the quickfix session id; the HTTP
// surface uses a fixed local id.
type SessionID string

// SessionState tracks the lifecycle of a session.
type SessionState int

const (
	SessionCreated SessionState = iota
	SessionLoggedOn
	SessionLoggedOut
)

func (s SessionState) String() string {
	switch s {
	case SessionCreated:
		return "CREATED"
	case SessionLoggedOn:
		return "LOGGED_ON"
	case SessionLoggedOut:
		return "LOGGED_OUT"
	default:
		return "UNKNOWN"
	}
}

// Subscription is a standing request for periodic updates on one
// instrument, correlated by the MDReqID the counterparty supplied.
type Subscription struct {
	Kind    SubscriptionType
	MDReqID string
}

// Session is a logical connection between a trading client and the gateway.
// It owns the set of instruments the counterparty is subscribed to, keyed
// by symbol: at most one active subscription per (session, symbol).
type Session struct {
	ID         SessionID
	State      SessionState
	Subscribed map[string]Subscription
}

// IsLoggedOn reports whether business messages may flow on this session.
func (s *Session) IsLoggedOn() bool {
	return s != nil && s.State == SessionLoggedOn
}
