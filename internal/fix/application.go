package fix

import (
	"log/slog"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/engine"

	"github.com/quickfixgo/quickfix"
)

// Application adapts the quickfix engine callbacks onto the gateway core:
// session lifecycle events flow into the SessionRegistry, application
// messages are decoded once and dispatched through the Router. The protocol
// engine guarantees per-session ordering of FromApp invocations, which is
// what gives the core its sequential-per-session processing model.
type Application struct {
	registry  *engine.SessionRegistry
	router    *engine.Router
	transport *Transport
}

var _ quickfix.Application = (*Application)(nil)

// NewApplication wires the acceptor-side callbacks.
func NewApplication(registry *engine.SessionRegistry, router *engine.Router, transport *Transport) *Application {
	return &Application{registry: registry, router: router, transport: transport}
}

// OnCreate registers the session with the registry and the outbound
// transport.
func (a *Application) OnCreate(sessionID quickfix.SessionID) {
	a.transport.register(sessionID)
	a.registry.OnSessionCreated(domain.SessionID(sessionID.String()))
}

// OnLogon transitions the session to LoggedOn.
func (a *Application) OnLogon(sessionID quickfix.SessionID) {
	a.registry.OnLogon(domain.SessionID(sessionID.String()))
}

// OnLogout transitions the session to LoggedOut, dropping its
// subscriptions.
func (a *Application) OnLogout(sessionID quickfix.SessionID) {
	a.registry.OnLogout(domain.SessionID(sessionID.String()))
}

// ToAdmin is a no-op: the protocol engine owns admin traffic.
func (a *Application) ToAdmin(message *quickfix.Message, sessionID quickfix.SessionID) {}

// FromAdmin accepts all admin traffic unchanged.
func (a *Application) FromAdmin(message *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

// ToApp logs outbound application messages at debug level.
func (a *Application) ToApp(message *quickfix.Message, sessionID quickfix.SessionID) error {
	slog.Debug("Sending message", slog.String("session", sessionID.String()))
	return nil
}

// FromApp decodes the message once and dispatches it. Decode failures are
// logged with field context and the message is dropped; nothing in here is
// fatal to the session.
func (a *Application) FromApp(message *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	session := domain.SessionID(sessionID.String())

	inbound, err := Decode(message, session)
	if err != nil {
		slog.Error("Inbound message dropped",
			slog.String("session", string(session)),
			slog.Any("error", err))
		return nil
	}

	a.router.Dispatch(inbound)
	return nil
}
