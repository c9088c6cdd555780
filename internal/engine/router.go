package engine

import (
	"log/slog"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra"
)

// Router classifies a decoded inbound message by type and dispatches it to
// exactly one handler. Dispatch is synchronous; admin and unrecognized
// types are logged and dropped, never fatal.
type Router struct {
	execution     *ExecutionEngine
	subscriptions *SubscriptionService
}

// NewRouter wires the two business handlers.
func NewRouter(execution *ExecutionEngine, subscriptions *SubscriptionService) *Router {
	return &Router{execution: execution, subscriptions: subscriptions}
}

// Dispatch routes one decoded message.
func (r *Router) Dispatch(msg domain.Inbound) {
	switch m := msg.(type) {
	case *domain.OrderRequest:
		if err := r.execution.HandleNewOrder(m); err != nil {
			slog.Error("New order rejected",
				slog.String("session", string(m.Session)),
				slog.String("cl_ord_id", m.ClOrdID),
				slog.Any("error", err))
		}
	case *domain.CancelRequest:
		if err := r.execution.HandleCancel(m); err != nil {
			slog.Error("Cancel request failed",
				slog.String("session", string(m.Session)),
				slog.String("orig_cl_ord_id", m.OrigClOrdID),
				slog.Any("error", err))
		}
	case *domain.StatusRequest:
		if err := r.execution.HandleStatus(m); err != nil {
			slog.Error("Status request failed",
				slog.String("session", string(m.Session)),
				slog.String("cl_ord_id", m.ClOrdID),
				slog.Any("error", err))
		}
	case *domain.MarketDataRequest:
		r.subscriptions.HandleRequest(m)
	case *domain.AdminMessage:
		slog.Debug("Admin message dropped",
			slog.String("session", string(m.Session)),
			slog.String("msg_type", string(m.MsgType)))
		infra.GlobalMetrics.RecordDropped()
	default:
		slog.Warn("Unknown message type dropped",
			slog.String("session", string(msg.SessionID())),
			slog.String("msg_type", string(msg.Type())))
		infra.GlobalMetrics.RecordDropped()
	}
}
