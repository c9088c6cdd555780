package engine

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra"

	"github.com/google/uuid"
)

// reportKey identifies an order within the engine: ClOrdID is only unique
// per originating session.
type reportKey struct {
	session domain.SessionID
	clOrdID string
}

// ExecutionEngine turns order requests into execution reports using the
// book price at processing time. Every accepted order fills immediately
// and completely; it follows that every cancel request is rejected.
// The engine owns no resting orders, only the last report per order for
// status requests.
type ExecutionEngine struct {
	registry *SessionRegistry
	book     *InstrumentBook
	sender   domain.Sender
	journal  domain.Journal

	mu      sync.Mutex
	history map[reportKey]*domain.ExecutionReport

	orderSeq atomic.Uint64
}

// NewExecutionEngine creates the handler for order flow messages.
func NewExecutionEngine(registry *SessionRegistry, book *InstrumentBook, sender domain.Sender, journal domain.Journal) *ExecutionEngine {
	e := &ExecutionEngine{
		registry: registry,
		book:     book,
		sender:   sender,
		journal:  journal,
		history:  make(map[reportKey]*domain.ExecutionReport),
	}
	// Keep generated ids out of the range clients typically pick.
	e.orderSeq.Store(100000)
	return e
}

// nextOrderID returns an id unique within the process lifetime.
func (e *ExecutionEngine) nextOrderID() string {
	return strconv.FormatUint(e.orderSeq.Add(1), 10)
}

// nextExecID returns a globally unique execution id.
func (e *ExecutionEngine) nextExecID() string {
	return uuid.NewString()
}

// HandleNewOrder synthesizes a full immediate fill at the current book
// price. Unknown instruments and non-positive quantities produce an
// explicit Rejected report rather than a silent drop.
func (e *ExecutionEngine) HandleNewOrder(req *domain.OrderRequest) error {
	if !e.registry.IsLoggedOn(req.Session) {
		return domain.ErrNoActiveSession
	}

	report := &domain.ExecutionReport{
		Session: req.Session,
		OrderID: e.nextOrderID(),
		ExecID:  e.nextExecID(),
		ClOrdID: req.ClOrdID,
		Symbol:  req.Symbol,
		Side:    req.Side,
	}

	px, ok := e.book.Price(req.Symbol)
	switch {
	case !ok:
		report.ExecType = domain.ExecTypeRejected
		report.OrdStatus = domain.OrdStatusRejected
		report.LeavesQty = 0
		report.Text = "unknown instrument"
		infra.GlobalMetrics.RecordOrderRejected()
		slog.Error("Order rejected: unknown instrument",
			slog.String("session", string(req.Session)),
			slog.String("cl_ord_id", req.ClOrdID),
			slog.String("symbol", req.Symbol))

	case req.Quantity <= 0:
		report.ExecType = domain.ExecTypeRejected
		report.OrdStatus = domain.OrdStatusRejected
		report.LeavesQty = 0
		report.Text = "invalid quantity"
		infra.GlobalMetrics.RecordOrderRejected()
		slog.Error("Order rejected: invalid quantity",
			slog.String("session", string(req.Session)),
			slog.String("cl_ord_id", req.ClOrdID),
			slog.Int64("quantity", req.Quantity))

	default:
		report.ExecType = domain.ExecTypeTrade
		report.OrdStatus = domain.OrdStatusFilled
		report.LastQty = req.Quantity
		report.LastPx = px
		report.CumQty = req.Quantity
		report.AvgPx = px
		report.LeavesQty = 0
		infra.GlobalMetrics.RecordOrderFilled()
		slog.Info("Order filled",
			slog.String("session", string(req.Session)),
			slog.String("cl_ord_id", req.ClOrdID),
			slog.String("symbol", req.Symbol),
			slog.String("side", req.Side.String()),
			slog.Int64("qty", req.Quantity),
			slog.String("px", px.String()))
	}

	e.remember(report)
	e.record(report)
	return e.sender.Send(report)
}

// HandleCancel answers every cancel request with a reject: all orders fill
// immediately, so there is never a resting order to cancel. This is a
// deliberate simplification, not an omission.
func (e *ExecutionEngine) HandleCancel(req *domain.CancelRequest) error {
	if !e.registry.IsLoggedOn(req.Session) {
		return domain.ErrNoActiveSession
	}

	reject := &domain.CancelReject{
		Session:     req.Session,
		OrderID:     e.nextOrderID(),
		ClOrdID:     req.ClOrdID,
		OrigClOrdID: req.OrigClOrdID,
		Reason:      domain.CxlRejReasonOther,
	}
	infra.GlobalMetrics.RecordCancelReject()
	slog.Info("Cancel rejected",
		slog.String("session", string(req.Session)),
		slog.String("orig_cl_ord_id", req.OrigClOrdID))
	return e.sender.Send(reject)
}

// HandleStatus re-emits the last known report for (session, ClOrdID), or an
// unknown-order reject when the engine has no record of it.
func (e *ExecutionEngine) HandleStatus(req *domain.StatusRequest) error {
	if !e.registry.IsLoggedOn(req.Session) {
		return domain.ErrNoActiveSession
	}

	e.mu.Lock()
	last, ok := e.history[reportKey{session: req.Session, clOrdID: req.ClOrdID}]
	e.mu.Unlock()

	if !ok {
		report := &domain.ExecutionReport{
			Session:   req.Session,
			OrderID:   "NONE",
			ExecID:    e.nextExecID(),
			ClOrdID:   req.ClOrdID,
			Symbol:    req.Symbol,
			Side:      req.Side,
			ExecType:  domain.ExecTypeRejected,
			OrdStatus: domain.OrdStatusRejected,
			Text:      "unknown order",
		}
		slog.Warn("Status request for unknown order",
			slog.String("session", string(req.Session)),
			slog.String("cl_ord_id", req.ClOrdID))
		return e.sender.Send(report)
	}

	// Reports are immutable once emitted; re-send a copy with a fresh
	// ExecID so every message on the wire stays unique.
	resend := *last
	resend.ExecID = e.nextExecID()
	return e.sender.Send(&resend)
}

// LastReport returns the last known report for (session, ClOrdID).
func (e *ExecutionEngine) LastReport(session domain.SessionID, clOrdID string) (*domain.ExecutionReport, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.history[reportKey{session: session, clOrdID: clOrdID}]
	return r, ok
}

func (e *ExecutionEngine) remember(report *domain.ExecutionReport) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history[reportKey{session: report.Session, clOrdID: report.ClOrdID}] = report
}

func (e *ExecutionEngine) record(report *domain.ExecutionReport) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordExecution(report); err != nil {
		slog.Error("Journal write failed",
			slog.String("exec_id", report.ExecID),
			slog.Any("error", err))
	}
}
