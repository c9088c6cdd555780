package domain

import "github.com/shopspring/decimal"

// Side of an order (FIX tag 54).
type Side string

const (
	SideBuy  Side = "1"
	SideSell Side = "2"
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return string(s)
	}
}

// OrderType (FIX tag 40). The gateway fills everything at the book price,
// so the type is carried through but does not change execution.
type OrderType string

const (
	OrderTypeMarket OrderType = "1"
	OrderTypeLimit  OrderType = "2"
)

// Order status and execution type values mirrored onto FIX tags 39/150.
const (
	OrdStatusNew      = "0"
	OrdStatusFilled   = "2"
	OrdStatusRejected = "8"

	ExecTypeNew      = "0"
	ExecTypeTrade    = "F"
	ExecTypeRejected = "8"
)

// OrderRequest is a decoded NewOrderSingle. Identity is (Session, ClOrdID);
// the engine only requires per-session uniqueness of ClOrdID.
type OrderRequest struct {
	Session  SessionID
	ClOrdID  string
	Symbol   string
	Side     Side
	Quantity int64
	OrdType  OrderType
}

// ExecutionReport describes the fate of one order. It is derived from
// exactly one OrderRequest plus the book price at processing time and is
// immutable once emitted.
type ExecutionReport struct {
	Session   SessionID       `json:"session_id"`
	OrderID   string          `json:"order_id"`
	ExecID    string          `json:"exec_id"`
	ClOrdID   string          `json:"cl_ord_id"`
	Symbol    string          `json:"symbol"`
	Side      Side            `json:"side"`
	ExecType  string          `json:"exec_type"`
	OrdStatus string          `json:"ord_status"`
	LastQty   int64           `json:"last_qty"`
	LastPx    decimal.Decimal `json:"last_px"`
	CumQty    int64           `json:"cum_qty"`
	AvgPx     decimal.Decimal `json:"avg_px"`
	LeavesQty int64           `json:"leaves_qty"`
	Text      string          `json:"text,omitempty"`
}

// CancelRequest is a decoded OrderCancelRequest referencing an earlier order.
type CancelRequest struct {
	Session     SessionID
	ClOrdID     string
	OrigClOrdID string
	Symbol      string
	Side        Side
}

// CancelReject is the reply to every cancel request: the gateway fills
// orders immediately, so there is never a resting order to cancel.
type CancelReject struct {
	Session     SessionID `json:"session_id"`
	OrderID     string    `json:"order_id"`
	ClOrdID     string    `json:"cl_ord_id"`
	OrigClOrdID string    `json:"orig_cl_ord_id"`
	Reason      string    `json:"reason"` // CxlRejReason (102); always "other"
}

// CxlRejReasonOther is FIX CxlRejReason 99.
const CxlRejReasonOther = "99"

// StatusRequest is a decoded OrderStatusRequest.
type StatusRequest struct {
	Session SessionID
	ClOrdID string
	Symbol  string
	Side    Side
}
