package domain

import "github.com/shopspring/decimal"

// MsgType classifies decoded protocol messages (FIX tag 35).
type MsgType string

const (
	MsgNewOrderSingle     MsgType = "D"
	MsgOrderCancelRequest MsgType = "F"
	MsgOrderStatusRequest MsgType = "H"
	MsgMarketDataRequest  MsgType = "V"
	MsgExecutionReport    MsgType = "8"
	MsgOrderCancelReject  MsgType = "9"
	MsgMarketDataSnapshot MsgType = "W"
	MsgHeartbeat          MsgType = "0"
)

// SubscriptionType is FIX SubscriptionRequestType (tag 263).
type SubscriptionType string

const (
	SubSnapshot        SubscriptionType = "0"
	SubSnapshotUpdates SubscriptionType = "1"
	SubDisablePrevious SubscriptionType = "2"
)

// Inbound is a decoded business message delivered by the transport.
// Decoding happens once at the boundary; handlers consume typed values.
type Inbound interface {
	SessionID() SessionID
	Type() MsgType
}

func (o *OrderRequest) SessionID() SessionID { return o.Session }
func (o *OrderRequest) Type() MsgType        { return MsgNewOrderSingle }

func (c *CancelRequest) SessionID() SessionID { return c.Session }
func (c *CancelRequest) Type() MsgType        { return MsgOrderCancelRequest }

func (s *StatusRequest) SessionID() SessionID { return s.Session }
func (s *StatusRequest) Type() MsgType        { return MsgOrderStatusRequest }

// MarketDataRequest asks for snapshots or a standing subscription for one
// or more instruments (NoRelatedSym group flattened at decode time).
type MarketDataRequest struct {
	Session SessionID
	MDReqID string
	SubType SubscriptionType
	Symbols []string
}

func (m *MarketDataRequest) SessionID() SessionID { return m.Session }
func (m *MarketDataRequest) Type() MsgType        { return MsgMarketDataRequest }

// AdminMessage covers heartbeats and any other type with no business
// effect; the router logs and drops it.
type AdminMessage struct {
	Session SessionID
	MsgType MsgType
}

func (a *AdminMessage) SessionID() SessionID { return a.Session }
func (a *AdminMessage) Type() MsgType        { return a.MsgType }

// Outbound is a reply or publication handed to the transport, addressed
// by session id.
type Outbound interface {
	Target() SessionID
	Type() MsgType
}

func (e *ExecutionReport) Target() SessionID { return e.Session }
func (e *ExecutionReport) Type() MsgType     { return MsgExecutionReport }

func (c *CancelReject) Target() SessionID { return c.Session }
func (c *CancelReject) Type() MsgType     { return MsgOrderCancelReject }

// MarketDataSnapshot is a full refresh of one instrument's synthetic book.
// The same shape serves the immediate snapshot on subscribe and the
// periodic updates published on each simulator tick.
type MarketDataSnapshot struct {
	Session SessionID       `json:"session_id"`
	MDReqID string          `json:"md_req_id"`
	Symbol  string          `json:"symbol"`
	Price   decimal.Decimal `json:"price"`
	Levels  []BookLevel     `json:"levels"`
}

func (m *MarketDataSnapshot) Target() SessionID { return m.Session }
func (m *MarketDataSnapshot) Type() MsgType     { return MsgMarketDataSnapshot }
