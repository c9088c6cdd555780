package infra

import "sync/atomic"

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	ordersFilled     atomic.Uint64
	ordersRejected   atomic.Uint64
	cancelsRejected  atomic.Uint64
	snapshotsSent    atomic.Uint64
	updatesPublished atomic.Uint64
	broadcastErrors  atomic.Uint64
	messagesDropped  atomic.Uint64
	ticks            atomic.Uint64

	// Gauges
	activeSessions atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

func (m *Metrics) RecordOrderFilled()   { m.ordersFilled.Add(1) }
func (m *Metrics) RecordOrderRejected() { m.ordersRejected.Add(1) }
func (m *Metrics) RecordCancelReject()  { m.cancelsRejected.Add(1) }
func (m *Metrics) RecordSnapshot()      { m.snapshotsSent.Add(1) }
func (m *Metrics) RecordUpdate()        { m.updatesPublished.Add(1) }
func (m *Metrics) RecordBroadcastErr()  { m.broadcastErrors.Add(1) }
func (m *Metrics) RecordDropped()       { m.messagesDropped.Add(1) }
func (m *Metrics) RecordTick()          { m.ticks.Add(1) }

func (m *Metrics) SessionUp()   { m.activeSessions.Add(1) }
func (m *Metrics) SessionDown() { m.activeSessions.Add(-1) }

// MetricsSnapshot is a point-in-time copy for the health endpoint.
type MetricsSnapshot struct {
	OrdersFilled     uint64 `json:"orders_filled"`
	OrdersRejected   uint64 `json:"orders_rejected"`
	CancelsRejected  uint64 `json:"cancels_rejected"`
	SnapshotsSent    uint64 `json:"snapshots_sent"`
	UpdatesPublished uint64 `json:"updates_published"`
	BroadcastErrors  uint64 `json:"broadcast_errors"`
	MessagesDropped  uint64 `json:"messages_dropped"`
	Ticks            uint64 `json:"ticks"`
	ActiveSessions   int32  `json:"active_sessions"`
}

// Snapshot returns current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		OrdersFilled:     m.ordersFilled.Load(),
		OrdersRejected:   m.ordersRejected.Load(),
		CancelsRejected:  m.cancelsRejected.Load(),
		SnapshotsSent:    m.snapshotsSent.Load(),
		UpdatesPublished: m.updatesPublished.Load(),
		BroadcastErrors:  m.broadcastErrors.Load(),
		MessagesDropped:  m.messagesDropped.Load(),
		Ticks:            m.ticks.Load(),
		ActiveSessions:   m.activeSessions.Load(),
	}
}
