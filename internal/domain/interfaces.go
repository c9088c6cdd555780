package domain

// Sender delivers an outbound message over the transport owning the target
// session. Implementations must be safe for concurrent use; the engine never
// calls Send while holding a lock.
type Sender interface {
	Send(msg Outbound) error
}

// Journal records emitted execution reports and significant messages for
// offline inspection. Failures are logged, never fatal.
type Journal interface {
	RecordExecution(report *ExecutionReport) error
	RecordMessage(entry *MessageLog) error
}
