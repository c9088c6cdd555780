package domain

import "time"

// ExecutionRecord is the persisted form of an execution report.
type ExecutionRecord struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SessionID string `gorm:"index" json:"session_id"`
	OrderID   string `gorm:"index" json:"order_id"`
	ExecID    string `gorm:"uniqueIndex" json:"exec_id"`
	ClOrdID   string `gorm:"index" json:"cl_ord_id"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	ExecType  string `json:"exec_type"`
	OrdStatus string `json:"ord_status"`
	LastQty   int64  `json:"last_qty"`
	LastPx    string `json:"last_px"`
	CumQty    int64  `json:"cum_qty"`
	AvgPx     string `json:"avg_px"`
	LeavesQty int64  `json:"leaves_qty"`
	CreatedAt time.Time
}

// MessageLog is one journal row per significant protocol message, the same
// columns the original CSV log carried.
type MessageLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"index" json:"session_id"`
	Direction string    `json:"direction"` // "IN" or "OUT"
	MsgType   string    `json:"msg_type"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	OrderQty  int64     `json:"order_qty"`
	Price     string    `json:"price"`
	OrderID   string    `json:"order_id"`
	ExecType  string    `json:"exec_type"`
	OrdStatus string    `json:"ord_status"`
	CreatedAt time.Time `gorm:"index"`
}
