package engine

import (
	"testing"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/shopspring/decimal"
)

func newTestEngine() (*ExecutionEngine, *captureSender) {
	sender := &captureSender{}
	registry := loggedOnRegistry("s1")
	engine := NewExecutionEngine(registry, newTestBook(), sender, nil)
	return engine, sender
}

func TestExecutionEngine_FullImmediateFill(t *testing.T) {
	engine, sender := newTestEngine()

	err := engine.HandleNewOrder(&domain.OrderRequest{
		Session:  "s1",
		ClOrdID:  "c1",
		Symbol:   "EUR/USD",
		Side:     domain.SideBuy,
		Quantity: 250,
		OrdType:  domain.OrderTypeMarket,
	})
	if err != nil {
		t.Fatalf("HandleNewOrder failed: %v", err)
	}

	rep, ok := sender.last().(*domain.ExecutionReport)
	if !ok {
		t.Fatalf("Expected ExecutionReport, got %T", sender.last())
	}
	if rep.OrdStatus != domain.OrdStatusFilled || rep.ExecType != domain.ExecTypeTrade {
		t.Errorf("Expected filled trade, got status=%s exec=%s", rep.OrdStatus, rep.ExecType)
	}
	if rep.LastQty != 250 || rep.CumQty != 250 || rep.LeavesQty != 0 {
		t.Errorf("Fill must be total: last=%d cum=%d leaves=%d", rep.LastQty, rep.CumQty, rep.LeavesQty)
	}
	px := decimal.NewFromFloat(1.10)
	if !rep.LastPx.Equal(px) || !rep.AvgPx.Equal(px) {
		t.Errorf("Fill must be at book price: last=%s avg=%s", rep.LastPx, rep.AvgPx)
	}
	if rep.ClOrdID != "c1" || rep.OrderID == "" || rep.ExecID == "" {
		t.Errorf("Report ids incomplete: %+v", rep)
	}
}

func TestExecutionEngine_RejectUnknownInstrument(t *testing.T) {
	engine, sender := newTestEngine()

	engine.HandleNewOrder(&domain.OrderRequest{
		Session: "s1", ClOrdID: "c1", Symbol: "BTC-USD",
		Side: domain.SideBuy, Quantity: 10,
	})

	rep := sender.last().(*domain.ExecutionReport)
	if rep.OrdStatus != domain.OrdStatusRejected || rep.ExecType != domain.ExecTypeRejected {
		t.Errorf("Expected rejection, got status=%s exec=%s", rep.OrdStatus, rep.ExecType)
	}
	if rep.Text != "unknown instrument" {
		t.Errorf("Unexpected reject text %q", rep.Text)
	}
}

func TestExecutionEngine_RejectInvalidQuantity(t *testing.T) {
	engine, sender := newTestEngine()

	for _, qty := range []int64{0, -5} {
		engine.HandleNewOrder(&domain.OrderRequest{
			Session: "s1", ClOrdID: "c1", Symbol: "EUR/USD",
			Side: domain.SideSell, Quantity: qty,
		})
		rep := sender.last().(*domain.ExecutionReport)
		if rep.OrdStatus != domain.OrdStatusRejected {
			t.Errorf("Quantity %d should be rejected, got %s", qty, rep.OrdStatus)
		}
	}
}

func TestExecutionEngine_RequiresLogon(t *testing.T) {
	sender := &captureSender{}
	registry := NewSessionRegistry()
	registry.OnSessionCreated("s1")
	engine := NewExecutionEngine(registry, newTestBook(), sender, nil)

	err := engine.HandleNewOrder(&domain.OrderRequest{
		Session: "s1", ClOrdID: "c1", Symbol: "EUR/USD",
		Side: domain.SideBuy, Quantity: 10,
	})
	if err != domain.ErrNoActiveSession {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}
	if len(sender.messages()) != 0 {
		t.Error("Nothing should be sent before logon")
	}
}

func TestExecutionEngine_CancelAlwaysRejected(t *testing.T) {
	engine, sender := newTestEngine()

	// Fill an order first; even a known order cannot be cancelled.
	engine.HandleNewOrder(&domain.OrderRequest{
		Session: "s1", ClOrdID: "c1", Symbol: "EUR/USD",
		Side: domain.SideBuy, Quantity: 10,
	})

	err := engine.HandleCancel(&domain.CancelRequest{
		Session: "s1", ClOrdID: "c2", OrigClOrdID: "c1",
	})
	if err != nil {
		t.Fatalf("HandleCancel failed: %v", err)
	}

	rej, ok := sender.last().(*domain.CancelReject)
	if !ok {
		t.Fatalf("Expected CancelReject, got %T", sender.last())
	}
	if rej.OrigClOrdID != "c1" || rej.ClOrdID != "c2" {
		t.Errorf("Reject must echo request ids: %+v", rej)
	}
	if rej.Reason != domain.CxlRejReasonOther {
		t.Errorf("Expected reason %s, got %s", domain.CxlRejReasonOther, rej.Reason)
	}
}

func TestExecutionEngine_StatusResendsLastReport(t *testing.T) {
	engine, sender := newTestEngine()

	engine.HandleNewOrder(&domain.OrderRequest{
		Session: "s1", ClOrdID: "c1", Symbol: "EUR/USD",
		Side: domain.SideBuy, Quantity: 10,
	})
	first := sender.last().(*domain.ExecutionReport)

	engine.HandleStatus(&domain.StatusRequest{Session: "s1", ClOrdID: "c1"})
	second := sender.last().(*domain.ExecutionReport)

	if second.OrderID != first.OrderID || second.OrdStatus != first.OrdStatus {
		t.Errorf("Status must repeat the last report: %+v vs %+v", first, second)
	}
	if second.ExecID == first.ExecID {
		t.Error("Re-sent report must carry a fresh ExecID")
	}
}

func TestExecutionEngine_StatusUnknownOrder(t *testing.T) {
	engine, sender := newTestEngine()

	engine.HandleStatus(&domain.StatusRequest{Session: "s1", ClOrdID: "nope"})

	rep := sender.last().(*domain.ExecutionReport)
	if rep.OrdStatus != domain.OrdStatusRejected || rep.OrderID != "NONE" {
		t.Errorf("Expected unknown-order rejection, got %+v", rep)
	}
	if rep.Text != "unknown order" {
		t.Errorf("Unexpected text %q", rep.Text)
	}
}

func TestExecutionEngine_ClOrdIDScopedPerSession(t *testing.T) {
	sender := &captureSender{}
	registry := loggedOnRegistry("s1", "s2")
	engine := NewExecutionEngine(registry, newTestBook(), sender, nil)

	// The same ClOrdID on two sessions identifies two different orders.
	engine.HandleNewOrder(&domain.OrderRequest{
		Session: "s1", ClOrdID: "c1", Symbol: "EUR/USD",
		Side: domain.SideBuy, Quantity: 10,
	})
	engine.HandleNewOrder(&domain.OrderRequest{
		Session: "s2", ClOrdID: "c1", Symbol: "AAPL",
		Side: domain.SideSell, Quantity: 20,
	})

	r1, ok := engine.LastReport("s1", "c1")
	if !ok || r1.Symbol != "EUR/USD" {
		t.Errorf("Session s1 report wrong: %+v", r1)
	}
	r2, ok := engine.LastReport("s2", "c1")
	if !ok || r2.Symbol != "AAPL" {
		t.Errorf("Session s2 report wrong: %+v", r2)
	}
	if r1.OrderID == r2.OrderID {
		t.Error("Distinct orders must get distinct OrderIDs")
	}
}
