package fix

import (
	"errors"
	"testing"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"
)

func TestDecode_NewOrderSingle(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_ORDER_SINGLE))
	msg.Body.Set(field.NewClOrdID("c1"))
	msg.Body.Set(field.NewSymbol("EUR/USD"))
	msg.Body.Set(field.NewSide(enum.Side_BUY))
	msg.Body.Set(field.NewOrderQty(decimal.NewFromInt(100), 0))

	inbound, err := Decode(msg, "s1")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	req, ok := inbound.(*domain.OrderRequest)
	if !ok {
		t.Fatalf("Expected OrderRequest, got %T", inbound)
	}
	if req.Session != "s1" || req.ClOrdID != "c1" || req.Symbol != "EUR/USD" {
		t.Errorf("Unexpected request: %+v", req)
	}
	if req.Side != domain.SideBuy || req.Quantity != 100 {
		t.Errorf("Unexpected side/qty: %+v", req)
	}
	if req.OrdType != domain.OrderTypeMarket {
		t.Errorf("Missing OrdType should default to market, got %s", req.OrdType)
	}
}

func TestDecode_NewOrderMissingField(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_ORDER_SINGLE))
	msg.Body.Set(field.NewClOrdID("c1"))
	// Symbol, Side and OrderQty missing.

	_, err := Decode(msg, "s1")
	if err == nil {
		t.Fatal("Expected decode error")
	}
	var decodeErr *domain.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected DecodeError, got %T", err)
	}
}

func TestDecode_CancelRequest(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_ORDER_CANCEL_REQUEST))
	msg.Body.Set(field.NewOrigClOrdID("c1"))
	msg.Body.Set(field.NewClOrdID("c2"))

	inbound, err := Decode(msg, "s1")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	req, ok := inbound.(*domain.CancelRequest)
	if !ok {
		t.Fatalf("Expected CancelRequest, got %T", inbound)
	}
	if req.OrigClOrdID != "c1" || req.ClOrdID != "c2" {
		t.Errorf("Unexpected request: %+v", req)
	}
}

func TestDecode_MarketDataRequest(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_MARKET_DATA_REQUEST))
	msg.Body.Set(field.NewMDReqID("req-1"))
	msg.Body.Set(field.NewSubscriptionRequestType(enum.SubscriptionRequestType_SNAPSHOT_PLUS_UPDATES))

	related := quickfix.NewRepeatingGroup(tag.NoRelatedSym,
		quickfix.GroupTemplate{quickfix.GroupElement(tag.Symbol)})
	related.Add().Set(field.NewSymbol("EUR/USD"))
	related.Add().Set(field.NewSymbol("AAPL"))
	msg.Body.SetGroup(related)

	inbound, err := Decode(msg, "s1")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	req, ok := inbound.(*domain.MarketDataRequest)
	if !ok {
		t.Fatalf("Expected MarketDataRequest, got %T", inbound)
	}
	if req.MDReqID != "req-1" || req.SubType != domain.SubSnapshotUpdates {
		t.Errorf("Unexpected request: %+v", req)
	}
	if len(req.Symbols) != 2 || req.Symbols[0] != "EUR/USD" || req.Symbols[1] != "AAPL" {
		t.Errorf("Unexpected symbols: %v", req.Symbols)
	}
}

func TestDecode_MarketDataRequestNoSymbols(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_MARKET_DATA_REQUEST))
	msg.Body.Set(field.NewMDReqID("req-1"))
	msg.Body.Set(field.NewSubscriptionRequestType(enum.SubscriptionRequestType_SNAPSHOT))

	if _, err := Decode(msg, "s1"); err == nil {
		t.Fatal("Expected decode error for empty NoRelatedSym")
	}
}

func TestDecode_AdminMessage(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_HEARTBEAT))

	inbound, err := Decode(msg, "s1")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	admin, ok := inbound.(*domain.AdminMessage)
	if !ok {
		t.Fatalf("Expected AdminMessage, got %T", inbound)
	}
	if admin.MsgType != domain.MsgHeartbeat {
		t.Errorf("Expected heartbeat, got %s", admin.MsgType)
	}
}

func TestEncode_ExecutionReport(t *testing.T) {
	report := &domain.ExecutionReport{
		Session:   "s1",
		OrderID:   "100001",
		ExecID:    "exec-1",
		ClOrdID:   "c1",
		Symbol:    "EUR/USD",
		Side:      domain.SideBuy,
		ExecType:  domain.ExecTypeTrade,
		OrdStatus: domain.OrdStatusFilled,
		LastQty:   100,
		LastPx:    decimal.NewFromFloat(1.10),
		CumQty:    100,
		AvgPx:     decimal.NewFromFloat(1.10),
		LeavesQty: 0,
	}

	msg, err := Encode(report)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	msgType, _ := msg.Header.GetString(tag.MsgType)
	if msgType != "8" {
		t.Errorf("Expected MsgType 8, got %s", msgType)
	}
	for _, check := range []struct {
		tag  quickfix.Tag
		want string
	}{
		{tag.OrderID, "100001"},
		{tag.ClOrdID, "c1"},
		{tag.Symbol, "EUR/USD"},
		{tag.Side, "1"},
		{tag.ExecType, "F"},
		{tag.OrdStatus, "2"},
		{tag.LastPx, "1.1000"},
		{tag.LeavesQty, "0"},
	} {
		got, err := msg.Body.GetString(check.tag)
		if err != nil {
			t.Errorf("Missing tag %d: %v", check.tag, err)
			continue
		}
		if got != check.want {
			t.Errorf("Tag %d: expected %s, got %s", check.tag, check.want, got)
		}
	}
}

func TestEncode_CancelReject(t *testing.T) {
	msg, err := Encode(&domain.CancelReject{
		Session:     "s1",
		OrderID:     "100002",
		ClOrdID:     "c2",
		OrigClOrdID: "c1",
		Reason:      domain.CxlRejReasonOther,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	msgType, _ := msg.Header.GetString(tag.MsgType)
	if msgType != "9" {
		t.Errorf("Expected MsgType 9, got %s", msgType)
	}
	if v, _ := msg.Body.GetString(tag.OrigClOrdID); v != "c1" {
		t.Errorf("Expected OrigClOrdID c1, got %s", v)
	}
	if v, _ := msg.Body.GetString(tag.CxlRejReason); v != "99" {
		t.Errorf("Expected reason 99, got %s", v)
	}
}

func TestEncode_Snapshot(t *testing.T) {
	px := decimal.NewFromFloat(1.10)
	spread := decimal.NewFromFloat(0.01)
	msg, err := Encode(&domain.MarketDataSnapshot{
		Session: "s1",
		MDReqID: "req-1",
		Symbol:  "EUR/USD",
		Price:   px,
		Levels: []domain.BookLevel{
			{Type: domain.EntryBid, Price: px.Sub(spread), Size: 100},
			{Type: domain.EntryOffer, Price: px.Add(spread), Size: 100},
		},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	msgType, _ := msg.Header.GetString(tag.MsgType)
	if msgType != "W" {
		t.Errorf("Expected MsgType W, got %s", msgType)
	}

	entries := quickfix.NewRepeatingGroup(tag.NoMDEntries, quickfix.GroupTemplate{
		quickfix.GroupElement(tag.MDEntryType),
		quickfix.GroupElement(tag.MDEntryPx),
		quickfix.GroupElement(tag.MDEntrySize),
	})
	if err := msg.Body.GetGroup(entries); err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if entries.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", entries.Len())
	}

	bidPx, _ := entries.Get(0).GetString(tag.MDEntryPx)
	offerPx, _ := entries.Get(1).GetString(tag.MDEntryPx)
	if bidPx != "1.0900" || offerPx != "1.1100" {
		t.Errorf("Expected 1.0900/1.1100, got %s/%s", bidPx, offerPx)
	}
}

func TestEncode_UnsupportedType(t *testing.T) {
	if _, err := Encode(unsupportedOutbound{}); err == nil {
		t.Fatal("Expected error for unsupported outbound type")
	}
}

type unsupportedOutbound struct{}

func (unsupportedOutbound) Target() domain.SessionID { return "s1" }
func (unsupportedOutbound) Type() domain.MsgType     { return "X" }
