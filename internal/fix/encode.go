package fix

import (
	"fmt"
	"time"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places rendered for price fields.
const PriceScale = 4

// Encode builds the wire message for one outbound value. Header routing
// fields are filled in by the engine when the message is sent to a target
// session.
func Encode(out domain.Outbound) (*quickfix.Message, error) {
	switch m := out.(type) {
	case *domain.ExecutionReport:
		return encodeExecutionReport(m), nil
	case *domain.CancelReject:
		return encodeCancelReject(m), nil
	case *domain.MarketDataSnapshot:
		return encodeSnapshot(m), nil
	default:
		return nil, fmt.Errorf("no encoding for message type %q", string(out.Type()))
	}
}

func encodeExecutionReport(rep *domain.ExecutionReport) *quickfix.Message {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_EXECUTION_REPORT))
	msg.Body.Set(field.NewOrderID(rep.OrderID))
	msg.Body.Set(field.NewExecID(rep.ExecID))
	msg.Body.Set(field.NewExecType(enum.ExecType(rep.ExecType)))
	msg.Body.Set(field.NewOrdStatus(enum.OrdStatus(rep.OrdStatus)))
	msg.Body.Set(field.NewClOrdID(rep.ClOrdID))
	msg.Body.Set(field.NewSymbol(rep.Symbol))
	msg.Body.Set(field.NewSide(enum.Side(rep.Side)))
	msg.Body.Set(field.NewLastQty(decimal.NewFromInt(rep.LastQty), 0))
	msg.Body.Set(field.NewLastPx(rep.LastPx, PriceScale))
	msg.Body.Set(field.NewCumQty(decimal.NewFromInt(rep.CumQty), 0))
	msg.Body.Set(field.NewAvgPx(rep.AvgPx, PriceScale))
	msg.Body.Set(field.NewLeavesQty(decimal.NewFromInt(rep.LeavesQty), 0))
	msg.Body.Set(field.NewTransactTime(time.Now().UTC()))
	if rep.Text != "" {
		msg.Body.Set(field.NewText(rep.Text))
	}
	return msg
}

func encodeCancelReject(rej *domain.CancelReject) *quickfix.Message {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_ORDER_CANCEL_REJECT))
	msg.Body.Set(field.NewOrderID(rej.OrderID))
	msg.Body.Set(field.NewClOrdID(rej.ClOrdID))
	msg.Body.Set(field.NewOrigClOrdID(rej.OrigClOrdID))
	msg.Body.Set(field.NewOrdStatus(enum.OrdStatus_REJECTED))
	msg.Body.Set(field.NewCxlRejResponseTo(enum.CxlRejResponseTo_ORDER_CANCEL_REQUEST))
	msg.Body.Set(field.NewCxlRejReason(enum.CxlRejReason(rej.Reason)))
	return msg
}

func encodeSnapshot(snap *domain.MarketDataSnapshot) *quickfix.Message {
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_MARKET_DATA_SNAPSHOT_FULL_REFRESH))
	msg.Body.Set(field.NewMDReqID(snap.MDReqID))
	msg.Body.Set(field.NewSymbol(snap.Symbol))

	entries := quickfix.NewRepeatingGroup(tag.NoMDEntries, quickfix.GroupTemplate{
		quickfix.GroupElement(tag.MDEntryType),
		quickfix.GroupElement(tag.MDEntryPx),
		quickfix.GroupElement(tag.MDEntrySize),
	})
	for _, level := range snap.Levels {
		g := entries.Add()
		g.Set(field.NewMDEntryType(enum.MDEntryType(level.Type)))
		g.Set(field.NewMDEntryPx(level.Price, PriceScale))
		g.Set(field.NewMDEntrySize(decimal.NewFromInt(level.Size), 0))
	}
	msg.Body.SetGroup(entries)
	return msg
}
