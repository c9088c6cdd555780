package fix

import (
	"errors"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"

	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
)

var errEmptyRelatedSym = errors.New("empty repeating group")

// Decode performs the one-shot typed decoding of an inbound application
// message. Handlers downstream consume the typed value and never touch raw
// fields again. A missing required field yields a DecodeError; the caller
// logs it and drops the message.
func Decode(msg *quickfix.Message, session domain.SessionID) (domain.Inbound, error) {
	msgType, err := msg.Header.GetString(tag.MsgType)
	if err != nil {
		return nil, domain.NewDecodeError("", "MsgType(35)", err)
	}

	switch domain.MsgType(msgType) {
	case domain.MsgNewOrderSingle:
		return decodeNewOrder(msg, session)
	case domain.MsgOrderCancelRequest:
		return decodeCancel(msg, session)
	case domain.MsgOrderStatusRequest:
		return decodeStatus(msg, session)
	case domain.MsgMarketDataRequest:
		return decodeMarketDataRequest(msg, session)
	default:
		return &domain.AdminMessage{Session: session, MsgType: domain.MsgType(msgType)}, nil
	}
}

func decodeNewOrder(msg *quickfix.Message, session domain.SessionID) (*domain.OrderRequest, error) {
	clOrdID, err := msg.Body.GetString(tag.ClOrdID)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgNewOrderSingle, "ClOrdID(11)", err)
	}
	symbol, err := msg.Body.GetString(tag.Symbol)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgNewOrderSingle, "Symbol(55)", err)
	}
	side, err := msg.Body.GetString(tag.Side)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgNewOrderSingle, "Side(54)", err)
	}
	qty, err := msg.Body.GetInt(tag.OrderQty)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgNewOrderSingle, "OrderQty(38)", err)
	}

	// OrdType is optional on the way in; everything executes at the book
	// price regardless.
	ordType := string(domain.OrderTypeMarket)
	if v, err := msg.Body.GetString(tag.OrdType); err == nil {
		ordType = v
	}

	return &domain.OrderRequest{
		Session:  session,
		ClOrdID:  clOrdID,
		Symbol:   symbol,
		Side:     domain.Side(side),
		Quantity: int64(qty),
		OrdType:  domain.OrderType(ordType),
	}, nil
}

func decodeCancel(msg *quickfix.Message, session domain.SessionID) (*domain.CancelRequest, error) {
	origClOrdID, err := msg.Body.GetString(tag.OrigClOrdID)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgOrderCancelRequest, "OrigClOrdID(41)", err)
	}
	clOrdID, err := msg.Body.GetString(tag.ClOrdID)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgOrderCancelRequest, "ClOrdID(11)", err)
	}

	req := &domain.CancelRequest{
		Session:     session,
		ClOrdID:     clOrdID,
		OrigClOrdID: origClOrdID,
	}
	if v, err := msg.Body.GetString(tag.Symbol); err == nil {
		req.Symbol = v
	}
	if v, err := msg.Body.GetString(tag.Side); err == nil {
		req.Side = domain.Side(v)
	}
	return req, nil
}

func decodeStatus(msg *quickfix.Message, session domain.SessionID) (*domain.StatusRequest, error) {
	clOrdID, err := msg.Body.GetString(tag.ClOrdID)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgOrderStatusRequest, "ClOrdID(11)", err)
	}

	req := &domain.StatusRequest{Session: session, ClOrdID: clOrdID}
	if v, err := msg.Body.GetString(tag.Symbol); err == nil {
		req.Symbol = v
	}
	if v, err := msg.Body.GetString(tag.Side); err == nil {
		req.Side = domain.Side(v)
	}
	return req, nil
}

func decodeMarketDataRequest(msg *quickfix.Message, session domain.SessionID) (*domain.MarketDataRequest, error) {
	mdReqID, err := msg.Body.GetString(tag.MDReqID)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgMarketDataRequest, "MDReqID(262)", err)
	}
	subType, err := msg.Body.GetString(tag.SubscriptionRequestType)
	if err != nil {
		return nil, domain.NewDecodeError(domain.MsgMarketDataRequest, "SubscriptionRequestType(263)", err)
	}

	relatedSym := quickfix.NewRepeatingGroup(tag.NoRelatedSym,
		quickfix.GroupTemplate{quickfix.GroupElement(tag.Symbol)})
	if err := msg.Body.GetGroup(relatedSym); err != nil {
		return nil, domain.NewDecodeError(domain.MsgMarketDataRequest, "NoRelatedSym(146)", err)
	}

	symbols := make([]string, 0, relatedSym.Len())
	for i := 0; i < relatedSym.Len(); i++ {
		sym, err := relatedSym.Get(i).GetString(tag.Symbol)
		if err != nil {
			return nil, domain.NewDecodeError(domain.MsgMarketDataRequest, "Symbol(55)", err)
		}
		symbols = append(symbols, sym)
	}
	if len(symbols) == 0 {
		return nil, domain.NewDecodeError(domain.MsgMarketDataRequest, "NoRelatedSym(146)", errEmptyRelatedSym)
	}

	return &domain.MarketDataRequest{
		Session: session,
		MDReqID: mdReqID,
		SubType: domain.SubscriptionType(subType),
		Symbols: symbols,
	}, nil
}
