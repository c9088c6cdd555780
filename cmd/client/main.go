package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra/storage"

	"github.com/google/uuid"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"
)

// clientApp is the initiator-side protocol hook. Every received business
// message is journaled and summarized on stdout; commands are refused
// until the session is logged on.
type clientApp struct {
	loggedOn  atomic.Bool
	sessionID atomic.Value // quickfix.SessionID
	journal   *storage.Storage
}

func (a *clientApp) OnCreate(sid quickfix.SessionID) {
	a.sessionID.Store(sid)
}

func (a *clientApp) OnLogon(sid quickfix.SessionID) {
	a.sessionID.Store(sid)
	a.loggedOn.Store(true)
	fmt.Println(">> logged on:", sid.String())
}

func (a *clientApp) OnLogout(sid quickfix.SessionID) {
	a.loggedOn.Store(false)
	fmt.Println(">> logged out:", sid.String())
}

func (a *clientApp) ToAdmin(msg *quickfix.Message, sid quickfix.SessionID) {}

func (a *clientApp) FromAdmin(msg *quickfix.Message, sid quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

func (a *clientApp) ToApp(msg *quickfix.Message, sid quickfix.SessionID) error {
	return nil
}

func (a *clientApp) FromApp(msg *quickfix.Message, sid quickfix.SessionID) quickfix.MessageRejectError {
	msgType, err := msg.Header.GetString(tag.MsgType)
	if err != nil {
		return err
	}

	switch enum.MsgType(msgType) {
	case enum.MsgType_EXECUTION_REPORT:
		a.printExecutionReport(msg, sid)
	case enum.MsgType_ORDER_CANCEL_REJECT:
		a.printCancelReject(msg, sid)
	case enum.MsgType_MARKET_DATA_SNAPSHOT_FULL_REFRESH:
		a.printSnapshot(msg, sid)
	default:
		fmt.Printf("<< message type %s\n", msgType)
	}
	return nil
}

func (a *clientApp) printExecutionReport(msg *quickfix.Message, sid quickfix.SessionID) {
	get := func(t quickfix.Tag) string {
		v, _ := msg.Body.GetString(t)
		return v
	}
	fmt.Printf("<< exec report: order=%s cl_ord_id=%s %s %s qty=%s px=%s status=%s text=%q\n",
		get(tag.OrderID), get(tag.ClOrdID), get(tag.Symbol),
		domain.Side(get(tag.Side)).String(),
		get(tag.LastQty), get(tag.LastPx), get(tag.OrdStatus), get(tag.Text))

	qty, _ := strconv.ParseInt(get(tag.LastQty), 10, 64)
	a.record(&domain.MessageLog{
		SessionID: sid.String(),
		Direction: "IN",
		MsgType:   string(domain.MsgExecutionReport),
		Symbol:    get(tag.Symbol),
		Side:      domain.Side(get(tag.Side)).String(),
		OrderQty:  qty,
		Price:     get(tag.LastPx),
		OrderID:   get(tag.OrderID),
		ExecType:  get(tag.ExecType),
		OrdStatus: get(tag.OrdStatus),
	})
}

func (a *clientApp) printCancelReject(msg *quickfix.Message, sid quickfix.SessionID) {
	orderID, _ := msg.Body.GetString(tag.OrderID)
	origClOrdID, _ := msg.Body.GetString(tag.OrigClOrdID)
	fmt.Printf("<< cancel rejected: order=%s orig_cl_ord_id=%s\n", orderID, origClOrdID)

	a.record(&domain.MessageLog{
		SessionID: sid.String(),
		Direction: "IN",
		MsgType:   string(domain.MsgOrderCancelReject),
		OrderID:   orderID,
		OrdStatus: domain.OrdStatusRejected,
	})
}

func (a *clientApp) printSnapshot(msg *quickfix.Message, sid quickfix.SessionID) {
	symbol, _ := msg.Body.GetString(tag.Symbol)

	entries := quickfix.NewRepeatingGroup(tag.NoMDEntries, quickfix.GroupTemplate{
		quickfix.GroupElement(tag.MDEntryType),
		quickfix.GroupElement(tag.MDEntryPx),
		quickfix.GroupElement(tag.MDEntrySize),
	})
	if err := msg.Body.GetGroup(entries); err != nil {
		fmt.Printf("<< market data %s (unreadable entries)\n", symbol)
		return
	}

	var parts []string
	var lastPx string
	for i := 0; i < entries.Len(); i++ {
		g := entries.Get(i)
		entryType, _ := g.GetString(tag.MDEntryType)
		px, _ := g.GetString(tag.MDEntryPx)
		size, _ := g.GetString(tag.MDEntrySize)
		side := "bid"
		if domain.EntryType(entryType) == domain.EntryOffer {
			side = "offer"
		}
		parts = append(parts, fmt.Sprintf("%s %s x %s", side, px, size))
		lastPx = px
	}
	fmt.Printf("<< market data %s: %s\n", symbol, strings.Join(parts, ", "))

	a.record(&domain.MessageLog{
		SessionID: sid.String(),
		Direction: "IN",
		MsgType:   string(domain.MsgMarketDataSnapshot),
		Symbol:    symbol,
		Price:     lastPx,
	})
}

func (a *clientApp) record(entry *domain.MessageLog) {
	if a.journal == nil {
		return
	}
	if err := a.journal.RecordMessage(entry); err != nil {
		slog.Error("Journal write failed", slog.Any("error", err))
	}
}

func (a *clientApp) send(msg *quickfix.Message) error {
	if !a.loggedOn.Load() {
		return domain.ErrNoActiveSession
	}
	sid, _ := a.sessionID.Load().(quickfix.SessionID)
	return quickfix.SendToTarget(msg, sid)
}

func main() {
	cfgPath := "configs/client.cfg"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	journal, err := storage.NewStorage("data/client.db")
	if err != nil {
		slog.Error("❌ Cannot open journal", slog.Any("error", err))
		os.Exit(1)
	}
	defer journal.Close()

	app := &clientApp{journal: journal}

	settingsFile, err := os.Open(cfgPath)
	if err != nil {
		slog.Error("❌ Cannot open settings", slog.Any("error", err))
		os.Exit(1)
	}
	settings, err := quickfix.ParseSettings(settingsFile)
	settingsFile.Close()
	if err != nil {
		slog.Error("❌ Cannot parse settings", slog.Any("error", err))
		os.Exit(1)
	}

	initiator, err := quickfix.NewInitiator(app, quickfix.NewMemoryStoreFactory(), settings, quickfix.NewScreenLogFactory())
	if err != nil {
		slog.Error("❌ Cannot create initiator", slog.Any("error", err))
		os.Exit(1)
	}
	if err := initiator.Start(); err != nil {
		slog.Error("❌ Cannot start initiator", slog.Any("error", err))
		os.Exit(1)
	}
	defer initiator.Stop()

	fmt.Println("commands: buy|sell -symbol S -quantity N, subscribe|unsubscribe -symbol S,")
	fmt.Println("          cancel -orig CLORDID, status -id CLORDID, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verb, args := parseCommand(line)
		if verb == "quit" {
			break
		}
		if err := runCommand(app, verb, args); err != nil {
			fmt.Println("!! error:", err)
		}
	}
}

// parseCommand splits "buy -symbol EUR/USD -quantity 100" into the verb
// and its flag pairs.
func parseCommand(line string) (string, map[string]string) {
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := make(map[string]string)
	for i := 1; i+1 < len(fields); i += 2 {
		key := strings.TrimPrefix(fields[i], "-")
		args[key] = fields[i+1]
	}
	return verb, args
}

func runCommand(app *clientApp, verb string, args map[string]string) error {
	switch verb {
	case "buy":
		return sendOrder(app, enum.Side_BUY, args)
	case "sell":
		return sendOrder(app, enum.Side_SELL, args)
	case "subscribe":
		return sendMarketDataRequest(app, enum.SubscriptionRequestType_SNAPSHOT_PLUS_UPDATES, args)
	case "unsubscribe":
		return sendMarketDataRequest(app, enum.SubscriptionRequestType_DISABLE_PREVIOUS_SNAPSHOT_PLUS_UPDATE_REQUEST, args)
	case "cancel":
		return sendCancel(app, args)
	case "status":
		return sendStatus(app, args)
	default:
		return fmt.Errorf("unknown command %q", verb)
	}
}

func sendOrder(app *clientApp, side enum.Side, args map[string]string) error {
	symbol := args["symbol"]
	if symbol == "" {
		return fmt.Errorf("-symbol is required")
	}
	qty, err := strconv.ParseInt(args["quantity"], 10, 64)
	if err != nil || qty <= 0 {
		return fmt.Errorf("-quantity must be a positive integer")
	}

	clOrdID := uuid.NewString()
	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_ORDER_SINGLE))
	msg.Body.Set(field.NewClOrdID(clOrdID))
	msg.Body.Set(field.NewSymbol(symbol))
	msg.Body.Set(field.NewSide(side))
	msg.Body.Set(field.NewOrderQty(decimal.NewFromInt(qty), 0))
	msg.Body.Set(field.NewOrdType(enum.OrdType_MARKET))
	msg.Body.Set(field.NewTransactTime(time.Now().UTC()))

	if err := app.send(msg); err != nil {
		return err
	}
	fmt.Println(">> order sent, cl_ord_id =", clOrdID)
	return nil
}

func sendMarketDataRequest(app *clientApp, subType enum.SubscriptionRequestType, args map[string]string) error {
	symbol := args["symbol"]
	if symbol == "" {
		return fmt.Errorf("-symbol is required")
	}

	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_MARKET_DATA_REQUEST))
	msg.Body.Set(field.NewMDReqID(uuid.NewString()))
	msg.Body.Set(field.NewSubscriptionRequestType(subType))
	msg.Body.Set(field.NewMarketDepth(0))

	entryTypes := quickfix.NewRepeatingGroup(tag.NoMDEntryTypes, quickfix.GroupTemplate{
		quickfix.GroupElement(tag.MDEntryType),
	})
	entryTypes.Add().Set(field.NewMDEntryType(enum.MDEntryType_BID))
	entryTypes.Add().Set(field.NewMDEntryType(enum.MDEntryType_OFFER))
	msg.Body.SetGroup(entryTypes)

	related := quickfix.NewRepeatingGroup(tag.NoRelatedSym, quickfix.GroupTemplate{
		quickfix.GroupElement(tag.Symbol),
	})
	related.Add().Set(field.NewSymbol(symbol))
	msg.Body.SetGroup(related)

	return app.send(msg)
}

func sendCancel(app *clientApp, args map[string]string) error {
	orig := args["orig"]
	if orig == "" {
		return fmt.Errorf("-orig is required")
	}

	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_ORDER_CANCEL_REQUEST))
	msg.Body.Set(field.NewOrigClOrdID(orig))
	msg.Body.Set(field.NewClOrdID(uuid.NewString()))
	if symbol := args["symbol"]; symbol != "" {
		msg.Body.Set(field.NewSymbol(symbol))
	}
	if side := args["side"]; side != "" {
		if strings.ToLower(side) == "sell" {
			msg.Body.Set(field.NewSide(enum.Side_SELL))
		} else {
			msg.Body.Set(field.NewSide(enum.Side_BUY))
		}
	}
	msg.Body.Set(field.NewTransactTime(time.Now().UTC()))
	return app.send(msg)
}

func sendStatus(app *clientApp, args map[string]string) error {
	id := args["id"]
	if id == "" {
		return fmt.Errorf("-id is required")
	}

	msg := quickfix.NewMessage()
	msg.Header.Set(field.NewMsgType(enum.MsgType_ORDER_STATUS_REQUEST))
	msg.Body.Set(field.NewClOrdID(id))
	return app.send(msg)
}
