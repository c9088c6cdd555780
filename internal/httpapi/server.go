package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/engine"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/infra"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
)

// LocalSessionID identifies the session owned by the HTTP surface. It is
// created lazily by GET /start and its outbound traffic is mirrored to the
// websocket hub instead of a FIX connection.
const LocalSessionID domain.SessionID = "local-ui"

// Server exposes the gateway over REST for the browser UI. Trading and
// subscription requests are translated into the same inbound messages the
// FIX boundary produces and dispatched through the shared router.
type Server struct {
	addr     string
	registry *engine.SessionRegistry
	router   *engine.Router
	book     *engine.InstrumentBook
	hub      *Hub
	httpSrv  *http.Server
	orderSeq atomic.Uint64
}

// NewServer wires the REST handlers. The hub must already be routed as the
// sender for LocalSessionID.
func NewServer(addr string, allowedOrigins []string, registry *engine.SessionRegistry, router *engine.Router, book *engine.InstrumentBook, hub *Hub) *Server {
	s := &Server{
		addr:     addr,
		registry: registry,
		router:   router,
		book:     book,
		hub:      hub,
	}

	r := mux.NewRouter()
	r.HandleFunc("/start", s.handleStart).Methods("GET")
	r.HandleFunc("/order", s.loginRequired(s.handleOrder)).Methods("POST")
	r.HandleFunc("/subscribe", s.loginRequired(s.handleSubscribe)).Methods("POST")
	r.HandleFunc("/unsubscribe", s.loginRequired(s.handleUnsubscribe)).Methods("POST")
	r.HandleFunc("/order-status", s.loginRequired(s.handleOrderStatus)).Methods("POST")
	r.HandleFunc("/instruments", s.handleInstruments).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/ws", hub.HandleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until the listener fails. It blocks, so callers run it in a
// goroutine alongside the FIX acceptor.
func (s *Server) Start() error {
	slog.Info("🌐 HTTP API listening", slog.String("addr", s.addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) loginRequired(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.registry.IsLoggedOn(LocalSessionID) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "Not logged on to any session"})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if s.registry.IsLoggedOn(LocalSessionID) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Client already running"})
		return
	}
	s.registry.OnSessionCreated(LocalSessionID)
	s.registry.OnLogon(LocalSessionID)
	slog.Info("Local UI session logged on", slog.String("session", string(LocalSessionID)))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client started successfully"})
}

type orderPayload struct {
	Action   string `json:"action"`
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var p orderPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var side domain.Side
	switch p.Action {
	case "buy":
		side = domain.SideBuy
	case "sell":
		side = domain.SideSell
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "action must be buy or sell"})
		return
	}

	clOrdID := s.nextClOrdID()
	req := &domain.OrderRequest{
		Session:  LocalSessionID,
		ClOrdID:  clOrdID,
		Symbol:   p.Symbol,
		Side:     side,
		Quantity: p.Quantity,
		OrdType:  domain.OrderTypeMarket,
	}
	s.router.Dispatch(req)
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Order submitted",
		"cl_ord_id": clOrdID,
	})
}

type symbolPayload struct {
	Symbol string `json:"symbol"`
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	s.handleSubscription(w, r, domain.SubSnapshotUpdates, "Subscribed")
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	s.handleSubscription(w, r, domain.SubDisablePrevious, "Unsubscribed")
}

func (s *Server) handleSubscription(w http.ResponseWriter, r *http.Request, kind domain.SubscriptionType, verb string) {
	var p symbolPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Symbol == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "symbol is required"})
		return
	}
	if !s.book.Has(p.Symbol) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown instrument: " + p.Symbol})
		return
	}

	req := &domain.MarketDataRequest{
		Session: LocalSessionID,
		MDReqID: uuid.NewString(),
		SubType: kind,
		Symbols: []string{p.Symbol},
	}
	s.router.Dispatch(req)
	writeJSON(w, http.StatusOK, map[string]string{"message": verb + " " + p.Symbol})
}

type statusPayload struct {
	ClOrdID string `json:"cl_ord_id"`
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	var p statusPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.ClOrdID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cl_ord_id is required"})
		return
	}

	req := &domain.StatusRequest{
		Session: LocalSessionID,
		ClOrdID: p.ClOrdID,
	}
	s.router.Dispatch(req)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Status request submitted"})
}

type instrumentView struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

func (s *Server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	snapshot := s.book.Snapshot()
	out := make([]instrumentView, 0, len(snapshot))
	for _, inst := range snapshot {
		out = append(out, instrumentView{Symbol: inst.Symbol, Price: inst.Price})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"metrics": infra.GlobalMetrics.Snapshot(),
	})
}

func (s *Server) nextClOrdID() string {
	return fmt.Sprintf("ui-%d", s.orderSeq.Add(1))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}
