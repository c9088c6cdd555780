package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/domain"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/engine"

	"github.com/shopspring/decimal"
)

type recordingSender struct {
	sent []domain.Outbound
}

func (r *recordingSender) Send(out domain.Outbound) error {
	r.sent = append(r.sent, out)
	return nil
}

func newTestServer() (*Server, *recordingSender) {
	sender := &recordingSender{}
	book := engine.NewInstrumentBook([]domain.Instrument{
		{Symbol: "EUR/USD", Price: decimal.NewFromFloat(1.10)},
	}, decimal.NewFromFloat(0.01))
	registry := engine.NewSessionRegistry()
	execution := engine.NewExecutionEngine(registry, book, sender, nil)
	subscriptions := engine.NewSubscriptionService(registry, book, sender,
		decimal.NewFromFloat(0.01), 100)
	router := engine.NewRouter(execution, subscriptions)

	srv := NewServer(":0", nil, registry, router, book, NewHub())
	return srv, sender
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.httpSrv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_StartLifecycle(t *testing.T) {
	srv, _ := newTestServer()

	rec := do(t, srv, "GET", "/start", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "Client started successfully" {
		t.Errorf("Unexpected message %q", body["message"])
	}

	rec = do(t, srv, "GET", "/start", "")
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "Client already running" {
		t.Errorf("Unexpected message %q", body["message"])
	}
}

func TestServer_OrderRequiresStart(t *testing.T) {
	srv, sender := newTestServer()

	rec := do(t, srv, "POST", "/order", `{"action":"buy","symbol":"EUR/USD","quantity":100}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Not logged on to any session" {
		t.Errorf("Unexpected error %q", body["error"])
	}
	if len(sender.sent) != 0 {
		t.Error("Nothing should reach the engine before /start")
	}
}

func TestServer_OrderFlow(t *testing.T) {
	srv, sender := newTestServer()
	do(t, srv, "GET", "/start", "")

	rec := do(t, srv, "POST", "/order", `{"action":"buy","symbol":"EUR/USD","quantity":100}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(sender.sent) != 1 {
		t.Fatalf("Expected 1 engine reply, got %d", len(sender.sent))
	}
	rep, ok := sender.sent[0].(*domain.ExecutionReport)
	if !ok {
		t.Fatalf("Expected ExecutionReport, got %T", sender.sent[0])
	}
	if rep.Session != LocalSessionID || rep.OrdStatus != domain.OrdStatusFilled {
		t.Errorf("Unexpected report: %+v", rep)
	}
	if rep.LastQty != 100 || !rep.LastPx.Equal(decimal.NewFromFloat(1.10)) {
		t.Errorf("Unexpected fill: %+v", rep)
	}
}

func TestServer_OrderInvalidAction(t *testing.T) {
	srv, _ := newTestServer()
	do(t, srv, "GET", "/start", "")

	rec := do(t, srv, "POST", "/order", `{"action":"hold","symbol":"EUR/USD","quantity":100}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestServer_SubscribeFlow(t *testing.T) {
	srv, sender := newTestServer()
	do(t, srv, "GET", "/start", "")

	rec := do(t, srv, "POST", "/subscribe", `{"symbol":"EUR/USD"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("Expected immediate snapshot, got %d messages", len(sender.sent))
	}
	if _, ok := sender.sent[0].(*domain.MarketDataSnapshot); !ok {
		t.Errorf("Expected snapshot, got %T", sender.sent[0])
	}

	rec = do(t, srv, "POST", "/subscribe", `{"symbol":"BTC-USD"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown symbol, got %d", rec.Code)
	}
}

func TestServer_Instruments(t *testing.T) {
	srv, _ := newTestServer()

	rec := do(t, srv, "GET", "/instruments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Bad body: %v", err)
	}
	if len(list) != 1 || list[0]["symbol"] != "EUR/USD" {
		t.Errorf("Unexpected instruments: %v", list)
	}
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer()

	rec := do(t, srv, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Errorf("Unexpected health body: %v", body)
	}
}
