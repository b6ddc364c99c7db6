// README: Handler tests with stub services behind a gin test engine.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taxifare/internal/http/handlers"
	"taxifare/internal/maps"
	"taxifare/internal/modules/booking"
	"taxifare/internal/modules/fare"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/modules/routes"
	"taxifare/internal/types"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

// --- fare ---

type stubFare struct {
	got fare.Request
	err error
}

func (s *stubFare) Estimate(ctx context.Context, req fare.Request) (fare.Result, error) {
	s.got = req
	if s.err != nil {
		return fare.Result{}, s.err
	}
	return fare.Result{DistanceKm: 184.4, Price: types.INR(3228), Surge: 1.25, Category: req.Category}, nil
}

func TestFareHandler_Estimate(t *testing.T) {
	ist, _ := time.LoadLocation("Asia/Kolkata")
	svc := &stubFare{}
	r := newEngine()
	r.POST("/estimate", handlers.NewFareHandler(svc, ist).Estimate)

	w := doRequest(r, http.MethodPost, "/estimate", map[string]string{
		"pickup": "Tiruvannamalai", "drop": "Chennai", "category": "economy",
		"tripType": "oneWay", "date": "2026-03-14", "time": "10:00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var res fare.Result
	decode(t, w, &res)
	if res.Price.Amount != 3228 {
		t.Errorf("price = %d", res.Price.Amount)
	}
	if svc.got.Category != pricing.Sedan || svc.got.TripType != pricing.OneWay {
		t.Errorf("request = %+v", svc.got)
	}
	if svc.got.ScheduledAt == nil || svc.got.ScheduledAt.Hour() != 10 {
		t.Errorf("scheduledAt = %v", svc.got.ScheduledAt)
	}
}

func TestFareHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		body any
		err  error
		want int
	}{
		{"invalid json", "{", nil, http.StatusBadRequest},
		{"bad trip type", map[string]string{"pickup": "a", "drop": "b", "category": "Sedan", "tripType": "hourly"}, nil, http.StatusBadRequest},
		{"invalid request", map[string]string{"drop": "b", "category": "Sedan"}, fare.ErrInvalidRequest, http.StatusBadRequest},
		{"unknown category", map[string]string{"pickup": "a", "drop": "b", "category": "bus"}, fare.ErrUnknownCategory, http.StatusBadRequest},
		{"internal", map[string]string{"pickup": "a", "drop": "b", "category": "Sedan"}, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine()
			r.POST("/estimate", handlers.NewFareHandler(&stubFare{err: tt.err}, time.UTC).Estimate)
			if w := doRequest(r, http.MethodPost, "/estimate", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

// --- pricing ---

type stubPricing struct {
	table pricing.RateTable
	err   error
	set   pricing.RateTable
}

func (s *stubPricing) GetRateTable(ctx context.Context) pricing.RateTable {
	out := pricing.RateTable{}
	for k, v := range s.table {
		out[k] = v
	}
	return out
}

func (s *stubPricing) SetRateTable(ctx context.Context, t pricing.RateTable) error {
	s.set = t
	return s.err
}

func pricingEngine(svc *stubPricing) *gin.Engine {
	h := handlers.NewPricingHandler(svc)
	r := newEngine()
	r.GET("/pricing", h.Get)
	r.PUT("/pricing", h.Update)
	return r
}

func TestPricingHandler_Get(t *testing.T) {
	w := doRequest(pricingEngine(&stubPricing{table: pricing.DefaultRateTable()}), http.MethodGet, "/pricing", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var entries []pricing.Entry
	decode(t, w, &entries)
	if len(entries) != 4 || entries[0].Category != pricing.Sedan || entries[0].OneWay != 14 || entries[3].RoundTrip != 22 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestPricingHandler_Update(t *testing.T) {
	svc := &stubPricing{table: pricing.DefaultRateTable()}
	w := doRequest(pricingEngine(svc), http.MethodPut, "/pricing", `[{"category":"suv","oneWay":21}]`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if svc.set[pricing.SUV] != (pricing.Rates{OneWay: 21, RoundTrip: 18}) {
		t.Errorf("SUV = %+v, want one-way changed only", svc.set[pricing.SUV])
	}
	if svc.set[pricing.Sedan].OneWay != 14 {
		t.Errorf("Sedan changed: %+v", svc.set[pricing.Sedan])
	}
}

func TestPricingHandler_UpdateRemoteFailure(t *testing.T) {
	svc := &stubPricing{table: pricing.DefaultRateTable(), err: pricing.ErrRemoteUpdate}
	w := doRequest(pricingEngine(svc), http.MethodPut, "/pricing", `[{"category":"Sedan","oneWay":15,"roundTrip":14}]`)
	if w.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207", w.Code)
	}
	if !strings.Contains(w.Body.String(), "warning") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestPricingHandler_UpdateRejects(t *testing.T) {
	for name, body := range map[string]string{
		"negative":         `[{"category":"Sedan","oneWay":-1}]`,
		"unknown category": `[{"category":"bus","oneWay":10}]`,
		"not a list":       `{"category":"Sedan"}`,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &stubPricing{table: pricing.DefaultRateTable()}
			if w := doRequest(pricingEngine(svc), http.MethodPut, "/pricing", body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if svc.set != nil {
				t.Error("table saved after rejection")
			}
		})
	}
}

// --- admin ---

type stubIssuer struct{}

func (stubIssuer) GenerateToken(subject string) (string, time.Time, error) {
	return "tok-" + subject, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), nil
}

func TestAdminHandler_Login(t *testing.T) {
	r := newEngine()
	r.POST("/login", handlers.NewAdminHandler("s3cret", stubIssuer{}).Login)

	if w := doRequest(r, http.MethodPost, "/login", map[string]string{"password": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/login", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Errorf("empty password status = %d", w.Code)
	}
	w := doRequest(r, http.MethodPost, "/login", map[string]string{"password": "s3cret"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"token":"tok-admin"`) {
		t.Errorf("status = %d body=%s", w.Code, w.Body.String())
	}
}

// --- routes ---

type stubRoutes struct {
	deleted types.ID
}

func (s *stubRoutes) List(ctx context.Context) ([]routes.Route, error) {
	return []routes.Route{{ID: "r1", From: "Vellore", To: "Chennai", Category: pricing.SUV}}, nil
}

func (s *stubRoutes) ListPriced(ctx context.Context) ([]routes.PricedRoute, error) {
	res := fare.Result{Price: types.INR(1900)}
	return []routes.PricedRoute{{Route: routes.Route{ID: "r1"}, Fare: &res}}, nil
}

func (s *stubRoutes) Create(ctx context.Context, cmd routes.CreateCommand) (*routes.Route, error) {
	if cmd.From == "" {
		return nil, routes.ErrBadRequest
	}
	return &routes.Route{ID: "r2", From: cmd.From, To: cmd.To, Category: pricing.Sedan}, nil
}

func (s *stubRoutes) Delete(ctx context.Context, id types.ID) error {
	if id != "r1" {
		return routes.ErrNotFound
	}
	s.deleted = id
	return nil
}

func TestRoutesHandler(t *testing.T) {
	svc := &stubRoutes{}
	h := handlers.NewRoutesHandler(svc)
	r := newEngine()
	r.GET("/routes", h.ListPriced)
	r.GET("/admin/routes", h.List)
	r.POST("/admin/routes", h.Create)
	r.DELETE("/admin/routes/:id", h.Delete)

	w := doRequest(r, http.MethodGet, "/routes", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"amount":1900`) {
		t.Errorf("list priced = %d %s", w.Code, w.Body.String())
	}
	if w := doRequest(r, http.MethodGet, "/admin/routes", nil); w.Code != http.StatusOK {
		t.Errorf("list status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/admin/routes", map[string]string{"from": "Salem", "to": "Hosur", "category": "Sedan"}); w.Code != http.StatusCreated {
		t.Errorf("create status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/admin/routes", map[string]string{"to": "Hosur"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad create status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/admin/routes/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing delete status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/admin/routes/bad$id", nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid id status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/admin/routes/r1", nil); w.Code != http.StatusNoContent || svc.deleted != "r1" {
		t.Errorf("delete status = %d deleted=%q", w.Code, svc.deleted)
	}
}

// --- booking ---

type stubBooking struct {
	err error
}

func (s stubBooking) Submit(ctx context.Context, e booking.Enquiry) (booking.Receipt, error) {
	if s.err != nil {
		return booking.Receipt{}, s.err
	}
	return booking.Receipt{Booking: booking.Booking{ID: "b-1", Name: e.Name}, EmailSent: true}, nil
}

func TestBookingHandler_Create(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     int
		contains string
	}{
		{"ok", nil, http.StatusCreated, `"emailSent":true`},
		{
			"validation",
			&booking.ValidationError{Fields: []booking.FieldError{{Field: "phone", Message: "phone must be a 10-digit mobile number starting with 6-9"}}},
			http.StatusBadRequest,
			`"field":"phone"`,
		},
		{
			"upstream reason",
			&booking.SubmissionError{Upstream: "booking backend", Status: 400, Reason: "Pickup date is in the past"},
			http.StatusBadGateway,
			"Pickup date is in the past",
		},
		{
			"upstream down",
			&booking.SubmissionError{Upstream: "booking backend", Err: errors.New("dial tcp: refused")},
			http.StatusBadGateway,
			"please try again",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine()
			r.POST("/bookings", handlers.NewBookingHandler(stubBooking{err: tt.err}).Create)
			w := doRequest(r, http.MethodPost, "/bookings", map[string]any{"name": "Priya"})
			if w.Code != tt.want || !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("status = %d body=%s, want %d containing %q", w.Code, w.Body.String(), tt.want, tt.contains)
			}
		})
	}
}

// --- places ---

type stubPlaces struct {
	calls int
	err   error
}

func (s *stubPlaces) Autocomplete(ctx context.Context, text string) ([]maps.Suggestion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []maps.Suggestion{{Name: "Chennai", Label: "Chennai, Tamil Nadu"}}, nil
}

func TestPlacesHandler_Autocomplete(t *testing.T) {
	places := &stubPlaces{}
	r := newEngine()
	r.GET("/places", handlers.NewPlacesHandler(places).Autocomplete)

	w := doRequest(r, http.MethodGet, "/places?q=c", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" || places.calls != 0 {
		t.Errorf("short query: %d %s calls=%d", w.Code, w.Body.String(), places.calls)
	}
	w = doRequest(r, http.MethodGet, "/places?q=chen", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Chennai") {
		t.Errorf("query: %d %s", w.Code, w.Body.String())
	}

	failing := newEngine()
	failing.GET("/places", handlers.NewPlacesHandler(&stubPlaces{err: errors.New("quota")}).Autocomplete)
	if w := doRequest(failing, http.MethodGet, "/places?q=chen", nil); w.Code != http.StatusBadGateway {
		t.Errorf("upstream error status = %d", w.Code)
	}

	disabled := newEngine()
	disabled.GET("/places", handlers.NewPlacesHandler(nil).Autocomplete)
	if w := doRequest(disabled, http.MethodGet, "/places?q=chen", nil); w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("disabled: %d %s", w.Code, w.Body.String())
	}
}

// --- live ---

type stubLive struct {
	scheduled map[string]fare.Request
	outcomes  map[string]fare.Outcome
	forgotten []string
}

func (s *stubLive) Schedule(key string, req fare.Request) uint64 {
	s.scheduled[key] = req
	return 7
}

func (s *stubLive) Latest(key string) (fare.Outcome, bool) {
	out, ok := s.outcomes[key]
	return out, ok
}

func (s *stubLive) Forget(key string) {
	s.forgotten = append(s.forgotten, key)
	delete(s.outcomes, key)
}

func TestLiveHandler(t *testing.T) {
	res := fare.Result{Price: types.INR(500)}
	live := &stubLive{
		scheduled: map[string]fare.Request{},
		outcomes: map[string]fare.Outcome{
			"s-1":   {Seq: 7, Result: &res},
			"s-err": {Seq: 2, Err: fare.ErrUnknownCategory},
		},
	}
	h := handlers.NewLiveHandler(live, time.UTC)
	r := newEngine()
	r.POST("/live", h.Schedule)
	r.GET("/live/:session", h.Latest)
	r.DELETE("/live/:session", h.Forget)

	w := doRequest(r, http.MethodPost, "/live", map[string]string{"session": "s-1", "pickup": "Vellore", "drop": "Chennai", "category": "xl"})
	if w.Code != http.StatusAccepted || !strings.Contains(w.Body.String(), `"seq":7`) {
		t.Errorf("schedule: %d %s", w.Code, w.Body.String())
	}
	if live.scheduled["s-1"].Category != pricing.SUV || live.scheduled["s-1"].PickupText != "Vellore" {
		t.Errorf("scheduled = %+v", live.scheduled["s-1"])
	}
	if w := doRequest(r, http.MethodPost, "/live", map[string]string{"pickup": "Vellore"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing session status = %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/live/s-1", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"amount":500`) {
		t.Errorf("latest: %d %s", w.Code, w.Body.String())
	}
	w = doRequest(r, http.MethodGet, "/live/s-err", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), fare.ErrUnknownCategory.Error()) {
		t.Errorf("latest error: %d %s", w.Code, w.Body.String())
	}
	if w := doRequest(r, http.MethodGet, "/live/unknown", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d", w.Code)
	}

	if w := doRequest(r, http.MethodDelete, "/live/s-1", nil); w.Code != http.StatusNoContent {
		t.Errorf("forget status = %d", w.Code)
	}
	if len(live.forgotten) != 1 || live.forgotten[0] != "s-1" {
		t.Errorf("forgotten = %v", live.forgotten)
	}
	if w := doRequest(r, http.MethodGet, "/live/s-1", nil); w.Code != http.StatusNotFound {
		t.Errorf("latest after forget status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/live/bad%20id", nil); w.Code != http.StatusBadRequest {
		t.Errorf("forget invalid id status = %d", w.Code)
	}
}
