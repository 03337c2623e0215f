package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	facilityapp "carpark-cloud/internal/facility/application"
	facility "carpark-cloud/internal/facility/domain"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestHandler(t *testing.T, capacity int, clock facility.Clock) *Handler {
	t.Helper()
	ledger, err := facility.NewLedger(capacity, facility.DefaultPricingTable())
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	service, err := facilityapp.NewService(ledger, clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(service, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func TestHandleEntry(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	handler := newTestHandler(t, 2, clock)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles/entry",
		strings.NewReader(`{"vehicle_no":"KA01","vehicle_type":"car"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp facilityapp.AdmitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SlotID != 1 {
		t.Fatalf("slot mismatch: got=%d want=1", resp.SlotID)
	}
}

func TestHandleEntry_BadRequests(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing vehicle no", `{"vehicle_type":"car"}`, http.StatusBadRequest},
		{"invalid type", `{"vehicle_no":"TRK1","vehicle_type":"truck"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(t, 2, clock)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles/entry", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status mismatch: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func TestHandleEntry_FacilityFull(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	handler := newTestHandler(t, 1, clock)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles/entry",
		strings.NewReader(`{"vehicle_no":"KA01","vehicle_type":"car"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first entry failed: %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles/entry",
		strings.NewReader(`{"vehicle_no":"KA02","vehicle_type":"bike"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status mismatch: got=%d want=%d", rec.Code, http.StatusConflict)
	}
}

func TestHandleRelease(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	handler := newTestHandler(t, 2, clock)

	entry := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles/entry",
		strings.NewReader(`{"vehicle_no":"KA02","vehicle_type":"bike"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, entry)
	if rec.Code != http.StatusOK {
		t.Fatalf("entry failed: %d", rec.Code)
	}

	clock.now = clock.now.Add(3 * time.Hour)
	release := httptest.NewRequest(http.MethodPost, "/api/v1/slots/release",
		strings.NewReader(`{"slot":1}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, release)
	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Slot   int     `json:"slot"`
		Amount float64 `json:"amount"`
		Hours  float64 `json:"duration_hours"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Slot != 1 || resp.Amount != 15 || resp.Hours != 3 {
		t.Fatalf("receipt mismatch: %+v", resp)
	}
}

func TestHandleRelease_EmptySlot(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	handler := newTestHandler(t, 2, clock)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/release",
		strings.NewReader(`{"slot":2}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status mismatch: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleStatus(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	handler := newTestHandler(t, 3, clock)

	entry := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles/entry",
		strings.NewReader(`{"vehicle_no":"KA03","vehicle_type":"ev"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, entry)
	if rec.Code != http.StatusOK {
		t.Fatalf("entry failed: %d", rec.Code)
	}

	clock.now = clock.now.Add(30 * time.Minute)
	status := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, status)
	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: got=%d", rec.Code)
	}

	var resp struct {
		Total    int `json:"total"`
		Occupied int `json:"occupied"`
		Free     int `json:"free"`
		Slots    []struct {
			Slot      int     `json:"slot"`
			VehicleNo string  `json:"vehicle_no"`
			Type      string  `json:"vehicle_type"`
			Hours     float64 `json:"hours"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 || resp.Occupied != 1 || resp.Free != 2 {
		t.Fatalf("counts mismatch: %+v", resp)
	}
	if len(resp.Slots) != 1 || resp.Slots[0].VehicleNo != "KA03" || resp.Slots[0].Type != "ev" {
		t.Fatalf("slots mismatch: %+v", resp.Slots)
	}
	if resp.Slots[0].Hours != 0.5 {
		t.Fatalf("hours mismatch: got=%v want=0.5", resp.Slots[0].Hours)
	}
}

func TestRouting_UnknownPath(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	handler := newTestHandler(t, 2, clock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/entry", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status mismatch: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}
