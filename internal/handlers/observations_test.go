package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/service"
)

func TestObservationsHandler_FiltersForwarded(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	obs := &mockObservationLog{resp: []models.Observation{
		{ObservationID: "a", Type: "POLL", Description: "poll ok"},
		{ObservationID: "b", Type: "POLL", Description: "poll ok"},
	}}
	s := &service.Service{Authorization: auth, ObservationLog: obs}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/observations/?from=2026-08-01&to=2026-08-02&type=poll", nil)
	addAuth(req)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var out struct {
		Count        int                  `json:"count"`
		Observations []models.Observation `json:"observations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Observations) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}

	// Type is uppercased, 'to' becomes end-of-day inclusive.
	if obs.lastType != "POLL" {
		t.Fatalf("type: got %q", obs.lastType)
	}
	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !obs.lastFrom.Equal(wantFrom) {
		t.Fatalf("from: got %v", obs.lastFrom)
	}
	wantTo := time.Date(2026, 8, 2, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !obs.lastTo.Equal(wantTo) {
		t.Fatalf("to: got %v, want %v", obs.lastTo, wantTo)
	}
}

func TestObservationsHandler_BadTimes(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	obs := &mockObservationLog{}
	s := &service.Service{Authorization: auth, ObservationLog: obs}
	r := newTestRouter(s)

	cases := []struct {
		name  string
		query string
	}{
		{"garbage from", "?from=notatime"},
		{"garbage to", "?to=alsonot"},
		{"inverted range", "?from=2026-08-10&to=2026-08-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/observations/"+tc.query, nil)
			addAuth(req)
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (body=%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestParseQueryTime_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-08-27T15:04:05Z", time.Date(2026, 8, 27, 15, 4, 5, 0, time.UTC)},
		{"2026-08-27 15:04:05", time.Date(2026, 8, 27, 15, 4, 5, 0, time.UTC)},
		{"2026-08-27", time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := parseQueryTime(tc.in)
		if err != nil {
			t.Fatalf("parseQueryTime(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parseQueryTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := parseQueryTime("31/12/2026"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}
