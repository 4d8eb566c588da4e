package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"furnace_forecast/internal/models"
)

// fakeTokenRepo keeps the credential pair in memory.
type fakeTokenRepo struct {
	token   models.OAuthToken
	loadErr error
	saved   []models.OAuthToken
}

func (f *fakeTokenRepo) Save(_ context.Context, t models.OAuthToken) error {
	f.saved = append(f.saved, t)
	f.token = t
	return nil
}

func (f *fakeTokenRepo) Load(_ context.Context) (models.OAuthToken, error) {
	return f.token, f.loadErr
}

const thermostatBody = `{
	"runtime": {"actualTemperature": 683, "desiredHeat": 720, "actualHumidity": 34, "connected": true},
	"settings": {"hvacMode": "heat", "heatDeadband": 10},
	"equipmentStatus": "auxHeat1,fan",
	"weather": {"temperature": 176, "tomorrowAvgTemp": 120},
	"intervalReport": {"rows": [
		{"auxHeat1": 300, "compCool1": 0, "zoneAveTemp": 681},
		{"auxHeat1": 0, "compCool1": 0, "zoneAveTemp": 685}
	]}
}`

func TestVendorClient_Fetch_NormalizesTenths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1/thermostat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer valid-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(thermostatBody))
	}))
	defer srv.Close()

	tokens := &fakeTokenRepo{token: models.OAuthToken{
		AccessToken:  "valid-token",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}}
	client := NewVendorClient(VendorConfig{BaseURL: srv.URL, AuthURL: srv.URL + "/token", APIKey: "key"}, tokens)

	tele, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	snap := tele.Snapshot
	if snap.IndoorTemp != 68.3 || snap.Setpoint != 72.0 || snap.OutdoorTemp != 17.6 || snap.Deadband != 1.0 {
		t.Fatalf("snapshot temps not normalized from tenths: %+v", snap)
	}
	if !snap.FurnaceRunning {
		t.Fatalf("expected FurnaceRunning for equipmentStatus containing auxHeat1")
	}
	if snap.Mode != "heat" || snap.Humidity != 34 {
		t.Fatalf("snapshot mode/humidity = %q/%d, want heat/34", snap.Mode, snap.Humidity)
	}

	if len(tele.Samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(tele.Samples))
	}
	if tele.Samples[0].HeatingSeconds != 300 || tele.Samples[0].IndoorTemp != 68.1 {
		t.Fatalf("first sample = %+v, want 300s heating at 68.1", tele.Samples[0])
	}
	if tele.Weather.TodayOutdoorTemp != 17.6 || tele.Weather.TomorrowOutdoorTemp != 12.0 {
		t.Fatalf("weather = %+v, want 17.6/12.0", tele.Weather)
	}
}

func TestVendorClient_Fetch_RefreshesExpiredToken(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.Form.Get("refresh_token"); got != "old-refresh" {
			t.Errorf("refresh_token = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-access","refresh_token":"new-refresh","expires_in":3600}`))
	})
	mux.HandleFunc("/1/thermostat", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer new-access" {
			t.Errorf("Authorization = %q, want refreshed token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(thermostatBody))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tokens := &fakeTokenRepo{token: models.OAuthToken{
		AccessToken:  "stale",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}}
	client := NewVendorClient(VendorConfig{BaseURL: srv.URL, AuthURL: srv.URL + "/token", APIKey: "key"}, tokens)

	if _, err := client.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if refreshCalls != 1 {
		t.Fatalf("refresh calls = %d, want 1", refreshCalls)
	}
	if len(tokens.saved) != 1 || tokens.saved[0].AccessToken != "new-access" {
		t.Fatalf("expected refreshed token cached, got %+v", tokens.saved)
	}
}

func TestVendorClient_Fetch_NoRefreshTokenFails(t *testing.T) {
	tokens := &fakeTokenRepo{} // empty credential pair
	client := NewVendorClient(VendorConfig{BaseURL: "http://localhost:0", AuthURL: "http://localhost:0"}, tokens)

	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error when no refresh token is cached")
	}
}

func TestMockSource_Deterministic(t *testing.T) {
	src := NewMockSource()

	a, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(a.Samples) != 288 {
		t.Fatalf("samples = %d, want a full 288-slot day", len(a.Samples))
	}
	if a.Snapshot.Deadband < 0 {
		t.Fatalf("deadband = %v, want >= 0", a.Snapshot.Deadband)
	}

	b, _ := src.Fetch(context.Background())
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs between fetches: %+v vs %+v", i, a.Samples[i], b.Samples[i])
		}
	}
}
