package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"
)

// VendorConfig points the client at the thermostat vendor's cloud API.
type VendorConfig struct {
	BaseURL string        // e.g. https://api.vendor.example
	AuthURL string        // OAuth token endpoint
	APIKey  string        // OAuth client id
	Timeout time.Duration // per-request timeout
}

// VendorClient polls the vendor cloud API. It owns the OAuth refresh dance
// and the wire-format normalization; everything past Fetch is plain models.
type VendorClient struct {
	cfg    VendorConfig
	http   *http.Client
	tokens repository.TokenRepo
}

func NewVendorClient(cfg VendorConfig, tokens repository.TokenRepo) *VendorClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &VendorClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
	}
}

var _ Source = (*VendorClient)(nil)

// ---- wire format ----
// Temperatures arrive in tenths of a degree Fahrenheit and are normalized
// to decimal degrees on decode.

type vendorPayload struct {
	Runtime struct {
		ActualTemperature int  `json:"actualTemperature"` // tenths °F
		DesiredHeat       int  `json:"desiredHeat"`       // tenths °F
		ActualHumidity    int  `json:"actualHumidity"`
		Connected         bool `json:"connected"`
	} `json:"runtime"`
	Settings struct {
		HVACMode     string `json:"hvacMode"`
		HeatDeadband int    `json:"heatDeadband"` // tenths °F
	} `json:"settings"`
	EquipmentStatus string `json:"equipmentStatus"` // comma list, e.g. "auxHeat1,fan"
	Weather         struct {
		Temperature     int `json:"temperature"`     // tenths °F
		TomorrowAvgTemp int `json:"tomorrowAvgTemp"` // tenths °F
	} `json:"weather"`
	IntervalReport struct {
		Rows []vendorIntervalRow `json:"rows"`
	} `json:"intervalReport"`
}

type vendorIntervalRow struct {
	HeatSeconds int `json:"auxHeat1"`
	CoolSeconds int `json:"compCool1"`
	ZoneAveTemp int `json:"zoneAveTemp"` // tenths °F
}

type vendorTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// Fetch polls the vendor API, refreshing the OAuth token when needed.
func (c *VendorClient) Fetch(ctx context.Context) (models.Telemetry, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return models.Telemetry{}, fmt.Errorf("vendor auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/1/thermostat", nil)
	if err != nil {
		return models.Telemetry{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Telemetry{}, fmt.Errorf("vendor fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.Telemetry{}, fmt.Errorf("vendor fetch: unexpected status %d", resp.StatusCode)
	}

	var payload vendorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Telemetry{}, fmt.Errorf("vendor decode: %w", err)
	}
	return decodePayload(payload, time.Now().UTC()), nil
}

// ensureToken loads the cached credential pair and refreshes it when expired.
func (c *VendorClient) ensureToken(ctx context.Context) (models.OAuthToken, error) {
	token, err := c.tokens.Load(ctx)
	if err != nil {
		return models.OAuthToken{}, err
	}
	if !token.Expired(time.Now()) {
		return token, nil
	}
	if token.RefreshToken == "" {
		return models.OAuthToken{}, fmt.Errorf("no refresh token cached; authorize the app first")
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {token.RefreshToken},
		"client_id":     {c.cfg.APIKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return models.OAuthToken{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.OAuthToken{}, fmt.Errorf("token refresh: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.OAuthToken{}, fmt.Errorf("token refresh: unexpected status %d", resp.StatusCode)
	}

	var tr vendorTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return models.OAuthToken{}, fmt.Errorf("token decode: %w", err)
	}

	fresh := models.OAuthToken{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second).UTC(),
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = token.RefreshToken // some vendors rotate, some don't
	}
	if err := c.tokens.Save(ctx, fresh); err != nil {
		return models.OAuthToken{}, fmt.Errorf("cache token: %w", err)
	}
	return fresh, nil
}

// decodePayload normalizes the vendor wire format into models.Telemetry.
func decodePayload(p vendorPayload, observedAt time.Time) models.Telemetry {
	samples := make([]models.IntervalSample, 0, len(p.IntervalReport.Rows))
	for _, row := range p.IntervalReport.Rows {
		samples = append(samples, models.IntervalSample{
			HeatingSeconds: row.HeatSeconds,
			CoolingSeconds: row.CoolSeconds,
			IndoorTemp:     tenths(row.ZoneAveTemp),
		})
	}

	return models.Telemetry{
		Snapshot: models.ThermostatSnapshot{
			IndoorTemp:     tenths(p.Runtime.ActualTemperature),
			Setpoint:       tenths(p.Runtime.DesiredHeat),
			OutdoorTemp:    tenths(p.Weather.Temperature),
			Deadband:       tenths(p.Settings.HeatDeadband),
			FurnaceRunning: heatRunning(p.EquipmentStatus),
			Mode:           p.Settings.HVACMode,
			Humidity:       p.Runtime.ActualHumidity,
			ObservedAt:     observedAt,
		},
		Samples: samples,
		Weather: models.WeatherOutlook{
			TodayOutdoorTemp:    tenths(p.Weather.Temperature),
			TomorrowOutdoorTemp: tenths(p.Weather.TomorrowAvgTemp),
		},
	}
}

// heatRunning reports whether any heat stage appears in the equipment list.
func heatRunning(equipmentStatus string) bool {
	for _, part := range strings.Split(equipmentStatus, ",") {
		if strings.Contains(strings.ToLower(strings.TrimSpace(part)), "heat") {
			return true
		}
	}
	return false
}

func tenths(v int) float64 {
	return float64(v) / 10
}
