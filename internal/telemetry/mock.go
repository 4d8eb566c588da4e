package telemetry

import (
	"context"
	"math"
	"time"

	"furnace_forecast/internal/models"
)

// MockSource produces a deterministic synthetic winter day: a cold flat
// outdoor reading and a duty-cycled furnace holding the home near setpoint.
// Used when no vendor credentials are configured and as the safe fallback
// so a vendor outage never empties the dashboard.
type MockSource struct {
	Setpoint float64
	Deadband float64
}

var _ Source = (*MockSource)(nil)

const (
	mockSamples     = 288 // full 24 h window
	mockOutdoorBase = 17.6
	mockOutdoorAmp  = 8.0
)

func NewMockSource() *MockSource {
	return &MockSource{Setpoint: 72, Deadband: 1}
}

// Fetch never fails.
func (m *MockSource) Fetch(_ context.Context) (models.Telemetry, error) {
	samples := make([]models.IntervalSample, mockSamples)
	for i := range samples {
		// furnace on for 2 of every 7 slots: ~82 min runtime per day slice
		heating := 0
		if i%7 < 2 {
			heating = 300
		}
		// indoor drifts inside the deadband, warmest right after a burn
		phase := float64(i%7) / 7
		indoor := m.Setpoint - m.Deadband*phase

		samples[i] = models.IntervalSample{
			HeatingSeconds: heating,
			IndoorTemp:     math.Round(indoor*10) / 10,
		}
	}

	now := time.Now().UTC()
	last := samples[len(samples)-1]

	return models.Telemetry{
		Snapshot: models.ThermostatSnapshot{
			IndoorTemp:     last.IndoorTemp,
			Setpoint:       m.Setpoint,
			OutdoorTemp:    mockOutdoorBase,
			Deadband:       m.Deadband,
			FurnaceRunning: last.HeatingSeconds > 0,
			Mode:           "heat",
			Humidity:       35,
			ObservedAt:     now,
		},
		Samples: samples,
		Weather: models.WeatherOutlook{
			TodayOutdoorTemp:    mockOutdoorBase,
			TomorrowOutdoorTemp: mockOutdoorBase - mockOutdoorAmp/2,
		},
	}, nil
}
