package models

import "time"

// ThermostatSnapshot is one observation of the thermostat, as delivered by the
// telemetry source. All temperatures are °F. Invariant: Deadband >= 0.
type ThermostatSnapshot struct {
	IndoorTemp     float64   `json:"indoor_temp_f"`
	Setpoint       float64   `json:"setpoint_f"`
	OutdoorTemp    float64   `json:"outdoor_temp_f"`
	Deadband       float64   `json:"deadband_f"`
	FurnaceRunning bool      `json:"furnace_running"`
	Mode           string    `json:"mode"` // heat | cool | auto | off
	Humidity       int       `json:"humidity_pct"`
	ObservedAt     time.Time `json:"observed_at"`
}

// KickOnTemp is the threshold at which the furnace is expected to activate.
func (s ThermostatSnapshot) KickOnTemp() float64 {
	return s.Setpoint - s.Deadband
}
