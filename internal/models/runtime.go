package models

import "time"

// IntervalSample is one 5-minute runtime slot from the vendor's interval
// report. IndoorTemp is already normalized to decimal degrees; the wire
// format transmits tenths.
type IntervalSample struct {
	HeatingSeconds int     `json:"heating_seconds"`
	CoolingSeconds int     `json:"cooling_seconds"`
	IndoorTemp     float64 `json:"indoor_temp_f"`
}

// WeatherOutlook carries the two outdoor averages the stats analyzer needs.
type WeatherOutlook struct {
	TodayOutdoorTemp    float64 `json:"today_outdoor_temp_f"`
	TomorrowOutdoorTemp float64 `json:"tomorrow_outdoor_temp_f"`
}

// Telemetry is one full fetch from the telemetry source: the live snapshot,
// the rolling 24 h interval series (most-recent last), and the weather outlook.
type Telemetry struct {
	Snapshot ThermostatSnapshot `json:"snapshot"`
	Samples  []IntervalSample   `json:"samples"`
	Weather  WeatherOutlook     `json:"weather"`
}

// RuntimeStats is the derived 24 h aggregate. Zero values mean "absent";
// the merge with a cached baseline fills those from the previous value.
type RuntimeStats struct {
	TotalHeatingMinutes     int       `json:"total_heating_minutes"`
	TotalCoolingMinutes     int       `json:"total_cooling_minutes"`
	CycleCount              int       `json:"cycle_count"`
	CurrentCycleMinutes     int       `json:"current_cycle_minutes"`
	AvgOutdoorTemp          float64   `json:"avg_outdoor_temp_f"`
	ForecastOutdoorTemp     float64   `json:"forecast_outdoor_temp_f"`
	ProjectedRuntimeMinutes int       `json:"projected_runtime_minutes"`
	AvgHeatRetentionMinutes float64   `json:"avg_heat_retention_minutes"`
	HeatLossPerHour         float64   `json:"heat_loss_f_per_hour"`
	EquipmentStatus         string    `json:"equipment_status"`
	UpdatedAt               time.Time `json:"updated_at"`
}
