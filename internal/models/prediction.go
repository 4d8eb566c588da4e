package models

// FurnaceStatus classifies where the home sits relative to the setpoint and
// the deadband at prediction time.
type FurnaceStatus string

const (
	StatusAtTarget           FurnaceStatus = "AT_TARGET"
	StatusRunning            FurnaceStatus = "RUNNING"
	StatusWillTurnOnNow      FurnaceStatus = "WILL_TURN_ON_NOW"
	StatusWaitingForDeadband FurnaceStatus = "WAITING_FOR_DEADBAND"
)

// CurvePoint is one learned sample of the heat-up rate curve: how fast the
// furnace raises indoor temperature (°F/min) at a given outdoor temperature.
type CurvePoint struct {
	OutdoorTemp   float64 `json:"outdoor_temp_f"`
	RatePerMinute float64 `json:"rate_f_per_min"`
}

// TemperatureProjection is one point of the projected temperature curve.
type TemperatureProjection struct {
	OffsetMinutes int     `json:"offset_minutes"`
	Temp          float64 `json:"temp_f"`
	ReachedTarget bool    `json:"reached_target"`
}

// PredictionResult is the immutable output of one prediction pass.
// ETA fields are nil when the driving rate makes the duration undefined
// (no heat loss, or the furnace cannot outrun it); the UI renders that as
// "no ETA" instead of a bogus duration.
type PredictionResult struct {
	Status             FurnaceStatus           `json:"status"`
	MinutesToFurnaceOn *float64                `json:"minutes_to_furnace_on,omitempty"`
	MinutesToTarget    *float64                `json:"minutes_to_target,omitempty"`
	HeatLossRate       float64                 `json:"heat_loss_rate_f_per_min"`
	HeatUpRate         float64                 `json:"heat_up_rate_f_per_min"`
	EffectiveRate      float64                 `json:"effective_rate_f_per_min"`
	TempGap            float64                 `json:"temp_gap_f"`
	KickOnTemp         float64                 `json:"kick_on_temp_f"`
	Projection         []TemperatureProjection `json:"projection"`
}
