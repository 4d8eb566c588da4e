package thermal

import (
	"math"

	"furnace_forecast/internal/models"
)

// Projection window: 13 points at 5-minute steps, 0 through 60 inclusive.
const (
	projectionStepMinutes    = 5
	projectionHorizonMinutes = 60
)

// Config carries the per-home tunables. Defaults live in configuration, not
// here, so multiple homes can run with distinct profiles.
type Config struct {
	ThermalConstant    float64 // heat-loss coefficient, °F/min per °F
	FallbackHeatUpRate float64 // °F/min when the learned curve is empty
}

// Engine turns a thermostat snapshot and a heat-up curve into a prediction.
// Predict is a pure function of its inputs; identical inputs yield identical
// output.
type Engine struct {
	loss     HeatLossModel
	fallback float64
}

// NewEngine validates the config and builds an engine.
func NewEngine(cfg Config) (*Engine, error) {
	loss, err := NewHeatLossModel(cfg.ThermalConstant)
	if err != nil {
		return nil, err
	}
	return &Engine{loss: loss, fallback: cfg.FallbackHeatUpRate}, nil
}

// FallbackRate returns the configured curve fallback, for building curves
// consistent with this engine.
func (e *Engine) FallbackRate() float64 { return e.fallback }

// Predict classifies the furnace state and computes ETAs and a projected
// temperature curve. Total: degenerate rates become nil ETAs, never an error.
func (e *Engine) Predict(snap models.ThermostatSnapshot, curve HeatUpCurve) models.PredictionResult {
	kickOn := snap.KickOnTemp()
	lossRate := e.loss.Rate(snap.IndoorTemp, snap.OutdoorTemp)
	heatUpRate := curve.RateFor(snap.OutdoorTemp)
	effRate := heatUpRate - lossRate
	gap := snap.Setpoint - snap.IndoorTemp

	res := models.PredictionResult{
		HeatLossRate:  lossRate,
		HeatUpRate:    heatUpRate,
		EffectiveRate: effRate,
		TempGap:       gap,
		KickOnTemp:    kickOn,
	}

	switch {
	case snap.IndoorTemp >= snap.Setpoint:
		res.Status = models.StatusAtTarget
		res.MinutesToFurnaceOn = ptr(0)
		res.MinutesToTarget = ptr(0)

	case snap.IndoorTemp <= kickOn:
		// past the deadband: the furnace should be on right now
		if snap.FurnaceRunning {
			res.Status = models.StatusRunning
		} else {
			res.Status = models.StatusWillTurnOnNow
		}
		res.MinutesToFurnaceOn = ptr(0)
		if effRate > 0 {
			res.MinutesToTarget = ptr(gap / effRate)
		}

	default:
		// coasting down inside the deadband
		res.Status = models.StatusWaitingForDeadband
		if lossRate > 0 {
			res.MinutesToFurnaceOn = ptr((snap.IndoorTemp - kickOn) / lossRate)
			if effRate > 0 {
				res.MinutesToTarget = ptr(*res.MinutesToFurnaceOn + (snap.Setpoint-kickOn)/effRate)
			}
		}
	}

	res.Projection = e.project(snap, res)
	return res
}

// project synthesizes the piecewise temperature-vs-time curve for the window.
func (e *Engine) project(snap models.ThermostatSnapshot, res models.PredictionResult) []models.TemperatureProjection {
	points := make([]models.TemperatureProjection, 0, projectionHorizonMinutes/projectionStepMinutes+1)

	for offset := 0; offset <= projectionHorizonMinutes; offset += projectionStepMinutes {
		minutes := float64(offset)

		var temp float64
		switch res.Status {
		case models.StatusAtTarget:
			temp = snap.Setpoint

		case models.StatusWaitingForDeadband:
			// cool until the kick-on threshold, then heat from it
			if res.MinutesToFurnaceOn == nil || minutes < *res.MinutesToFurnaceOn {
				temp = snap.IndoorTemp - res.HeatLossRate*minutes
			} else {
				temp = res.KickOnTemp + res.EffectiveRate*(minutes-*res.MinutesToFurnaceOn)
			}

		default: // Running / WillTurnOnNow: heating from the current temperature
			temp = snap.IndoorTemp + res.EffectiveRate*minutes
		}

		reached := temp >= snap.Setpoint
		if temp > snap.Setpoint {
			// the furnace cycles off at target; never project past it
			temp = snap.Setpoint
		}

		points = append(points, models.TemperatureProjection{
			OffsetMinutes: offset,
			Temp:          round1(temp),
			ReachedTarget: reached,
		})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr(v float64) *float64 { return &v }
