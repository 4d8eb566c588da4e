package thermal

import "errors"

// ErrNegativeThermalConstant rejects a physically meaningless loss coefficient.
var ErrNegativeThermalConstant = errors.New("thermal constant must be >= 0")

// HeatLossModel estimates how fast the home sheds heat to the outdoors.
// The model is a short-horizon linear approximation of exponential cooling;
// over the 60-minute projection window the error is acceptable, and the
// curve shape is deliberately kept until a learned model replaces it.
type HeatLossModel struct {
	k float64 // per-home thermal constant, °F/min per °F of differential
}

// NewHeatLossModel builds a model for a home with the given thermal constant.
func NewHeatLossModel(k float64) (HeatLossModel, error) {
	if k < 0 {
		return HeatLossModel{}, ErrNegativeThermalConstant
	}
	return HeatLossModel{k: k}, nil
}

// Rate returns the instantaneous loss rate in °F/min. Zero when the indoor
// temperature is at or below the outdoor temperature, never negative.
func (m HeatLossModel) Rate(indoorF, outdoorF float64) float64 {
	diff := indoorF - outdoorF
	if diff <= 0 {
		return 0
	}
	return m.k * diff
}

// ProjectNoHeat projects the indoor temperature after the given number of
// minutes with the furnace off.
func (m HeatLossModel) ProjectNoHeat(currentF, outdoorF, minutes float64) float64 {
	return currentF - m.Rate(currentF, outdoorF)*minutes
}

// MinutesUntil returns how long until the home coasts down to targetF.
// Returns 0 when already at or below the target and nil when the loss rate
// is zero, i.e. the target is never reached.
func (m HeatLossModel) MinutesUntil(currentF, targetF, outdoorF float64) *float64 {
	if currentF <= targetF {
		zero := 0.0
		return &zero
	}
	rate := m.Rate(currentF, outdoorF)
	if rate == 0 {
		return nil
	}
	minutes := (currentF - targetF) / rate
	return &minutes
}
