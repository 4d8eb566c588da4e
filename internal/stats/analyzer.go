package stats

import (
	"time"

	"furnace_forecast/internal/models"
)

const (
	// 24 h of 5-minute slots; the series may be shorter on partial history.
	windowSamples    = 288
	minutesPerSample = 5

	// A retention run ends once the home has shed more than this many °F.
	retentionDropLimit = 1.0
	// Runs shorter than this many off-samples say nothing about insulation.
	retentionMinSamples = 3

	// Next-day projection: 5% more runtime per degree colder tomorrow.
	runtimePerDegree = 0.05
)

// Equipment-status descriptors derived from the trailing sample.
const (
	EquipmentHeat = "heat"
	EquipmentCool = "cool"
	EquipmentIdle = "idle"
)

// Analyze derives 24 h aggregate statistics from the interval-sample series
// (most-recent last). previous is the cached baseline for gap-filling; pass
// nil when none exists. Pure: no I/O, the caller persists the result.
func Analyze(samples []models.IntervalSample, weather models.WeatherOutlook, previous *models.RuntimeStats) models.RuntimeStats {
	window := trailingWindow(samples)

	fresh := models.RuntimeStats{
		AvgOutdoorTemp:      weather.TodayOutdoorTemp,
		ForecastOutdoorTemp: weather.TomorrowOutdoorTemp,
		EquipmentStatus:     equipmentStatus(window),
		UpdatedAt:           time.Now().UTC(),
	}

	var heatSec, coolSec int
	for _, s := range window {
		heatSec += s.HeatingSeconds
		coolSec += s.CoolingSeconds
	}
	fresh.TotalHeatingMinutes = heatSec / 60
	fresh.TotalCoolingMinutes = coolSec / 60

	fresh.CycleCount = countCycles(window)
	fresh.CurrentCycleMinutes = currentCycleMinutes(window)
	fresh.AvgHeatRetentionMinutes, fresh.HeatLossPerHour = heatRetention(window)
	fresh.ProjectedRuntimeMinutes = projectNextDay(fresh.TotalHeatingMinutes, weather)

	if previous != nil {
		fresh = mergeWithPrevious(fresh, *previous)
	}
	return fresh
}

// trailingWindow returns the last 24 h worth of samples.
func trailingWindow(samples []models.IntervalSample) []models.IntervalSample {
	if len(samples) > windowSamples {
		return samples[len(samples)-windowSamples:]
	}
	return samples
}

// countCycles counts rising edges: an off slot immediately followed by a
// heating slot.
func countCycles(window []models.IntervalSample) int {
	cycles := 0
	for i := 1; i < len(window); i++ {
		if window[i-1].HeatingSeconds == 0 && window[i].HeatingSeconds > 0 {
			cycles++
		}
	}
	return cycles
}

// currentCycleMinutes sums heating seconds backward from the most recent
// sample while the furnace stays on. Zero when not currently heating.
func currentCycleMinutes(window []models.IntervalSample) int {
	sec := 0
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].HeatingSeconds == 0 {
			break
		}
		sec += window[i].HeatingSeconds
	}
	return sec / 60
}

// heatRetention scans every falling edge and measures how long the home held
// its temperature with the furnace off. A run ends when heating resumes or
// the indoor temperature has dropped more than retentionDropLimit from the
// temperature at the edge; runs shorter than retentionMinSamples are skipped.
// Returns the mean retention minutes and the mean loss rate in °F/hour across
// qualifying runs, both zero when nothing qualifies.
func heatRetention(window []models.IntervalSample) (avgMinutes, lossPerHour float64) {
	var minutesRuns, lossRuns []float64

	for i := 0; i+1 < len(window); i++ {
		if window[i].HeatingSeconds == 0 || window[i+1].HeatingSeconds != 0 {
			continue
		}
		edgeTemp := window[i].IndoorTemp

		count := 0
		lastTemp := edgeTemp
		for j := i + 1; j < len(window); j++ {
			if window[j].HeatingSeconds != 0 {
				break
			}
			if edgeTemp-window[j].IndoorTemp > retentionDropLimit {
				break
			}
			count++
			lastTemp = window[j].IndoorTemp
		}

		if count < retentionMinSamples {
			continue
		}
		minutes := float64(count * minutesPerSample)
		minutesRuns = append(minutesRuns, minutes)
		lossRuns = append(lossRuns, (edgeTemp-lastTemp)/(minutes/60))
	}

	return mean(minutesRuns), mean(lossRuns)
}

// projectNextDay scales today's heating runtime by the forecast differential.
func projectNextDay(totalHeatingMinutes int, weather models.WeatherOutlook) int {
	if totalHeatingMinutes == 0 || weather.TomorrowOutdoorTemp == weather.TodayOutdoorTemp {
		return totalHeatingMinutes
	}
	factor := 1 + runtimePerDegree*(weather.TodayOutdoorTemp-weather.TomorrowOutdoorTemp)
	projected := int(float64(totalHeatingMinutes) * factor)
	if projected < 0 {
		return 0
	}
	return projected
}

// mergeWithPrevious gap-fills the fresh stats: any field still at its zero
// default keeps the cached value. A transient API response that omits
// extended history then cannot blank the dashboard. Non-zero fresh values
// always win.
func mergeWithPrevious(fresh, prev models.RuntimeStats) models.RuntimeStats {
	merged := fresh
	if merged.TotalHeatingMinutes == 0 {
		merged.TotalHeatingMinutes = prev.TotalHeatingMinutes
	}
	if merged.TotalCoolingMinutes == 0 {
		merged.TotalCoolingMinutes = prev.TotalCoolingMinutes
	}
	if merged.CycleCount == 0 {
		merged.CycleCount = prev.CycleCount
	}
	if merged.CurrentCycleMinutes == 0 {
		merged.CurrentCycleMinutes = prev.CurrentCycleMinutes
	}
	if merged.AvgOutdoorTemp == 0 {
		merged.AvgOutdoorTemp = prev.AvgOutdoorTemp
	}
	if merged.ForecastOutdoorTemp == 0 {
		merged.ForecastOutdoorTemp = prev.ForecastOutdoorTemp
	}
	if merged.ProjectedRuntimeMinutes == 0 {
		merged.ProjectedRuntimeMinutes = prev.ProjectedRuntimeMinutes
	}
	if merged.AvgHeatRetentionMinutes == 0 {
		merged.AvgHeatRetentionMinutes = prev.AvgHeatRetentionMinutes
	}
	if merged.HeatLossPerHour == 0 {
		merged.HeatLossPerHour = prev.HeatLossPerHour
	}
	if merged.EquipmentStatus == "" {
		merged.EquipmentStatus = prev.EquipmentStatus
	}
	if merged.UpdatedAt.IsZero() {
		merged.UpdatedAt = prev.UpdatedAt
	}
	return merged
}

func equipmentStatus(window []models.IntervalSample) string {
	if len(window) == 0 {
		return ""
	}
	last := window[len(window)-1]
	switch {
	case last.HeatingSeconds > 0:
		return EquipmentHeat
	case last.CoolingSeconds > 0:
		return EquipmentCool
	default:
		return EquipmentIdle
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
