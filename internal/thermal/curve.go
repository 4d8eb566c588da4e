package thermal

import (
	"sort"

	"furnace_forecast/internal/models"
)

// HeatUpCurve answers "how fast does the furnace heat this home when it is
// X°F outside". It wraps the learned (outdoor temp, °F/min) table; the table
// is rebuilt wholesale when relearned, never edited in place, so the curve is
// read-only after construction.
type HeatUpCurve struct {
	points   []models.CurvePoint // sorted by OutdoorTemp, unique
	fallback float64             // used when the table is empty
}

// NewHeatUpCurve copies and sorts the given points. Callers need not pre-sort;
// duplicate outdoor temperatures collapse to the last occurrence.
func NewHeatUpCurve(points []models.CurvePoint, fallbackRate float64) HeatUpCurve {
	sorted := make([]models.CurvePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OutdoorTemp < sorted[j].OutdoorTemp
	})

	uniq := sorted[:0]
	for _, p := range sorted {
		if n := len(uniq); n > 0 && uniq[n-1].OutdoorTemp == p.OutdoorTemp {
			uniq[n-1] = p
			continue
		}
		uniq = append(uniq, p)
	}

	return HeatUpCurve{points: uniq, fallback: fallbackRate}
}

// Points returns a copy of the sorted sample table.
func (c HeatUpCurve) Points() []models.CurvePoint {
	out := make([]models.CurvePoint, len(c.points))
	copy(out, c.points)
	return out
}

// RateFor returns the heat-up rate at the given outdoor temperature.
// Below the lowest sample it clamps to that sample's rate, above the highest
// to that one's, and between two samples it interpolates linearly. An exact
// sample hit returns that sample's rate.
func (c HeatUpCurve) RateFor(outdoorF float64) float64 {
	if len(c.points) == 0 {
		return c.fallback
	}

	first, last := c.points[0], c.points[len(c.points)-1]
	if outdoorF <= first.OutdoorTemp {
		return first.RatePerMinute
	}
	if outdoorF >= last.OutdoorTemp {
		return last.RatePerMinute
	}

	// first bracketing sample at or above outdoorF
	hi := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].OutdoorTemp >= outdoorF
	})
	upper := c.points[hi]
	if upper.OutdoorTemp == outdoorF {
		return upper.RatePerMinute
	}
	lower := c.points[hi-1]

	ratio := (outdoorF - lower.OutdoorTemp) / (upper.OutdoorTemp - lower.OutdoorTemp)
	return lower.RatePerMinute + ratio*(upper.RatePerMinute-lower.RatePerMinute)
}
