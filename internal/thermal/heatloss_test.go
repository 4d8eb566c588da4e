package thermal

import (
	"math"
	"testing"
)

func mustModel(t *testing.T, k float64) HeatLossModel {
	t.Helper()
	m, err := NewHeatLossModel(k)
	if err != nil {
		t.Fatalf("NewHeatLossModel(%v): %v", k, err)
	}
	return m
}

func TestNewHeatLossModel_RejectsNegativeConstant(t *testing.T) {
	if _, err := NewHeatLossModel(-0.001); err == nil {
		t.Fatalf("expected error for negative thermal constant")
	}
}

func TestHeatLossModel_Rate(t *testing.T) {
	m := mustModel(t, 0.0012)

	if got := m.Rate(70, 70); got != 0 {
		t.Fatalf("Rate(70,70) = %v, want 0", got)
	}
	if got := m.Rate(65, 70); got != 0 {
		t.Fatalf("Rate(65,70) = %v, want 0 (never negative)", got)
	}
	if got := m.Rate(70, 50); got <= 0 {
		t.Fatalf("Rate(70,50) = %v, want > 0", got)
	}

	// monotonically increasing in the differential
	prev := 0.0
	for _, outdoor := range []float64{60, 40, 20, 0, -20} {
		r := m.Rate(70, outdoor)
		if r <= prev {
			t.Fatalf("Rate(70,%v) = %v, want > %v", outdoor, r, prev)
		}
		prev = r
	}
}

func TestHeatLossModel_ProjectNoHeat(t *testing.T) {
	m := mustModel(t, 0.0012)

	got := m.ProjectNoHeat(70, 20, 30)
	want := 70 - 0.0012*50*30
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ProjectNoHeat(70,20,30) = %v, want %v", got, want)
	}

	// no differential, no decay
	if got := m.ProjectNoHeat(70, 70, 60); got != 70 {
		t.Fatalf("ProjectNoHeat(70,70,60) = %v, want 70", got)
	}
}

func TestHeatLossModel_MinutesUntil(t *testing.T) {
	m := mustModel(t, 0.0012)

	if got := m.MinutesUntil(70, 72, 20); got == nil || *got != 0 {
		t.Fatalf("MinutesUntil already below target: got %v, want 0", got)
	}

	if got := m.MinutesUntil(72, 71, 72); got != nil {
		t.Fatalf("MinutesUntil with zero loss rate: got %v, want nil", *got)
	}

	got := m.MinutesUntil(72, 71, 20)
	if got == nil {
		t.Fatalf("MinutesUntil(72,71,20) = nil, want a duration")
	}
	rate := m.Rate(72, 20)
	want := 1.0 / rate
	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("MinutesUntil(72,71,20) = %v, want %v", *got, want)
	}
}
