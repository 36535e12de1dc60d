package patterns

import (
	"math"
	"testing"
	"time"
)

func TestTargetRampPattern(t *testing.T) {
	mp := NewTargetRampPattern()

	tests := []struct {
		day   int
		want  float64
		scale int
	}{
		{1, 1 + 0.45/28, 2},
		{14, 1.225, 2},
		{28, 1.45, 2},
		{31, 1 + 0.45*31/28, 2},
	}

	for _, tt := range tests {
		got := mp.GetMultiplier(tt.day)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Day %d: expected %.6f, got %.6f", tt.day, tt.want, got)
		}
		date := time.Date(2025, time.January, tt.day, 0, 0, 0, 0, time.UTC)
		if s := mp.GetCountScale(date); s != tt.scale {
			t.Errorf("Day %d: expected count scale %d, got %d", tt.day, tt.scale, s)
		}
	}
}

func TestMultiplierIncreasesThroughMonth(t *testing.T) {
	mp := NewTargetRampPattern()
	for day := 2; day <= 31; day++ {
		if mp.GetMultiplier(day) <= mp.GetMultiplier(day-1) {
			t.Errorf("Expected day %d multiplier above day %d", day, day-1)
		}
	}
}

func TestMultiplierOutOfRange(t *testing.T) {
	mp := NewTargetRampPattern()
	if mp.GetMultiplier(0) != 1.0 || mp.GetMultiplier(32) != 1.0 {
		t.Error("Expected 1.0 for out-of-range days")
	}
}

func TestZeroAmplitudeIsFlat(t *testing.T) {
	mp := NewMonthlyPattern(0, 28)
	date := time.Date(2024, time.November, 17, 0, 0, 0, 0, time.UTC)
	if mp.GetMultiplierForDate(date) != 1.0 {
		t.Errorf("Expected flat 1.0, got %f", mp.GetMultiplierForDate(date))
	}
	if mp.GetCountScale(date) != 1 {
		t.Errorf("Expected count scale 1, got %d", mp.GetCountScale(date))
	}
}
