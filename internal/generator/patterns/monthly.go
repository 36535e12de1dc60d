package patterns

import (
	"math"
	"time"
)

// MonthlyPattern provides activity multipliers based on day of month.
// Microfinance field activity ramps up through the month as officers push
// to close monthly targets.
type MonthlyPattern struct {
	// Day multipliers (1-31 days), indexed 0-30
	dayMultipliers [31]float64
}

// NewMonthlyPattern creates a linear month-end ramp: 1 + amplitude*(day/peakDay).
func NewMonthlyPattern(amplitude float64, peakDay int) *MonthlyPattern {
	mp := &MonthlyPattern{}
	if peakDay <= 0 {
		peakDay = 28
	}
	for i := range mp.dayMultipliers {
		day := float64(i + 1)
		mp.dayMultipliers[i] = 1.0 + amplitude*(day/float64(peakDay))
	}
	return mp
}

// NewTargetRampPattern creates the default month-end push: +45% by day 28.
func NewTargetRampPattern() *MonthlyPattern {
	return NewMonthlyPattern(0.45, 28)
}

// GetMultiplier returns the activity multiplier for a given day of month (1-31).
func (mp *MonthlyPattern) GetMultiplier(dayOfMonth int) float64 {
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return 1.0
	}
	return mp.dayMultipliers[dayOfMonth-1]
}

// GetMultiplierForDate returns the activity multiplier for a specific date.
func (mp *MonthlyPattern) GetMultiplierForDate(t time.Time) float64 {
	return mp.GetMultiplier(t.Day())
}

// GetCountScale returns the multiplier rounded up to a whole number, for
// scaling integer counts such as recruits.
func (mp *MonthlyPattern) GetCountScale(t time.Time) int {
	return int(math.Ceil(mp.GetMultiplierForDate(t)))
}
