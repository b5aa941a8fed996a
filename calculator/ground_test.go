package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// z=0 且 day 等于相位时，余弦为 1
func TestGroundModel_AtPhaseShift(t *testing.T) {
	g := groundModel{average: 10, amplitude: 5, phaseShiftDays: 30, diffusivityPerDay: 0.05}
	assert.Equal(t, 5.0, g.temperature(0, 30))
}

func TestGroundModel_DampsWithDepth(t *testing.T) {
	g := groundModel{average: 10, amplitude: 5, phaseShiftDays: 30, diffusivityPerDay: 0.05}
	deep := g.temperature(20, 30)
	assert.InDelta(t, 10, deep, 0.01)
}

func TestGroundModelFromMonthly(t *testing.T) {
	monthly := []float64{2, 3, 6, 10, 14, 18, 20, 19, 15, 10, 6, 2}
	g := groundModelFromMonthly(monthly, 0.05)

	assert.InDelta(t, 125.0/12, g.average, 1e-12)
	amp := 0.0
	for _, m := range monthly {
		if m > g.average {
			amp += m - g.average
		} else {
			amp += g.average - m
		}
	}
	assert.InDelta(t, amp/12, g.amplitude, 1e-12)
	// 一月和十二月相同，取十二月
	assert.Equal(t, 360.0, g.phaseShiftDays)
}
