package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPlanMacros_Cut: 80kg, cut, 2000 kcal.
// protein 176g (704 kcal, 35%), fat 55.6g (500 kcal, 25%), carbs 199g (40%).
func TestPlanMacros_Cut(t *testing.T) {
	m := planMacros(80, goalCut, 2000)

	assert.Equal(t, 2000, m.CalorieTarget)
	assert.Equal(t, 176.0, m.ProteinG)
	assert.Equal(t, 55.6, m.FatG)
	assert.Equal(t, 199.0, m.CarbsG)
	assert.Equal(t, 35, m.ProteinPct)
	assert.Equal(t, 25, m.FatPct)
	assert.Equal(t, 40, m.CarbsPct)
	assert.False(t, m.OverAllocated)
}

func TestPlanMacros_GoalRatios(t *testing.T) {
	cases := []struct {
		goal     string
		proteinG float64
		fatG     float64
	}{
		{goalCut, 154, 55.6},
		{goalBulk, 126, 55.6},
		{goalMaintain, 140, 66.7},
		{"unknown", 140, 66.7},
	}
	for _, tc := range cases {
		t.Run(tc.goal, func(t *testing.T) {
			m := planMacros(70, tc.goal, 2000)
			assert.Equal(t, tc.proteinG, m.ProteinG)
			assert.Equal(t, tc.fatG, m.FatG)
		})
	}
}

// TestPlanMacros_PercentagesSumTo100 sweeps goals, body weights and targets.
func TestPlanMacros_PercentagesSumTo100(t *testing.T) {
	for _, goal := range []string{goalCut, goalBulk, goalMaintain} {
		for weight := 40.0; weight <= 160; weight += 7.3 {
			for target := 1; target <= 5000; target += 137 {
				m := planMacros(weight, goal, target)
				if !assert.Equal(t, 100, m.ProteinPct+m.FatPct+m.CarbsPct,
					"goal=%s weight=%.1f target=%d", goal, weight, target) {
					return
				}
			}
		}
	}
}

// TestPlanMacros_OverAllocated: protein alone exceeds the target, so carbs go
// negative rather than being clamped.
func TestPlanMacros_OverAllocated(t *testing.T) {
	m := planMacros(150, goalCut, 1000)

	assert.True(t, m.OverAllocated)
	assert.Less(t, m.CarbsG, 0.0)
	assert.Less(t, m.CarbsPct, 0)
	assert.Equal(t, 100, m.ProteinPct+m.FatPct+m.CarbsPct)
}

func TestPlanMacros_ZeroTarget(t *testing.T) {
	m := planMacros(80, goalMaintain, 0)

	assert.Zero(t, m.ProteinPct)
	assert.Zero(t, m.FatPct)
	assert.Zero(t, m.CarbsPct)
	assert.True(t, m.OverAllocated)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 116.7, roundTo(116.66666, 1))
	assert.Equal(t, 9.94, roundTo(9.9400001, 2))
	assert.Equal(t, 3.0, roundTo(2.5, 0))
}
