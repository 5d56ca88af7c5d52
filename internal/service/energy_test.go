package service_test

import (
	"testing"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestBMR(t *testing.T) {
	t.Parallel()
	male := model.Profile{Age: 30, HeightCm: 175, WeightKg: 70, Gender: model.GenderMale}
	female := male
	female.Gender = model.GenderFemale

	assert.InDelta(t, 1648.75, service.BMR(male), 1e-9)
	assert.InDelta(t, 1482.75, service.BMR(female), 1e-9)
	assert.InDelta(t, 166, service.BMR(male)-service.BMR(female), 1e-9)
}

func TestTDEEMultipliers(t *testing.T) {
	t.Parallel()
	p := model.Profile{Age: 30, HeightCm: 175, WeightKg: 70, Gender: model.GenderMale}
	cases := map[model.ActivityLevel]float64{
		model.ActivityLow:         1.2,
		model.ActivityModerate:    1.375,
		model.ActivityHigh:        1.55,
		model.ActivityVeryHigh:    1.725,
		model.ActivityHyperactive: 1.9,
	}
	for level, mult := range cases {
		p.ActivityLevel = level
		assert.InDelta(t, 1648.75*mult, service.TDEE(p), 1e-9, string(level))
	}
	p.ActivityLevel = model.ActivityModerate
	assert.InDelta(t, 2267.03125, service.TDEE(p), 1e-9)
}

func TestTargetCaloriesGoalAdjustments(t *testing.T) {
	t.Parallel()
	p := completeProfile()
	tdee := service.TDEE(p)
	cases := map[model.Goal]float64{
		model.GoalLoseFast: -500,
		model.GoalLoseSlow: -250,
		model.GoalMaintain: 0,
		model.GoalGainSlow: 250,
		model.GoalGainFast: 500,
	}
	for goal, delta := range cases {
		p.Goal = goal
		assert.InDelta(t, tdee+delta, service.TargetCalories(p), 1e-9, string(goal))
	}
}

func TestTargetCaloriesIsNotClamped(t *testing.T) {
	t.Parallel()
	p := model.Profile{Gender: model.GenderFemale, ActivityLevel: model.ActivityLow, Goal: model.GoalLoseFast}
	assert.Less(t, service.TargetCalories(p), 0.0)
}

func TestUnknownEnumsFallBack(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1.2, service.ActivityMultiplier("couch"))
	assert.Equal(t, 0.0, service.GoalAdjustment("bulk"))
}

func TestTargetMacros(t *testing.T) {
	t.Parallel()
	cases := []struct {
		kcal float64
		want service.MacroTargets
	}{
		{kcal: 2000, want: service.MacroTargets{ProteinG: 150, CarbsG: 200, FatG: 67}},
		{kcal: 0, want: service.MacroTargets{}},
		{kcal: 2267.03125, want: service.MacroTargets{ProteinG: 170, CarbsG: 227, FatG: 76}},
		{kcal: 1500, want: service.MacroTargets{ProteinG: 113, CarbsG: 150, FatG: 50}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, service.TargetMacros(tc.kcal), "kcal=%v", tc.kcal)
	}
}
