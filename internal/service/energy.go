package service

import (
	"math"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
)

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivityLow:         1.2,
	model.ActivityModerate:    1.375,
	model.ActivityHigh:        1.55,
	model.ActivityVeryHigh:    1.725,
	model.ActivityHyperactive: 1.9,
}

var goalAdjustments = map[model.Goal]float64{
	model.GoalLoseFast: -500,
	model.GoalLoseSlow: -250,
	model.GoalMaintain: 0,
	model.GoalGainSlow: 250,
	model.GoalGainFast: 500,
}

type MacroTargets struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// ActivityMultiplier falls back to the sedentary factor for unknown levels.
func ActivityMultiplier(level model.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[model.ActivityLow]
}

// GoalAdjustment is the daily kcal delta for a goal, 0 for unknown goals.
func GoalAdjustment(goal model.Goal) float64 {
	return goalAdjustments[goal]
}

// BMR uses the Mifflin-St Jeor equation.
func BMR(p model.Profile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderFemale {
		return base - 161
	}
	return base + 5
}

func TDEE(p model.Profile) float64 {
	return BMR(p) * ActivityMultiplier(p.ActivityLevel)
}

// TargetCalories is not clamped and may be negative for degenerate profiles.
func TargetCalories(p model.Profile) float64 {
	return TDEE(p) + GoalAdjustment(p.Goal)
}

// TargetMacros splits kcal 30/40/30 across protein, carbs and fat. Each gram
// figure is rounded on its own, so the three may not sum back to kcal.
func TargetMacros(kcal float64) MacroTargets {
	return MacroTargets{
		ProteinG: round(kcal * 0.30 / 4),
		CarbsG:   round(kcal * 0.40 / 4),
		FatG:     round(kcal * 0.30 / 9),
	}
}

// round goes half away from zero, so negative .5 values round down where the
// web app's Math.round would round up.
func round(v float64) int {
	return int(math.Round(v))
}
