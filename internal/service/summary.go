package service

import (
	"math"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
)

type DailySummary struct {
	Date              string            `json:"date"`
	TargetCalories    int               `json:"target_calories"`
	TargetMacros      MacroTargets      `json:"target_macros"`
	Consumed          model.MacroTotals `json:"consumed"`
	ExerciseCalories  int               `json:"exercise_calories"`
	NetCalories       int               `json:"net_calories"`
	RemainingCalories int               `json:"remaining_calories"`
	ProgressPct       float64           `json:"progress_pct"`
	ProteinPct        float64           `json:"protein_pct"`
	CarbsPct          float64           `json:"carbs_pct"`
	FatPct            float64           `json:"fat_pct"`
	WaterML           int               `json:"water_ml"`
}

// AggregateMealTotals sums every logged food scaled by grams/100 and rounds
// each total once at the end.
func AggregateMealTotals(meals map[model.MealType]*model.Meal) model.MacroTotals {
	var kcal, protein, carbs, fat float64
	for _, mt := range model.MealTypes {
		m := meals[mt]
		if m == nil {
			continue
		}
		for _, f := range m.Foods {
			factor := f.Grams / 100
			kcal += f.Calories * factor
			protein += f.ProteinG * factor
			carbs += f.CarbsG * factor
			fat += f.FatG * factor
		}
	}
	return model.MacroTotals{
		Calories: round(kcal),
		ProteinG: round(protein),
		CarbsG:   round(carbs),
		FatG:     round(fat),
	}
}

func AggregateExerciseCalories(entries []model.LoggedExercise) int {
	var total float64
	for _, e := range entries {
		total += e.CaloriesPerMinute * e.DurationMinutes
	}
	return round(total)
}

// ProgressPercent is consumed/target as a percentage in [.., 100], or 0 when
// there is no positive target.
func ProgressPercent(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(consumed/target*100, 100)
}

func Summarize(p model.Profile, log *model.DailyLog) DailySummary {
	target := TargetCalories(p)
	macros := TargetMacros(target)
	consumed := AggregateMealTotals(log.Meals)
	burned := AggregateExerciseCalories(log.Exercises)
	net := consumed.Calories - burned
	targetRounded := round(target)

	return DailySummary{
		Date:              log.Date,
		TargetCalories:    targetRounded,
		TargetMacros:      macros,
		Consumed:          consumed,
		ExerciseCalories:  burned,
		NetCalories:       net,
		RemainingCalories: max(0, targetRounded-net),
		ProgressPct:       ProgressPercent(float64(net), float64(targetRounded)),
		ProteinPct:        ProgressPercent(float64(consumed.ProteinG), float64(macros.ProteinG)),
		CarbsPct:          ProgressPercent(float64(consumed.CarbsG), float64(macros.CarbsG)),
		FatPct:            ProgressPercent(float64(consumed.FatG), float64(macros.FatG)),
		WaterML:           log.Water,
	}
}
