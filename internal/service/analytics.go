package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
)

// DefaultAdherenceTolerance is the fraction of the target a day's net
// calories may deviate by and still count as on target.
const DefaultAdherenceTolerance = 0.10

type DayReport struct {
	Date             string            `json:"date"`
	Consumed         model.MacroTotals `json:"consumed"`
	ExerciseCalories int               `json:"exercise_calories"`
	NetCalories      int               `json:"net_calories"`
	WaterML          int               `json:"water_ml"`
	OnTarget         bool              `json:"on_target"`
}

type AdherenceSummary struct {
	EvaluatedDays int     `json:"evaluated_days"`
	OnTargetDays  int     `json:"on_target_days"`
	PercentWithin float64 `json:"percent_on_target"`
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
}

type AnalyticsReport struct {
	FromDate        string           `json:"from_date"`
	ToDate          string           `json:"to_date"`
	TargetCalories  int              `json:"target_calories"`
	DaysLogged      int              `json:"days_logged"`
	AverageIntake   float64          `json:"avg_intake"`
	AverageExercise float64          `json:"avg_exercise"`
	AverageNet      float64          `json:"avg_net"`
	AverageWaterML  float64          `json:"avg_water_ml"`
	HighestDay      *DayReport       `json:"highest_day,omitempty"`
	LowestDay       *DayReport       `json:"lowest_day,omitempty"`
	Adherence       AdherenceSummary `json:"adherence"`
	Days            []DayReport      `json:"days"`
}

// AnalyticsRange reports on every stored log of the account between from and
// to inclusive. Empty bounds are open. Adherence is only evaluated when the
// profile yields a positive target.
func AnalyticsRange(ctx context.Context, logs *LogStore, accountID string, profile model.Profile, from, to string, tolerance float64) (*AnalyticsReport, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := ParseDate(d); err != nil {
			return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", d)
		}
	}
	if from != "" && to != "" && from > to {
		return nil, fmt.Errorf("from date must be <= to date")
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be >= 0")
	}

	dates, err := logs.Dates(ctx, accountID)
	if err != nil {
		return nil, err
	}
	target := 0
	if profile.IsComplete() {
		target = round(TargetCalories(profile))
	}

	report := &AnalyticsReport{FromDate: from, ToDate: to, TargetCalories: target, Days: []DayReport{}}
	for _, date := range dates {
		if (from != "" && date < from) || (to != "" && date > to) {
			continue
		}
		log, err := logs.Get(ctx, accountID, date)
		if err != nil {
			return nil, err
		}
		consumed := AggregateMealTotals(log.Meals)
		burned := AggregateExerciseCalories(log.Exercises)
		day := DayReport{
			Date:             date,
			Consumed:         consumed,
			ExerciseCalories: burned,
			NetCalories:      consumed.Calories - burned,
			WaterML:          log.Water,
		}
		if target > 0 {
			day.OnTarget = math.Abs(float64(day.NetCalories-target)) <= float64(target)*tolerance
		}
		report.Days = append(report.Days, day)
	}

	report.DaysLogged = len(report.Days)
	if report.DaysLogged == 0 {
		return report, nil
	}
	if report.FromDate == "" {
		report.FromDate = report.Days[0].Date
	}
	if report.ToDate == "" {
		report.ToDate = report.Days[len(report.Days)-1].Date
	}
	var intake, exercise, net, water int
	for _, d := range report.Days {
		intake += d.Consumed.Calories
		exercise += d.ExerciseCalories
		net += d.NetCalories
		water += d.WaterML
	}
	div := float64(report.DaysLogged)
	report.AverageIntake = float64(intake) / div
	report.AverageExercise = float64(exercise) / div
	report.AverageNet = float64(net) / div
	report.AverageWaterML = float64(water) / div
	report.HighestDay, report.LowestDay = extremeDays(report.Days)
	if target > 0 {
		report.Adherence = calculateAdherence(report.Days)
	}
	return report, nil
}

func calculateAdherence(days []DayReport) AdherenceSummary {
	out := AdherenceSummary{EvaluatedDays: len(days)}
	run := 0
	for _, d := range days {
		if !d.OnTarget {
			run = 0
			continue
		}
		out.OnTargetDays++
		run++
		out.LongestStreak = max(out.LongestStreak, run)
	}
	out.CurrentStreak = run
	if out.EvaluatedDays > 0 {
		out.PercentWithin = float64(out.OnTargetDays) / float64(out.EvaluatedDays) * 100
	}
	return out
}

// extremeDays ranks by net calories; ties keep the earlier day.
func extremeDays(days []DayReport) (*DayReport, *DayReport) {
	if len(days) == 0 {
		return nil, nil
	}
	copied := make([]DayReport, len(days))
	copy(copied, days)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].NetCalories < copied[j].NetCalories
	})
	low := copied[0]
	high := copied[len(copied)-1]
	return &high, &low
}

// Analytics runs AnalyticsRange for the logged-in account.
func (s *Session) Analytics(ctx context.Context, from, to string, tolerance float64) (*AnalyticsReport, error) {
	if s.current == nil {
		return nil, ErrNotAuthenticated
	}
	return AnalyticsRange(ctx, s.logs, s.current.ID, s.current.Profile, from, to, tolerance)
}
