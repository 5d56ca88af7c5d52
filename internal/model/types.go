package model

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivityLow         ActivityLevel = "low"
	ActivityModerate    ActivityLevel = "moderate"
	ActivityHigh        ActivityLevel = "high"
	ActivityVeryHigh    ActivityLevel = "very_high"
	ActivityHyperactive ActivityLevel = "hyperactive"
)

type Goal string

const (
	GoalLoseFast Goal = "lose_fast"
	GoalLoseSlow Goal = "lose_slow"
	GoalMaintain Goal = "maintain"
	GoalGainSlow Goal = "gain_slow"
	GoalGainFast Goal = "gain_fast"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes lists every meal in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

var (
	ActivityLevels = []ActivityLevel{ActivityLow, ActivityModerate, ActivityHigh, ActivityVeryHigh, ActivityHyperactive}
	Goals          = []Goal{GoalLoseFast, GoalLoseSlow, GoalMaintain, GoalGainSlow, GoalGainFast}
)

func ParseMealType(v string) (MealType, error) {
	norm := MealType(strings.ToLower(strings.TrimSpace(v)))
	if norm == "snack" {
		norm = MealSnacks
	}
	for _, m := range MealTypes {
		if m == norm {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid meal %q (expected breakfast|lunch|dinner|snacks)", v)
}

func ParseGender(v string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(v))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	}
	return "", fmt.Errorf("invalid gender %q (expected male|female)", v)
}

func ParseActivityLevel(v string) (ActivityLevel, error) {
	norm := ActivityLevel(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_"))
	for _, a := range ActivityLevels {
		if a == norm {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid activity level %q (expected low|moderate|high|very_high|hyperactive)", v)
}

func ParseGoal(v string) (Goal, error) {
	norm := Goal(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_"))
	for _, g := range Goals {
		if g == norm {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid goal %q (expected lose_fast|lose_slow|maintain|gain_slow|gain_fast)", v)
}

// Profile zero values mean "not filled in yet"; see IsComplete.
type Profile struct {
	Name          string        `json:"name" validate:"max=100"`
	Age           int           `json:"age" validate:"gte=0,lte=130"`
	HeightCm      float64       `json:"height" validate:"gte=0,lte=300"`
	WeightKg      float64       `json:"weight" validate:"gte=0,lte=500"`
	Gender        Gender        `json:"gender" validate:"oneof=male female"`
	ActivityLevel ActivityLevel `json:"activityLevel" validate:"oneof=low moderate high very_high hyperactive"`
	Goal          Goal          `json:"goal" validate:"oneof=lose_fast lose_slow maintain gain_slow gain_fast"`
}

func (p Profile) IsComplete() bool {
	return p.Name != "" && p.Age > 0 && p.HeightCm > 0 && p.WeightKg > 0
}

// DefaultProfile is what a new account starts with.
func DefaultProfile(name string) Profile {
	return Profile{Name: name, Gender: GenderMale, ActivityLevel: ActivityLow, Goal: GoalMaintain}
}

type Account struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"passwordHash"`
	Profile      Profile `json:"profile"`
}

// Food nutrient values are per 100 g.
type Food struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	IsCustom bool    `json:"isCustom,omitempty"`
}

// MealFood is a snapshot of a Food taken at log time.
type MealFood struct {
	Food
	Grams float64 `json:"grams"`
}

type Meal struct {
	Foods []MealFood `json:"foods"`
}

type Exercise struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	CaloriesPerMinute float64 `json:"caloriesBurned"`
}

// LoggedExercise is a snapshot of an Exercise taken at log time.
type LoggedExercise struct {
	Exercise
	DurationMinutes float64 `json:"duration"`
}

type DailyLog struct {
	Date      string             `json:"date"`
	Meals     map[MealType]*Meal `json:"meals"`
	Water     int                `json:"water"`
	Exercises []LoggedExercise   `json:"exercises"`

	dirty bool
}

func (l *DailyLog) MarkDirty()    { l.dirty = true }
func (l *DailyLog) ClearDirty()   { l.dirty = false }
func (l *DailyLog) IsDirty() bool { return l.dirty }

type MacroTotals struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}
