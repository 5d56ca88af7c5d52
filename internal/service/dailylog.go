package service

import (
	"context"
	"fmt"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
)

func NewDailyLog(date string) *model.DailyLog {
	log := &model.DailyLog{
		Date:      date,
		Meals:     make(map[model.MealType]*model.Meal, len(model.MealTypes)),
		Exercises: []model.LoggedExercise{},
	}
	ensureMeals(log)
	return log
}

func ensureMeals(log *model.DailyLog) {
	if log.Meals == nil {
		log.Meals = make(map[model.MealType]*model.Meal, len(model.MealTypes))
	}
	for _, m := range model.MealTypes {
		if log.Meals[m] == nil {
			log.Meals[m] = &model.Meal{}
		}
		if log.Meals[m].Foods == nil {
			log.Meals[m].Foods = []model.MealFood{}
		}
	}
	if log.Exercises == nil {
		log.Exercises = []model.LoggedExercise{}
	}
}

// LogStore loads and persists one DailyLog per (account, date).
type LogStore struct {
	store  kv.Store
	logger logging.Logger
}

func NewLogStore(store kv.Store, logger logging.Logger) *LogStore {
	return &LogStore{store: store, logger: logger}
}

// Get returns the stored log or a fresh, unsaved empty one.
func (s *LogStore) Get(ctx context.Context, accountID, date string) (*model.DailyLog, error) {
	log := &model.DailyLog{}
	found, err := kv.GetJSON(ctx, s.store, kv.DailyLogKey(accountID, date), log)
	if err != nil {
		return nil, fmt.Errorf("load daily log %s: %w", date, err)
	}
	if !found {
		return NewDailyLog(date), nil
	}
	if log.Date == "" {
		log.Date = date
	}
	ensureMeals(log)
	return log, nil
}

// Save writes the log only when it was modified since it was loaded.
func (s *LogStore) Save(ctx context.Context, accountID string, log *model.DailyLog) error {
	if !log.IsDirty() {
		return nil
	}
	if err := kv.SetJSON(ctx, s.store, kv.DailyLogKey(accountID, log.Date), log); err != nil {
		return fmt.Errorf("save daily log %s: %w", log.Date, err)
	}
	log.ClearDirty()
	s.logger.Debugf("saved daily log %s for %s", log.Date, accountID)
	return nil
}

// Dates lists the dates with a stored log for the account, oldest first.
func (s *LogStore) Dates(ctx context.Context, accountID string) ([]string, error) {
	keys, err := s.store.Keys(ctx, kv.DailyLogPrefix(accountID))
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if id, date, ok := kv.ParseDailyLogKey(k); ok && id == accountID {
			out = append(out, date)
		}
	}
	return out, nil
}

// AddFoodToMeal appends a snapshot of food. It reports false for an unknown
// meal.
func AddFoodToMeal(log *model.DailyLog, meal model.MealType, food model.Food, grams float64) bool {
	m, ok := log.Meals[meal]
	if !ok || m == nil {
		return false
	}
	m.Foods = append(m.Foods, model.MealFood{Food: food, Grams: grams})
	log.MarkDirty()
	return true
}

// RemoveFoodFromMeal drops the first entry with the same id and grams.
func RemoveFoodFromMeal(log *model.DailyLog, meal model.MealType, foodID string, grams float64) bool {
	m, ok := log.Meals[meal]
	if !ok || m == nil {
		return false
	}
	for i, f := range m.Foods {
		if f.ID == foodID && f.Grams == grams {
			m.Foods = append(m.Foods[:i:i], m.Foods[i+1:]...)
			log.MarkDirty()
			return true
		}
	}
	return false
}

func AddExercise(log *model.DailyLog, ex model.Exercise, minutes float64) {
	log.Exercises = append(log.Exercises, model.LoggedExercise{Exercise: ex, DurationMinutes: minutes})
	log.MarkDirty()
}

// RemoveExercise drops the first entry with the same id and duration.
func RemoveExercise(log *model.DailyLog, exerciseID string, minutes float64) bool {
	for i, e := range log.Exercises {
		if e.ID == exerciseID && e.DurationMinutes == minutes {
			log.Exercises = append(log.Exercises[:i:i], log.Exercises[i+1:]...)
			log.MarkDirty()
			return true
		}
	}
	return false
}

// SetWaterIntake replaces the day's water total.
func SetWaterIntake(log *model.DailyLog, ml int) {
	log.Water = ml
	log.MarkDirty()
}

// AddWater raises water by increment without passing limit and returns the new
// total. A total already at or above limit is left unchanged.
func AddWater(log *model.DailyLog, increment, limit int) int {
	if log.Water >= limit {
		return log.Water
	}
	next := log.Water + increment
	if next > limit {
		next = limit
	}
	SetWaterIntake(log, next)
	return next
}
