package service_test

import (
	"context"
	"testing"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foodByName(t *testing.T, name string) model.Food {
	t.Helper()
	f, err := service.FindFood(service.PredefinedFoods(), name)
	require.NoError(t, err)
	return f
}

func TestNewDailyLogIsEmpty(t *testing.T) {
	t.Parallel()
	log := service.NewDailyLog("2024-03-10")
	assert.Equal(t, "2024-03-10", log.Date)
	assert.Len(t, log.Meals, 4)
	for _, m := range model.MealTypes {
		require.NotNil(t, log.Meals[m])
		assert.Empty(t, log.Meals[m].Foods)
	}
	assert.Zero(t, log.Water)
	assert.Empty(t, log.Exercises)
	assert.False(t, log.IsDirty())
}

func TestAddFoodKeepsOrderAndSnapshots(t *testing.T) {
	t.Parallel()
	log := service.NewDailyLog("2024-03-10")
	rice := foodByName(t, "White rice, cooked")
	chicken := foodByName(t, "Grilled chicken breast")

	require.True(t, service.AddFoodToMeal(log, model.MealLunch, rice, 150))
	require.True(t, service.AddFoodToMeal(log, model.MealLunch, chicken, 120))
	assert.True(t, log.IsDirty())

	rice.Calories = 9999
	foods := log.Meals[model.MealLunch].Foods
	require.Len(t, foods, 2)
	assert.Equal(t, "White rice, cooked", foods[0].Name)
	assert.Equal(t, 130.0, foods[0].Calories)
	assert.Equal(t, 120.0, foods[1].Grams)
	assert.Empty(t, log.Meals[model.MealBreakfast].Foods)
}

func TestAddFoodUnknownMealIsNoop(t *testing.T) {
	t.Parallel()
	log := service.NewDailyLog("2024-03-10")
	assert.False(t, service.AddFoodToMeal(log, "brunch", foodByName(t, "Apple"), 100))
	assert.False(t, log.IsDirty())
}

func TestRemoveFoodRemovesFirstMatchOnly(t *testing.T) {
	t.Parallel()
	log := service.NewDailyLog("2024-03-10")
	apple := foodByName(t, "Apple")
	banana := foodByName(t, "Banana")
	service.AddFoodToMeal(log, model.MealSnacks, apple, 100)
	service.AddFoodToMeal(log, model.MealSnacks, banana, 100)
	service.AddFoodToMeal(log, model.MealSnacks, apple, 100)
	log.ClearDirty()

	assert.False(t, service.RemoveFoodFromMeal(log, model.MealSnacks, apple.ID, 50))
	assert.False(t, log.IsDirty())

	assert.True(t, service.RemoveFoodFromMeal(log, model.MealSnacks, apple.ID, 100))
	foods := log.Meals[model.MealSnacks].Foods
	require.Len(t, foods, 2)
	assert.Equal(t, banana.ID, foods[0].ID)
	assert.Equal(t, apple.ID, foods[1].ID)
	assert.True(t, log.IsDirty())
}

func copyMeals(meals map[model.MealType]*model.Meal) map[model.MealType]*model.Meal {
	out := make(map[model.MealType]*model.Meal, len(meals))
	for k, m := range meals {
		foods := make([]model.MealFood, len(m.Foods))
		copy(foods, m.Foods)
		out[k] = &model.Meal{Foods: foods}
	}
	return out
}

func TestAddThenRemoveRestoresMeals(t *testing.T) {
	t.Parallel()
	apple := foodByName(t, "Apple")
	banana := foodByName(t, "Banana")

	tests := []struct {
		name string
		seed []model.MealFood
	}{
		{name: "empty meal"},
		{name: "meal with entries", seed: []model.MealFood{{Food: apple, Grams: 100}, {Food: banana, Grams: 50}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log := service.NewDailyLog("2024-03-10")
			for _, f := range tc.seed {
				service.AddFoodToMeal(log, model.MealBreakfast, f.Food, f.Grams)
			}
			before := copyMeals(log.Meals)

			require.True(t, service.AddFoodToMeal(log, model.MealBreakfast, apple, 80))
			require.True(t, service.RemoveFoodFromMeal(log, model.MealBreakfast, apple.ID, 80))
			assert.Equal(t, before, log.Meals)
		})
	}
}

func TestExerciseAddRemove(t *testing.T) {
	t.Parallel()
	log := service.NewDailyLog("2024-03-10")
	run, err := service.FindExercise(service.PredefinedExercises(), "running")
	require.NoError(t, err)

	service.AddExercise(log, run, 30)
	service.AddExercise(log, run, 20)
	assert.False(t, service.RemoveExercise(log, run.ID, 45))
	assert.True(t, service.RemoveExercise(log, run.ID, 30))
	require.Len(t, log.Exercises, 1)
	assert.Equal(t, 20.0, log.Exercises[0].DurationMinutes)
}

func TestWater(t *testing.T) {
	t.Parallel()
	log := service.NewDailyLog("2024-03-10")
	service.SetWaterIntake(log, 1000)
	assert.Equal(t, 1000, log.Water)
	assert.Equal(t, 1250, service.AddWater(log, 250, 3000))

	service.SetWaterIntake(log, 2900)
	assert.Equal(t, 3000, service.AddWater(log, 250, 3000))
	assert.Equal(t, 3000, service.AddWater(log, 250, 3000))

	service.SetWaterIntake(log, 4000)
	assert.Equal(t, 4000, service.AddWater(log, 250, 3000))
	assert.Equal(t, 4000, log.Water)

	service.SetWaterIntake(log, 0)
	assert.Zero(t, log.Water)
}

func TestLogStoreGetSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	logs := service.NewLogStore(store, logging.Nop())

	fresh, err := logs.Get(ctx, "acct", "2024-03-10")
	require.NoError(t, err)
	require.NoError(t, logs.Save(ctx, "acct", fresh))
	_, ok, err := store.Get(ctx, kv.DailyLogKey("acct", "2024-03-10"))
	require.NoError(t, err)
	assert.False(t, ok, "untouched log must not be persisted")

	service.AddFoodToMeal(fresh, model.MealDinner, foodByName(t, "Tomato"), 80)
	service.SetWaterIntake(fresh, 500)
	require.NoError(t, logs.Save(ctx, "acct", fresh))
	assert.False(t, fresh.IsDirty())

	again, err := logs.Get(ctx, "acct", "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 500, again.Water)
	require.Len(t, again.Meals[model.MealDinner].Foods, 1)
	assert.Equal(t, "Tomato", again.Meals[model.MealDinner].Foods[0].Name)
	assert.NotNil(t, again.Meals[model.MealBreakfast])

	other, err := logs.Get(ctx, "other", "2024-03-10")
	require.NoError(t, err)
	assert.Empty(t, other.Meals[model.MealDinner].Foods)

	dates, err := logs.Dates(ctx, "acct")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10"}, dates)
}

func TestLogStoreGetFillsMissingMeals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Set(ctx, kv.DailyLogKey("acct", "2024-03-09"), []byte(`{"date":"2024-03-09","meals":{"lunch":{"foods":[]}},"water":250}`)))

	log, err := service.NewLogStore(store, logging.Nop()).Get(ctx, "acct", "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, 250, log.Water)
	for _, m := range model.MealTypes {
		assert.NotNil(t, log.Meals[m], string(m))
	}
}

func TestLogStoreGetReportsCorruptValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Set(ctx, kv.DailyLogKey("acct", "2024-03-09"), []byte(`{"water":"lots"}`)))
	_, err := service.NewLogStore(store, logging.Nop()).Get(ctx, "acct", "2024-03-09")
	assert.Error(t, err)
}
