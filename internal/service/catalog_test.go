package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedCatalogIsStable(t *testing.T) {
	t.Parallel()
	a := service.PredefinedFoods()
	b := service.PredefinedFoods()
	require.Len(t, a, 15)
	assert.Equal(t, a, b)

	a[0].Name = "mutated"
	assert.NotEqual(t, "mutated", service.PredefinedFoods()[0].Name)

	ids := map[string]bool{}
	for _, f := range a {
		assert.False(t, ids[f.ID], "duplicate id for %s", f.Name)
		ids[f.ID] = true
		assert.False(t, f.IsCustom)
	}
	assert.NotEmpty(t, service.PredefinedExercises())
}

func TestSearchFoodsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()
	foods := service.PredefinedFoods()
	assert.Len(t, service.SearchFoods(foods, ""), len(foods))

	hits := service.SearchFoods(foods, "COOKED")
	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"White rice, cooked", "Carioca beans, cooked", "Sweet potato, cooked", "Broccoli, cooked"}, names)
	assert.Empty(t, service.SearchFoods(foods, "pizza"))
}

func TestSearchExercises(t *testing.T) {
	t.Parallel()
	hits := service.SearchExercises(service.PredefinedExercises(), "walk")
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Contains(t, strings.ToLower(h.Name), "walk")
	}
}

func TestFindFood(t *testing.T) {
	t.Parallel()
	foods := service.PredefinedFoods()

	byName, err := service.FindFood(foods, "banana")
	require.NoError(t, err)
	byID, err := service.FindFood(foods, byName.ID)
	require.NoError(t, err)
	assert.Equal(t, byName, byID)

	frag, err := service.FindFood(foods, "sirloin")
	require.NoError(t, err)
	assert.Equal(t, "Grilled top sirloin steak", frag.Name)

	_, err = service.FindFood(foods, "cooked")
	assert.True(t, errors.Is(err, service.ErrAmbiguous), "got %v", err)

	_, err = service.FindFood(foods, "pizza")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = service.FindFood(foods, "  ")
	assert.Error(t, err)
}

func TestFindExerciseExactNameBeatsFragment(t *testing.T) {
	t.Parallel()
	ex, err := service.FindExercise(service.PredefinedExercises(), "Walking")
	require.NoError(t, err)
	assert.Equal(t, "Walking", ex.Name)
}

func TestCustomFoodsArePerAccountAndNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	first, err := service.AddCustomFood(ctx, store, "acct-a", service.CustomFoodInput{Name: " Granola ", Calories: 471, ProteinG: 10, CarbsG: 64, FatG: 20})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ID, "custom-"))
	assert.True(t, first.IsCustom)
	assert.Equal(t, "Granola", first.Name)

	second, err := service.AddCustomFood(ctx, store, "acct-a", service.CustomFoodInput{Name: "Acai bowl", Calories: 110})
	require.NoError(t, err)

	visible, err := service.VisibleFoods(ctx, store, "acct-a")
	require.NoError(t, err)
	require.Len(t, visible, 17)
	assert.Equal(t, second.ID, visible[0].ID)
	assert.Equal(t, first.ID, visible[1].ID)
	assert.Equal(t, service.PredefinedFoods()[0], visible[2])

	other, err := service.VisibleFoods(ctx, store, "acct-b")
	require.NoError(t, err)
	assert.Len(t, other, 15)
}

func TestAddCustomFoodValidates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	_, err := service.AddCustomFood(ctx, store, "acct", service.CustomFoodInput{Name: "  ", Calories: 10})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "name is required")

	_, err = service.AddCustomFood(ctx, store, "acct", service.CustomFoodInput{Name: "x", FatG: -1})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "fat must be >= 0")

	foods, err := service.CustomFoods(ctx, store, "acct")
	require.NoError(t, err)
	assert.Empty(t, foods)
}
