package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/google/uuid"
)

// catalogNamespace seeds the name-based ids of built-in foods and exercises
// so entries logged on one run still match the catalog on the next.
var catalogNamespace = uuid.MustParse("6f0d8a52-3c1e-4b8f-9a47-2d5e91b0c7aa")

func catalogID(kind, name string) string {
	return uuid.NewSHA1(catalogNamespace, []byte(kind+":"+name)).String()
}

func builtinFood(name string, kcal, protein, carbs, fat float64) model.Food {
	return model.Food{ID: catalogID("food", name), Name: name, Calories: kcal, ProteinG: protein, CarbsG: carbs, FatG: fat}
}

func builtinExercise(name string, perMinute float64) model.Exercise {
	return model.Exercise{ID: catalogID("exercise", name), Name: name, CaloriesPerMinute: perMinute}
}

var predefinedFoods = []model.Food{
	builtinFood("White rice, cooked", 130, 2.7, 28, 0.3),
	builtinFood("Carioca beans, cooked", 76, 5, 14, 0.5),
	builtinFood("Grilled chicken breast", 165, 31, 0, 3.6),
	builtinFood("Grilled top sirloin steak", 240, 35, 0, 10),
	builtinFood("Boiled egg", 155, 13, 1.1, 11),
	builtinFood("French bread roll", 289, 9, 59, 3),
	builtinFood("Sweet potato, cooked", 86, 1.6, 20, 0.1),
	builtinFood("Apple", 52, 0.3, 14, 0.2),
	builtinFood("Banana", 89, 1.1, 23, 0.3),
	builtinFood("Whole milk", 61, 3.4, 5, 3.3),
	builtinFood("Minas frescal cheese", 264, 17, 2, 20),
	builtinFood("Olive oil", 884, 0, 0, 100),
	builtinFood("Lettuce", 15, 1.4, 2.9, 0.2),
	builtinFood("Tomato", 18, 0.9, 3.9, 0.2),
	builtinFood("Broccoli, cooked", 35, 2.4, 7.2, 0.4),
}

var predefinedExercises = []model.Exercise{
	builtinExercise("Walking", 4),
	builtinExercise("Brisk walking", 5.5),
	builtinExercise("Running", 11),
	builtinExercise("Cycling", 8),
	builtinExercise("Swimming", 9),
	builtinExercise("Weight training", 6),
	builtinExercise("HIIT", 12),
	builtinExercise("Jump rope", 12.5),
	builtinExercise("Elliptical", 8),
	builtinExercise("Rowing machine", 8.5),
	builtinExercise("Hiking", 7),
	builtinExercise("Dancing", 6),
	builtinExercise("Soccer", 9),
	builtinExercise("Basketball", 8),
	builtinExercise("Yoga", 3),
	builtinExercise("Pilates", 4),
}

// PredefinedFoods returns a copy of the built-in food catalog.
func PredefinedFoods() []model.Food {
	return append([]model.Food(nil), predefinedFoods...)
}

func PredefinedExercises() []model.Exercise {
	return append([]model.Exercise(nil), predefinedExercises...)
}

type CustomFoodInput struct {
	Name     string  `json:"name" validate:"required"`
	Calories float64 `json:"calories" validate:"gte=0"`
	ProteinG float64 `json:"protein" validate:"gte=0"`
	CarbsG   float64 `json:"carbs" validate:"gte=0"`
	FatG     float64 `json:"fat" validate:"gte=0"`
}

func CustomFoods(ctx context.Context, store kv.Store, accountID string) ([]model.Food, error) {
	var foods []model.Food
	if _, err := kv.GetJSON(ctx, store, kv.CustomFoodsKey(accountID), &foods); err != nil {
		return nil, fmt.Errorf("load custom foods: %w", err)
	}
	return foods, nil
}

// AddCustomFood stores a new food for the account, ahead of its older custom
// foods.
func AddCustomFood(ctx context.Context, store kv.Store, accountID string, in CustomFoodInput) (model.Food, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return model.Food{}, err
	}
	existing, err := CustomFoods(ctx, store, accountID)
	if err != nil {
		return model.Food{}, err
	}
	food := model.Food{
		ID:       "custom-" + uuid.NewString(),
		Name:     in.Name,
		Calories: in.Calories,
		ProteinG: in.ProteinG,
		CarbsG:   in.CarbsG,
		FatG:     in.FatG,
		IsCustom: true,
	}
	foods := append([]model.Food{food}, existing...)
	if err := kv.SetJSON(ctx, store, kv.CustomFoodsKey(accountID), foods); err != nil {
		return model.Food{}, fmt.Errorf("save custom food: %w", err)
	}
	return food, nil
}

// VisibleFoods is the account's custom foods followed by the built-in catalog.
func VisibleFoods(ctx context.Context, store kv.Store, accountID string) ([]model.Food, error) {
	custom, err := CustomFoods(ctx, store, accountID)
	if err != nil {
		return nil, err
	}
	return append(custom, predefinedFoods...), nil
}

func SearchFoods(items []model.Food, term string) []model.Food {
	return filterByName(items, term, func(f model.Food) string { return f.Name })
}

func SearchExercises(items []model.Exercise, term string) []model.Exercise {
	return filterByName(items, term, func(e model.Exercise) string { return e.Name })
}

// FindFood resolves ref as an id, an exact name, or a unique name fragment.
func FindFood(items []model.Food, ref string) (model.Food, error) {
	return findByRef(items, ref, "food", func(f model.Food) (string, string) { return f.ID, f.Name })
}

func FindExercise(items []model.Exercise, ref string) (model.Exercise, error) {
	return findByRef(items, ref, "exercise", func(e model.Exercise) (string, string) { return e.ID, e.Name })
}

func filterByName[T any](items []T, term string, name func(T) string) []T {
	term = normalizeName(term)
	if term == "" {
		return append([]T(nil), items...)
	}
	out := make([]T, 0)
	for _, it := range items {
		if strings.Contains(normalizeName(name(it)), term) {
			out = append(out, it)
		}
	}
	return out
}

func findByRef[T any](items []T, ref, kind string, key func(T) (id, name string)) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%s reference is required", kind)
	}
	for _, it := range items {
		if id, _ := key(it); id == ref {
			return it, nil
		}
	}
	norm := normalizeName(ref)
	for _, it := range items {
		if _, name := key(it); normalizeName(name) == norm {
			return it, nil
		}
	}
	matches := filterByName(items, ref, func(it T) string { _, name := key(it); return name })
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, ref, ErrNotFound)
	case 1:
		return matches[0], nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		_, name := key(m)
		names = append(names, name)
	}
	return zero, fmt.Errorf("%s %q matches %s: %w", kind, ref, strings.Join(names, ", "), ErrAmbiguous)
}
