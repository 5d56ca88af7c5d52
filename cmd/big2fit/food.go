package big2fit

import (
	"context"
	"fmt"
	"strings"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/provider/openfoodfacts"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Browse the food catalog and add custom or imported foods",
}

var (
	customName     string
	customCalories float64
	customProtein  float64
	customCarbs    float64
	customFat      float64
	customMeal     string
	customGrams    float64
)

var foodSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search foods by name (per 100 g values)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			foods, err := env.session.Foods(ctx)
			if err != nil {
				return err
			}
			printFoods(cmd, service.SearchFoods(foods, term))
			return nil
		})
	},
}

var foodAddCustomCmd = &cobra.Command{
	Use:   "add-custom",
	Short: "Create a custom food, optionally logging it to a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := parseOptionalMeal(cmd)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := requireLogin(env); err != nil {
				return err
			}
			food, err := env.session.AddCustomFood(ctx, service.CustomFoodInput{
				Name:     customName,
				Calories: customCalories,
				ProteinG: customProtein,
				CarbsG:   customCarbs,
				FatG:     customFat,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added custom food %s (%s)\n", food.Name, food.ID)
			return logNewFood(ctx, cmd, env, food, meal)
		})
	},
}

var foodImportCmd = &cobra.Command{
	Use:   "import <barcode>",
	Short: "Import a packaged food from OpenFoodFacts as a custom food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := parseOptionalMeal(cmd)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := requireLogin(env); err != nil {
				return err
			}
			food, result, err := env.session.ImportBarcodeFood(ctx, &openfoodfacts.Client{BaseURL: env.cfg.OpenFoodFactsURL}, args[0])
			if err != nil {
				return err
			}
			source := "openfoodfacts"
			if result.FromCache {
				source = "cache"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s) from %s: %s kcal per 100 g\n", food.Name, food.ID, source, formatQty(food.Calories))
			return logNewFood(ctx, cmd, env, food, meal)
		})
	},
}

func parseOptionalMeal(cmd *cobra.Command) (model.MealType, error) {
	if !cmd.Flags().Changed("meal") {
		return "", nil
	}
	m, err := model.ParseMealType(customMeal)
	if err != nil {
		return "", err
	}
	if customGrams <= 0 {
		return "", fmt.Errorf("--grams must be > 0 when --meal is set")
	}
	return m, nil
}

func logNewFood(ctx context.Context, cmd *cobra.Command, env *appEnv, food model.Food, meal model.MealType) error {
	if meal == "" {
		return nil
	}
	log, err := env.session.Log(ctx)
	if err != nil {
		return err
	}
	service.AddFoodToMeal(log, meal, food, customGrams)
	if err := env.session.SaveLog(ctx, log); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged %sg %s to %s on %s\n", formatQty(customGrams), food.Name, meal, log.Date)
	return nil
}

func printFoods(cmd *cobra.Command, foods []model.Food) {
	fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tKCAL\tPROTEIN_G\tCARBS_G\tFAT_G\tCUSTOM")
	for _, f := range foods {
		custom := ""
		if f.IsCustom {
			custom = "yes"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, formatQty(f.Calories), formatQty(f.ProteinG), formatQty(f.CarbsG), formatQty(f.FatG), custom)
	}
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodSearchCmd, foodAddCustomCmd, foodImportCmd)

	foodAddCustomCmd.Flags().StringVar(&customName, "name", "", "Food name")
	foodAddCustomCmd.Flags().Float64Var(&customCalories, "calories", 0, "kcal per 100 g")
	foodAddCustomCmd.Flags().Float64Var(&customProtein, "protein", 0, "Protein grams per 100 g")
	foodAddCustomCmd.Flags().Float64Var(&customCarbs, "carbs", 0, "Carb grams per 100 g")
	foodAddCustomCmd.Flags().Float64Var(&customFat, "fat", 0, "Fat grams per 100 g")
	foodAddCustomCmd.Flags().StringVar(&customMeal, "meal", "", "Also log to meal: "+strings.Join(mealNames(), "|"))
	foodAddCustomCmd.Flags().Float64Var(&customGrams, "grams", 0, "Grams to log with --meal")
	_ = foodAddCustomCmd.MarkFlagRequired("name")
	_ = foodAddCustomCmd.MarkFlagRequired("calories")

	foodImportCmd.Flags().StringVar(&customMeal, "meal", "", "Also log to meal: "+strings.Join(mealNames(), "|"))
	foodImportCmd.Flags().Float64Var(&customGrams, "grams", 0, "Grams to log with --meal")
}

func mealNames() []string {
	out := make([]string, 0, len(model.MealTypes))
	for _, m := range model.MealTypes {
		out = append(out, string(m))
	}
	return out
}
