package big2fit

import (
	"context"
	"fmt"
	"math"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log foods to breakfast, lunch, dinner, or snacks",
}

var (
	mealGrams       float64
	mealRemoveGrams float64
)

var mealAddCmd = &cobra.Command{
	Use:   "add <meal> <food>",
	Short: "Log a food (id or name) to a meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := model.ParseMealType(args[0])
		if err != nil {
			return err
		}
		if mealGrams <= 0 {
			return fmt.Errorf("--grams must be > 0")
		}
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			foods, err := env.session.Foods(ctx)
			if err != nil {
				return err
			}
			food, err := service.FindFood(foods, args[1])
			if err != nil {
				return err
			}
			service.AddFoodToMeal(log, meal, food, mealGrams)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %sg %s to %s on %s\n", formatQty(mealGrams), food.Name, meal, log.Date)
			return nil
		})
	},
}

var mealRemoveCmd = &cobra.Command{
	Use:   "remove <meal> <food-id>",
	Short: "Remove one logged food matching id and grams",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := model.ParseMealType(args[0])
		if err != nil {
			return err
		}
		grams := mealRemoveGrams
		if grams <= 0 {
			return fmt.Errorf("--grams must be > 0")
		}
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			if !service.RemoveFoodFromMeal(log, meal, args[1], grams) {
				fmt.Fprintf(cmd.OutOrStdout(), "No %sg entry of %s in %s on %s\n", formatQty(grams), args[1], meal, log.Date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %sg %s from %s on %s\n", formatQty(grams), args[1], meal, log.Date)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged foods for the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", log.Date)
			fmt.Fprintln(out, "MEAL\tFOOD_ID\tNAME\tGRAMS\tKCAL")
			for _, mt := range model.MealTypes {
				for _, f := range log.Meals[mt].Foods {
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d\n", mt, f.ID, f.Name, formatQty(f.Grams), int(math.Round(f.Calories*f.Grams/100)))
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealRemoveCmd, mealListCmd)

	mealAddCmd.Flags().Float64Var(&mealGrams, "grams", 0, "Quantity in grams")
	_ = mealAddCmd.MarkFlagRequired("grams")
	mealRemoveCmd.Flags().Float64Var(&mealRemoveGrams, "grams", 0, "Quantity in grams of the entry to remove")
	_ = mealRemoveCmd.MarkFlagRequired("grams")
}
