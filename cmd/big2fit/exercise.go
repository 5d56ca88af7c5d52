package big2fit

import (
	"context"
	"fmt"
	"math"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log exercise for the day",
}

var (
	exerciseMinutes       float64
	exerciseRemoveMinutes float64
)

var exerciseSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the exercise catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tKCAL_PER_MIN")
		for _, ex := range service.SearchExercises(service.PredefinedExercises(), term) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", ex.ID, ex.Name, formatQty(ex.CaloriesPerMinute))
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Log an exercise (id or name) with a duration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exerciseMinutes <= 0 {
			return fmt.Errorf("--minutes must be > 0")
		}
		ex, err := service.FindExercise(service.PredefinedExercises(), args[0])
		if err != nil {
			return err
		}
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			service.AddExercise(log, ex, exerciseMinutes)
			burned := int(math.Round(ex.CaloriesPerMinute * exerciseMinutes))
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s min %s (%d kcal) on %s\n", formatQty(exerciseMinutes), ex.Name, burned, log.Date)
			return nil
		})
	},
}

var exerciseRemoveCmd = &cobra.Command{
	Use:   "remove <exercise-id>",
	Short: "Remove one logged exercise matching id and duration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exerciseRemoveMinutes <= 0 {
			return fmt.Errorf("--minutes must be > 0")
		}
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			if !service.RemoveExercise(log, args[0], exerciseRemoveMinutes) {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s min entry of %s on %s\n", formatQty(exerciseRemoveMinutes), args[0], log.Date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s min %s on %s\n", formatQty(exerciseRemoveMinutes), args[0], log.Date)
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged exercise for the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", log.Date)
			fmt.Fprintln(out, "EXERCISE_ID\tNAME\tMINUTES\tKCAL")
			for _, e := range log.Exercises {
				fmt.Fprintf(out, "%s\t%s\t%s\t%d\n", e.ID, e.Name, formatQty(e.DurationMinutes), int(math.Round(e.CaloriesPerMinute*e.DurationMinutes)))
			}
			fmt.Fprintf(out, "Total burned: %d kcal\n", service.AggregateExerciseCalories(log.Exercises))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseSearchCmd, exerciseAddCmd, exerciseRemoveCmd, exerciseListCmd)

	exerciseAddCmd.Flags().Float64Var(&exerciseMinutes, "minutes", 0, "Duration in minutes")
	_ = exerciseAddCmd.MarkFlagRequired("minutes")
	exerciseRemoveCmd.Flags().Float64Var(&exerciseRemoveMinutes, "minutes", 0, "Duration in minutes of the entry to remove")
	_ = exerciseRemoveCmd.MarkFlagRequired("minutes")
}
