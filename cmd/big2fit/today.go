package big2fit

import (
	"context"
	"errors"
	"fmt"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var todayJSON bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's targets, intake, exercise, and water",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := requireLogin(env); err != nil {
				return err
			}
			status, err := env.session.Summary(ctx)
			if errors.Is(err, service.ErrIncompleteProfile) {
				return fmt.Errorf("%w: set name, age, height, and weight with `big2fit profile set`", err)
			}
			if err != nil {
				return err
			}
			if todayJSON {
				return printJSON(cmd, status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Target: %d kcal\n", status.TargetCalories)
			fmt.Fprintf(out, "Intake: %d kcal\n", status.Consumed.Calories)
			fmt.Fprintf(out, "Exercise: %d kcal\n", status.ExerciseCalories)
			fmt.Fprintf(out, "Net: %d kcal\n", status.NetCalories)
			fmt.Fprintf(out, "Remaining: %d kcal (%.0f%%)\n", status.RemainingCalories, status.ProgressPct)
			fmt.Fprintf(out, "Protein: %d / %d g\n", status.Consumed.ProteinG, status.TargetMacros.ProteinG)
			fmt.Fprintf(out, "Carbs: %d / %d g\n", status.Consumed.CarbsG, status.TargetMacros.CarbsG)
			fmt.Fprintf(out, "Fat: %d / %d g\n", status.Consumed.FatG, status.TargetMacros.FatG)
			fmt.Fprintf(out, "Water: %d / %d ml\n", status.WaterML, env.cfg.MaxWaterML)
			return nil
		})
	},
}

var (
	historyFrom      string
	historyTo        string
	historyTolerance float64
	historyJSON      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize logged days: averages, extremes, and days on target",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := requireLogin(env); err != nil {
				return err
			}
			report, err := env.session.Analytics(ctx, historyFrom, historyTo, historyTolerance)
			if err != nil {
				return err
			}
			if historyJSON {
				return printJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			if report.DaysLogged == 0 {
				fmt.Fprintln(out, "No logged days")
				return nil
			}
			fmt.Fprintln(out, "DATE\tINTAKE\tEXERCISE\tNET\tWATER_ML\tON_TARGET")
			for _, d := range report.Days {
				fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%d\t%t\n", d.Date, d.Consumed.Calories, d.ExerciseCalories, d.NetCalories, d.WaterML, d.OnTarget)
			}
			fmt.Fprintf(out, "Days: %d (%s to %s)\n", report.DaysLogged, report.FromDate, report.ToDate)
			fmt.Fprintf(out, "Average: intake %.0f | exercise %.0f | net %.0f kcal | water %.0f ml\n", report.AverageIntake, report.AverageExercise, report.AverageNet, report.AverageWaterML)
			if report.TargetCalories > 0 {
				a := report.Adherence
				fmt.Fprintf(out, "On target (%d kcal): %d/%d days (%.0f%%), streak %d, longest %d\n", report.TargetCalories, a.OnTargetDays, a.EvaluatedDays, a.PercentWithin, a.CurrentStreak, a.LongestStreak)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, historyCmd)
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output as JSON")

	historyCmd.Flags().StringVar(&historyFrom, "from", "", "First day YYYY-MM-DD (default: earliest logged)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "Last day YYYY-MM-DD (default: latest logged)")
	historyCmd.Flags().Float64Var(&historyTolerance, "tolerance", service.DefaultAdherenceTolerance, "Fraction of target net calories may deviate and still count as on target")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}
