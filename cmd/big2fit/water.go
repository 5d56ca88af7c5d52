package big2fit

import (
	"context"
	"fmt"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake for the day",
}

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one glass (BIG2FIT_WATER_INCREMENT_ML, default 250 ml)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			total := service.AddWater(log, env.cfg.WaterIncrementML, env.cfg.MaxWaterML)
			printWater(cmd, log.Date, total, env.cfg.MaxWaterML)
			return nil
		})
	},
}

var waterSetCmd = &cobra.Command{
	Use:   "set <ml>",
	Short: "Set the day's water total in ml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ml, err := parseNonNegativeIntArg("water ml", args[0])
		if err != nil {
			return err
		}
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			service.SetWaterIntake(log, ml)
			printWater(cmd, log.Date, ml, env.cfg.MaxWaterML)
			return nil
		})
	},
}

var waterResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the day's water total to zero",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLog(cmd, func(ctx context.Context, env *appEnv, log *model.DailyLog) error {
			service.SetWaterIntake(log, 0)
			printWater(cmd, log.Date, 0, env.cfg.MaxWaterML)
			return nil
		})
	},
}

func printWater(cmd *cobra.Command, date string, ml, goal int) {
	fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %d / %d ml\n", date, ml, goal)
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterSetCmd, waterResetCmd)
}
