package big2fit

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local big2fit storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if path := env.cfg.StorePath(); path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized big2fit %s store at %s\n", env.cfg.Store, path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized big2fit %s store\n", env.cfg.Store)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
