package big2fit

import (
	"context"
	"fmt"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var (
	passwordCurrent string
	passwordNew     string
	passwordConfirm string
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := requireLogin(env); err != nil {
				return err
			}
			err := env.session.ChangePassword(ctx, service.PasswordChangeInput{
				CurrentPassword: passwordCurrent,
				NewPassword:     passwordNew,
				ConfirmPassword: passwordConfirm,
			})
			if err != nil {
				return describeAuthError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.Flags().StringVar(&passwordCurrent, "current", "", "Current password")
	passwordCmd.Flags().StringVar(&passwordNew, "new", "", "New password (min 6 characters)")
	passwordCmd.Flags().StringVar(&passwordConfirm, "confirm", "", "New password again")
	_ = passwordCmd.MarkFlagRequired("current")
	_ = passwordCmd.MarkFlagRequired("new")
	_ = passwordCmd.MarkFlagRequired("confirm")
}
