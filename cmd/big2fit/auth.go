package big2fit

import (
	"context"
	"fmt"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var (
	signupName     string
	signupEmail    string
	signupPassword string
	signupConfirm  string
	loginEmail     string
	loginPassword  string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := signupConfirm
		if !cmd.Flags().Changed("confirm") {
			confirm = signupPassword
		}
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			acct, err := env.session.Signup(ctx, service.SignupInput{
				Name:            signupName,
				Email:           signupEmail,
				Password:        signupPassword,
				ConfirmPassword: confirm,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %s (%s)\n", acct.Email, acct.ID)
			fmt.Fprintln(cmd.OutOrStdout(), "Next: complete your profile with `big2fit profile set`")
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := env.session.Login(ctx, loginEmail, loginPassword); err != nil {
				return describeAuthError(err)
			}
			acct, _ := env.session.Account()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", acct.Email)
			if !env.session.IsProfileComplete() {
				fmt.Fprintln(cmd.OutOrStdout(), "Profile incomplete: run `big2fit profile set`")
			}
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the current account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			if err := env.session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, env *appEnv) error {
			acct, ok := env.session.Account()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", acct.Email, acct.Profile.Name, acct.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)

	signupCmd.Flags().StringVar(&signupName, "name", "", "Display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (min 6 characters)")
	signupCmd.Flags().StringVar(&signupConfirm, "confirm", "", "Password confirmation (default: same as --password)")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
