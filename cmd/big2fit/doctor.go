package big2fit

import (
	"context"
	"fmt"
	"strings"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

var (
	doctorFix  bool
	doctorJSON bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, env *appEnv) error {
			report, err := service.RunDoctor(ctx, env.store, doctorFix)
			if err != nil {
				return err
			}
			if doctorJSON {
				if err := printJSON(cmd, report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Invalid values: %d %s\n", len(report.InvalidValues), strings.Join(report.InvalidValues, " "))
				fmt.Fprintf(out, "Orphan keys: %d %s\n", len(report.OrphanKeys), strings.Join(report.OrphanKeys, " "))
				fmt.Fprintf(out, "Duplicate emails: %d %s\n", len(report.DuplicateEmails), strings.Join(report.DuplicateEmails, " "))
				fmt.Fprintf(out, "Dangling current user: %t\n", report.DanglingCurrent)
			}
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed keys: %d\n", report.FixedKeys)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(ctx, env.store, false)
				if err != nil {
					return err
				}
			}
			if report.HasIssues() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Delete invalid and orphaned keys")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output as JSON")
}
