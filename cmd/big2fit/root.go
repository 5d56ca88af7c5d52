package big2fit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath       string
	storeBackend string
	dataFile     string
	logLevel     string
	activeDate   string
)

var rootCmd = &cobra.Command{
	Use:           "big2fit",
	Short:         "big2fit tracks meals, water, and exercise against your calorie target",
	Long:          "big2fit is a local-first diet and fitness tracker. It derives daily calorie and macro targets from your profile and tracks meals, water, and exercise per day.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (sqlite store)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Storage backend: sqlite|file|memory|redis|postgres (default from BIG2FIT_STORE or sqlite)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "Path to JSON data file (file store)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&activeDate, "date", "", "Day to work on: YYYY-MM-DD, today, prev, or next (default today)")
}
