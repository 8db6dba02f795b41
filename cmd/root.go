package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pg-gateway",
	Short: "Payment gateway aggregation service",
	Long:  "A gateway that resolves partner fee schedules, dispatches card authorizations to external payment processors, and serves paginated payment history with aggregate statistics.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
