package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pagescore.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagescore",
		Short: "Website performance scoring with PageSpeed Insights",
		Long: `pagescore collects PageSpeed Insights results for the mobile and desktop
profiles of a website.

The serve command runs the aggregator service. The check and batch commands
send URLs to that service (or, with --direct, straight to the PageSpeed
Insights API) and export the flattened metrics as CSV or XLS.

The API key is read from PAGESPEED_API_KEY (or Google_API), from a .env
file in the working directory, or from the configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .pagescore in current or home directory)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
