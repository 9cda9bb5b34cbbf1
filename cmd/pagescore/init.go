package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/nao1215/pagescore/internal/config"
)

//go:embed templates/pagescore.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pagescore configuration file",
		Long: `Initialize creates a new .pagescore configuration file in the current directory.

The generated file documents the service port, the aggregator service URL
used by the batch driver, the PageSpeed Insights endpoint and timeouts.
Keep the API key in the PAGESPEED_API_KEY environment variable.

Examples:
  # Create .pagescore in current directory
  pagescore init

  # Create config file at a specific path
  pagescore init -o ~/.config/pagescore/config.yaml

  # Force overwrite existing file
  pagescore init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return errors.Newf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/pagescore.yaml")
	if err != nil {
		return errors.Wrap(err, "failed to read config template")
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrap(err, "failed to create directory")
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return errors.Wrap(err, "failed to write configuration file")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure:")
	fmt.Fprintln(out, "  - The aggregator service host and port")
	fmt.Fprintln(out, "  - The service URL used by check and batch")
	fmt.Fprintln(out, "  - The PageSpeed Insights endpoint and timeout")
	return nil
}
