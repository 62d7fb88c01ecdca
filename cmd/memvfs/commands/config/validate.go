package config

import (
	"fmt"

	"github.com/marmos91/memvfs/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the memvfs configuration file.

Checks for syntax errors, missing required fields, invalid values and
unknown content strategy options.

Examples:
  # Validate default config
  memvfs config validate

  # Validate specific config file
  memvfs config validate --config ./memvfs.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	var warnings []string
	if cfg.Metrics.Enabled && cfg.Metrics.Port < 1024 {
		warnings = append(warnings, fmt.Sprintf("metrics port %d is privileged", cfg.Metrics.Port))
	}
	if !cfg.Naming.CaseSensitive && cfg.Naming.Separator == "/" {
		warnings = append(warnings, "case-insensitive names with POSIX separator")
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Configuration file: %s\n", displayPath)
	_, _ = fmt.Fprintln(out, "Validation: OK")

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, w := range warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration summary:\n")
	_, _ = fmt.Fprintf(out, "  Content type:    %s\n", cfg.Content.Type)
	_, _ = fmt.Fprintf(out, "  Metrics:         %t (port %d)\n", cfg.Metrics.Enabled, cfg.Metrics.Port)
	_, _ = fmt.Fprintf(out, "  Log level:       %s\n", cfg.Logging.Level)
	return nil
}
