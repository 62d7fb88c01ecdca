// Package commands implements the memvfs command line.
package commands

import (
	"fmt"
	"os"

	"github.com/marmos91/memvfs/cmd/memvfs/commands/config"
	"github.com/marmos91/memvfs/internal/logger"
	pkgconfig "github.com/marmos91/memvfs/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "memvfs",
	Short: "memvfs - in-memory virtual file content and handles",
	Long: `memvfs exposes virtual files backed by pluggable content strategies
(buffered streams and the null, zero, random and full devices), with any
number of independent handles per file.

Use "memvfs [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/memvfs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(config.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads the configuration selected by --config and applies
// its logging section.
func loadConfig() (*pkgconfig.Config, error) {
	cfg, err := pkgconfig.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Debug("Configuration loaded from %s", configSource())
	return cfg, nil
}

// configSource returns a description of where the config was loaded from.
func configSource() string {
	if cfgFile != "" {
		return cfgFile
	}
	if pkgconfig.ConfigExists() {
		return pkgconfig.GetDefaultConfigPath()
	}
	return "defaults"
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
