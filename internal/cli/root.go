package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanpulse/scanpulse/internal/config"
)

const (
	// Exit codes
	ExitOK           = 0 // Success
	ExitInvalidInput = 2 // Bad flags or config
	ExitRuntimeError = 3 // API, I/O, or runtime error
)

var (
	// Global config instance
	cfg *config.Config

	// Global flags
	configFile string
	apiURL     string
	verbose    bool
	debug      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scanpulse",
	Short: "ScanPulse - Live dashboard for the security findings pipeline",
	Long: `ScanPulse renders a live terminal dashboard over the findings-pipeline API:
severity trends, tool and fix distributions, per-project scan progress, and a
filterable, paginated findings table that stays in sync while scans run.

Quick start:
  scanpulse dash
  scanpulse status
  scanpulse findings --severity Critical

Point it at a non-default backend:
  scanpulse dash --api-url http://pipeline.internal:8001`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flags override config file and environment.
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}

		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(ExitRuntimeError)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/.scanpulse.yaml or ./scanpulse.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"dashboard API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")

	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(findingsCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

// version is injected by the build via SetVersion.
var version = "dev"

// SetVersion records the build version shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ScanPulse %s\n", version)
		fmt.Println("Live dashboard for the security findings pipeline")
	},
}

// initConfigCmd writes a commented sample config to stdout
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Print a sample configuration file",
	Long: `Prints a commented scanpulse.yaml to stdout.

Example:
  scanpulse init-config > ~/.scanpulse.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(config.GenerateSampleConfig())
	},
}
