package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/config"
	"facegate.io/infrastructure/logger"
)

// Version is the application version.
const Version = "0.1.0"

var (
	configFile   string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:           "facegate",
	Short:         "Passive face liveness checks for still images and frame bursts",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.InitializeLogger()
		}
		if outputFormat != "json" && outputFormat != "yaml" {
			return fmt.Errorf("unsupported output format %q (use json or yaml)", outputFormat)
		}
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", os.Getenv("LIVENESS_CONFIG_FILE"), "YAML file with engine tunables")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "Output format: json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine warnings to stderr")
}

// newEngine builds an engine from --config and the LIVENESS_ env overrides.
func newEngine() (*biometric.Engine, error) {
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return nil, err
	}
	return biometric.NewEngine(cfg)
}
