package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor grows branching structures from L-system grammars",
	Long: `Arbor rewrites Lindenmayer-system grammars and interprets the result with a 3D turtle,
producing line segments you can export, preview or serve.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	sc := cli.NewSignalContext(context.Background())
	defer sc.Cancel()

	err := cli.HandleExecutionError(rootCmd.ExecuteContext(sc))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if sig := sc.Signal(); sig != nil {
		fmt.Fprintf(os.Stderr, "\nInterrupted (%v)\n", sig)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and engine lifecycle traces")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Disable logging")
}

// newApp loads the configuration and logger selected by the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	level, _ := flags.GetString("log-level")
	if level == "" {
		level = cfg.Log.Level
	}
	format, _ := flags.GetString("log-format")
	if format == "" {
		format = cfg.Log.Format
	}
	debug, _ := flags.GetBool("debug")
	quiet, _ := flags.GetBool("quiet")

	logger := cli.CreateLogger(cli.LogOptions{Level: level, Format: format, Debug: debug, Quiet: quiet})
	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.Debug = debug
	return app, nil
}
