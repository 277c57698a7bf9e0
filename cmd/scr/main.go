package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scr/internal/config"
	"scr/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "scr",
	Short:         "CSS, SCSS and Sass tokenizer",
	Long:          `scr splits stylesheets into tokens and reports lexical problems`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// main registers subcommands and persistent flags, then executes the root command.
// Any error returned by a command exits with status 1; lexical errors use exitError.
func main() {
	// --version печатает ту же строку, что и `scr version --full`
	rootCmd.Version = version.Current().String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(fixCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to scr.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().String("timings", "off", "print stage timings to stderr (off|pretty|json)")
	rootCmd.PersistentFlags().Lookup("timings").NoOptDefVal = "pretty"
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if !errors.As(err, &exit) {
			fmt.Fprintf(os.Stderr, "scr: %v\n", err)
		}
		os.Exit(1)
	}
}

// exitError signals a non-zero status after output has already been written.
type exitError struct{ msg string }

func (e exitError) Error() string { return e.msg }

// loadConfig reads --config or discovers scr.toml from the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}
