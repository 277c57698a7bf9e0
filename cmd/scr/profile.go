package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scr/internal/observ"
	"scr/internal/prof"
)

// setupProfiling starts the profilers requested by persistent flags.
// The returned cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	cfg := prof.Config{CPU: cpuProfile, Mem: memProfile, RuntimeTrace: tracePath}
	if !cfg.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}

// timingsMode reads --timings: "" disables, otherwise pretty or json.
func timingsMode(cmd *cobra.Command) (string, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("timings")
	if err != nil {
		return "", fmt.Errorf("failed to get timings flag: %w", err)
	}
	switch mode {
	case "", "off":
		return "", nil
	case "pretty", "json":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --timings value %q (expected off|pretty|json)", mode)
	}
}

func writeTimings(cmd *cobra.Command, timer *observ.Timer, mode string) {
	switch mode {
	case "pretty":
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	case "json":
		if err := timer.WriteJSON(cmd.ErrOrStderr()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "timings: %v\n", err)
		}
	}
}
