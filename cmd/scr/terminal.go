package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// switchMode is the auto|on|off value shared by --color and --ui.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

// parseSwitch also accepts always/never, the spelling of --color in many tools.
func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "always":
		return switchOn, nil
	case "off", "never":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve turns auto into the answer of probe.
func (m switchMode) resolve(probe func() bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return probe()
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // descriptors fit in int
}

// useColor resolves --color for output going to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseSwitch("color", value)
	if err != nil {
		return false, err
	}
	return mode.resolve(func() bool { return isTerminal(f) }), nil
}

// shouldUseTUI: прогресс рисуется в stderr, и только если stdout тоже терминал,
// иначе он смешается с перенаправленными токенами.
func shouldUseTUI(mode switchMode) bool {
	return mode.resolve(func() bool { return isTerminal(os.Stderr) && isTerminal(os.Stdout) })
}
