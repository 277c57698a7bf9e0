package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"scr/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show scr build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show all build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	full, _ := flags.GetBool("full")       //nolint:errcheck // registered in init
	showHash, _ := flags.GetBool("hash")   //nolint:errcheck
	showDate, _ := flags.GetBool("date")   //nolint:errcheck
	format, _ := flags.GetString("format") //nolint:errcheck

	info := version.Current()
	if !showHash && !full {
		info.GitCommit = ""
	} else if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if !showDate && !full {
		info.BuildDate = ""
	} else if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		printVersion(out, info, colored)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func printVersion(out io.Writer, info version.Info, colored bool) {
	// fatih/color глобален, переключаем на время вывода
	prev := color.NoColor
	color.NoColor = !colored
	defer func() { color.NoColor = prev }()

	fmt.Fprintf(out, "%s %s\n", info.Tool, version.Colored(info.Version))
	if info.GitCommit != "" {
		fmt.Fprintf(out, "commit: %s\n", info.GitCommit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", info.BuildDate)
	}
}
