package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective scr.toml settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if cfg.Path != "" {
			fmt.Fprintf(out, "# %s\n", cfg.Path)
		} else {
			fmt.Fprintln(out, "# defaults (no scr.toml found)")
		}
		return toml.NewEncoder(out).Encode(cfg)
	},
}
