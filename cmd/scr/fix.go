package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scr/internal/diag"
	"scr/internal/diagfmt"
	"scr/internal/driver"
	"scr/internal/fix"
	"scr/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply the suggested fixes of lexical diagnostics",
	Long: `Fix tokenizes the input and applies the edits attached to its diagnostics,
such as closing an unterminated string or comment. Without --write it prints a diff.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every fix instead of the first one")
	fixCmd.Flags().String("code", "", "apply only fixes for this diagnostic code (e.g. LEX1003)")
	fixCmd.Flags().Bool("write", false, "write the fixed files instead of printing a diff")
	fixCmd.Flags().String("syntax", "", "lex every file as this dialect (css|scss|sass)")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	codeStr, err := cmd.Flags().GetString("code")
	if err != nil {
		return fmt.Errorf("failed to get code flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, Write: write}
	switch {
	case codeStr != "":
		code, ok := diag.ParseCode(codeStr)
		if !ok {
			return fmt.Errorf("unknown diagnostic code %q", codeStr)
		}
		opts.Mode, opts.Code = fix.ApplyModeCode, code
	case all:
		opts.Mode = fix.ApplyModeAll
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}
	dopts := driver.Options{Classifier: classifier, MaxDiagnostics: cfg.Tokenize.MaxDiagnostics, Jobs: cfg.Tokenize.Jobs}
	if syntaxName, _ := cmd.Flags().GetString("syntax"); syntaxName != "" {
		if dopts.Syntax, err = parseSyntaxFlag(syntaxName); err != nil {
			return err
		}
		dopts.ForceSyntax = true
	}

	fs, items, err := collectDiagnostics(cmd, target, dopts)
	if err != nil {
		return err
	}

	result, err := fix.Apply(fs, items, opts)
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(cmd.OutOrStdout(), "no applicable fixes found")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	if !write {
		for _, ch := range result.Changes {
			if err := diagfmt.FormatFileDiff(out, ch.Path, ch.Before, ch.After, 2, colored); err != nil {
				return err
			}
		}
	}
	for _, a := range result.Applied {
		fmt.Fprintf(out, "fixed %s %s: %s\n", a.Code.ID(), a.Path, a.Title)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s %q: %s\n", s.Code.ID(), s.Title, s.Reason)
	}
	if !write {
		fmt.Fprintln(out, "dry run: pass --write to update the files")
	}
	return nil
}

// collectDiagnostics tokenizes a file or directory and drains every bag.
func collectDiagnostics(cmd *cobra.Command, target string, opts driver.Options) (*source.FileSet, []diag.Diagnostic, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !info.IsDir() {
		res, err := driver.Tokenize(cmd.Context(), target, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("tokenization failed: %w", err)
		}
		return res.FileSet, res.Bag.Drain(), nil
	}
	fs, results, err := driver.TokenizeDir(cmd.Context(), target, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("tokenization failed: %w", err)
	}
	var items []diag.Diagnostic
	for _, r := range results {
		items = append(items, r.Bag.Drain()...)
	}
	return fs, items, nil
}
