package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scr/internal/config"
	"scr/internal/diag"
	"scr/internal/diagfmt"
	"scr/internal/dialect"
	"scr/internal/driver"
	"scr/internal/observ"
	"scr/internal/source"
	"scr/internal/token"
	"scr/internal/trace"
	"scr/internal/ui"
	"scr/internal/version"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|directory>",
	Short: "Tokenize a stylesheet or every stylesheet in a directory",
	Long: `Tokenize splits .css, .scss and .sass files into tokens.
Tokens go to stdout, diagnostics to stderr. The exit status is 1 when any error was reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "", "token output format (pretty|json|msgpack; default from scr.toml)")
	tokenizeCmd.Flags().String("diagnostics-format", "pretty", "diagnostic output format (pretty|json|sarif)")
	tokenizeCmd.Flags().String("syntax", "", "lex every file as this dialect (css|scss|sass) instead of using the extension")
	tokenizeCmd.Flags().Bool("no-trivia", false, "omit whitespace and comment tokens")
	tokenizeCmd.Flags().Bool("positions", false, "include line/column in json and msgpack token output")
	tokenizeCmd.Flags().Bool("hints", true, "report css files that look like scss")
	tokenizeCmd.Flags().Bool("cache", false, "reuse tokens from the on-disk cache")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0 = from scr.toml or GOMAXPROCS)")
	tokenizeCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	tokenizeCmd.Flags().String("path-mode", "auto", "how file paths are shown (auto|absolute|relative|basename)")
	tokenizeCmd.Flags().Bool("with-notes", true, "include diagnostic notes")
	tokenizeCmd.Flags().Bool("suggest", false, "include fix suggestions in diagnostics")
	tokenizeCmd.Flags().Bool("summary", false, "print a summary line for single files too")
	tokenizeCmd.Flags().Bool("no-tokens", false, "only report diagnostics")
}

// tokenizeSettings is scr.toml merged with the command line.
type tokenizeSettings struct {
	format      string
	diagFormat  string
	tokens      diagfmt.TokenOpts
	driver      driver.Options
	uiMode      switchMode
	pretty      diagfmt.PrettyOpts
	jsonOpts    diagfmt.JSONOpts
	summary     bool
	noTokens    bool
	summaryTint bool
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]
	started := time.Now()
	timer := observ.NewTimer()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	timings, err := timingsMode(cmd)
	if err != nil {
		return err
	}

	cfgStage := timer.Begin("config")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	timer.End(cfgStage, cfg.Path)

	tracer, cleanup, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		return err
	}
	defer cleanup()

	settings, err := readTokenizeSettings(cmd, cfg)
	if err != nil {
		return err
	}
	settings.driver.Progress = func(ev driver.ProgressEvent) {
		if ev.Status == driver.ProgressDone {
			timer.Record("lex", ev.Elapsed)
		}
	}

	span := trace.Begin(tracer, trace.ScopeDriver, "tokenize", 0)
	ctx := trace.WithSpan(cmd.Context(), span)
	defer span.End(target)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	var (
		fs      *source.FileSet
		items   []diag.Diagnostic
		summary diagfmt.Summary
	)
	tokStage := timer.Begin("tokenize")
	if info.IsDir() {
		fs, items, summary, err = tokenizeDirectory(ctx, cmd, target, settings)
		settings.summary = true
	} else {
		fs, items, summary, err = tokenizeFile(ctx, cmd, target, settings)
	}
	if err != nil {
		return err
	}
	timer.End(tokStage, fmt.Sprintf("%d files", summary.Files))
	summary.Elapsed = time.Since(started)
	span.WithExtra("files", fmt.Sprint(summary.Files)).WithExtra("tokens", fmt.Sprint(summary.Tokens))

	diagStage := timer.Begin("diagnostics")
	if err := writeDiagnostics(cmd.ErrOrStderr(), items, fs, settings); err != nil {
		return fmt.Errorf("failed to write diagnostics: %w", err)
	}
	if settings.summary && settings.diagFormat == "pretty" {
		if err := diagfmt.FormatSummary(cmd.ErrOrStderr(), summary, settings.summaryTint); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	timer.End(diagStage, fmt.Sprintf("%d items", len(items)))
	writeTimings(cmd, timer, timings)

	for _, d := range items {
		if d.Code == diag.LexPanic {
			dumpTraceRing(cmd, tracer)
			break
		}
	}

	if summary.Errors > 0 {
		return exitError{msg: fmt.Sprintf("%d errors", summary.Errors)}
	}
	return nil
}

func readTokenizeSettings(cmd *cobra.Command, cfg config.Config) (tokenizeSettings, error) {
	flags := cmd.Flags()
	var s tokenizeSettings

	format, err := flags.GetString("format")
	if err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = cfg.Tokenize.Format
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return s, fmt.Errorf("unknown format: %s", format)
	}
	s.format = format

	diagFormat, err := flags.GetString("diagnostics-format")
	if err != nil {
		return s, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	switch diagFormat {
	case "pretty", "json", "sarif":
	default:
		return s, fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}
	s.diagFormat = diagFormat

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Tokenize.MaxDiagnostics
	}

	classifier, err := cfg.Classifier()
	if err != nil {
		return s, err
	}
	s.driver = driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Classifier:     classifier,
		Hints:          cfg.Tokenize.Hints,
		Jobs:           cfg.Tokenize.Jobs,
	}

	syntaxName, err := flags.GetString("syntax")
	if err != nil {
		return s, fmt.Errorf("failed to get syntax flag: %w", err)
	}
	if syntaxName != "" {
		if s.driver.Syntax, err = parseSyntaxFlag(syntaxName); err != nil {
			return s, err
		}
		s.driver.ForceSyntax = true
	}

	if flags.Changed("hints") {
		if s.driver.Hints, err = flags.GetBool("hints"); err != nil {
			return s, fmt.Errorf("failed to get hints flag: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if s.driver.Jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache || cfg.Cache.Enabled {
		s.driver.Cache = openCache(cmd, cfg.Cache)
	}

	noTrivia, err := flags.GetBool("no-trivia")
	if err != nil {
		return s, fmt.Errorf("failed to get no-trivia flag: %w", err)
	}
	positions, err := flags.GetBool("positions")
	if err != nil {
		return s, fmt.Errorf("failed to get positions flag: %w", err)
	}
	pathModeStr, err := flags.GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode := source.ParsePathMode(pathModeStr)
	s.tokens = diagfmt.TokenOpts{
		Trivia:    cfg.Tokenize.Trivia && !noTrivia,
		Positions: positions,
		PathMode:  pathMode,
	}

	uiStr, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.uiMode, err = parseSwitch("ui", uiStr); err != nil {
		return s, err
	}

	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := flags.GetBool("suggest")
	if err != nil {
		return s, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	colorErr, err := useColor(cmd, os.Stderr)
	if err != nil {
		return s, err
	}
	s.summaryTint = colorErr
	s.pretty = diagfmt.PrettyOpts{
		Color:       colorErr,
		Context:     2,
		PathMode:    pathMode,
		ShowNotes:   withNotes,
		ShowFixes:   suggest,
		ShowPreview: suggest,
	}
	s.jsonOpts = diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
		IncludeFixes:     suggest,
		IncludePreviews:  suggest,
	}

	if s.summary, err = flags.GetBool("summary"); err != nil {
		return s, fmt.Errorf("failed to get summary flag: %w", err)
	}
	if s.noTokens, err = flags.GetBool("no-tokens"); err != nil {
		return s, fmt.Errorf("failed to get no-tokens flag: %w", err)
	}
	return s, nil
}

func parseSyntaxFlag(name string) (dialect.Syntax, error) {
	syntax, err := dialect.Parse(name)
	if err != nil {
		return 0, fmt.Errorf("invalid --syntax: %w", err)
	}
	return syntax, nil
}

// openCache opens the token cache; failures only disable caching.
func openCache(cmd *cobra.Command, cfg config.CacheConfig) *driver.DiskCache {
	cache, err := openDiskCache(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: token cache disabled: %v\n", err)
		return nil
	}
	return cache
}

func tokenizeFile(ctx context.Context, cmd *cobra.Command, path string, s tokenizeSettings) (*source.FileSet, []diag.Diagnostic, diagfmt.Summary, error) {
	var summary diagfmt.Summary
	result, err := driver.Tokenize(ctx, path, s.driver)
	if err != nil {
		return nil, nil, summary, fmt.Errorf("tokenization failed: %w", err)
	}
	items := result.Bag.Drain()
	summary.Add(len(result.Tokens), items)
	summary.Suppressed += result.Bag.Dropped()

	if !s.noTokens {
		stream := []fileTokens{{path: result.File.DisplayPath(s.tokens.PathMode, result.FileSet.BaseDir()), syntax: result.Syntax, tokens: result.Tokens}}
		if err := writeTokens(cmd.OutOrStdout(), result.FileSet, stream, s, false); err != nil {
			return nil, nil, summary, fmt.Errorf("failed to write tokens: %w", err)
		}
	}
	return result.FileSet, items, summary, nil
}

func tokenizeDirectory(ctx context.Context, cmd *cobra.Command, dir string, s tokenizeSettings) (*source.FileSet, []diag.Diagnostic, diagfmt.Summary, error) {
	var summary diagfmt.Summary

	var (
		fs      *source.FileSet
		results []driver.TokenizeDirResult
		err     error
	)
	if shouldUseTUI(s.uiMode) {
		files, listErr := driver.ListStyleFiles(dir, s.driver.Classifier)
		if listErr != nil {
			return nil, nil, summary, fmt.Errorf("failed to list %s: %w", dir, listErr)
		}
		outcome := ui.RunTokenizeDir(ctx, cmd.ErrOrStderr(), dir, files, s.driver)
		if outcome.UIErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: progress view failed: %v\n", outcome.UIErr)
		}
		fs, results, err = outcome.FileSet, outcome.Results, outcome.Err
	} else {
		fs, results, err = driver.TokenizeDir(ctx, dir, s.driver)
	}
	if err != nil {
		return nil, nil, summary, fmt.Errorf("tokenization failed: %w", err)
	}

	var items []diag.Diagnostic
	streams := make([]fileTokens, 0, len(results))
	for _, r := range results {
		fileItems := r.Bag.Drain()
		summary.Add(len(r.Tokens), fileItems)
		summary.Suppressed += r.Bag.Dropped()
		items = append(items, fileItems...)
		if !r.Loaded {
			continue
		}
		streams = append(streams, fileTokens{
			path:   fs.Get(r.FileID).DisplayPath(s.tokens.PathMode, fs.BaseDir()),
			syntax: r.Syntax,
			tokens: r.Tokens,
		})
	}

	if !s.noTokens {
		if err := writeTokens(cmd.OutOrStdout(), fs, streams, s, true); err != nil {
			return nil, nil, summary, fmt.Errorf("failed to write tokens: %w", err)
		}
	}
	return fs, items, summary, nil
}

type fileTokens struct {
	path   string
	syntax dialect.Syntax
	tokens []token.Token
}

// writeTokens prints streams in s.format. A single file in json mode is a
// bare token array; directories produce one object per file.
func writeTokens(w io.Writer, fs *source.FileSet, streams []fileTokens, s tokenizeSettings, multi bool) error {
	switch s.format {
	case "pretty":
		for i, st := range streams {
			if multi {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "==> %s (%s) <==\n", st.path, st.syntax)
			}
			if err := diagfmt.FormatTokensPretty(w, st.tokens, fs, s.tokens); err != nil {
				return err
			}
		}
		return nil
	case "json":
		if !multi && len(streams) == 1 {
			return diagfmt.FormatTokensJSON(w, streams[0].tokens, fs, s.tokens)
		}
		out := make([]diagfmt.TokenStream, len(streams))
		for i, st := range streams {
			out[i] = tokenStream(fs, st, s.tokens)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "msgpack":
		// поток значений, по одному на файл
		for _, st := range streams {
			if err := diagfmt.FormatTokensMsgpack(w, tokenStream(fs, st, s.tokens)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
}

func tokenStream(fs *source.FileSet, st fileTokens, opts diagfmt.TokenOpts) diagfmt.TokenStream {
	return diagfmt.TokenStream{
		File:   st.path,
		Syntax: st.syntax.String(),
		Tokens: diagfmt.BuildTokenOutput(st.tokens, fs, opts),
	}
}

func writeDiagnostics(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, s tokenizeSettings) error {
	switch s.diagFormat {
	case "json":
		return diagfmt.JSON(w, items, fs, s.jsonOpts)
	case "sarif":
		return diagfmt.Sarif(w, items, fs, diagfmt.SarifRunMeta{
			ToolName:       "scr",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		if len(items) > 0 {
			diagfmt.Pretty(w, items, fs, s.pretty)
		}
		return nil
	}
}
