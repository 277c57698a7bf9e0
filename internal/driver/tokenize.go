package driver

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"scr/internal/diag"
	"scr/internal/dialect"
	"scr/internal/lexer"
	"scr/internal/source"
	"scr/internal/token"
	"scr/internal/trace"
)

// maxHintNotes limits how many extra evidence locations a dialect hint lists.
const maxHintNotes = 3

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Syntax  dialect.Syntax
	Tokens  []token.Token
	Bag     *diag.Bag
	// Dialect is what the token stream itself suggests, independent of Syntax.
	Dialect dialect.Classification
}

// TokenizeSource lexes src as syntax and returns every token up to and
// including EOF, together with all diagnostics raised on the way.
func TokenizeSource(name string, src []byte, syntax dialect.Syntax) ([]token.Token, []diag.Diagnostic) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, src))
	bag := diag.NewBag(math.MaxInt)
	tokens, _ := lexFile(context.Background(), file, syntax, bag, Options{})
	return tokens, bag.Drain()
}

// Tokenize loads path and lexes it with the dialect chosen by opts.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	syntax := opts.syntaxFor(file.Path)
	opts.Progress.emit(ProgressEvent{Path: path, Status: ProgressStarted})
	started := time.Now()
	tokens, cls := lexCached(ctx, file, syntax, bag, opts)
	opts.Progress.emit(ProgressEvent{
		Path:        path,
		Status:      ProgressDone,
		Tokens:      len(tokens),
		Diagnostics: bag.Len(),
		Elapsed:     time.Since(started),
	})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Syntax:  syntax,
		Tokens:  tokens,
		Bag:     bag,
		Dialect: cls,
	}, nil
}

// lexCached serves file from opts.Cache when possible and stores fresh results.
// Runs that hit a lexer panic are never cached.
func lexCached(ctx context.Context, file *source.File, syntax dialect.Syntax, bag *diag.Bag, opts Options) ([]token.Token, dialect.Classification) {
	if opts.Cache == nil {
		return lexFile(ctx, file, syntax, bag, opts)
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	key := KeyFor(file, syntax, opts)
	var payload DiskPayload
	if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
		trace.Point(tracer, trace.ScopeFile, "cache-hit", parent, file.Path)
		return fromDiskPayload(&payload, file.ID, bag, opts.Interner), payload.Dialect
	}

	tokens, cls := lexFile(ctx, file, syntax, bag, opts)
	items := bag.Items()
	if slices.ContainsFunc(items, func(d diag.Diagnostic) bool { return d.Code == diag.LexPanic }) {
		return tokens, cls
	}
	if err := opts.Cache.Put(key, toDiskPayload(syntax, tokens, items, bag.Dropped(), cls)); err != nil {
		trace.Point(tracer, trace.ScopeFile, "cache-write-failed", parent, err.Error())
	}
	return tokens, cls
}

// lexFile pulls tokens until EOF. A panic inside the lexer is turned into a
// LexPanic diagnostic and a synthetic EOF so callers always get a terminated stream.
func lexFile(ctx context.Context, file *source.File, syntax dialect.Syntax, bag *diag.Bag, opts Options) (tokens []token.Token, cls dialect.Classification) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", trace.CurrentSpan(ctx).SpanID)
	defer func() {
		span.WithExtra("tokens", strconv.Itoa(len(tokens))).
			WithExtra("diagnostics", strconv.Itoa(bag.Len())).
			WithExtra("syntax", syntax.String()).
			End(file.Path)
	}()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var end uint32
		if n := len(tokens); n > 0 {
			end = tokens[n-1].Span.End
		}
		at := source.Span{File: file.ID, Start: end, End: end}
		bag.Add(diag.NewError(diag.LexPanic, at, fmt.Sprintf("internal lexer error: %v", r)))
		tokens = append(tokens, token.Token{Kind: token.EOF, Span: at})
	}()

	lx := lexer.New(file, lexer.Options{
		Syntax:   syntax,
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		Interner: opts.Interner,
	})
	obs := dialect.NewObserver(dialect.NewEvidence())
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		obs.Observe(tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	cls = opts.Classifier.Classify(obs.Evidence())
	if opts.Hints && syntax == dialect.Css && cls.Syntax != dialect.Css && cls.Score >= hintThreshold {
		reportDialectHint(bag, file, cls, obs.Evidence())
	}
	return tokens, cls
}

func reportDialectHint(bag *diag.Bag, file *source.File, cls dialect.Classification, ev *dialect.Evidence) {
	first, ok := ev.First(cls.Syntax)
	if !ok {
		return
	}
	// путь в текст не попадает: кэш делят файлы с одинаковым содержимым
	msg := fmt.Sprintf("lexed as css but looks like %s (score %d, confidence %.0f%%)",
		cls.Syntax, cls.Score, cls.Confidence*100)
	d := diag.New(diag.SevInfo, diag.LexDialectHint, first.Span, msg).
		WithNote(first.Span, first.Reason)

	notes := 0
	for _, h := range ev.Hints() {
		if notes == maxHintNotes {
			break
		}
		if h.Syntax != cls.Syntax || h.Span == first.Span {
			continue
		}
		d = d.WithNote(h.Span, h.Reason)
		notes++
	}
	bag.Add(d)
}
