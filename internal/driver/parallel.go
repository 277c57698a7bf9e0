package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"scr/internal/diag"
	"scr/internal/dialect"
	"scr/internal/source"
	"scr/internal/token"
	"scr/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path    string        // путь к файлу
	FileID  source.FileID // ID файла в FileSet (0 и Loaded=false при ошибке загрузки)
	Loaded  bool
	Syntax  dialect.Syntax
	Tokens  []token.Token
	Bag     *diag.Bag
	Dialect dialect.Classification
}

var styleExtensions = []string{".css", ".scss", ".sass"}

// ListStyleFiles returns the sorted stylesheets under dir: .css, .scss, .sass
// and any extension the classifier maps explicitly.
func ListStyleFiles(dir string, c dialect.Classifier) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isStyleFile(path, c) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

func isStyleFile(path string, c dialect.Classifier) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := c.Extensions[ext]; ok {
		return true
	}
	for _, known := range styleExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// TokenizeDir lexes every stylesheet under dir with at most opts.Jobs workers.
// Results are in ListStyleFiles order; a file that fails to load gets an
// IOLoadFileError diagnostic instead of tokens.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListStyleFiles(dir, opts.Classifier)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetAt(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	// FileSet не потокобезопасен: грузим всё заранее, потом только читаем.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			trace.Point(tracer, trace.ScopeFile, "load-failed", parent, path)
			continue
		}
		fileIDs[path] = fileID
		opts.Progress.emit(ProgressEvent{Path: path, Status: ProgressQueued})
	}

	if opts.Interner == nil {
		opts.Interner = source.NewInterner()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.maxDiagnostics())
			syntax := opts.syntaxFor(path)

			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = TokenizeDirResult{Path: path, Syntax: syntax, Bag: bag}
				opts.Progress.emit(ProgressEvent{Path: path, Status: ProgressFailed, Diagnostics: 1})
				return nil
			}

			opts.Progress.emit(ProgressEvent{Path: path, Status: ProgressStarted})
			started := time.Now()

			fileSpan := trace.Begin(tracer, trace.ScopeFile, "file", parent)
			fctx := trace.WithSpan(gctx, fileSpan)
			file := fileSet.Get(fileIDs[path])
			tokens, cls := lexCached(fctx, file, syntax, bag, opts)
			fileSpan.End(path)

			results[i] = TokenizeDirResult{
				Path:    path,
				FileID:  file.ID,
				Loaded:  true,
				Syntax:  syntax,
				Tokens:  tokens,
				Bag:     bag,
				Dialect: cls,
			}
			opts.Progress.emit(ProgressEvent{
				Path:        path,
				Status:      ProgressDone,
				Tokens:      len(tokens),
				Diagnostics: bag.Len(),
				Elapsed:     time.Since(started),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
