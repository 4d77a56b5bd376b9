// Package watch analyzes supported files as they appear in a directory.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/pipeline"
	"github.com/jonathan/career-analyzer/internal/types"
)

// DefaultDebounce is how long a file must stay quiet before it is analyzed.
const DefaultDebounce = 500 * time.Millisecond

// Analyzer runs one analysis request.
type Analyzer interface {
	Run(ctx context.Context, req pipeline.Request) types.AnalysisResult
}

// Options configures a Watcher.
type Options struct {
	OutDir   string           // where results go; empty = the watched directory
	Template pipeline.Request // flags and options applied to every file
	Debounce time.Duration
	OnResult func(path, outPath string, result types.AnalysisResult)
}

// Watcher writes <name>.analysis.json for every supported file created or
// modified in the watched directory.
type Watcher struct {
	watcher  *fsnotify.Watcher
	analyzer Analyzer
	opts     Options
	logger   *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a Watcher.
func New(analyzer Analyzer, opts Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		watcher:  w,
		analyzer: analyzer,
		opts:     opts,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = map[string]*time.Timer{}
	w.mu.Unlock()
	return w.watcher.Close()
}

// Run watches dir until ctx is cancelled. Files are analyzed one at a time.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if w.opts.OutDir == "" {
		w.opts.OutDir = dir
	}
	w.logger.Info("watching directory", "dir", dir, "out_dir", w.opts.OutDir)

	ready := make(chan string, 64)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !Supported(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name, ready)
		case path := <-ready:
			if _, err := w.Process(ctx, path); err != nil {
				w.logger.Error("analysis failed", "path", path, "error", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// schedule (re)starts the quiet-period timer for path.
func (w *Watcher) schedule(ctx context.Context, path string, ready chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.opts.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
}

// Process analyzes path and writes the result next to the other outputs.
// It returns the output path.
func (w *Watcher) Process(ctx context.Context, path string) (string, error) {
	req := w.opts.Template
	req.FilePath = path
	req.Text = ""
	req.URL = ""

	result := w.analyzer.Run(ctx, req)

	outDir := w.opts.OutDir
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	outPath := OutputPath(outDir, path)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}

	w.logger.Info("analysis written",
		"path", path,
		"out", outPath,
		"success", result.Success,
		"request_id", result.RequestID,
	)
	if w.opts.OnResult != nil {
		w.opts.OnResult(path, outPath, result)
	}
	return outPath, nil
}

// Supported reports whether path has an extension the extractor accepts.
func Supported(path string) bool {
	_, ok := extraction.DetectKind(path)
	return ok
}

// OutputPath returns <outDir>/<name>.analysis.json, where name is the base
// name of path without its extension.
func OutputPath(outDir, path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, name+".analysis.json")
}
