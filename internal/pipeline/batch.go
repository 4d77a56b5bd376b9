package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/types"
)

// BatchItem pairs an input file with its analysis.
type BatchItem struct {
	Path   string
	Result types.AnalysisResult
}

// RunBatch analyzes every path with at most workers concurrent requests.
// Results keep the order of paths.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, template Request, workers int) []BatchItem {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	items := make([]BatchItem, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			req := template
			req.FilePath = path
			req.Text = ""
			req.URL = ""
			items[i] = BatchItem{Path: path, Result: p.Run(gCtx, req)}
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// SupportedFiles lists the regular files directly under dir whose extension
// the extractor accepts, sorted by name.
func SupportedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := extraction.DetectKind(e.Name()); ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
