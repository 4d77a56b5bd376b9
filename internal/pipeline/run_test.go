package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/extraction"
	"github.com/jonathan/career-analyzer/internal/recommend"
	"github.com/jonathan/career-analyzer/internal/types"
)

const sampleText = `Senior engineer with 6 years experience in Python and JavaScript.
Built React frontends and deployed Docker services to AWS. Agile and Scrum.`

type fakeExtractor struct {
	mu       sync.Mutex
	analyzed []string
	opts     []extraction.Options
	text     string
	fail     string
	panics   bool
}

func (f *fakeExtractor) Analyze(_ context.Context, path string, opts extraction.Options) types.ExtractionResult {
	f.mu.Lock()
	f.analyzed = append(f.analyzed, path)
	f.opts = append(f.opts, opts)
	f.mu.Unlock()
	if f.panics {
		panic("decoder exploded")
	}
	if f.fail != "" {
		return types.ExtractionResult{Success: false, Error: f.fail}
	}
	res := extraction.FromText(f.text)
	res.ExtractionType = types.ExtractionPDF
	res.ExtractionMethod = "pdftotext"
	res.Filename = filepath.Base(path)
	return res
}

func (f *fakeExtractor) ExtractURL(_ context.Context, url string, _ bool) types.ExtractionResult {
	res := extraction.FromText(f.text)
	res.ExtractionType = types.ExtractionHTML
	res.ExtractionMethod = "http"
	res.SourceURL = url
	return res
}

type fakeRecommender struct {
	mu       sync.Mutex
	requests []recommend.SkillRequest
	deadline bool
	delay    time.Duration
}

func (f *fakeRecommender) Recommend(ctx context.Context, req recommend.SkillRequest) *types.RecommendationResult {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	_, f.deadline = ctx.Deadline()
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			res := types.FailedRecommendation(ctx.Err().Error())
			return res
		}
	}
	res, _ := recommend.NewFallback().Recommend(ctx, req)
	return res
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func allFlags() types.AnalysisFlags {
	return types.AnalysisFlags{ExtractKeywords: true, CategorizeSkills: true, RecommendJobs: true}
}

func TestRun_TextAllStages(t *testing.T) {
	rec := &fakeRecommender{}
	p := New(&fakeExtractor{}, rec, Options{}, quietLogger())

	var events []ProgressEvent
	var mu sync.Mutex
	out := p.Run(context.Background(), Request{
		Text:            sampleText,
		AnalysisFlags:   allFlags(),
		AnalysisOptions: types.AnalysisOptions{TopK: 3},
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		},
	})

	require.True(t, out.Success, out.Error)
	assert.NotEmpty(t, out.RequestID)
	assert.NotEmpty(t, out.ProcessedAt)

	require.NotNil(t, out.Extraction)
	assert.Equal(t, types.ExtractionDirectInput, out.Extraction.ExtractionType)
	assert.Equal(t, "direct", out.Extraction.ExtractionMethod)

	require.NotNil(t, out.Keywords)
	assert.Contains(t, out.Keywords.TopKeywordNames(), "Python")

	require.NotNil(t, out.Categorization)
	assert.Equal(t, len(out.Keywords.TopKeywords), out.Categorization.TotalSkills)

	require.NotNil(t, out.Recommendations)
	assert.Len(t, out.Recommendations.JobRecommendations, 3)
	require.Len(t, rec.requests, 1)
	assert.Equal(t, out.Keywords.TopKeywordNames(), rec.requests[0].Skills)
	assert.Equal(t, 3, rec.requests[0].TopK)
	assert.True(t, rec.deadline)

	stages := make(map[string]bool)
	for _, e := range events {
		stages[e.Stage] = true
		assert.Equal(t, out.RequestID, e.RequestID)
	}
	assert.Len(t, stages, 4)
}

func TestRun_ExtractionOnly(t *testing.T) {
	ex := &fakeExtractor{text: sampleText}
	p := New(ex, nil, Options{}, quietLogger())

	noPreprocess := false
	out := p.Run(context.Background(), Request{
		FilePath:        "/tmp/resume.pdf",
		AnalysisOptions: types.AnalysisOptions{Language: "deu", Preprocessing: &noPreprocess},
	})
	require.True(t, out.Success)
	assert.Equal(t, "resume.pdf", out.Extraction.Filename)
	assert.Nil(t, out.Keywords)
	assert.Nil(t, out.Categorization)
	assert.Nil(t, out.Recommendations)

	require.Len(t, ex.opts, 1)
	assert.Equal(t, "deu", ex.opts[0].Language)
	assert.False(t, ex.opts[0].Preprocess)
}

func TestRun_KeywordsOnly(t *testing.T) {
	p := New(&fakeExtractor{}, nil, Options{}, quietLogger())
	out := p.Run(context.Background(), Request{
		Text:          sampleText,
		AnalysisFlags: types.AnalysisFlags{ExtractKeywords: true},
	})
	require.True(t, out.Success)
	require.NotNil(t, out.Keywords)
	assert.Equal(t, 0.7, out.Keywords.MinConfidence)
	assert.Nil(t, out.Categorization)
	assert.Nil(t, out.Recommendations)
}

func TestRun_URL(t *testing.T) {
	p := New(&fakeExtractor{text: sampleText}, nil, Options{}, quietLogger())
	out := p.Run(context.Background(), Request{URL: "https://example.com/job"})
	require.True(t, out.Success)
	assert.Equal(t, "https://example.com/job", out.Extraction.SourceURL)
}

func TestRun_ExtractionFailure(t *testing.T) {
	p := New(&fakeExtractor{fail: "File size exceeds 10MB limit"}, nil, Options{}, quietLogger())
	out := p.Run(context.Background(), Request{FilePath: "big.pdf", AnalysisFlags: allFlags()})
	assert.False(t, out.Success)
	assert.Equal(t, "File size exceeds 10MB limit", out.Error)
	require.NotNil(t, out.Extraction)
	assert.Nil(t, out.Keywords)
}

func TestRun_SourceValidation(t *testing.T) {
	p := New(&fakeExtractor{}, nil, Options{}, quietLogger())

	out := p.Run(context.Background(), Request{})
	assert.False(t, out.Success)
	assert.Equal(t, ErrSourceRequired.Error(), out.Error)

	out = p.Run(context.Background(), Request{Text: "x", URL: "https://example.com"})
	assert.False(t, out.Success)
	assert.Equal(t, ErrSourceRequired.Error(), out.Error)

	out = p.Run(context.Background(), Request{Text: "   "})
	assert.False(t, out.Success)
	assert.Equal(t, ErrNoText.Error(), out.Error)
}

func TestRun_PanicBecomesFailedResult(t *testing.T) {
	p := New(&fakeExtractor{panics: true}, nil, Options{}, quietLogger())
	out := p.Run(context.Background(), Request{FilePath: "x.pdf"})
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "decoder exploded")
	assert.NotEmpty(t, out.ProcessedAt)
}

func TestRun_RecommenderMissing(t *testing.T) {
	p := New(&fakeExtractor{}, nil, Options{}, quietLogger())
	out := p.Run(context.Background(), Request{
		Text:          sampleText,
		AnalysisFlags: types.AnalysisFlags{RecommendJobs: true},
	})
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "not configured")
}

func TestRun_RecommendTimeout(t *testing.T) {
	rec := &fakeRecommender{delay: time.Second}
	p := New(&fakeExtractor{}, rec, Options{RecommendTimeout: 20 * time.Millisecond}, quietLogger())

	out := p.Run(context.Background(), Request{
		Text:          sampleText,
		AnalysisFlags: types.AnalysisFlags{RecommendJobs: true},
	})
	require.True(t, out.Success)
	require.NotNil(t, out.Recommendations)
	assert.False(t, out.Recommendations.Success)
	assert.Contains(t, out.Recommendations.Error, "deadline exceeded")
}

func TestRun_NoKeywordsSkipsRecommendation(t *testing.T) {
	rec := &fakeRecommender{}
	p := New(&fakeExtractor{}, rec, Options{}, quietLogger())

	var stages []string
	var mu sync.Mutex
	out := p.Run(context.Background(), Request{
		Text:            "Python",
		AnalysisFlags:   allFlags(),
		AnalysisOptions: types.AnalysisOptions{MinConfidence: 0.9},
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			stages = append(stages, e.Stage)
			mu.Unlock()
		},
	})
	require.True(t, out.Success)
	require.NotNil(t, out.Keywords)
	assert.Zero(t, out.Keywords.UniqueKeywords)
	assert.Nil(t, out.Recommendations)
	assert.Equal(t, []string{NoteRecommendationSkipped}, out.Notes)
	assert.Empty(t, rec.requests)
	assert.Contains(t, stages, StageRecommendation)
}

func TestRunBatch(t *testing.T) {
	ex := &fakeExtractor{text: sampleText}
	p := New(ex, &fakeRecommender{}, Options{}, quietLogger())

	paths := []string{"a.pdf", "b.docx", "c.png", "d.pdf"}
	items := p.RunBatch(context.Background(), paths, Request{AnalysisFlags: allFlags()}, 2)

	require.Len(t, items, len(paths))
	for i, item := range items {
		assert.Equal(t, paths[i], item.Path)
		assert.True(t, item.Result.Success)
		assert.Equal(t, filepath.Base(paths[i]), item.Result.Extraction.Filename)
	}
	assert.ElementsMatch(t, paths, ex.analyzed)
}

func TestSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PNG", "notes.txt", "c.docx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	paths, err := SupportedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.PNG"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "c.docx"),
	}, paths)

	_, err = SupportedFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
