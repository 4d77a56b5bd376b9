package report

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/career-analyzer/internal/pipeline"
	"github.com/jonathan/career-analyzer/internal/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleItems() []pipeline.BatchItem {
	return []pipeline.BatchItem{
		{
			Path: "/in/alice.pdf",
			Result: types.AnalysisResult{
				Success: true,
				Extraction: &types.ExtractionResult{
					Success: true, ExtractionType: types.ExtractionPDF, ExtractionMethod: "pdftotext", WordCount: 120,
				},
				Keywords: &types.KeywordSummary{
					Success:        true,
					UniqueKeywords: 2,
					TopKeywords: []types.RankedKeyword{
						{Keyword: "Python", Category: "programming_languages", Frequency: 3, Confidence: 0.8, Score: 2.12},
						{Keyword: "AWS", Category: "cloud", Frequency: 1, Confidence: 0.95, Score: 0.98},
					},
				},
				Categorization: &types.Categorization{
					Success:      true,
					SectorsFound: []types.Sector{types.SectorTechnology},
				},
				Recommendations: &types.RecommendationResult{
					Success:       true,
					PrimarySource: types.SourceFallback,
					JobRecommendations: []types.JobRecommendation{
						{Title: "Python Developer", Rank: 1, RelevanceScore: 0.95, Sector: "Technology",
							Source: types.SourceFallback, RequiredSkills: []string{"Python"}, SkillGaps: []string{}},
					},
				},
			},
		},
		{
			Path:   "/in/broken.docx",
			Result: types.AnalysisResult{Success: false, Error: "All DOCX extraction methods failed"},
		},
	}
}

func TestWorkbook(t *testing.T) {
	data, err := Workbook(sampleItems(), quietLogger())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetKeywords, SheetJobs}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, summaryHeaders, summary[0])
	assert.Equal(t, "alice.pdf", summary[1][0])
	assert.Equal(t, "TRUE", summary[1][1])
	assert.Equal(t, "pdftotext", summary[1][3])
	assert.Equal(t, "Technology", summary[1][6])
	assert.Equal(t, "local-fallback", summary[1][8])
	assert.Equal(t, "broken.docx", summary[2][0])
	assert.Equal(t, "FALSE", summary[2][1])
	assert.Equal(t, "All DOCX extraction methods failed", summary[2][9])

	kws, err := f.GetRows(SheetKeywords)
	require.NoError(t, err)
	require.Len(t, kws, 3)
	assert.Equal(t, []string{"alice.pdf", "Python", "programming_languages", "3", "0.8", "2.12"}, kws[1])

	jobs, err := f.GetRows(SheetJobs)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Python Developer", jobs[1][2])
	assert.Equal(t, "Python", jobs[1][6])
}

func TestWorkbook_Empty(t *testing.T) {
	data, err := Workbook(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteFile(path, sampleItems(), quietLogger()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), SheetJobs)

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "r.xlsx"), nil, quietLogger()))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
