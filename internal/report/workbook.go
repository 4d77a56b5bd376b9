// Package report renders batch analysis results as an XLSX workbook.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/career-analyzer/internal/pipeline"
)

// Sheet names, in workbook order.
const (
	SheetSummary  = "Summary"
	SheetKeywords = "Keywords"
	SheetJobs     = "Jobs"
)

var (
	summaryHeaders = []string{
		"File", "Success", "Extraction Type", "Method", "Words", "Unique Keywords",
		"Sectors", "Jobs", "Recommendation Source", "Error",
	}
	keywordHeaders = []string{"File", "Keyword", "Category", "Frequency", "Confidence", "Score"}
	jobHeaders     = []string{
		"File", "Rank", "Title", "Relevance", "Sector", "Source", "Required Skills", "Skill Gaps",
	}
)

// sheetWriter fills one sheet row by row.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) write(values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, w.row)
		_ = w.f.SetCellValue(w.sheet, cell, v)
	}
	w.row++
}

// Workbook returns an XLSX workbook (as bytes) with one Summary row per
// file, one Keywords row per ranked keyword and one Jobs row per job.
func Workbook(items []pipeline.BatchItem, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetKeywords, SheetJobs} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(SheetSummary)
	f.SetActiveSheet(activeIndex)

	summary := &sheetWriter{f: f, sheet: SheetSummary, row: 1}
	kws := &sheetWriter{f: f, sheet: SheetKeywords, row: 1}
	jobs := &sheetWriter{f: f, sheet: SheetJobs, row: 1}
	summary.write(anySlice(summaryHeaders)...)
	kws.write(anySlice(keywordHeaders)...)
	jobs.write(anySlice(jobHeaders)...)

	for _, item := range items {
		name := filepath.Base(item.Path)
		res := item.Result

		var (
			extType, method, source string
			words, unique, jobCount int
			sectors                 string
		)
		if res.Extraction != nil {
			extType = string(res.Extraction.ExtractionType)
			method = res.Extraction.ExtractionMethod
			words = res.Extraction.WordCount
		}
		if res.Keywords != nil {
			unique = res.Keywords.UniqueKeywords
			for _, kw := range res.Keywords.TopKeywords {
				kws.write(name, kw.Keyword, string(kw.Category), kw.Frequency, kw.Confidence, kw.Score)
			}
		}
		if res.Categorization != nil {
			names := make([]string, len(res.Categorization.SectorsFound))
			for i, s := range res.Categorization.SectorsFound {
				names[i] = string(s)
			}
			sectors = strings.Join(names, ", ")
		}
		if rec := res.Recommendations; rec != nil {
			source = string(rec.PrimarySource)
			jobCount = len(rec.JobRecommendations)
			for _, job := range rec.JobRecommendations {
				jobs.write(name, job.Rank, job.Title, job.RelevanceScore, job.Sector, string(job.Source),
					strings.Join(job.RequiredSkills, ", "), strings.Join(job.SkillGaps, ", "))
			}
		}

		summary.write(name, res.Success, extType, method, words, unique, sectors, jobCount, source, truncate(res.Error, 140))
	}

	// Widen a few columns
	_ = f.SetColWidth(SheetSummary, "A", "A", 32)
	_ = f.SetColWidth(SheetSummary, "C", "D", 16)
	_ = f.SetColWidth(SheetSummary, "G", "G", 40)
	_ = f.SetColWidth(SheetSummary, "J", "J", 48)
	_ = f.SetColWidth(SheetKeywords, "A", "C", 24)
	_ = f.SetColWidth(SheetJobs, "A", "A", 32)
	_ = f.SetColWidth(SheetJobs, "C", "C", 32)
	_ = f.SetColWidth(SheetJobs, "G", "H", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("report.xlsx.ok",
		"files", len(items),
		"keyword_rows", kws.row-2,
		"job_rows", jobs.row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteFile writes the workbook for items to path.
func WriteFile(path string, items []pipeline.BatchItem, logger *slog.Logger) error {
	data, err := Workbook(items, logger)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
