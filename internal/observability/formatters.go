// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to n runes, ending in "..." when cut.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = clip(line, boxWidth-4)
		// %-*s pads by bytes, so pad by runes instead
		pad := boxWidth - 4 - utf8.RuneCountInString(line)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", max(pad, 0)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtraction outputs how the text was obtained and a short preview.
func (p *Printer) PrintExtraction(res *types.ExtractionResult) {
	if res == nil {
		return
	}

	var sb strings.Builder
	if !res.Success {
		sb.WriteString(fmt.Sprintf("✗ %s", res.Error))
		p.printBox("EXTRACTION FAILED", sb.String())
		return
	}

	if res.Filename != "" {
		sb.WriteString(fmt.Sprintf("File:     %s", res.Filename))
		if res.FileSizeFormatted != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", res.FileSizeFormatted))
		}
		sb.WriteString("\n")
	}
	if res.SourceURL != "" {
		sb.WriteString(fmt.Sprintf("URL:      %s\n", res.SourceURL))
	}
	sb.WriteString(fmt.Sprintf("Type:     %s via %s\n", res.ExtractionType, res.ExtractionMethod))
	sb.WriteString(fmt.Sprintf("Words:    %d  Chars: %d\n", res.WordCount, res.CharCount))
	if res.PageCount != nil {
		sb.WriteString(fmt.Sprintf("Pages:    %d\n", *res.PageCount))
	}
	if res.Confidence != nil {
		sb.WriteString(fmt.Sprintf("OCR conf: %.1f\n", *res.Confidence))
	}

	preview := strings.Join(strings.Fields(res.Text), " ")
	if preview != "" {
		sb.WriteString("\n")
		sb.WriteString(clip(preview, 2*(boxWidth-4)))
	}

	p.printBox("EXTRACTED TEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the ranked keywords with their scores.
func (p *Printer) PrintKeywords(summary *types.KeywordSummary) {
	if summary == nil {
		return
	}
	if !summary.Success {
		p.printBox("KEYWORDS", "✗ "+summary.Error)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matches, %d unique (min confidence %.2f)\n",
		summary.TotalKeywordsFound, summary.UniqueKeywords, summary.MinConfidence))

	if len(summary.CategoriesFound) > 0 {
		names := make([]string, len(summary.CategoriesFound))
		for i, c := range summary.CategoriesFound {
			names[i] = string(c)
		}
		sb.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(names, ", ")))
	}
	sb.WriteString("\n")

	count := min(len(summary.TopKeywords), maxItemsToShow)
	for i := 0; i < count; i++ {
		kw := summary.TopKeywords[i]
		sb.WriteString(fmt.Sprintf("#%d  %-18s x%d  score %.2f\n", i+1, clip(kw.Keyword, 18), kw.Frequency, kw.Score))
	}
	if len(summary.TopKeywords) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(summary.TopKeywords)-maxItemsToShow))
	}

	p.printBox("TOP KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCategorization outputs skills grouped by sector.
func (p *Printer) PrintCategorization(cat *types.Categorization) {
	if cat == nil || cat.TotalSkills == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d skills in %d sectors:\n\n", cat.TotalSkills, len(cat.SectorsFound)))
	for _, sector := range cat.SectorsFound {
		sb.WriteString(fmt.Sprintf("%s\n", sector))
		sb.WriteString(fmt.Sprintf("  %s\n", clip(strings.Join(cat.SkillsBySector[sector], ", "), boxWidth-6)))
	}

	p.printBox("SKILL SECTORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the ranked jobs. For keyword recommendations
// the first job's learning path is shown as well.
func (p *Printer) PrintRecommendations(res *types.RecommendationResult) {
	if res == nil {
		return
	}
	if !res.Success {
		p.printBox("JOB RECOMMENDATIONS", "✗ "+res.Error)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: %s", res.PrimarySource))
	if res.FallbackReason != "" {
		sb.WriteString(" (remote failed)")
	}
	sb.WriteString("\n\n")

	count := min(len(res.JobRecommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := res.JobRecommendations[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", job.Rank, job.Title))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Sector: %s\n", job.RelevanceScore, job.Sector))
		if job.TimeToProficiency != "" {
			sb.WriteString(fmt.Sprintf("    Time: %s  Difficulty: %s\n", job.TimeToProficiency, job.Difficulty))
		}
		if len(job.SkillGaps) > 0 {
			sb.WriteString(fmt.Sprintf("    Gaps: %s\n", clip(strings.Join(job.SkillGaps, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(res.JobRecommendations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(res.JobRecommendations)-maxItemsToShow))
	}

	title := "JOB RECOMMENDATIONS"
	if res.TargetKeyword != "" {
		title = fmt.Sprintf("JOBS FOR %q", res.TargetKeyword)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))

	if len(res.JobRecommendations) > 0 && len(res.JobRecommendations[0].LearningPath) > 0 {
		p.printLearningPath(res.JobRecommendations[0])
	}
}

func (p *Printer) printLearningPath(job types.JobRecommendation) {
	var sb strings.Builder
	for i, stage := range job.LearningPath {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, stage.Level))
		sb.WriteString(fmt.Sprintf("   %s\n", clip(strings.Join(stage.Skills, ", "), boxWidth-7)))
	}
	p.printBox("LEARNING PATH: "+clip(job.Title, boxWidth-20), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs every stage present in result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintExtraction(result.Extraction)
	p.PrintKeywords(result.Keywords)
	p.PrintCategorization(result.Categorization)
	p.PrintRecommendations(result.Recommendations)
	for _, note := range result.Notes {
		fmt.Fprintf(p.out, "Note: %s\n", note)
	}
	if !result.Success && result.Error != "" {
		fmt.Fprintf(p.out, "Error: %s\n", result.Error)
	}
}
