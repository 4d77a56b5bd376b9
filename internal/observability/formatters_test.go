package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-analyzer/internal/types"
)

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction(&types.ExtractionResult{
		Success:           true,
		Text:              "Senior engineer\n\nwith Go experience",
		WordCount:         5,
		CharCount:         34,
		ExtractionType:    types.ExtractionPDF,
		ExtractionMethod:  "pdftotext",
		PageCount:         types.IntPtr(2),
		Filename:          "resume.pdf",
		FileSizeFormatted: "12.00 KB",
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED TEXT")
	assert.Contains(t, output, "resume.pdf (12.00 KB)")
	assert.Contains(t, output, "pdf via pdftotext")
	assert.Contains(t, output, "Pages:    2")
	assert.Contains(t, output, "Senior engineer with Go experience")
}

func TestPrintExtraction_Failed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction(&types.ExtractionResult{Success: false, Error: "File not found"})

	assert.Contains(t, buf.String(), "EXTRACTION FAILED")
	assert.Contains(t, buf.String(), "File not found")
}

func TestPrintExtraction_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExtraction(nil)
	assert.Empty(t, buf.String())
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	summary := &types.KeywordSummary{
		Success:            true,
		TotalKeywordsFound: 9,
		UniqueKeywords:     7,
		MinConfidence:      0.7,
		CategoriesFound:    []types.KeywordCategory{"programming_languages", "cloud"},
	}
	for _, kw := range []string{"Python", "AWS", "Docker", "React", "SQL", "Git", "Java"} {
		summary.TopKeywords = append(summary.TopKeywords, types.RankedKeyword{Keyword: kw, Frequency: 1, Score: 0.92})
	}

	p.PrintKeywords(summary)
	output := buf.String()

	assert.Contains(t, output, "TOP KEYWORDS")
	assert.Contains(t, output, "Found 9 matches, 7 unique")
	assert.Contains(t, output, "programming_languages, cloud")
	assert.Contains(t, output, "#1  Python")
	assert.NotContains(t, output, "Git")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintCategorization(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCategorization(&types.Categorization{
		Success:      true,
		TotalSkills:  3,
		SectorsFound: []types.Sector{types.SectorTechnology, types.SectorBusiness},
		SkillsBySector: map[types.Sector][]string{
			types.SectorTechnology: {"Python", "AWS"},
			types.SectorBusiness:   {"Marketing"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "3 skills in 2 sectors")
	assert.Contains(t, output, "Python, AWS")
	assert.Less(t, strings.Index(output, "Technology"), strings.Index(output, "Business & Management"))
}

func TestPrintRecommendations_WithLearningPath(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(&types.RecommendationResult{
		Success:        true,
		PrimarySource:  types.SourceFallback,
		FallbackReason: "generate: quota exceeded",
		TargetKeyword:  "python",
		JobRecommendations: []types.JobRecommendation{
			{
				Title:             "Python Developer",
				Rank:              1,
				RelevanceScore:    0.95,
				Sector:            "Technology",
				TimeToProficiency: "3-6 months",
				Difficulty:        types.DifficultyIntermediate,
				SkillGaps:         []string{"Django", "Flask"},
				LearningPath: types.LearningPath{
					{Level: "beginner", Skills: []string{"Python Basics"}},
					{Level: "advanced", Skills: []string{"System Design"}},
				},
			},
		},
	})
	output := buf.String()

	assert.Contains(t, output, `JOBS FOR "python"`)
	assert.Contains(t, output, "(remote failed)")
	assert.Contains(t, output, "#1  Python Developer")
	assert.Contains(t, output, "Gaps: Django, Flask")
	assert.Contains(t, output, "LEARNING PATH: Python Developer")
	assert.Contains(t, output, "1. beginner")
	assert.Contains(t, output, "2. advanced")
}

func TestPrintRecommendations_Failed(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecommendations(types.FailedRecommendation("No skills provided"))
	assert.Contains(t, buf.String(), "No skills provided")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		Success:    false,
		Error:      "categorization stage failed",
		Extraction: &types.ExtractionResult{Success: true, Text: "Go", ExtractionType: types.ExtractionDirectInput},
	})

	assert.Contains(t, buf.String(), "EXTRACTED TEXT")
	assert.Contains(t, buf.String(), "Error: categorization stage failed")
}

func TestPrintAnalysis_Notes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		Success: true,
		Notes:   []string{"job recommendations skipped: no keywords found"},
	})

	assert.Contains(t, buf.String(), "Note: job recommendations skipped: no keywords found")
	assert.NotContains(t, buf.String(), "Error:")
}

func TestPrintBox_AlignsMultibyteLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "• naïve café\n"+strings.Repeat("é", 80))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg...", clip("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", clip("éééééééé", 6))
}
