package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/types"
)

func TestJobSector(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Python Developer", JobSectorTechnology},
		{"Machine Learning Engineer", JobSectorTechnology},
		{"Data Scientist", JobSectorDataScience},
		{"AI Research Scientist", JobSectorDataScience},
		{"Business Intelligence Analyst", JobSectorDataScience},
		{"UI/UX Designer", JobSectorDesign},
		{"Creative Director", JobSectorDesign},
		{"Project Manager", JobSectorManagement},
		{"Team Lead", JobSectorManagement},
		{"Cloud Architect", JobSectorCloudDevOps},
		{"Scrum Master", JobSectorOther},
		{"Leadership Coach", JobSectorOther},
		{"Email Marketing Specialist", JobSectorOther},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, JobSector(tt.title))
		})
	}
}

func TestEstimateTime(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Senior Backend Developer", "2-3 years"},
		{"Principal Engineer", "2-3 years"},
		{"Cloud Architect", "2-3 years"},
		{"DevOps Engineer", "6-12 months"},
		{"Data Scientist", "6-12 months"},
		{"Rust Specialist", "6-12 months"},
		{"React Developer", "3-6 months"},
		{"Data Analyst", "3-6 months"},
		{"Product Designer", "3-9 months"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTime(tt.title))
		})
	}
}

func TestAssessDifficulty(t *testing.T) {
	tests := []struct {
		title string
		want  types.Difficulty
	}{
		{"Lead Developer", types.DifficultyAdvanced},
		{"AI Engineer", types.DifficultyAdvanced},
		{"Machine Learning Engineer", types.DifficultyAdvanced},
		{"Data Scientist", types.DifficultyAdvanced},
		{"Java Developer", types.DifficultyIntermediate},
		{"Platform Engineer", types.DifficultyIntermediate},
		{"Graphic Designer", types.DifficultyBeginner},
		{"Chair Maker", types.DifficultyBeginner},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessDifficulty(tt.title))
		})
	}
}

func TestLearningPathFor_Curated(t *testing.T) {
	lp := LearningPathFor("DevOps Engineer", "Docker")
	require.Len(t, lp, 5)
	assert.Equal(t, "core_skills", lp[0].Level)
	assert.Equal(t, []string{"Linux", "Networking", "Scripting", "System Administration"}, lp[0].Skills)

	// callers may modify the returned path without touching the template
	lp[0].Skills[0] = "changed"
	assert.Equal(t, "Linux", LearningPathFor("DevOps Engineer", "Docker")[0].Skills[0])
}

func TestLearningPathFor_Synthesized(t *testing.T) {
	tests := []struct {
		title     string
		wantFirst []string
	}{
		{"Go Developer", []string{"Go", "Version Control (Git)", "Problem Solving"}},
		{"Marketing Analyst", []string{"SEO", "Data Analysis", "Excel/Spreadsheets"}},
		{"Motion Designer", []string{"After Effects", "Design Principles", "Color Theory"}},
		{"Rust Consultant", []string{"Rust", "Industry Knowledge", "Communication"}},
	}
	keywords := map[string]string{
		"Go Developer":      "Go",
		"Marketing Analyst": "SEO",
		"Motion Designer":   "After Effects",
		"Rust Consultant":   "Rust",
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			lp := LearningPathFor(tt.title, keywords[tt.title])
			require.Len(t, lp, 3)
			assert.Equal(t, []string{"foundations", "intermediate", "advanced"},
				[]string{lp[0].Level, lp[1].Level, lp[2].Level})
			assert.Equal(t, tt.wantFirst, lp[0].Skills)
		})
	}
}

func TestSkillGaps(t *testing.T) {
	gaps := skillGaps([]string{"Go", "Docker", "Kubernetes", "Terraform"}, []string{"go", " DOCKER "}, 5)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, gaps)

	gaps = skillGaps([]string{"a", "b", "c", "d", "e", "f", "g"}, nil, 5)
	assert.Len(t, gaps, 5)

	assert.NotNil(t, skillGaps(nil, nil, 5))
}
