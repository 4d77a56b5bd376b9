package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/types"
)

func titles(jobs []types.JobRecommendation) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func TestFallbackRecommend(t *testing.T) {
	res, err := NewFallback().Recommend(context.Background(), SkillRequest{
		Skills: []string{"Python", "React", "SQL"},
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, []string{
		"Python Developer",
		"React Developer",
		"Full Stack Developer",
		"Backend Developer",
		"Frontend Developer",
		"Data Analyst",
		"Database Administrator",
	}, titles(res.JobRecommendations))

	for i, j := range res.JobRecommendations {
		assert.Equal(t, i+1, j.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, res.JobRecommendations[i-1].RelevanceScore, j.RelevanceScore)
		}
		assert.GreaterOrEqual(t, j.RelevanceScore, 0.0)
		assert.LessOrEqual(t, j.RelevanceScore, 1.0)
	}

	fullStack := res.JobRecommendations[2]
	assert.Equal(t, types.SourceCombination, fullStack.Source)
	assert.InDelta(t, 0.92, fullStack.RelevanceScore, 1e-9)
	assert.Equal(t, []string{"Python", "React", "SQL"}, fullStack.RequiredSkills)

	// the table's Frontend Developer from React wins over the combination entry
	frontend := res.JobRecommendations[4]
	assert.Equal(t, types.SourceFallback, frontend.Source)
	assert.InDelta(t, 0.90, frontend.RelevanceScore, 1e-9)
	assert.Equal(t, []string{"React"}, frontend.RequiredSkills)

	assert.Equal(t, 7, res.TotalJobsFound)
	assert.Equal(t, 7, res.UniqueJobs)
	assert.Equal(t, []string{JobSectorTechnology, JobSectorDataScience, JobSectorOther}, res.SectorsFound)
	assert.Len(t, res.JobsBySector[JobSectorTechnology], 5)
	assert.Equal(t, types.SourceFallback, res.Source)
	assert.Equal(t, types.SourceFallback, res.PrimarySource)
	assert.Equal(t, types.AnalysisGeneral, res.AnalysisType)
	assert.Equal(t, []string{"Python", "React", "SQL"}, res.SkillsAnalyzed)
}

func TestFallbackRecommend_TopK(t *testing.T) {
	res, err := NewFallback().Recommend(context.Background(), SkillRequest{
		Skills: []string{"Python", "React", "SQL"},
		TopK:   3,
	})
	require.NoError(t, err)
	assert.Len(t, res.JobRecommendations, 3)
	assert.Equal(t, 7, res.TotalJobsFound)
	assert.Equal(t, types.SourceFallback, res.PrimarySource)
}

func TestFallbackRecommend_OnlyFirstSixSkills(t *testing.T) {
	res, err := NewFallback().Recommend(context.Background(), SkillRequest{
		Skills: []string{"Swift", "Kotlin", "Figma", "Photoshop", "AWS", "Docker", "Digital Marketing"},
		TopK:   50,
	})
	require.NoError(t, err)
	assert.NotContains(t, titles(res.JobRecommendations), "Digital Marketing Manager")
}

func TestFallbackRecommend_GenericJobs(t *testing.T) {
	tests := []struct {
		skill string
		want  []string
	}{
		{"Underwater Basket Weaving", []string{"Underwater Basket Weaving Specialist", "Underwater Basket Weaving Consultant"}},
		{"analytics reporting", []string{"Data Analyst", "Business Analyst"}},
		{"Go programming", []string{"Software Developer", "Software Engineer"}},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			res, err := NewFallback().Recommend(context.Background(), SkillRequest{Skills: []string{tt.skill}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(res.JobRecommendations))
		})
	}
}

func TestFallbackRecommend_LookupOrder(t *testing.T) {
	assert.Equal(t, "React Native Developer", lookupSkill("React Native")[0].Job)
	assert.Equal(t, "JavaScript Developer", lookupSkill("JavaScript ES6")[0].Job)
	assert.Equal(t, "Digital Marketing Manager", lookupSkill("Marketing Strategy")[0].Job)
	assert.Equal(t, "React Native Developer", lookupKeyword("react native")[0].Job)
	assert.Equal(t, "Data Scientist", lookupKeyword("Data")[0].Job)
}

func TestFallbackRecommend_SectorFilter(t *testing.T) {
	res, err := NewFallback().Recommend(context.Background(), SkillRequest{
		Skills:  []string{"Python", "Figma"},
		Sectors: []string{"design"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"UI/UX Designer", "Product Designer"}, titles(res.JobRecommendations))
	assert.Equal(t, []string{JobSectorDesign}, res.SectorsFound)
}

func TestFallbackRecommend_NoSkills(t *testing.T) {
	_, err := NewFallback().Recommend(context.Background(), SkillRequest{Skills: []string{" ", ""}})
	assert.ErrorIs(t, err, ErrNoSkills)
}

func TestFallbackRecommendForKeyword(t *testing.T) {
	res, err := NewFallback().RecommendForKeyword(context.Background(), KeywordRequest{
		Keyword:       "Python",
		ContextSkills: []string{"Python", "Git"},
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, []string{"Python Developer", "Backend Developer", "Data Scientist"}, titles(res.JobRecommendations))

	first := res.JobRecommendations[0]
	assert.Equal(t, []string{"Python", "Python", "Object-Oriented Programming", "Data Structures", "Django"}, first.RequiredSkills)
	assert.Equal(t, []string{"Object-Oriented Programming", "Data Structures", "Django", "Flask", "FastAPI"}, first.SkillGaps)
	assert.Equal(t, "3-6 months", first.TimeToProficiency)
	assert.Equal(t, types.DifficultyIntermediate, first.Difficulty)
	assert.Equal(t, "core_skills", first.LearningPath[0].Level)

	backend := res.JobRecommendations[1]
	assert.Equal(t, "foundations", backend.LearningPath[0].Level)
	assert.Equal(t, "Python", backend.LearningPath[0].Skills[0])
	assert.NotContains(t, backend.SkillGaps, "Python")

	scientist := res.JobRecommendations[2]
	assert.Equal(t, "6-12 months", scientist.TimeToProficiency)
	assert.Equal(t, types.DifficultyAdvanced, scientist.Difficulty)

	assert.Equal(t, "Python", res.TargetKeyword)
	assert.Equal(t, []string{"Python", "Git"}, res.ContextSkills)
	assert.Equal(t, types.AnalysisKeywordSpecific, res.AnalysisType)
	assert.Equal(t, 3, res.TotalJobsFound)
}

func TestFallbackRecommendForKeyword_Generic(t *testing.T) {
	res, err := NewFallback().RecommendForKeyword(context.Background(), KeywordRequest{Keyword: "Rust", TopK: 1})
	require.NoError(t, err)
	require.Len(t, res.JobRecommendations, 1)

	job := res.JobRecommendations[0]
	assert.Equal(t, "Rust Specialist", job.Title)
	assert.Equal(t, []string{"Rust", "Industry Knowledge", "Communication"}, job.LearningPath[0].Skills)
	assert.Len(t, job.SkillGaps, 5)
}

func TestFallbackRecommendForKeyword_Empty(t *testing.T) {
	_, err := NewFallback().RecommendForKeyword(context.Background(), KeywordRequest{Keyword: "  "})
	assert.ErrorIs(t, err, ErrNoKeyword)
}
