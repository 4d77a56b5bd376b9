package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/ratelimit"
	"github.com/jonathan/career-analyzer/internal/types"
)

const generalBody = "```json\n" + `{
  "overall_top_jobs": [
    {"job": "Backend Engineer", "skills": ["Go", "Kubernetes"], "score": 92, "reason": "Strong backend stack"},
    {"job": "Site Reliability Engineer"},
    {"job": "Backend Engineer", "score": 70, "reason": "duplicate"}
  ]
}` + "\n```"

const keywordBody = `Here you go:
{
  "keyword_jobs": [
    {
      "job": "Senior Go Engineer",
      "score": 90,
      "reason": "Go is the primary language",
      "required_skills": ["Go", "gRPC", "Docker"],
      "learning_path": {"immediate": ["Go basics"], "intermediate": ["gRPC"], "advanced": ["Profiling"]},
      "time_to_proficiency": "1-2 years",
      "difficulty": "Expert"
    },
    {"job": "Go Developer", "score": 80, "difficulty": "Beginner"}
  ]
}`

func newTestRemote(client *MockLLMClient) *RemoteRecommender {
	return NewRemote(client, "gemini-test", ratelimit.NewGate(0), quietLogger())
}

func TestRemoteRecommend(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(generalBody, nil)}
	res, err := newTestRemote(client).Recommend(context.Background(), SkillRequest{
		Skills: []string{"go", "Docker"},
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	require.Equal(t, []string{"Backend Engineer", "Site Reliability Engineer"}, titles(res.JobRecommendations))

	first := res.JobRecommendations[0]
	assert.InDelta(t, 0.92, first.RelevanceScore, 1e-9)
	assert.Equal(t, "Strong backend stack", first.Description)
	assert.Equal(t, []string{"Kubernetes"}, first.SkillGaps)
	assert.Equal(t, JobSectorTechnology, first.Sector)
	assert.Equal(t, types.SourceRemote, first.Source)
	assert.Equal(t, 1, first.Rank)

	second := res.JobRecommendations[1]
	assert.InDelta(t, 0.85, second.RelevanceScore, 1e-9)
	assert.Equal(t, []string{"go", "Docker"}, second.RequiredSkills)
	assert.Equal(t, "AI-recommended position based on skill match", second.Description)
	assert.Empty(t, second.SkillGaps)

	assert.Equal(t, types.SourceRemote, res.Source)
	assert.Equal(t, types.SourceRemote, res.PrimarySource)
	assert.True(t, res.RemoteAvailable)
	assert.Equal(t, 2, res.TotalJobsFound)
}

func TestRemoteRecommend_Prompt(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(generalBody, nil)}
	skills := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10"}
	_, err := newTestRemote(client).Recommend(context.Background(), SkillRequest{
		Skills:  skills,
		Context: strings.Repeat("x", 250),
	})
	require.NoError(t, err)

	prompts := client.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "SKILLS: s1, s2, s3, s4, s5, s6, s7, s8\n")
	assert.NotContains(t, prompts[0], "s9")
	assert.True(t, strings.HasSuffix(prompts[0], "\nAdditional context: "+strings.Repeat("x", 200)))
}

func TestRemoteRecommend_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		wantErr string
	}{
		{"transport", "", errors.New("quota exceeded"), "quota exceeded"},
		{"empty", "   ", nil, "empty response"},
		{"not json", "sorry, I cannot help", nil, "invalid model response"},
		{"no jobs", `{"overall_top_jobs": []}`, nil, "invalid model response"},
		{"wrong shape", `{"jobs": [{"job": "X"}]}`, nil, "invalid model response"},
		{"blank titles", `{"overall_top_jobs": [{"job": " "}]}`, nil, "no usable jobs"},
		{"no sector match", generalBody, nil, "no remote jobs in sectors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockLLMClient{GenerateContentFunc: respond(tt.body, tt.err)}
			_, err := newTestRemote(client).Recommend(context.Background(), SkillRequest{
				Skills:  []string{"Go"},
				Sectors: []string{JobSectorDesign},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRemoteRecommendForKeyword(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(keywordBody, nil)}
	res, err := newTestRemote(client).RecommendForKeyword(context.Background(), KeywordRequest{
		Keyword:       "Go",
		ContextSkills: []string{"Docker", "Kubernetes", "AWS", "Terraform"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Senior Go Engineer", "Go Developer"}, titles(res.JobRecommendations))

	senior := res.JobRecommendations[0]
	assert.Equal(t, types.DifficultyAdvanced, senior.Difficulty)
	assert.Equal(t, "1-2 years", senior.TimeToProficiency)
	assert.Equal(t, []string{"Go", "gRPC"}, senior.SkillGaps)
	require.Len(t, senior.LearningPath, 3)
	assert.Equal(t, "immediate", senior.LearningPath[0].Level)

	dev := res.JobRecommendations[1]
	assert.Equal(t, types.DifficultyBeginner, dev.Difficulty)
	assert.Equal(t, "3-6 months", dev.TimeToProficiency)
	assert.Equal(t, []string{"Go"}, dev.RequiredSkills)
	assert.Equal(t, "foundations", dev.LearningPath[0].Level)

	assert.Equal(t, types.AnalysisKeywordSpecific, res.AnalysisType)
	assert.Equal(t, "Go", res.TargetKeyword)

	prompts := client.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "PRIMARY SKILL: Go (context: Docker, Kubernetes, AWS)\n")
	assert.Contains(t, prompts[0], "specializing in Go.")
}

func TestRemoteRecommendForKeyword_NoContext(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(keywordBody, nil)}
	_, err := newTestRemote(client).RecommendForKeyword(context.Background(), KeywordRequest{Keyword: "Go", TopK: 1})
	require.NoError(t, err)
	assert.Contains(t, client.Prompts()[0], "PRIMARY SKILL: Go\n")
}

func TestRemote_GateCancellation(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(generalBody, nil)}
	remote := NewRemote(client, "gemini-test", ratelimit.NewGate(ratelimit.DefaultMinInterval), quietLogger())

	_, err := remote.Recommend(context.Background(), SkillRequest{Skills: []string{"Go"}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = remote.Recommend(ctx, SkillRequest{Skills: []string{"Go"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, client.Prompts(), 1)
}
