package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/types"
)

var testConfig = Config{MinInterval: time.Nanosecond}

func TestNewService_NoAPIKey(t *testing.T) {
	s := NewService(context.Background(), Config{}, quietLogger())
	assert.False(t, s.RemoteAvailable())
	assert.Empty(t, s.Model())
	assert.NoError(t, s.Close())

	res := s.Recommend(context.Background(), SkillRequest{Skills: []string{"Python"}})
	require.True(t, res.Success)
	assert.Equal(t, types.SourceFallback, res.Source)
	assert.False(t, res.RemoteAvailable)
	assert.Empty(t, res.FallbackReason)
}

func TestNewService_Disabled(t *testing.T) {
	s := NewService(context.Background(), Config{APIKey: "key", DisableRemote: true}, quietLogger())
	assert.False(t, s.RemoteAvailable())
}

func TestServiceWithClient_SelectsAnsweringModel(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(generalBody, nil)}
	s := NewServiceWithClient(context.Background(), client, testConfig, quietLogger())
	require.True(t, s.RemoteAvailable())
	assert.Equal(t, llm.ModelFlash, s.Model())

	res := s.Recommend(context.Background(), SkillRequest{Skills: []string{"Go"}})
	require.True(t, res.Success)
	assert.Equal(t, types.SourceRemote, res.Source)
	assert.True(t, res.RemoteAvailable)

	assert.NoError(t, s.Close())
	assert.True(t, client.Closed())
}

func TestServiceWithClient_NoModelAnswers(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: func(context.Context, string) (string, error) {
		return "", errors.New("permission denied")
	}}
	s := NewServiceWithClient(context.Background(), client, testConfig, quietLogger())
	assert.False(t, s.RemoteAvailable())
	assert.True(t, client.Closed())
	assert.Len(t, client.Prompts(), len(llm.ModelCandidates("")))

	res := s.Recommend(context.Background(), SkillRequest{Skills: []string{"Python"}})
	require.True(t, res.Success)
	assert.Equal(t, types.SourceFallback, res.Source)
	assert.Empty(t, res.FallbackReason)
}

func TestServiceWithClient_ModelOverrideTriedFirst(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(generalBody, nil)}
	cfg := testConfig
	cfg.Model = "gemini-custom"
	s := NewServiceWithClient(context.Background(), client, cfg, quietLogger())
	assert.Equal(t, "gemini-custom", s.Model())
}

func TestService_RemoteFailureFallsBack(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond("not json at all", nil)}
	s := NewServiceWithClient(context.Background(), client, testConfig, quietLogger())
	require.True(t, s.RemoteAvailable())

	res := s.Recommend(context.Background(), SkillRequest{Skills: []string{"Python", "React"}})
	require.True(t, res.Success)
	assert.Equal(t, types.SourceFallback, res.Source)
	assert.True(t, res.RemoteAvailable)
	assert.Contains(t, res.FallbackReason, "invalid model response")
	assert.NotEmpty(t, res.JobRecommendations)

	kw := s.RecommendForKeyword(context.Background(), KeywordRequest{Keyword: "Python"})
	require.True(t, kw.Success)
	assert.Equal(t, types.SourceFallback, kw.Source)
	assert.NotEmpty(t, kw.FallbackReason)
	assert.NotEmpty(t, kw.JobRecommendations[0].LearningPath)
}

func TestService_SectorFilterEmptyFallsBack(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: respond(generalBody, nil)}
	s := NewServiceWithClient(context.Background(), client, testConfig, quietLogger())
	require.True(t, s.RemoteAvailable())

	res := s.Recommend(context.Background(), SkillRequest{
		Skills:  []string{"Python"},
		Sectors: []string{JobSectorDataScience},
	})
	require.True(t, res.Success)
	assert.Equal(t, types.SourceFallback, res.Source)
	assert.Contains(t, res.FallbackReason, "no remote jobs in sectors")
	require.NotEmpty(t, res.JobRecommendations)
	for _, job := range res.JobRecommendations {
		assert.Equal(t, JobSectorDataScience, job.Sector)
	}
}

func TestService_ValidationErrors(t *testing.T) {
	s := NewServiceWithClient(context.Background(), nil, testConfig, quietLogger())

	res := s.Recommend(context.Background(), SkillRequest{})
	assert.False(t, res.Success)
	assert.Equal(t, MsgNoSkills, res.Error)
	assert.NotNil(t, res.JobRecommendations)

	res = s.RecommendForKeyword(context.Background(), KeywordRequest{Keyword: " "})
	assert.False(t, res.Success)
	assert.Equal(t, MsgNoKeyword, res.Error)
	assert.Equal(t, types.AnalysisKeywordSpecific, res.AnalysisType)
}
