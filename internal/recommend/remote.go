package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/career-analyzer/internal/llm"
	"github.com/jonathan/career-analyzer/internal/prompts"
	"github.com/jonathan/career-analyzer/internal/ratelimit"
	"github.com/jonathan/career-analyzer/internal/schemas"
	"github.com/jonathan/career-analyzer/internal/types"
)

const (
	promptSkillLimit        = 8
	promptContextLimit      = 200
	promptContextSkillLimit = 3

	generalMaxTokens int32 = 1024
	keywordMaxTokens int32 = 1500

	defaultRemoteScore = 85.0
)

// RemoteRecommender asks the generative model for recommendations. Every
// call passes through the shared gate.
type RemoteRecommender struct {
	client llm.Client
	model  string
	gate   *ratelimit.Gate
	logger *slog.Logger
}

// NewRemote creates a RemoteRecommender bound to a selected model name.
func NewRemote(client llm.Client, model string, gate *ratelimit.Gate, logger *slog.Logger) *RemoteRecommender {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteRecommender{client: client, model: model, gate: gate, logger: logger}
}

// Model returns the model name used for calls.
func (r *RemoteRecommender) Model() string {
	return r.model
}

type generalResponse struct {
	OverallTopJobs []struct {
		Job    string   `json:"job"`
		Skills []string `json:"skills"`
		Score  *float64 `json:"score"`
		Reason string   `json:"reason"`
	} `json:"overall_top_jobs"`
}

type keywordResponse struct {
	KeywordJobs []struct {
		Job               string             `json:"job"`
		Score             *float64           `json:"score"`
		Reason            string             `json:"reason"`
		RequiredSkills    []string           `json:"required_skills"`
		LearningPath      types.LearningPath `json:"learning_path"`
		TimeToProficiency string             `json:"time_to_proficiency"`
		Difficulty        string             `json:"difficulty"`
	} `json:"keyword_jobs"`
}

// Recommend requests general recommendations for up to eight skills.
func (r *RemoteRecommender) Recommend(ctx context.Context, req SkillRequest) (*types.RecommendationResult, error) {
	skills := cleanSkills(req.Skills)
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	prompt, err := buildGeneralPrompt(skills, req.Context)
	if err != nil {
		return nil, err
	}
	raw, err := r.call(ctx, prompt, generalMaxTokens, schemas.JobRecommendations)
	if err != nil {
		return nil, err
	}
	var parsed generalResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	if len(parsed.OverallTopJobs) == 0 {
		return nil, errors.New("model returned no jobs")
	}

	jobs := make([]types.JobRecommendation, 0, len(parsed.OverallTopJobs))
	for _, j := range parsed.OverallTopJobs {
		title := strings.TrimSpace(j.Job)
		if title == "" {
			continue
		}
		required := cleanSkills(j.Skills)
		if len(required) == 0 {
			required = append([]string(nil), skills[:min(len(skills), 3)]...)
		}
		desc := strings.TrimSpace(j.Reason)
		if desc == "" {
			desc = "AI-recommended position based on skill match"
		}
		jobs = append(jobs, types.JobRecommendation{
			Title:             title,
			Description:       desc,
			RelevanceScore:    remoteScore(j.Score),
			RequiredSkills:    required,
			SkillGaps:         skillGaps(required, skills, maxSkillGaps),
			Sector:            JobSector(title),
			Source:            types.SourceRemote,
			TimeToProficiency: EstimateTime(title),
			Difficulty:        AssessDifficulty(title),
		})
	}
	if len(jobs) == 0 {
		return nil, errors.New("model returned no usable jobs")
	}
	jobs = filterSectors(dedupeByTitle(jobs), req.Sectors)
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no remote jobs in sectors %v", req.Sectors)
	}

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	res := &types.RecommendationResult{
		Source:          types.SourceRemote,
		AnalysisType:    types.AnalysisGeneral,
		SkillsAnalyzed:  skills,
		RemoteAvailable: true,
	}
	finalize(res, jobs, topK)
	return res, nil
}

// RecommendForKeyword requests recommendations centered on one keyword.
func (r *RemoteRecommender) RecommendForKeyword(ctx context.Context, req KeywordRequest) (*types.RecommendationResult, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, ErrNoKeyword
	}
	contextSkills := cleanSkills(req.ContextSkills)

	prompt, err := buildKeywordPrompt(keyword, contextSkills)
	if err != nil {
		return nil, err
	}
	raw, err := r.call(ctx, prompt, keywordMaxTokens, schemas.KeywordJobs)
	if err != nil {
		return nil, err
	}
	var parsed keywordResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode keyword recommendations: %w", err)
	}
	if len(parsed.KeywordJobs) == 0 {
		return nil, errors.New("model returned no jobs")
	}

	jobs := make([]types.JobRecommendation, 0, len(parsed.KeywordJobs))
	for _, j := range parsed.KeywordJobs {
		title := strings.TrimSpace(j.Job)
		if title == "" {
			continue
		}
		required := cleanSkills(j.RequiredSkills)
		if len(required) == 0 {
			required = []string{keyword}
		}
		desc := strings.TrimSpace(j.Reason)
		if desc == "" {
			desc = "AI-recommended position based on keyword match"
		}
		lp := j.LearningPath
		if len(lp) == 0 {
			lp = LearningPathFor(title, keyword)
		}
		timeTo := strings.TrimSpace(j.TimeToProficiency)
		if timeTo == "" {
			timeTo = EstimateTime(title)
		}
		difficulty, ok := types.ParseDifficulty(strings.TrimSpace(j.Difficulty))
		if !ok {
			difficulty = AssessDifficulty(title)
		}
		jobs = append(jobs, types.JobRecommendation{
			Title:             title,
			Description:       desc,
			RelevanceScore:    remoteScore(j.Score),
			RequiredSkills:    required,
			SkillGaps:         skillGaps(required, contextSkills, maxSkillGaps),
			Sector:            JobSector(title),
			Source:            types.SourceRemote,
			LearningPath:      lp,
			TimeToProficiency: timeTo,
			Difficulty:        difficulty,
		})
	}
	if len(jobs) == 0 {
		return nil, errors.New("model returned no usable jobs")
	}
	jobs = dedupeByTitle(jobs)

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultKeywordTopK
	}
	res := &types.RecommendationResult{
		Source:          types.SourceRemote,
		AnalysisType:    types.AnalysisKeywordSpecific,
		TargetKeyword:   keyword,
		ContextSkills:   contextSkills,
		RemoteAvailable: true,
	}
	finalize(res, jobs, topK)
	return res, nil
}

// call waits for the gate, generates, and returns the schema-checked JSON body.
func (r *RemoteRecommender) call(ctx context.Context, prompt string, maxTokens int32, schema string) ([]byte, error) {
	if r.gate != nil {
		if err := r.gate.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate gate: %w", err)
		}
	}
	r.logger.Info("requesting recommendations", "model", r.model, "max_tokens", maxTokens)

	out, err := r.client.GenerateJSON(ctx, prompt, llm.TierStandard,
		llm.WithModelName(r.model), llm.WithMaxOutputTokens(maxTokens))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, errors.New("empty response from model")
	}
	body := []byte(llm.CleanJSONBlock(out))
	if err := schemas.Validate(schema, body); err != nil {
		return nil, fmt.Errorf("invalid model response: %w", err)
	}
	return body, nil
}

func buildGeneralPrompt(skills []string, extra string) (string, error) {
	prompt, err := prompts.Render(prompts.RecommendFile, prompts.KeyJobRecommendations, map[string]string{
		"Skills": strings.Join(skills[:min(len(skills), promptSkillLimit)], ", "),
	})
	if err != nil {
		return "", err
	}
	if extra = strings.TrimSpace(extra); extra != "" {
		suffix, err := prompts.Render(prompts.RecommendFile, prompts.KeyAdditionalContext, map[string]string{
			"Context": truncateRunes(extra, promptContextLimit),
		})
		if err != nil {
			return "", err
		}
		prompt += suffix
	}
	return prompt, nil
}

func buildKeywordPrompt(keyword string, contextSkills []string) (string, error) {
	ctxText := ""
	if len(contextSkills) > 0 {
		ctxText = " (context: " + strings.Join(contextSkills[:min(len(contextSkills), promptContextSkillLimit)], ", ") + ")"
	}
	return prompts.Render(prompts.RecommendFile, prompts.KeyKeywordRecommendations, map[string]string{
		"Keyword": keyword,
		"Context": ctxText,
	})
}

func remoteScore(score *float64) float64 {
	if score == nil {
		return defaultRemoteScore / 100
	}
	return clampScore(*score / 100)
}
