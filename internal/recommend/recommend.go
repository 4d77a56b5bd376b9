// Package recommend produces job recommendations from skills, using a remote
// generative model when one is reachable and a static local table otherwise.
package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/career-analyzer/internal/types"
)

// Result size defaults.
const (
	DefaultTopK        = 10
	DefaultKeywordTopK = 5
	maxSkillGaps       = 5
)

// Input validation errors.
var (
	ErrNoSkills  = errors.New("no skills provided")
	ErrNoKeyword = errors.New("no keyword provided")
)

// Messages reported in failed results.
const (
	MsgNoSkills  = "No skills provided"
	MsgNoKeyword = "No keyword provided"
)

// SkillRequest asks for general recommendations from a skill list.
type SkillRequest = types.JobRecommendRequest

// KeywordRequest asks for recommendations focused on one primary skill.
type KeywordRequest = types.KeywordRecommendRequest

// Recommender is implemented by the remote and the local recommenders.
type Recommender interface {
	Recommend(ctx context.Context, req SkillRequest) (*types.RecommendationResult, error)
	RecommendForKeyword(ctx context.Context, req KeywordRequest) (*types.RecommendationResult, error)
}

// cleanSkills trims entries and drops blanks.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dedupeByTitle keeps the first job of each title.
func dedupeByTitle(jobs []types.JobRecommendation) []types.JobRecommendation {
	seen := make(map[string]bool, len(jobs))
	out := make([]types.JobRecommendation, 0, len(jobs))
	for _, j := range jobs {
		if seen[j.Title] {
			continue
		}
		seen[j.Title] = true
		out = append(out, j)
	}
	return out
}

// filterSectors keeps jobs whose sector matches one of sectors. An empty
// filter keeps everything.
func filterSectors(jobs []types.JobRecommendation, sectors []string) []types.JobRecommendation {
	if len(cleanSkills(sectors)) == 0 {
		return jobs
	}
	out := jobs[:0:0]
	for _, j := range jobs {
		for _, s := range sectors {
			if strings.EqualFold(strings.TrimSpace(s), j.Sector) {
				out = append(out, j)
				break
			}
		}
	}
	return out
}

// finalize truncates jobs to topK, numbers ranks, groups by sector and fills
// the aggregate fields of res. total is the number of jobs before truncation.
func finalize(res *types.RecommendationResult, jobs []types.JobRecommendation, topK int) {
	res.Success = true
	res.TotalJobsFound = len(jobs)

	titles := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		titles[j.Title] = true
	}
	res.UniqueJobs = len(titles)

	if topK > 0 && len(jobs) > topK {
		jobs = jobs[:topK]
	}
	res.JobRecommendations = make([]types.JobRecommendation, len(jobs))
	res.JobsBySector = make(map[string][]types.JobRecommendation)
	res.SectorsFound = []string{}
	for i, j := range jobs {
		j.Rank = i + 1
		if j.RequiredSkills == nil {
			j.RequiredSkills = []string{}
		}
		if j.SkillGaps == nil {
			j.SkillGaps = []string{}
		}
		res.JobRecommendations[i] = j
		if _, ok := res.JobsBySector[j.Sector]; !ok {
			res.SectorsFound = append(res.SectorsFound, j.Sector)
		}
		res.JobsBySector[j.Sector] = append(res.JobsBySector[j.Sector], j)
	}
	if len(jobs) > 0 {
		res.PrimarySource = jobs[0].Source
	}
}

func clampScore(v float64) float64 {
	return min(max(v, 0), 1)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
