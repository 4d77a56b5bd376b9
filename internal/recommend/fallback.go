package recommend

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jonathan/career-analyzer/internal/types"
)

const (
	fallbackSkillLimit   = 6
	jobsPerSkill         = 2
	combinationSkillSpan = 4

	frontendScore  = 0.88
	fullStackScore = 0.92
)

var (
	frontendSkills = []string{"react", "javascript", "html", "css"}
	clientSkills   = []string{"react", "javascript"}
	serverSkills   = []string{"python", "node.js", "java"}
)

// FallbackRecommender derives recommendations from the static skill table.
// It is deterministic and never fails on non-empty input.
type FallbackRecommender struct{}

// NewFallback returns a FallbackRecommender.
func NewFallback() *FallbackRecommender {
	return &FallbackRecommender{}
}

// Recommend maps the first skills onto table jobs, adds combination jobs,
// deduplicates by title and sorts by relevance.
func (f *FallbackRecommender) Recommend(_ context.Context, req SkillRequest) (*types.RecommendationResult, error) {
	skills := cleanSkills(req.Skills)
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	var jobs []types.JobRecommendation
	for _, skill := range skills[:min(len(skills), fallbackSkillLimit)] {
		templates := lookupSkill(skill)
		for i, t := range templates[:min(len(templates), jobsPerSkill)] {
			jobs = append(jobs, types.JobRecommendation{
				Title:             t.Job,
				Description:       t.Reason,
				RelevanceScore:    clampScore(t.Score / 100),
				Rank:              i + 1,
				RequiredSkills:    []string{skill},
				SkillGaps:         []string{},
				Sector:            JobSector(t.Job),
				Source:            types.SourceFallback,
				TimeToProficiency: EstimateTime(t.Job),
				Difficulty:        AssessDifficulty(t.Job),
			})
		}
	}
	jobs = append(jobs, combinationJobs(skills[:min(len(skills), combinationSkillSpan)])...)

	jobs = dedupeByTitle(jobs)
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].RelevanceScore > jobs[b].RelevanceScore
	})
	jobs = filterSectors(jobs, req.Sectors)

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	res := &types.RecommendationResult{
		Source:         types.SourceFallback,
		AnalysisType:   types.AnalysisGeneral,
		SkillsAnalyzed: skills,
		Note:           "Generated using built-in skill mappings",
	}
	finalize(res, jobs, topK)
	return res, nil
}

// RecommendForKeyword builds jobs for one keyword, each with a learning path,
// time estimate and difficulty.
func (f *FallbackRecommender) RecommendForKeyword(_ context.Context, req KeywordRequest) (*types.RecommendationResult, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, ErrNoKeyword
	}
	contextSkills := cleanSkills(req.ContextSkills)

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultKeywordTopK
	}

	templates := lookupKeyword(keyword)
	templates = templates[:min(len(templates), topK)]

	jobs := make([]types.JobRecommendation, 0, len(templates))
	for i, t := range templates {
		lp := LearningPathFor(t.Job, keyword)
		all := lp.AllSkills()
		required := append([]string{keyword}, all[:min(len(all), 4)]...)
		jobs = append(jobs, types.JobRecommendation{
			Title:             t.Job,
			Description:       t.Reason,
			RelevanceScore:    clampScore(t.Score / 100),
			Rank:              i + 1,
			RequiredSkills:    required,
			SkillGaps:         skillGaps(all, contextSkills, maxSkillGaps),
			Sector:            JobSector(t.Job),
			Source:            types.SourceFallback,
			LearningPath:      lp,
			TimeToProficiency: EstimateTime(t.Job),
			Difficulty:        AssessDifficulty(t.Job),
		})
	}

	res := &types.RecommendationResult{
		Source:        types.SourceFallback,
		AnalysisType:  types.AnalysisKeywordSpecific,
		TargetKeyword: keyword,
		ContextSkills: contextSkills,
		Note:          "Generated using built-in keyword mappings with learning paths",
	}
	finalize(res, jobs, topK)
	return res, nil
}

// lookupSkill finds table jobs for a skill: exact key, then a key contained
// in the skill, then a key word among the skill's words, then generic jobs.
func lookupSkill(skill string) []jobTemplate {
	lower := strings.ToLower(strings.TrimSpace(skill))
	for _, row := range skillTable {
		if row.key == lower {
			return row.jobs
		}
	}
	for _, row := range skillTable {
		if strings.Contains(lower, row.key) {
			return row.jobs
		}
	}
	words := strings.Fields(lower)
	for _, row := range skillTable {
		if sharesWord(words, strings.Fields(row.key)) {
			return row.jobs
		}
	}
	return genericJobs(skill)
}

// lookupKeyword is lookupSkill with containment checked in both directions.
func lookupKeyword(keyword string) []jobTemplate {
	lower := strings.ToLower(strings.TrimSpace(keyword))
	for _, row := range skillTable {
		if row.key == lower {
			return row.jobs
		}
	}
	for _, row := range skillTable {
		if strings.Contains(row.key, lower) || strings.Contains(lower, row.key) {
			return row.jobs
		}
	}
	words := strings.Fields(lower)
	for _, row := range skillTable {
		if sharesWord(words, strings.Fields(row.key)) {
			return row.jobs
		}
	}
	return genericJobs(keyword)
}

func sharesWord(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func genericJobs(skill string) []jobTemplate {
	skill = strings.TrimSpace(skill)
	lower := strings.ToLower(skill)
	switch {
	case containsAny(lower, "programming", "coding", "development", "developer"):
		return []jobTemplate{
			{"Software Developer", 85, "General software development position"},
			{"Software Engineer", 80, "Engineering-focused development role"},
		}
	case containsAny(lower, "data", "analysis", "analytics"):
		return []jobTemplate{
			{"Data Analyst", 85, "Data analysis and insights"},
			{"Business Analyst", 80, "Business-focused analysis"},
		}
	}
	return []jobTemplate{
		{skill + " Specialist", 80, fmt.Sprintf("Specialized role requiring %s expertise", skill)},
		{skill + " Consultant", 75, fmt.Sprintf("Consulting role in %s domain", skill)},
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// combinationJobs adds roles implied by holding several skills at once.
func combinationJobs(skills []string) []types.JobRecommendation {
	has := make(map[string]bool, len(skills))
	for _, s := range skills {
		has[strings.ToLower(s)] = true
	}
	anyOf := func(names []string) bool {
		for _, n := range names {
			if has[n] {
				return true
			}
		}
		return false
	}

	var out []types.JobRecommendation
	if anyOf(frontendSkills) {
		var required []string
		for _, s := range skills {
			if len(required) == 3 {
				break
			}
			if slices.Contains(frontendSkills, strings.ToLower(s)) {
				required = append(required, s)
			}
		}
		out = append(out, combinationJob("Frontend Developer", "Combines multiple frontend technologies", frontendScore, required))
	}
	if anyOf(clientSkills) && anyOf(serverSkills) {
		out = append(out, combinationJob("Full Stack Developer", "Combines frontend and backend skills", fullStackScore,
			append([]string(nil), skills[:min(len(skills), 3)]...)))
	}
	return out
}

func combinationJob(title, description string, score float64, required []string) types.JobRecommendation {
	return types.JobRecommendation{
		Title:             title,
		Description:       description,
		RelevanceScore:    score,
		Rank:              1,
		RequiredSkills:    required,
		SkillGaps:         []string{},
		Sector:            JobSectorTechnology,
		Source:            types.SourceCombination,
		TimeToProficiency: EstimateTime(title),
		Difficulty:        AssessDifficulty(title),
	}
}
