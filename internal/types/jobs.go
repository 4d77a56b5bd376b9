package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JobSource records which recommendation path produced a job.
type JobSource string

const (
	SourceRemote      JobSource = "remote-AI"
	SourceFallback    JobSource = "local-fallback"
	SourceCombination JobSource = "skill-combination"
)

// Difficulty is the qualitative difficulty of reaching a role.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// ParseDifficulty maps a free-form value onto the difficulty enum.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return Difficulty(s), true
	}
	return "", false
}

// Analysis types for recommendation results.
const (
	AnalysisGeneral         = "general"
	AnalysisKeywordSpecific = "keyword_specific"
)

// LearningStage is one level of a learning path.
type LearningStage struct {
	Level  string
	Skills []string
}

// LearningPath is an ordered list of stages.
// It encodes as a JSON object whose keys keep stage order.
type LearningPath []LearningStage

// AllSkills flattens the path in stage order.
func (lp LearningPath) AllSkills() []string {
	var out []string
	for _, st := range lp {
		out = append(out, st.Skills...)
	}
	return out
}

// MarshalJSON writes the stages as an ordered object.
func (lp LearningPath) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, st := range lp {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(st.Level)
		if err != nil {
			return nil, err
		}
		skills := st.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of level -> skills, keeping key order.
func (lp *LearningPath) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*lp = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("learning path: expected object, got %v", tok)
	}
	var path LearningPath
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		level, ok := tok.(string)
		if !ok {
			return fmt.Errorf("learning path: expected string key, got %v", tok)
		}
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("learning path stage %q: %w", level, err)
		}
		path = append(path, LearningStage{Level: level, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*lp = path
	return nil
}

// JobRecommendation is a single suggested role.
type JobRecommendation struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	RelevanceScore    float64      `json:"relevance_score"`
	Rank              int          `json:"rank"`
	RequiredSkills    []string     `json:"required_skills"`
	SkillGaps         []string     `json:"skill_gaps"`
	Sector            string       `json:"sector"`
	Source            JobSource    `json:"source"`
	LearningPath      LearningPath `json:"learning_path,omitempty"`
	TimeToProficiency string       `json:"time_to_proficiency,omitempty"`
	Difficulty        Difficulty   `json:"difficulty,omitempty"`
}

// RecommendationResult is the output of a recommendation call.
type RecommendationResult struct {
	Success            bool                           `json:"success"`
	Error              string                         `json:"error,omitempty"`
	JobRecommendations []JobRecommendation            `json:"job_recommendations"`
	JobsBySector       map[string][]JobRecommendation `json:"jobs_by_sector"`
	TotalJobsFound     int                            `json:"total_jobs_found"`
	UniqueJobs         int                            `json:"unique_jobs"`
	SectorsFound       []string                       `json:"sectors_found"`
	Source             JobSource                      `json:"source,omitempty"`
	PrimarySource      JobSource                      `json:"primary_source,omitempty"`
	AnalysisType       string                         `json:"analysis_type,omitempty"`
	SkillsAnalyzed     []string                       `json:"skills_analyzed,omitempty"`
	TargetKeyword      string                         `json:"target_keyword,omitempty"`
	ContextSkills      []string                       `json:"context_skills,omitempty"`
	RemoteAvailable    bool                           `json:"remote_available"`
	FallbackReason     string                         `json:"fallback_reason,omitempty"`
	Note               string                         `json:"note,omitempty"`
}

// FailedRecommendation builds a failed result with an error message.
func FailedRecommendation(msg string) *RecommendationResult {
	return &RecommendationResult{
		Success:            false,
		Error:              msg,
		JobRecommendations: []JobRecommendation{},
		JobsBySector:       map[string][]JobRecommendation{},
		SectorsFound:       []string{},
	}
}
