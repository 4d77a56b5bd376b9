package recommend

import (
	"strings"
	"unicode"

	"github.com/jonathan/career-analyzer/internal/types"
)

// Job sectors. These classify job titles and are coarser than the skill
// sectors in package skills.
const (
	JobSectorTechnology  = "Technology"
	JobSectorDataScience = "Data Science"
	JobSectorDesign      = "Design"
	JobSectorManagement  = "Management"
	JobSectorCloudDevOps = "Cloud & DevOps"
	JobSectorOther       = "Other"
)

var seniorWords = []string{"senior", "lead", "architect", "principal"}

// titleWords lower-cases s and splits it on anything but letters and digits.
func titleWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// hasAny reports whether any phrase occurs as a run of whole words.
func hasAny(words []string, phrases ...string) bool {
	for _, p := range phrases {
		needle := titleWords(p)
		if len(needle) == 0 || len(needle) > len(words) {
			continue
		}
		for i := 0; i+len(needle) <= len(words); i++ {
			match := true
			for j := range needle {
				if words[i+j] != needle[j] {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// JobSector tags a job title with a coarse sector.
func JobSector(title string) string {
	w := titleWords(title)
	switch {
	case hasAny(w, "developer", "engineer", "programmer", "software"):
		return JobSectorTechnology
	case hasAny(w, "data", "scientist", "analyst", "machine learning", "ai", "ml"):
		return JobSectorDataScience
	case hasAny(w, "designer", "ux", "ui", "creative"):
		return JobSectorDesign
	case hasAny(w, "manager", "director", "lead"):
		return JobSectorManagement
	case hasAny(w, "cloud", "devops", "infrastructure"):
		return JobSectorCloudDevOps
	}
	return JobSectorOther
}

// EstimateTime guesses the time to become proficient in a role from its title.
func EstimateTime(title string) string {
	w := titleWords(title)
	switch {
	case hasAny(w, seniorWords...):
		return "2-3 years"
	case hasAny(w, "engineer", "scientist", "specialist"):
		return "6-12 months"
	case hasAny(w, "developer", "analyst"):
		return "3-6 months"
	}
	return "3-9 months"
}

// AssessDifficulty rates how hard it is to move into a role.
func AssessDifficulty(title string) types.Difficulty {
	w := titleWords(title)
	switch {
	case hasAny(w, seniorWords...):
		return types.DifficultyAdvanced
	case hasAny(w, "machine learning", "ai", "data scientist"):
		return types.DifficultyAdvanced
	case hasAny(w, "developer", "engineer"):
		return types.DifficultyIntermediate
	}
	return types.DifficultyBeginner
}

// LearningPathFor returns the curated path for title, or a generic path
// built around keyword for the title's family.
func LearningPathFor(title, keyword string) types.LearningPath {
	if p, ok := learningPaths[title]; ok {
		return clonePath(p)
	}
	w := titleWords(title)
	switch {
	case hasAny(w, "developer", "engineer"):
		return path(
			stage("foundations", keyword, "Version Control (Git)", "Problem Solving"),
			stage("intermediate", "Framework/Library", "Database Basics", "Testing"),
			stage("advanced", "System Design", "Performance Optimization", "Deployment"),
		)
	case hasAny(w, "analyst"):
		return path(
			stage("foundations", keyword, "Data Analysis", "Excel/Spreadsheets"),
			stage("intermediate", "SQL", "Data Visualization", "Statistics"),
			stage("advanced", "Advanced Analytics", "Reporting", "Domain Expertise"),
		)
	case hasAny(w, "designer"):
		return path(
			stage("foundations", keyword, "Design Principles", "Color Theory"),
			stage("intermediate", "Prototyping", "User Research", "Design Tools"),
			stage("advanced", "Design Systems", "Accessibility", "Collaboration"),
		)
	}
	return path(
		stage("foundations", keyword, "Industry Knowledge", "Communication"),
		stage("intermediate", "Specialized Tools", "Process Understanding", "Collaboration"),
		stage("advanced", "Leadership", "Strategic Thinking", "Innovation"),
	)
}

func clonePath(p types.LearningPath) types.LearningPath {
	out := make(types.LearningPath, len(p))
	for i, st := range p {
		out[i] = types.LearningStage{Level: st.Level, Skills: append([]string(nil), st.Skills...)}
	}
	return out
}

// skillGaps returns up to limit entries of required that do not appear in have,
// compared case-insensitively.
func skillGaps(required, have []string, limit int) []string {
	owned := make(map[string]bool, len(have))
	for _, h := range have {
		owned[strings.ToLower(strings.TrimSpace(h))] = true
	}
	gaps := []string{}
	for _, r := range required {
		if len(gaps) == limit {
			break
		}
		if !owned[strings.ToLower(strings.TrimSpace(r))] {
			gaps = append(gaps, r)
		}
	}
	return gaps
}
