// Package skills assigns skills to coarse professional sectors.
package skills

import (
	"strings"
	"unicode"

	"github.com/jonathan/career-analyzer/internal/types"
)

// Confidence is the fixed confidence of every assignment.
const Confidence = 0.8

type bucket struct {
	sector types.Sector
	terms  []string
}

// buckets are tested in order; the first one with a matching term wins.
var buckets = []bucket{
	{types.SectorTechnology, []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "go", "golang", "rust", "ruby", "php",
		"swift", "kotlin", "scala", "sql", "html", "css", "react", "angular", "vue", "node.js", "django",
		"flask", "spring", "docker", "kubernetes", "aws", "azure", "gcp", "cloud", "devops", "linux",
		"git", "api", "software", "programming", "developer", "database", "machine learning",
		"artificial intelligence", "ai", "data science", "cybersecurity", "network", "tensorflow",
		"pytorch", "mongodb", "postgresql", "mysql", "redis", "terraform", "ci/cd", "microservices",
	}},
	{types.SectorLifeSciences, []string{
		"biology", "biochemistry", "biotechnology", "genetics", "genomics", "microbiology",
		"molecular biology", "pharmacology", "pharmaceutical", "clinical", "medicine", "medical",
		"healthcare", "nursing", "immunology", "neuroscience", "ecology", "bioinformatics", "pcr",
		"cell culture", "epidemiology", "physiology",
	}},
	{types.SectorPhysical, []string{
		"physics", "chemistry", "astronomy", "geology", "materials science", "quantum", "optics",
		"thermodynamics", "spectroscopy", "chromatography", "geophysics", "meteorology",
		"analytical chemistry", "organic chemistry", "nanotechnology",
	}},
	{types.SectorBusiness, []string{
		"management", "business", "marketing", "sales", "finance", "accounting", "strategy",
		"consulting", "project management", "leadership", "operations", "economics", "mba", "pmp",
		"agile", "scrum", "budgeting", "negotiation", "entrepreneurship", "crm", "excel",
		"human resources", "supply chain",
	}},
	{types.SectorEducation, []string{
		"teaching", "education", "training", "curriculum", "tutoring", "instruction",
		"instructional design", "e-learning", "pedagogy", "mentoring", "coaching", "classroom",
		"lesson planning",
	}},
	{types.SectorCreative, []string{
		"design", "graphic design", "ui", "ux", "figma", "photoshop", "illustrator", "sketch",
		"animation", "video editing", "photography", "writing", "copywriting", "content creation",
		"branding", "typography", "art", "music", "creative",
	}},
	{types.SectorIndustrial, []string{
		"manufacturing", "mechanical", "electrical", "industrial", "production", "quality control",
		"lean", "six sigma", "cad", "autocad", "solidworks", "welding", "machining", "automation",
		"plc", "robotics", "logistics", "maintenance", "construction",
	}},
	{types.SectorSocialSciences, []string{
		"psychology", "sociology", "anthropology", "political science", "social work",
		"research methods", "statistics", "survey", "qualitative research", "public policy",
		"counseling", "linguistics", "history", "geography",
	}},
}

// Categorize assigns each non-blank skill to the first sector whose terms
// match it. Sectors are reported in the order they were first assigned.
func Categorize(skills []string) types.Categorization {
	out := types.Categorization{
		Success:           true,
		CategorizedSkills: []types.CategorizedSkill{},
		SectorsFound:      []types.Sector{},
		SkillsBySector:    map[types.Sector][]string{},
	}

	for _, raw := range skills {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		sector := SectorFor(name)
		out.CategorizedSkills = append(out.CategorizedSkills, types.CategorizedSkill{
			SkillName:  name,
			Sector:     sector,
			Confidence: Confidence,
		})
		if _, seen := out.SkillsBySector[sector]; !seen {
			out.SectorsFound = append(out.SectorsFound, sector)
		}
		out.SkillsBySector[sector] = append(out.SkillsBySector[sector], name)
	}

	out.TotalSkills = len(out.CategorizedSkills)
	return out
}

// SectorFor returns the sector of a single skill, or Other.
func SectorFor(skill string) types.Sector {
	lower := strings.ToLower(strings.TrimSpace(skill))
	if lower == "" {
		return types.SectorOther
	}
	tokens := tokenize(lower)
	for _, b := range buckets {
		for _, term := range b.terms {
			if lower == term || containsTokens(tokens, tokenize(term)) {
				return b.sector
			}
		}
	}
	return types.SectorOther
}

// tokenize splits on anything but letters, digits and "+ # .", trimming
// trailing dots so that "go." and "go" compare equal.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimRight(f, "."); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// containsTokens reports whether needle occurs as a contiguous run in haystack.
func containsTokens(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, n := range needle {
			if haystack[i+j] != n {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
