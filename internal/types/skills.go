package types

// Sector is a coarse professional domain assigned to a skill.
type Sector string

const (
	SectorTechnology     Sector = "Technology"
	SectorLifeSciences   Sector = "Life Sciences"
	SectorPhysical       Sector = "Physical Sciences"
	SectorBusiness       Sector = "Business & Management"
	SectorEducation      Sector = "Education & Training"
	SectorCreative       Sector = "Creative & Design"
	SectorIndustrial     Sector = "Industrial & Manufacturing"
	SectorSocialSciences Sector = "Social Sciences"
	SectorOther          Sector = "Other"
)

// AllSectors lists every sector a skill can be assigned to.
var AllSectors = []Sector{
	SectorTechnology,
	SectorLifeSciences,
	SectorPhysical,
	SectorBusiness,
	SectorEducation,
	SectorCreative,
	SectorIndustrial,
	SectorSocialSciences,
	SectorOther,
}

// CategorizedSkill is a skill together with the sector it was assigned to.
type CategorizedSkill struct {
	SkillName  string  `json:"skill_name"`
	Sector     Sector  `json:"sector"`
	Confidence float64 `json:"confidence"`
}

// Categorization is the output of skill categorization.
type Categorization struct {
	Success           bool                `json:"success"`
	Error             string              `json:"error,omitempty"`
	CategorizedSkills []CategorizedSkill  `json:"categorized_skills"`
	SectorsFound      []Sector            `json:"sectors_found"`
	SkillsBySector    map[Sector][]string `json:"skills_by_sector"`
	TotalSkills       int                 `json:"total_skills"`
}
