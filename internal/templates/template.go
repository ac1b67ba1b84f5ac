// Package templates manages named layout presets: read-only built-ins and
// persisted user-saved templates, plus job-type recommendations.
package templates

import "github.com/jonathan/resume-studio/internal/layout"

// Template is a named, reusable snapshot of section order, visibility and
// formatting.
type Template struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BuiltIn     bool            `json:"built_in"`
	Snapshot    layout.Snapshot `json:"snapshot"`
}

// Built-in template IDs.
const (
	TemplateBalanced         = "balanced"
	TemplateProjectSpotlight = "project-spotlight"
	TemplateSkillsForward    = "skills-forward"
	TemplateCompactScan      = "compact-scan"
)

// DefaultTemplateID is applied at session start.
const DefaultTemplateID = TemplateBalanced

func builtInTemplates() []Template {
	return []Template{
		{
			ID:          TemplateBalanced,
			Name:        "Balanced",
			Description: "Every section visible in canonical order with default formatting.",
			BuiltIn:     true,
			Snapshot: layout.Snapshot{
				Order: layout.AllSections(),
			},
		},
		{
			ID:          TemplateProjectSpotlight,
			Name:        "Project spotlight",
			Description: "Projects lead with technical emphasis; education hidden.",
			BuiltIn:     true,
			Snapshot: layout.Snapshot{
				Order: []layout.Section{
					layout.SectionSummary,
					layout.SectionProjects,
					layout.SectionExperience,
					layout.SectionSkills,
					layout.SectionKeywords,
					layout.SectionEducation,
					layout.SectionPreview,
				},
				Visibility: map[layout.Section]bool{
					layout.SectionEducation: false,
				},
				Formatting: map[layout.Section]map[string]string{
					layout.SectionProjects: {layout.FieldEmphasis: layout.EmphasisTechnical},
				},
			},
		},
		{
			ID:          TemplateSkillsForward,
			Name:        "Skills forward",
			Description: "Skills and keywords up front for early-career applications.",
			BuiltIn:     true,
			Snapshot: layout.Snapshot{
				Order: []layout.Section{
					layout.SectionSummary,
					layout.SectionSkills,
					layout.SectionKeywords,
					layout.SectionEducation,
					layout.SectionProjects,
					layout.SectionExperience,
					layout.SectionPreview,
				},
				Formatting: map[layout.Section]map[string]string{
					layout.SectionSkills:   {layout.FieldStyle: layout.StylePill},
					layout.SectionKeywords: {layout.FieldBadgeStyle: layout.BadgeSolid},
				},
			},
		},
		{
			ID:          TemplateCompactScan,
			Name:        "Compact scan",
			Description: "Dense single-line entries for quick screening.",
			BuiltIn:     true,
			Snapshot: layout.Snapshot{
				Order: []layout.Section{
					layout.SectionSummary,
					layout.SectionExperience,
					layout.SectionSkills,
					layout.SectionProjects,
					layout.SectionEducation,
					layout.SectionKeywords,
					layout.SectionPreview,
				},
				Visibility: map[layout.Section]bool{
					layout.SectionKeywords: false,
				},
				Formatting: map[layout.Section]map[string]string{
					layout.SectionSummary:    {layout.FieldStyle: layout.StyleBullet},
					layout.SectionExperience: {layout.FieldDensity: layout.DensityCompact},
					layout.SectionSkills:     {layout.FieldStyle: layout.StyleList},
				},
			},
		},
	}
}

// recommendationsByJobType maps known job-type values to a suggested
// built-in template.
var recommendationsByJobType = map[string]string{
	"internship": TemplateSkillsForward,
	"contract":   TemplateCompactScan,
	"consulting": TemplateProjectSpotlight,
	"full_time":  TemplateBalanced,
	"part_time":  TemplateBalanced,
}

// RecommendedTemplateID returns the suggested built-in template for a job
// type. The boolean is false for unknown job types.
func RecommendedTemplateID(jobType string) (string, bool) {
	id, ok := recommendationsByJobType[jobType]
	return id, ok
}
