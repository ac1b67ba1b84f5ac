// Package types provides type definitions for structured data used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Tone identifies the writing tone requested for a generation.
type Tone string

// Supported generation tones.
const (
	ToneImpact     Tone = "impact"
	ToneTechnical  Tone = "technical"
	ToneLeadership Tone = "leadership"
	ToneBalanced   Tone = "balanced"
)

// ValidTone reports whether t is one of the supported tones.
func ValidTone(t Tone) bool {
	switch t {
	case ToneImpact, ToneTechnical, ToneLeadership, ToneBalanced:
		return true
	}
	return false
}

// Contact holds the candidate's contact details. Empty fields are omitted
// from rendered documents.
type Contact struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Profile describes the candidate the content was generated for.
type Profile struct {
	Name      string   `json:"name"`
	Headline  string   `json:"headline,omitempty"`
	Location  string   `json:"location,omitempty"`
	TopSkills []string `json:"top_skills,omitempty"`
	Contact   Contact  `json:"contact"`
}

// ExperienceSection is one work-experience entry within a variation.
type ExperienceSection struct {
	Role               string   `json:"role"`
	Company            string   `json:"company"`
	Location           string   `json:"location,omitempty"`
	Dates              string   `json:"dates,omitempty"`
	Bullets            []string `json:"bullets"`
	SourceExperienceID string   `json:"source_experience_id,omitempty"`
}

// ProjectSection is one project entry within a variation.
type ProjectSection struct {
	Name            string   `json:"name"`
	Notes           string   `json:"notes,omitempty"`
	Dates           string   `json:"dates,omitempty"`
	Bullets         []string `json:"bullets"`
	SourceProjectID string   `json:"source_project_id,omitempty"`
}

// EducationHighlight is a single education line (degree, honor, coursework).
type EducationHighlight struct {
	Notes string `json:"notes"`
}

// Variation is one complete AI-generated resume content candidate for a job.
// It is treated as immutable once fetched; all user customization lives in
// the layout and override stores, never here.
type Variation struct {
	ID                  string               `json:"id"`
	Label               string               `json:"label"`
	Tone                Tone                 `json:"tone"`
	Summary             string               `json:"summary"`
	SummaryHeadline     string               `json:"summary_headline,omitempty"`
	SkillsToHighlight   []string             `json:"skills_to_highlight"`
	ExperienceSections  []ExperienceSection  `json:"experience_sections"`
	ProjectSections     []ProjectSection     `json:"project_sections"`
	EducationHighlights []EducationHighlight `json:"education_highlights"`
	ATSKeywords         []string             `json:"ats_keywords"`
	LaTeXDocument       string               `json:"latex_document,omitempty"`
	PDFDocument         string               `json:"pdf_document,omitempty"` // base64
}

// SharedAnalysis carries per-job analysis common to all variations.
type SharedAnalysis struct {
	JobFocusSummary string   `json:"job_focus_summary,omitempty"`
	SkillMatchNotes string   `json:"skill_match_notes,omitempty"`
	SkillGaps       []string `json:"skill_gaps,omitempty"`
	KeywordStrategy []string `json:"keyword_strategy,omitempty"`
}

// GenerationResult is the full response of the AI content collaborator for
// one generation request.
type GenerationResult struct {
	Variations     []Variation    `json:"variations"`
	SharedAnalysis SharedAnalysis `json:"shared_analysis"`
	Profile        Profile        `json:"profile"`
}

// VariationByID returns the variation with the given ID, or nil.
func (g *GenerationResult) VariationByID(id string) *Variation {
	for i := range g.Variations {
		if g.Variations[i].ID == id {
			return &g.Variations[i]
		}
	}
	return nil
}

// PhrasingVariant is one alternative phrasing of an experience entry,
// produced by the per-experience collaborator.
type PhrasingVariant struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Bullets     []string `json:"bullets"`
}

// PhrasingResult is the response of the alternative-phrasing collaborator.
type PhrasingResult struct {
	ExperienceID string            `json:"experience_id"`
	Variations   []PhrasingVariant `json:"variations"`
}
