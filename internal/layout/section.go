// Package layout models the ordered, formatted arrangement of resume sections.
package layout

// Section identifies one of the fixed resume content blocks.
type Section string

// The closed set of sections. Defined at program start, never created or
// destroyed at runtime.
const (
	SectionSummary    Section = "summary"
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
	SectionEducation  Section = "education"
	SectionKeywords   Section = "keywords"
	SectionPreview    Section = "preview"
)

// AllSections returns every section identifier in canonical order.
// Callers must not mutate the returned slice's backing array semantics;
// a fresh copy is returned on each call.
func AllSections() []Section {
	return []Section{
		SectionSummary,
		SectionSkills,
		SectionExperience,
		SectionProjects,
		SectionEducation,
		SectionKeywords,
		SectionPreview,
	}
}

// ValidSection reports whether s is a member of the closed section set.
func ValidSection(s Section) bool {
	switch s {
	case SectionSummary, SectionSkills, SectionExperience, SectionProjects,
		SectionEducation, SectionKeywords, SectionPreview:
		return true
	}
	return false
}

// Metadata holds static display information for a section.
type Metadata struct {
	Label       string
	Description string
	Icon        string
}

// sectionMetadata is static display data, not user content.
var sectionMetadata = map[Section]Metadata{
	SectionSummary:    {Label: "Summary", Description: "Professional summary tailored to the job", Icon: "align-left"},
	SectionSkills:     {Label: "Skills", Description: "Skills to highlight for this role", Icon: "wrench"},
	SectionExperience: {Label: "Experience", Description: "Work history with tailored bullets", Icon: "briefcase"},
	SectionProjects:   {Label: "Projects", Description: "Selected projects", Icon: "folder"},
	SectionEducation:  {Label: "Education", Description: "Degrees and highlights", Icon: "graduation-cap"},
	SectionKeywords:   {Label: "ATS Keywords", Description: "Keywords woven into the resume", Icon: "tag"},
	SectionPreview:    {Label: "PDF Preview", Description: "Compiled document preview", Icon: "file"},
}

// MetadataFor returns the display metadata for a section.
func MetadataFor(s Section) Metadata {
	return sectionMetadata[s]
}
