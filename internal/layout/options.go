package layout

// Formatting option fields per section. Each field is constrained to an
// enumerated option set; anything else is rejected by SetFormatting.
const (
	FieldStyle      = "style"
	FieldDensity    = "density"
	FieldEmphasis   = "emphasis"
	FieldBadgeStyle = "badgeStyle"
)

// Formatting option values.
const (
	StyleParagraph = "paragraph"
	StyleBullet    = "bullet"
	StylePill      = "pill"
	StyleList      = "list"

	DensityDetailed = "detailed"
	DensityCompact  = "compact"

	EmphasisTechnical = "technical"
	EmphasisStandard  = "standard"

	BadgeOutline = "outline"
	BadgeSolid   = "solid"
)

// optionCatalog enumerates the allowed (section, field) -> values choices.
var optionCatalog = map[Section]map[string][]string{
	SectionSummary: {
		FieldStyle: {StyleParagraph, StyleBullet},
	},
	SectionSkills: {
		FieldStyle: {StylePill, StyleList},
	},
	SectionExperience: {
		FieldDensity: {DensityDetailed, DensityCompact},
	},
	SectionProjects: {
		FieldEmphasis: {EmphasisStandard, EmphasisTechnical},
	},
	SectionKeywords: {
		FieldBadgeStyle: {BadgeOutline, BadgeSolid},
	},
}

// DefaultFormatting returns the default formatting map: the first catalog
// choice for every section field.
func DefaultFormatting() map[Section]map[string]string {
	out := make(map[Section]map[string]string, len(optionCatalog))
	for section, fields := range optionCatalog {
		m := make(map[string]string, len(fields))
		for field, choices := range fields {
			m[field] = choices[0]
		}
		out[section] = m
	}
	return out
}

// AllowedValues returns the option choices for a (section, field) pair.
// The second return is false when the section has no such field.
func AllowedValues(s Section, field string) ([]string, bool) {
	fields, ok := optionCatalog[s]
	if !ok {
		return nil, false
	}
	choices, ok := fields[field]
	return choices, ok
}

// allowedValue reports whether value is an enumerated choice for (s, field).
func allowedValue(s Section, field, value string) bool {
	choices, ok := AllowedValues(s, field)
	if !ok {
		return false
	}
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}
