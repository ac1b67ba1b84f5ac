package derivation

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/overrides"
	"github.com/jonathan/resume-studio/internal/types"
)

// Display caps. Entries beyond these are kept in the model but not rendered.
const (
	maxExperienceEntries = 5
	maxProjectEntries    = 2
	maxProjectBullets    = 3
)

// Engine derives renderable sections and LaTeX from content + layout +
// overrides. It holds no mutable state beyond its strategy and is safe to
// share across derivations.
type Engine struct {
	regen Regenerator
}

// NewEngine returns an engine using the default Rotation strategy.
func NewEngine() *Engine {
	return &Engine{regen: Rotation{}}
}

// NewEngineWithStrategy returns an engine with a custom regeneration strategy.
func NewEngineWithStrategy(r Regenerator) *Engine {
	return &Engine{regen: r}
}

// Input bundles everything one derivation reads.
type Input struct {
	Variation *types.Variation
	Profile   types.Profile
	Layout    *layout.Layout
	Overrides *overrides.Store
	// Counters holds per-section regeneration counters, zero when absent.
	Counters map[layout.Section]int
}

// RenderedExperience is one experience entry ready for display.
type RenderedExperience struct {
	GroupID  string
	Role     string
	Company  string
	Location string
	Dates    string
	Bullets  []overrides.ResolvedItem
}

// RenderedProject is one project entry ready for display.
type RenderedProject struct {
	GroupID      string
	Name         string
	Notes        string
	Dates        string
	TechnicalTag bool
	Bullets      []overrides.ResolvedItem
}

// RenderedSection is one visible section after formatting and overrides.
// Exactly the fields for its section kind are populated.
type RenderedSection struct {
	Section layout.Section
	Label   string

	// summary
	Paragraph string
	Items     []overrides.ResolvedItem

	// skills
	Skills     []string
	SkillStyle string

	// experience / projects
	Experience []RenderedExperience
	Projects   []RenderedProject

	// keywords
	Keywords   []string
	BadgeStyle string

	// preview
	PDFBase64 string
}

// Render produces the renderable section list: visible sections in layout
// order, each shaped by its formatting choices, regeneration counter and
// bullet overrides.
func (e *Engine) Render(in Input) []RenderedSection {
	if in.Variation == nil {
		return nil
	}
	out := make([]RenderedSection, 0, len(layout.AllSections()))
	for _, s := range in.Layout.VisibleOrder() {
		rs := RenderedSection{Section: s, Label: layout.MetadataFor(s).Label}
		switch s {
		case layout.SectionSummary:
			e.renderSummary(&rs, in)
		case layout.SectionSkills:
			rs.SkillStyle = in.Layout.Formatting(s, layout.FieldStyle)
			rs.Skills = e.regenerated(in.Variation.SkillsToHighlight, in.Counters[s])
		case layout.SectionExperience:
			rs.Experience = e.renderExperience(in)
		case layout.SectionProjects:
			rs.Projects = e.renderProjects(in)
		case layout.SectionEducation:
			group := overrides.GroupKey{Section: s, Group: overrides.EducationGroupID}
			rs.Items = in.Overrides.ResolveItems(group, educationLines(in.Variation))
		case layout.SectionKeywords:
			rs.BadgeStyle = in.Layout.Formatting(s, layout.FieldBadgeStyle)
			rs.Keywords = e.regenerated(in.Variation.ATSKeywords, in.Counters[s])
		case layout.SectionPreview:
			rs.PDFBase64 = in.Variation.PDFDocument
		}
		out = append(out, rs)
	}
	return out
}

// regenerated applies the regeneration strategy to a string list.
func (e *Engine) regenerated(list []string, counter int) []string {
	if counter == 0 || len(list) == 0 {
		cp := make([]string, len(list))
		copy(cp, list)
		return cp
	}
	return reorder(list, e.regen.Order(len(list), counter))
}

func (e *Engine) renderSummary(rs *RenderedSection, in Input) {
	parts := e.regenerated(SummaryParts(in.Variation.Summary), in.Counters[layout.SectionSummary])
	if in.Layout.Formatting(layout.SectionSummary, layout.FieldStyle) == layout.StyleBullet {
		group := overrides.GroupKey{Section: layout.SectionSummary, Group: overrides.SummaryGroupID}
		rs.Items = in.Overrides.ResolveItems(group, parts)
		return
	}
	rs.Paragraph = strings.Join(parts, " ")
}

func (e *Engine) renderExperience(in Input) []RenderedExperience {
	entries := in.Variation.ExperienceSections
	indexed := make([]int, len(entries))
	for i := range indexed {
		indexed[i] = i
	}
	if c := in.Counters[layout.SectionExperience]; c != 0 && len(indexed) > 0 {
		indexed = reorder(indexed, e.regen.Order(len(indexed), c))
	}
	if len(indexed) > maxExperienceEntries {
		indexed = indexed[:maxExperienceEntries]
	}

	compact := in.Layout.Formatting(layout.SectionExperience, layout.FieldDensity) == layout.DensityCompact
	out := make([]RenderedExperience, 0, len(indexed))
	for _, i := range indexed {
		entry := entries[i]
		groupID := overrides.ExperienceGroupID(entry.SourceExperienceID, entry.Role, entry.Company, i)
		group := overrides.GroupKey{Section: layout.SectionExperience, Group: groupID}
		bullets := in.Overrides.ResolveItems(group, entry.Bullets)
		if compact && len(bullets) > 1 {
			bullets = bullets[:1]
		}
		out = append(out, RenderedExperience{
			GroupID:  groupID,
			Role:     entry.Role,
			Company:  entry.Company,
			Location: entry.Location,
			Dates:    entry.Dates,
			Bullets:  bullets,
		})
	}
	return out
}

func (e *Engine) renderProjects(in Input) []RenderedProject {
	entries := in.Variation.ProjectSections
	indexed := make([]int, len(entries))
	for i := range indexed {
		indexed[i] = i
	}
	if c := in.Counters[layout.SectionProjects]; c != 0 && len(indexed) > 0 {
		indexed = reorder(indexed, e.regen.Order(len(indexed), c))
	}
	if len(indexed) > maxProjectEntries {
		indexed = indexed[:maxProjectEntries]
	}

	technical := in.Layout.Formatting(layout.SectionProjects, layout.FieldEmphasis) == layout.EmphasisTechnical
	out := make([]RenderedProject, 0, len(indexed))
	for _, i := range indexed {
		entry := entries[i]
		groupID := overrides.ProjectGroupID(entry.SourceProjectID, entry.Name, i)
		group := overrides.GroupKey{Section: layout.SectionProjects, Group: groupID}
		bullets := in.Overrides.ResolveItems(group, entry.Bullets)
		if len(bullets) > maxProjectBullets {
			bullets = bullets[:maxProjectBullets]
		}
		out = append(out, RenderedProject{
			GroupID:      groupID,
			Name:         entry.Name,
			Notes:        entry.Notes,
			Dates:        entry.Dates,
			TechnicalTag: technical,
			Bullets:      bullets,
		})
	}
	return out
}

// SummaryParts splits a summary into its ordered content list: bullet or
// newline separated lines when present, otherwise sentences.
func SummaryParts(summary string) []string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil
	}

	split := func(text string, seps ...string) []string {
		parts := []string{text}
		for _, sep := range seps {
			var next []string
			for _, p := range parts {
				next = append(next, strings.Split(p, sep)...)
			}
			parts = next
		}
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	parts := split(summary, "\n", "•")
	if len(parts) > 1 {
		return parts
	}

	// Single block: fall back to sentence boundaries.
	sentences := split(summary, ". ")
	for i, s := range sentences {
		if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
			sentences[i] = s + "."
		}
	}
	return sentences
}

// educationLines extracts the overridable education bullet list.
func educationLines(v *types.Variation) []string {
	lines := make([]string, 0, len(v.EducationHighlights))
	for _, h := range v.EducationHighlights {
		lines = append(lines, h.Notes)
	}
	return lines
}
