package derivation

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/overrides"
	"github.com/jonathan/resume-studio/internal/types"
)

const (
	bodyStartMarker = `\begin{document}`
	bodyEndMarker   = `\end{document}`

	// PlaceholderNoDocument is returned when the active variation carries no
	// base LaTeX document. Never an error: the preview simply shows this text.
	PlaceholderNoDocument = "% No LaTeX source available for this variation.\n% Generate the resume again to produce a base document."

	// PlaceholderNoSections is returned when every section is hidden.
	PlaceholderNoSections = "% No visible sections.\n% Enable at least one section to build the document."
)

// BuildDocument assembles the LaTeX document: the base document's preamble
// verbatim through its body-start marker, a regenerated contact block, one
// block per visible section in layout order, then the body-end marker.
// All user and AI text is escaped; the preamble is not.
func (e *Engine) BuildDocument(in Input) string {
	if in.Variation == nil || strings.TrimSpace(in.Variation.LaTeXDocument) == "" {
		return PlaceholderNoDocument
	}

	visible := in.Layout.VisibleOrder()
	textual := 0
	for _, s := range visible {
		if s != layout.SectionPreview {
			textual++
		}
	}
	if textual == 0 {
		return PlaceholderNoSections
	}

	var b strings.Builder
	b.WriteString(preamble(in.Variation.LaTeXDocument))
	b.WriteString("\n")
	b.WriteString(contactBlock(in.Profile))

	for _, rs := range e.Render(in) {
		if rs.Section == layout.SectionPreview {
			continue
		}
		b.WriteString("\n")
		b.WriteString(e.sectionBlock(rs))
	}

	b.WriteString("\n")
	b.WriteString(bodyEndMarker)
	b.WriteString("\n")
	return b.String()
}

// preamble returns everything up through the body-start marker, verbatim.
// A base document without the marker gets one appended so the body can follow.
func preamble(baseDoc string) string {
	if idx := strings.Index(baseDoc, bodyStartMarker); idx >= 0 {
		return baseDoc[:idx+len(bodyStartMarker)]
	}
	return strings.TrimRight(baseDoc, "\n") + "\n" + bodyStartMarker
}

// contactBlock renders the candidate header. Absent fields are omitted.
func contactBlock(p types.Profile) string {
	var b strings.Builder
	b.WriteString("\\begin{center}\n")
	if p.Name != "" {
		b.WriteString("{\\LARGE \\textbf{" + EscapeLaTeX(p.Name) + "}}\\\\[2pt]\n")
	}

	var parts []string
	if p.Location != "" {
		parts = append(parts, EscapeLaTeX(p.Location))
	}
	if p.Contact.Phone != "" {
		parts = append(parts, EscapeLaTeX(p.Contact.Phone))
	}
	if p.Contact.Email != "" {
		parts = append(parts, EscapeLaTeX(p.Contact.Email))
	}
	if p.Contact.Portfolio != "" {
		parts = append(parts, EscapeLaTeX(p.Contact.Portfolio))
	}
	if len(parts) > 0 {
		b.WriteString(strings.Join(parts, " \\textbar{} "))
		b.WriteString("\n")
	}
	b.WriteString("\\end{center}\n")
	return b.String()
}

// sectionBlock renders one visible section as LaTeX.
func (e *Engine) sectionBlock(rs RenderedSection) string {
	var b strings.Builder
	b.WriteString("\\section*{" + EscapeLaTeX(rs.Label) + "}\n")

	switch rs.Section {
	case layout.SectionSummary:
		if rs.Paragraph != "" {
			b.WriteString(EscapeLaTeX(rs.Paragraph) + "\n")
		} else {
			b.WriteString(itemize(rs.Items))
		}

	case layout.SectionSkills:
		skills := make([]string, len(rs.Skills))
		for i, s := range rs.Skills {
			skills[i] = EscapeLaTeX(s)
		}
		b.WriteString(strings.Join(skills, " \\textbullet{} ") + "\n")

	case layout.SectionExperience:
		for _, exp := range rs.Experience {
			b.WriteString("\\textbf{" + EscapeLaTeX(exp.Role) + "} --- " + EscapeLaTeX(exp.Company))
			if exp.Dates != "" {
				b.WriteString(" \\hfill " + EscapeLaTeX(exp.Dates))
			}
			b.WriteString("\n")
			if exp.Location != "" {
				b.WriteString("\\textit{" + EscapeLaTeX(exp.Location) + "}\n")
			}
			b.WriteString(itemize(exp.Bullets))
		}

	case layout.SectionProjects:
		for _, proj := range rs.Projects {
			b.WriteString("\\textbf{" + EscapeLaTeX(proj.Name) + "}")
			if proj.TechnicalTag {
				b.WriteString(" \\textit{[technical]}")
			}
			if proj.Dates != "" {
				b.WriteString(" \\hfill " + EscapeLaTeX(proj.Dates))
			}
			b.WriteString("\n")
			if proj.Notes != "" {
				b.WriteString(EscapeLaTeX(proj.Notes) + "\n")
			}
			b.WriteString(itemize(proj.Bullets))
		}

	case layout.SectionEducation:
		b.WriteString(itemize(rs.Items))

	case layout.SectionKeywords:
		keywords := make([]string, len(rs.Keywords))
		for i, k := range rs.Keywords {
			keywords[i] = EscapeLaTeX(k)
		}
		b.WriteString(strings.Join(keywords, ", ") + "\n")
	}

	return b.String()
}

// itemize wraps resolved bullets in a LaTeX list. Empty lists produce nothing
// rather than an empty itemize environment, which LaTeX rejects.
func itemize(items []overrides.ResolvedItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\\begin{itemize}\n")
	for _, item := range items {
		b.WriteString("  \\item " + EscapeLaTeX(item.Text) + "\n")
	}
	b.WriteString("\\end{itemize}\n")
	return b.String()
}
