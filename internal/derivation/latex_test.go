package derivation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/types"
)

func TestBuildDocument_NilVariationYieldsPlaceholder(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, PlaceholderNoDocument, e.BuildDocument(testInput(nil)))
}

func TestBuildDocument_EmptyBaseDocumentYieldsPlaceholder(t *testing.T) {
	v := testVariation()
	v.LaTeXDocument = "  \n"
	e := NewEngine()
	assert.Equal(t, PlaceholderNoDocument, e.BuildDocument(testInput(v)))
}

func TestBuildDocument_OnlyPreviewVisibleYieldsPlaceholder(t *testing.T) {
	e := NewEngine()
	in := testInput(testVariation())
	for _, s := range layout.AllSections() {
		if s != layout.SectionPreview {
			require.NoError(t, in.Layout.ToggleVisibility(s))
		}
	}
	assert.Equal(t, PlaceholderNoSections, e.BuildDocument(in))
}

func TestBuildDocument_PreservesPreambleVerbatim(t *testing.T) {
	v := testVariation()
	v.LaTeXDocument = "\\documentclass{article}\n\\usepackage{geometry} % 50%\n\\begin{document}\nold body\n\\end{document}"
	e := NewEngine()

	doc := e.BuildDocument(testInput(v))
	assert.True(t, strings.HasPrefix(doc, "\\documentclass{article}\n\\usepackage{geometry} % 50%\n\\begin{document}"))
	assert.NotContains(t, doc, "old body")
	assert.True(t, strings.HasSuffix(doc, "\\end{document}\n"))
}

func TestBuildDocument_AppendsBodyMarkerWhenMissing(t *testing.T) {
	v := testVariation()
	v.LaTeXDocument = "\\documentclass{article}\n"
	e := NewEngine()

	doc := e.BuildDocument(testInput(v))
	assert.Contains(t, doc, "\\documentclass{article}\n\\begin{document}")
	assert.Equal(t, 1, strings.Count(doc, "\\begin{document}"))
}

func TestBuildDocument_ContactBlockOmitsAbsentFields(t *testing.T) {
	e := NewEngine()
	in := testInput(testVariation())
	in.Profile = types.Profile{
		Name:     "Jane & Co",
		Location: "Portland, OR",
		Contact:  types.Contact{Email: "jane@example.com"},
	}

	doc := e.BuildDocument(in)
	assert.Contains(t, doc, "\\textbf{Jane \\& Co}")
	assert.Contains(t, doc, "Portland, OR \\textbar{} jane@example.com")
	assert.NotContains(t, doc, "\\textbar{} \\textbar{}")
}

func TestBuildDocument_SectionsFollowLayoutOrder(t *testing.T) {
	e := NewEngine()
	in := testInput(testVariation())
	in.Layout.Reorder(layout.SectionEducation, layout.SectionSummary)

	doc := e.BuildDocument(in)
	eduIdx := strings.Index(doc, "\\section*{Education}")
	sumIdx := strings.Index(doc, "\\section*{Summary}")
	require.GreaterOrEqual(t, eduIdx, 0)
	require.GreaterOrEqual(t, sumIdx, 0)
	assert.Less(t, eduIdx, sumIdx)
}

func TestBuildDocument_SkipsHiddenSections(t *testing.T) {
	e := NewEngine()
	in := testInput(testVariation())
	require.NoError(t, in.Layout.ToggleVisibility(layout.SectionProjects))

	doc := e.BuildDocument(in)
	assert.NotContains(t, doc, "\\section*{Projects}")
	assert.Contains(t, doc, "\\section*{Experience}")
}

func TestBuildDocument_EscapesContentNotPreamble(t *testing.T) {
	v := testVariation()
	v.ExperienceSections[0].Bullets = []string{"Cut costs by 40% & 50%"}
	e := NewEngine()

	doc := e.BuildDocument(testInput(v))
	assert.Contains(t, doc, "Cut costs by 40\\% \\& 50\\%")
}

func TestBuildDocument_SkillsJoinedWithTextbullet(t *testing.T) {
	e := NewEngine()
	doc := e.BuildDocument(testInput(testVariation()))
	assert.Contains(t, doc, "Python \\textbullet{} React \\textbullet{} SQL \\textbullet{} AWS")
}

func TestBuildDocument_KeywordsCommaJoined(t *testing.T) {
	e := NewEngine()
	doc := e.BuildDocument(testInput(testVariation()))
	assert.Contains(t, doc, "golang, distributed systems")
}

func TestBuildDocument_NoPreviewSectionBlock(t *testing.T) {
	e := NewEngine()
	doc := e.BuildDocument(testInput(testVariation()))
	assert.NotContains(t, doc, "\\section*{PDF Preview}")
}

func TestItemize_EmptyListProducesNothing(t *testing.T) {
	assert.Equal(t, "", itemize(nil))
}
