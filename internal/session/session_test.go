package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/overrides"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/templates"
	"github.com/jonathan/resume-studio/internal/types"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(context.Background(), store.NewMemory(), nil)
}

func testResult() *types.GenerationResult {
	return &types.GenerationResult{
		Profile: types.Profile{Name: "Jane Doe"},
		Variations: []types.Variation{
			{
				ID:                "variation-1",
				Label:             "Impact",
				Tone:              types.ToneImpact,
				Summary:           "First point. Second point.",
				SkillsToHighlight: []string{"Go", "SQL"},
				ExperienceSections: []types.ExperienceSection{
					{
						Role:               "Engineer",
						Company:            "Acme",
						Bullets:            []string{"did a", "did b"},
						SourceExperienceID: "exp1",
					},
				},
				LaTeXDocument: "\\documentclass{article}\n\\begin{document}\nx\n\\end{document}",
			},
			{ID: "variation-2", Label: "Technical", Tone: types.ToneImpact, Summary: "Other."},
		},
	}
}

func TestSetContent_ActivatesFirstVariation(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("job1", types.ToneImpact, 2, testResult())

	v := s.ActiveVariation()
	require.NotNil(t, v)
	assert.Equal(t, "variation-1", v.ID)
}

func TestSelectVariation_UnknownIDRejected(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("job1", types.ToneImpact, 2, testResult())

	err := s.SelectVariation("variation-9")
	var noVar *ErrNoVariation
	require.ErrorAs(t, err, &noVar)
	assert.Equal(t, "variation-1", s.ActiveVariation().ID)
}

func TestSelectVariation_KeepsLayoutAndOverrides(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("job1", types.ToneImpact, 2, testResult())

	require.NoError(t, s.ToggleVisibility(layout.SectionKeywords))
	key := overrides.ItemKey{Section: layout.SectionExperience, Group: "experience-exp1", Index: 0}
	s.SetBulletText(key, "edited")

	require.NoError(t, s.SelectVariation("variation-2"))
	snap, origin := s.Layout()
	assert.False(t, snap.Visibility[layout.SectionKeywords])
	assert.True(t, origin.Customized)

	require.NoError(t, s.SelectVariation("variation-1"))
	sections := s.Render()
	for _, rs := range sections {
		if rs.Section == layout.SectionExperience {
			require.NotEmpty(t, rs.Experience)
			assert.Equal(t, "edited", rs.Experience[0].Bullets[0].Text)
		}
	}
}

func TestRecommendTemplate_AppliedOncePerJobType(t *testing.T) {
	s := newTestSession(t)

	applied := s.RecommendTemplate("internship")
	assert.Equal(t, templates.TemplateSkillsForward, applied)
	_, origin := s.Layout()
	assert.Equal(t, templates.TemplateSkillsForward, origin.TemplateID)

	// Same job type again: already seen, nothing applied.
	assert.Equal(t, "", s.RecommendTemplate("internship"))
}

func TestRecommendTemplate_BlockedByManualCustomization(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ToggleVisibility(layout.SectionKeywords))

	assert.Equal(t, "", s.RecommendTemplate("contract"))
	// Not recorded as seen, so a later Reset re-arms it.
	require.NoError(t, s.Reset())
	assert.Equal(t, templates.TemplateCompactScan, s.RecommendTemplate("contract"))
}

func TestRecommendTemplate_UnknownJobType(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "", s.RecommendTemplate("apprenticeship"))
}

func TestReset_ClearsCustomizedFlag(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ToggleVisibility(layout.SectionKeywords))
	_, origin := s.Layout()
	require.True(t, origin.Customized)

	require.NoError(t, s.Reset())
	snap, origin := s.Layout()
	assert.False(t, origin.Customized)
	assert.Equal(t, templates.DefaultTemplateID, origin.TemplateID)
	assert.True(t, snap.Visibility[layout.SectionKeywords])
}

func TestSetBulletOrder_ValidatesAgainstCurrentKeys(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("job1", types.ToneImpact, 2, testResult())

	group := overrides.GroupKey{Section: layout.SectionExperience, Group: "experience-exp1"}
	k0 := overrides.ItemKey{Section: group.Section, Group: group.Group, Index: 0}
	k1 := overrides.ItemKey{Section: group.Section, Group: group.Group, Index: 1}

	require.NoError(t, s.SetBulletOrder(group, []overrides.ItemKey{k1, k0}))

	err := s.SetBulletOrder(group, []overrides.ItemKey{k0})
	var permErr *overrides.ErrOrderNotPermutation
	assert.ErrorAs(t, err, &permErr)
}

func TestRegenerateSection_CountsUp(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, 1, s.RegenerateSection(layout.SectionSkills))
	assert.Equal(t, 2, s.RegenerateSection(layout.SectionSkills))
	assert.Equal(t, 1, s.RegenerateSection(layout.SectionSummary))
}

func TestDocument_PlaceholderBeforeContent(t *testing.T) {
	s := newTestSession(t)
	doc := s.Document()
	assert.Contains(t, doc, "No LaTeX source available")
}

func TestSaveCurrentAsTemplate_CapturesLiveLayout(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ToggleVisibility(layout.SectionEducation))

	tpl, err := s.SaveCurrentAsTemplate(context.Background(), "No education")
	require.NoError(t, err)
	assert.False(t, tpl.Snapshot.Visibility[layout.SectionEducation])
}

func TestClear_DropsContentAndCustomization(t *testing.T) {
	s := newTestSession(t)
	s.SetContent("job1", types.ToneImpact, 2, testResult())
	require.NoError(t, s.ToggleVisibility(layout.SectionKeywords))

	s.Clear()
	assert.Nil(t, s.Result())
	assert.Nil(t, s.ActiveVariation())
	snap, origin := s.Layout()
	assert.True(t, snap.Visibility[layout.SectionKeywords])
	assert.False(t, origin.Customized)
}
