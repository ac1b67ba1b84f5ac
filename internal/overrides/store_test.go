package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/layout"
)

var expGroup = GroupKey{Section: layout.SectionExperience, Group: "experience-exp1"}

func key(idx int) ItemKey {
	return ItemKey{Section: expGroup.Section, Group: expGroup.Group, Index: idx}
}

func TestSetText_EmptyStringIsAnOverride(t *testing.T) {
	s := NewStore()
	s.SetText(key(0), "")

	text, ok := s.Text(key(0))
	require.True(t, ok)
	assert.Equal(t, "", text)

	items := s.ResolveItems(expGroup, []string{"original"})
	require.Len(t, items, 1)
	assert.Equal(t, "", items[0].Text)
}

func TestClearText_RestoresOriginal(t *testing.T) {
	s := NewStore()
	s.SetText(key(0), "edited")
	s.ClearText(key(0))

	items := s.ResolveItems(expGroup, []string{"original"})
	require.Len(t, items, 1)
	assert.Equal(t, "original", items[0].Text)
}

func TestSetText_IsIdempotentUpsert(t *testing.T) {
	s := NewStore()
	s.SetText(key(1), "first")
	s.SetText(key(1), "second")

	text, ok := s.Text(key(1))
	require.True(t, ok)
	assert.Equal(t, "second", text)
}

func TestSetOrder_RejectsWrongLength(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b", "c"})
	err := s.SetOrder(expGroup, current[:2], current)
	var permErr *ErrOrderNotPermutation
	require.ErrorAs(t, err, &permErr)
}

func TestSetOrder_RejectsDuplicateKey(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b"})
	err := s.SetOrder(expGroup, []ItemKey{key(0), key(0)}, current)
	var permErr *ErrOrderNotPermutation
	require.ErrorAs(t, err, &permErr)
}

func TestSetOrder_RejectsForeignKey(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b"})
	foreign := ItemKey{Section: layout.SectionProjects, Group: "other", Index: 0}
	err := s.SetOrder(expGroup, []ItemKey{key(0), foreign}, current)
	var permErr *ErrOrderNotPermutation
	require.ErrorAs(t, err, &permErr)
}

func TestSetOrder_AcceptsExactPermutation(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b", "c"})
	require.NoError(t, s.SetOrder(expGroup, []ItemKey{key(2), key(0), key(1)}, current))

	items := s.ResolveItems(expGroup, []string{"a", "b", "c"})
	assert.Equal(t, []string{"c", "a", "b"}, texts(items))
}

func TestResolveItems_DropsStaleKeysKeepsRest(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b", "c"})
	require.NoError(t, s.SetOrder(expGroup, []ItemKey{key(2), key(0), key(1)}, current))

	// The group shrank to two bullets; key(2) is stale and silently dropped.
	items := s.ResolveItems(expGroup, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, texts(items))
}

func TestResolveItems_AppendsNewKeysInOriginalOrder(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b"})
	require.NoError(t, s.SetOrder(expGroup, []ItemKey{key(1), key(0)}, current))

	// Two new bullets appeared; they trail the saved order in original
	// relative order.
	items := s.ResolveItems(expGroup, []string{"a", "b", "c", "d"})
	assert.Equal(t, []string{"b", "a", "c", "d"}, texts(items))
}

func TestResolveItems_CombinesOrderAndTextOverrides(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b"})
	require.NoError(t, s.SetOrder(expGroup, []ItemKey{key(1), key(0)}, current))
	s.SetText(key(0), "edited a")

	items := s.ResolveItems(expGroup, []string{"a", "b"})
	assert.Equal(t, []string{"b", "edited a"}, texts(items))
}

func TestResolveItems_PureWithRespectToStore(t *testing.T) {
	s := NewStore()
	first := s.ResolveItems(expGroup, []string{"a", "b"})
	second := s.ResolveItems(expGroup, []string{"a", "b"})
	assert.Equal(t, first, second)
}

func TestApplyBulkReplace_StopsAtReplacementLength(t *testing.T) {
	s := NewStore()
	s.ApplyBulkReplace(expGroup, []string{"a", "b", "c"}, []string{"x", "y"})

	items := s.ResolveItems(expGroup, []string{"a", "b", "c"})
	assert.Equal(t, []string{"x", "y", "c"}, texts(items))
}

func TestApplyBulkReplace_LeavesOrderingUntouched(t *testing.T) {
	s := NewStore()
	current := ItemKeys(expGroup, []string{"a", "b"})
	require.NoError(t, s.SetOrder(expGroup, []ItemKey{key(1), key(0)}, current))

	s.ApplyBulkReplace(expGroup, []string{"a", "b"}, []string{"x", "y"})
	items := s.ResolveItems(expGroup, []string{"a", "b"})
	assert.Equal(t, []string{"y", "x"}, texts(items))
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	s := NewStore()
	s.SetText(key(0), "edited")
	current := ItemKeys(expGroup, []string{"a", "b"})
	require.NoError(t, s.SetOrder(expGroup, []ItemKey{key(1), key(0)}, current))

	restored := NewStore()
	restored.Restore(s.Snapshot())

	items := restored.ResolveItems(expGroup, []string{"a", "b"})
	assert.Equal(t, []string{"b", "edited"}, texts(items))
}

func TestExperienceGroupID_SourceIDWins(t *testing.T) {
	assert.Equal(t, "experience-exp1", ExperienceGroupID("exp1", "Engineer", "Acme", 0))
}

func TestExperienceGroupID_FallsBackToSlugAndPosition(t *testing.T) {
	assert.Equal(t, "senior-engineer-acme-corp-2", ExperienceGroupID("", "Senior Engineer", "Acme Corp.", 2))
}

func TestProjectGroupID_SourceIDWins(t *testing.T) {
	assert.Equal(t, "project-p9", ProjectGroupID("p9", "Anything", 0))
	assert.Equal(t, "side-project-1", ProjectGroupID("", "Side Project!", 1))
}

func TestSlug_NormalizesPunctuationAndCase(t *testing.T) {
	assert.Equal(t, "hello-world-2", Slug("  Hello, World 2! "))
	assert.Equal(t, "", Slug("!!!"))
}

func texts(items []ResolvedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}
