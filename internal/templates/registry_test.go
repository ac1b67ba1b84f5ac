package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, store.Store) {
	t.Helper()
	st := store.NewMemory()
	r, err := NewRegistry(context.Background(), st)
	require.NoError(t, err)
	return r, st
}

func TestNewRegistry_StartsWithBuiltInsOnly(t *testing.T) {
	r, _ := newTestRegistry(t)
	assert.Len(t, r.ListBuiltIn(), 4)
	assert.Empty(t, r.ListCustom())
}

func TestGet_FindsBuiltIn(t *testing.T) {
	r, _ := newTestRegistry(t)
	tpl, err := r.Get(TemplateCompactScan)
	require.NoError(t, err)
	assert.True(t, tpl.BuiltIn)
	assert.Equal(t, "Compact scan", tpl.Name)
}

func TestGet_UnknownIDReturnsNotFound(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Get("custom-nope")
	var notFound *ErrTemplateNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestSaveCustom_RejectsBlankName(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.SaveCustom(context.Background(), "   ", layout.Snapshot{})
	var emptyName *ErrEmptyName
	require.ErrorAs(t, err, &emptyName)
	assert.Empty(t, r.ListCustom())
}

func TestSaveCustom_PersistsAndAssignsID(t *testing.T) {
	r, st := newTestRegistry(t)
	snap := layout.New("balanced").Snapshot()

	tpl, err := r.SaveCustom(context.Background(), "  My layout  ", snap)
	require.NoError(t, err)
	assert.Equal(t, "My layout", tpl.Name)
	assert.Contains(t, tpl.ID, "custom-")
	assert.False(t, tpl.BuiltIn)

	// A fresh registry sees the persisted template.
	reloaded, err := NewRegistry(context.Background(), st)
	require.NoError(t, err)
	got, err := reloaded.Get(tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "My layout", got.Name)
}

func TestDelete_BuiltInIsImmutable(t *testing.T) {
	r, _ := newTestRegistry(t)
	err := r.Delete(context.Background(), TemplateBalanced)
	var immutable *ErrBuiltInImmutable
	require.ErrorAs(t, err, &immutable)
	assert.Len(t, r.ListBuiltIn(), 4)
}

func TestDelete_RemovesCustomTemplate(t *testing.T) {
	r, st := newTestRegistry(t)
	tpl, err := r.SaveCustom(context.Background(), "temp", layout.Snapshot{})
	require.NoError(t, err)

	require.NoError(t, r.Delete(context.Background(), tpl.ID))
	assert.Empty(t, r.ListCustom())

	reloaded, err := NewRegistry(context.Background(), st)
	require.NoError(t, err)
	assert.Empty(t, reloaded.ListCustom())
}

func TestDelete_UnknownIDReturnsNotFound(t *testing.T) {
	r, _ := newTestRegistry(t)
	var notFound *ErrTemplateNotFound
	assert.ErrorAs(t, r.Delete(context.Background(), "custom-missing"), &notFound)
}

func TestRecommendedTemplateID_KnownJobTypes(t *testing.T) {
	id, ok := RecommendedTemplateID("internship")
	require.True(t, ok)
	assert.Equal(t, TemplateSkillsForward, id)

	id, ok = RecommendedTemplateID("consulting")
	require.True(t, ok)
	assert.Equal(t, TemplateProjectSpotlight, id)
}

func TestRecommendedTemplateID_UnknownJobType(t *testing.T) {
	_, ok := RecommendedTemplateID("apprenticeship")
	assert.False(t, ok)
}

func TestBuiltInSnapshots_StayWithinOptionCatalog(t *testing.T) {
	l := layout.New("check")
	for _, tpl := range builtInTemplates() {
		for section, fields := range tpl.Snapshot.Formatting {
			for field, value := range fields {
				require.NoError(t, l.SetFormatting(section, field, value),
					"template %s sets %s.%s=%s", tpl.ID, section, field, value)
			}
		}
	}
}
