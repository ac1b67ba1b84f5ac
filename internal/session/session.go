// Package session owns the mutable state of one resume generation session:
// the fetched content, the section layout, bullet overrides, templates and
// the live preview loop.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/resume-studio/internal/derivation"
	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/overrides"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/templates"
	"github.com/jonathan/resume-studio/internal/types"
)

// Session is the exclusive owner of one generation session's mutable state.
// All methods serialize through a single mutex; there is no cross-session
// synchronization and persistence is last-write-wins.
type Session struct {
	mu sync.Mutex

	result            *types.GenerationResult
	selectedJobID     string
	activeVariationID string
	tone              types.Tone
	variationCount    int

	layout    *layout.Layout
	overrides *overrides.Store
	registry  *templates.Registry
	engine    *derivation.Engine
	counters  map[layout.Section]int

	// seenJobTypes records job types whose recommended template was applied.
	seenJobTypes map[string]bool

	store  store.Store
	logger *zap.Logger
}

// New creates a session with the default balanced layout and an empty
// override store. Custom templates are loaded from the injected store.
func New(ctx context.Context, st store.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry, err := templates.NewRegistry(ctx, st)
	if err != nil {
		logger.Warn("custom templates unavailable", zap.Error(err))
	}

	s := &Session{
		layout:       layout.New(templates.DefaultTemplateID),
		overrides:    overrides.NewStore(),
		registry:     registry,
		engine:       derivation.NewEngine(),
		counters:     make(map[layout.Section]int),
		seenJobTypes: make(map[string]bool),
		store:        st,
		logger:       logger,
	}
	return s
}

// SetContent installs a generation result for a job. Layout and overrides
// are kept: override keys use stable group identity, so user edits survive
// regenerating content for the same job.
func (s *Session) SetContent(jobID string, tone types.Tone, variationCount int, result *types.GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.selectedJobID = jobID
	s.tone = tone
	s.variationCount = variationCount
	if len(result.Variations) > 0 {
		s.activeVariationID = result.Variations[0].ID
	} else {
		s.activeVariationID = ""
	}
}

// SelectVariation switches the active variation. Layout and overrides are
// deliberately not reset; group identity is stable across variations of the
// same job.
func (s *Session) SelectVariation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil || s.result.VariationByID(id) == nil {
		return &ErrNoVariation{ID: id}
	}
	s.activeVariationID = id
	return nil
}

// ActiveVariation returns the active variation, or nil before any content
// has been set.
func (s *Session) ActiveVariation() *types.Variation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeVariation()
}

func (s *Session) activeVariation() *types.Variation {
	if s.result == nil {
		return nil
	}
	return s.result.VariationByID(s.activeVariationID)
}

// Result returns the full generation result, or nil.
func (s *Session) Result() *types.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Clear drops the generated content and all customization, returning the
// session to its initial state. Custom templates are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.selectedJobID = ""
	s.activeVariationID = ""
	s.tone = ""
	s.variationCount = 0
	s.layout = layout.New(templates.DefaultTemplateID)
	s.overrides = overrides.NewStore()
	s.counters = make(map[layout.Section]int)
	s.seenJobTypes = make(map[string]bool)
}

// Reorder moves a section within the full order.
func (s *Session) Reorder(dragged, target layout.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.Reorder(dragged, target)
}

// ReorderVisible applies a drag within the visible-only list.
func (s *Session) ReorderVisible(dragged, target layout.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.ReorderVisible(dragged, target)
}

// ToggleVisibility flips a section's visibility, rejecting a toggle that
// would hide every section.
func (s *Session) ToggleVisibility(sec layout.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.ToggleVisibility(sec)
}

// SetFormatting sets one formatting field to an enumerated choice.
func (s *Session) SetFormatting(sec layout.Section, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.SetFormatting(sec, field, value)
}

// ApplyTemplate replaces the layout from a named template.
func (s *Session) ApplyTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.registry.Get(id)
	if err != nil {
		return err
	}
	s.layout.ApplyTemplate(t.ID, t.Snapshot)
	return nil
}

// Reset restores the default balanced template, re-arming automatic
// template recommendation.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.registry.Get(templates.DefaultTemplateID)
	if err != nil {
		return err
	}
	s.layout.ApplyTemplate(t.ID, t.Snapshot)
	return nil
}

// Layout returns the layout's current snapshot and origin for display.
func (s *Session) Layout() (layout.Snapshot, layout.Origin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Snapshot(), s.layout.Origin()
}

// RecommendTemplate applies the built-in template suggested for jobType.
// Each distinct job type triggers at most one application, and nothing is
// applied once the user has customized the layout manually; Reset re-arms.
// Returns the applied template ID, or empty when nothing was applied.
func (s *Session) RecommendTemplate(jobType string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seenJobTypes[jobType] || s.layout.Origin().Customized {
		return ""
	}
	id, ok := templates.RecommendedTemplateID(jobType)
	if !ok {
		return ""
	}
	t, err := s.registry.Get(id)
	if err != nil {
		return ""
	}
	s.seenJobTypes[jobType] = true
	s.layout.ApplyTemplate(t.ID, t.Snapshot)
	s.logger.Info("applied recommended template",
		zap.String("job_type", jobType), zap.String("template", id))
	return id
}

// Templates returns the registry for listing and CRUD.
func (s *Session) Templates() *templates.Registry {
	return s.registry
}

// SaveCurrentAsTemplate snapshots the current layout under a new name.
func (s *Session) SaveCurrentAsTemplate(ctx context.Context, name string) (templates.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.SaveCustom(ctx, name, s.layout.Snapshot())
}

// SetBulletText upserts a text override.
func (s *Session) SetBulletText(key overrides.ItemKey, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.SetText(key, text)
}

// ClearBulletText removes a text override.
func (s *Session) ClearBulletText(key overrides.ItemKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.ClearText(key)
}

// SetBulletOrder records a custom ordering for a group, validated against
// the keys currently derivable from the active variation.
func (s *Session) SetBulletOrder(group overrides.GroupKey, ordered []overrides.ItemKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := overrides.ItemKeys(group, s.originalItemsFor(group))
	return s.overrides.SetOrder(group, ordered, current)
}

// ApplyBulkReplace overrides a group's bullets wholesale with an alternative
// AI-authored variant.
func (s *Session) ApplyBulkReplace(group overrides.GroupKey, replacement []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides.ApplyBulkReplace(group, s.originalItemsFor(group), replacement)
}

// RegenerateSection bumps the section's regeneration counter.
func (s *Session) RegenerateSection(sec layout.Section) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[sec]++
	return s.counters[sec]
}

// Render derives the renderable section list for the active variation.
func (s *Session) Render() []derivation.RenderedSection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Render(s.derivationInput())
}

// Document derives the LaTeX document for the active variation.
func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.BuildDocument(s.derivationInput())
}

func (s *Session) derivationInput() derivation.Input {
	var profile types.Profile
	if s.result != nil {
		profile = s.result.Profile
	}
	return derivation.Input{
		Variation: s.activeVariation(),
		Profile:   profile,
		Layout:    s.layout,
		Overrides: s.overrides,
		Counters:  s.counters,
	}
}

// originalItemsFor returns the active variation's bullet list for a group.
// Unknown groups resolve to an empty list; callers treat that as a group
// with no items.
func (s *Session) originalItemsFor(group overrides.GroupKey) []string {
	v := s.activeVariation()
	if v == nil {
		return nil
	}
	switch group.Section {
	case layout.SectionSummary:
		if group.Group == overrides.SummaryGroupID {
			return derivation.SummaryParts(v.Summary)
		}
	case layout.SectionExperience:
		for i, entry := range v.ExperienceSections {
			if overrides.ExperienceGroupID(entry.SourceExperienceID, entry.Role, entry.Company, i) == group.Group {
				return entry.Bullets
			}
		}
	case layout.SectionProjects:
		for i, entry := range v.ProjectSections {
			if overrides.ProjectGroupID(entry.SourceProjectID, entry.Name, i) == group.Group {
				return entry.Bullets
			}
		}
	case layout.SectionEducation:
		if group.Group == overrides.EducationGroupID {
			lines := make([]string, 0, len(v.EducationHighlights))
			for _, h := range v.EducationHighlights {
				lines = append(lines, h.Notes)
			}
			return lines
		}
	}
	return nil
}
