// Package overrides tracks user edits layered over immutable AI-generated
// bullet content: per-bullet text replacements and per-group orderings.
package overrides

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/layout"
)

// GroupKey identifies a repeatable sub-entity inside a section: one
// experience entry, one project entry, or the singleton education group.
// Composite struct keys give value equality without the separator-collision
// hazard of concatenated strings.
type GroupKey struct {
	Section layout.Section `json:"section"`
	Group   string         `json:"group"`
}

// ItemKey identifies one bullet line at its original position in a group.
type ItemKey struct {
	Section layout.Section `json:"section"`
	Group   string         `json:"group"`
	Index   int            `json:"index"`
}

// GroupKey returns the group portion of the item key.
func (k ItemKey) GroupKey() GroupKey {
	return GroupKey{Section: k.Section, Group: k.Group}
}

// ExperienceGroupID derives a stable group identity for an experience entry.
// A server-assigned source ID wins; otherwise a slug of role and company plus
// the positional index guarantees uniqueness.
func ExperienceGroupID(sourceID, role, company string, position int) string {
	if sourceID != "" {
		return "experience-" + sourceID
	}
	return fmt.Sprintf("%s-%d", Slug(role+" "+company), position)
}

// ProjectGroupID derives a stable group identity for a project entry.
func ProjectGroupID(sourceID, name string, position int) string {
	if sourceID != "" {
		return "project-" + sourceID
	}
	return fmt.Sprintf("%s-%d", Slug(name), position)
}

// EducationGroupID is the identity of the singleton education group.
const EducationGroupID = "education"

// SummaryGroupID is the identity of the summary bullet group.
const SummaryGroupID = "main"

// Slug normalizes free text into a lowercase hyphenated identifier.
func Slug(text string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
