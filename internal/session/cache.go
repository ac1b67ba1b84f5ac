package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/overrides"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// CacheVersion tags cached sessions; entries with another version are ignored.
const CacheVersion = 2

// CacheMaxAge is the freshness window for cached sessions.
const CacheMaxAge = 24 * time.Hour

// cachedSession is the persisted envelope for one generation session.
type cachedSession struct {
	Version           int                     `json:"version"`
	SavedAt           time.Time               `json:"saved_at"`
	Result            *types.GenerationResult `json:"result"`
	SelectedJobID     string                  `json:"selected_job_id"`
	ActiveVariationID string                  `json:"active_variation_id"`
	Tone              types.Tone              `json:"tone"`
	VariationCount    int                     `json:"variation_count"`
	Layout            layout.Snapshot         `json:"layout"`
	Origin            layout.Origin           `json:"origin"`
	Overrides         overrides.State         `json:"overrides"`
	Counters          map[layout.Section]int  `json:"counters,omitempty"`
	SeenJobTypes      []string                `json:"seen_job_types,omitempty"`
}

// Persist writes the session to the injected store under the fixed session
// key. Last write wins; there is no cross-process locking.
func (s *Session) Persist(ctx context.Context) error {
	s.mu.Lock()
	seen := make([]string, 0, len(s.seenJobTypes))
	for jt := range s.seenJobTypes {
		seen = append(seen, jt)
	}
	counters := make(map[layout.Section]int, len(s.counters))
	for k, v := range s.counters {
		counters[k] = v
	}
	env := cachedSession{
		Version:           CacheVersion,
		SavedAt:           time.Now().UTC(),
		Result:            s.result,
		SelectedJobID:     s.selectedJobID,
		ActiveVariationID: s.activeVariationID,
		Tone:              s.tone,
		VariationCount:    s.variationCount,
		Layout:            s.layout.Snapshot(),
		Origin:            s.layout.Origin(),
		Overrides:         s.overrides.Snapshot(),
		Counters:          counters,
		SeenJobTypes:      seen,
	}
	s.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal session cache: %w", err)
	}
	if err := s.store.Save(ctx, store.KeyGenerationSession, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Restore rehydrates the session from the store. Absent, stale (older than
// CacheMaxAge) or version-mismatched entries are ignored and reported as not
// restored, never as an error.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	data, ok, err := s.store.Load(ctx, store.KeyGenerationSession)
	if err != nil {
		return false, fmt.Errorf("failed to load session cache: %w", err)
	}
	if !ok {
		return false, nil
	}

	var env cachedSession
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("ignoring unreadable session cache", zap.Error(err))
		return false, nil
	}
	if env.Version != CacheVersion {
		s.logger.Info("ignoring session cache with version mismatch",
			zap.Int("found", env.Version), zap.Int("want", CacheVersion))
		return false, nil
	}
	if time.Since(env.SavedAt) > CacheMaxAge {
		s.logger.Info("ignoring stale session cache", zap.Time("saved_at", env.SavedAt))
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = env.Result
	s.selectedJobID = env.SelectedJobID
	s.activeVariationID = env.ActiveVariationID
	s.tone = env.Tone
	s.variationCount = env.VariationCount
	s.layout.Restore(env.Layout, env.Origin)
	s.overrides.Restore(env.Overrides)
	s.counters = make(map[layout.Section]int, len(env.Counters))
	for k, v := range env.Counters {
		s.counters[k] = v
	}
	s.seenJobTypes = make(map[string]bool, len(env.SeenJobTypes))
	for _, jt := range env.SeenJobTypes {
		s.seenJobTypes[jt] = true
	}
	return true, nil
}

// ClearCache removes the persisted session entry.
func (s *Session) ClearCache(ctx context.Context) error {
	return s.store.Delete(ctx, store.KeyGenerationSession)
}
