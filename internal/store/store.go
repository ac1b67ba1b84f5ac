// Package store provides the key-value persistence port used for cached
// sessions and custom templates, with in-memory, file-backed and PostgreSQL
// implementations. Injected via constructors; never accessed as a global.
package store

import "context"

// Store is the persistence port. Values are opaque JSON payloads; callers own
// serialization. Writes are last-write-wins with no locking across processes.
type Store interface {
	// Load returns the value for key. The boolean is false when absent.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save upserts the value for key.
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Fixed cache keys shared by all deployments.
const (
	// KeyGenerationSession caches the active generation session (versioned,
	// 24-hour freshness window).
	KeyGenerationSession = "resume-studio:generation-session"
	// KeyCustomTemplates stores user-saved templates (versionless, never expiring).
	KeyCustomTemplates = "resume-studio:custom-templates"
)
