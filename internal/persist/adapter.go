// Package persist implements the client-side persistence adapter: one
// capability interface with interchangeable backends. The original app grew
// three mutually inconsistent storage paths (local key-value storage, a remote
// JSON file, a manifest-embedded object); here a backend is a configuration
// choice, not a code path.
package persist

import (
	"context"

	"github.com/rfcoelho/medidas/internal/domain"
)

// Adapter reads and writes the full application document against one backend.
// Implementations: Local (durable on-disk key-value store), Remote (the HTTP
// API), and Stack (remote-first load with local fallback).
type Adapter interface {
	// Load returns the stored document, or an empty document when the backend
	// has never been written. Failures wrap domain.ErrPersist; an unreadable
	// stored payload wraps domain.ErrFormat.
	Load(ctx context.Context) (domain.Document, error)

	// Save writes the full document. Failures wrap domain.ErrPersist.
	Save(ctx context.Context, doc domain.Document) error
}
