package persist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rfcoelho/medidas/internal/domain"
)

// Stack composes a local and a remote adapter under the app's consistency
// policy: reads prefer the server, writes always land locally first, and a
// remote write failure is reported but never rolled back locally. The gap this
// leaves (local ahead of remote until the next successful save) is accepted.
type Stack struct {
	local  Adapter
	remote Adapter
	log    *slog.Logger
}

// compile-time check: Stack must satisfy Adapter.
var _ Adapter = (*Stack)(nil)

// NewStack builds the composite adapter.
func NewStack(local, remote Adapter, log *slog.Logger) *Stack {
	return &Stack{local: local, remote: remote, log: log}
}

// Load attempts the remote backend first and falls back to the local store on
// any remote failure. The fallback is logged, never fatal.
func (s *Stack) Load(ctx context.Context) (domain.Document, error) {
	doc, err := s.remote.Load(ctx)
	if err == nil {
		return doc, nil
	}
	s.log.Warn("remote load failed, falling back to local store", "error", err)
	return s.local.Load(ctx)
}

// Save writes to the local store unconditionally, then attempts the remote
// save. A remote-only failure is returned wrapped so the caller can surface it
// as a notification while knowing the local copy is current.
func (s *Stack) Save(ctx context.Context, doc domain.Document) error {
	localErr := s.local.Save(ctx, doc)
	if localErr != nil {
		s.log.Error("local save failed", "error", localErr)
	}

	remoteErr := s.remote.Save(ctx, doc)
	if remoteErr != nil {
		s.log.Warn("remote save failed, local copy is current", "error", remoteErr)
	}

	if localErr != nil {
		return localErr
	}
	if remoteErr != nil {
		return fmt.Errorf("saved locally, server sync failed: %w", remoteErr)
	}
	return nil
}
