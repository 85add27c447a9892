package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rfcoelho/medidas/internal/domain"
)

// File stores the document as one pretty-printed JSON file on disk — the
// behavior the original server had, kept as the zero-dependency default.
// The mutex serializes writers; net/http serves each request on its own
// goroutine and concurrent saves would otherwise interleave the
// write-temp-then-rename sequence.
type File struct {
	path string
	mu   sync.Mutex
}

// compile-time check: File must satisfy Store.
var _ Store = (*File)(nil)

// NewFile builds a file-backed store rooted at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads and parses the document file.
// A missing file yields an empty document rather than an error, so a fresh
// deployment works without any seed data.
func (f *File) Load(_ context.Context) (domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: read document file: %v", domain.ErrPersist, err)
	}
	return domain.ParseDocument(data)
}

// Save stamps and writes the document atomically (temp file + rename), so a
// crash mid-write never leaves a truncated document behind.
func (f *File) Save(_ context.Context, doc domain.Document) (domain.Document, error) {
	stamped := stamp(doc)
	data, err := stamped.Encode()
	if err != nil {
		return domain.Document{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return domain.Document{}, fmt.Errorf("%w: create data dir: %v", domain.ErrPersist, err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return domain.Document{}, fmt.Errorf("%w: write document file: %v", domain.ErrPersist, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return domain.Document{}, fmt.Errorf("%w: replace document file: %v", domain.ErrPersist, err)
	}
	return stamped, nil
}
