package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/rfcoelho/medidas/internal/domain"
	"github.com/rfcoelho/medidas/migrations"
)

// documentKey is the fixed key the serialized document lives under, matching
// the storage key the original client used.
const documentKey = "medidas"

// Local stores the serialized document under a fixed key in an on-disk SQLite
// database. This is the durable client-side store: reads and writes are
// synchronous and survive restarts.
type Local struct {
	db *sql.DB
}

// compile-time check: Local must satisfy Adapter.
var _ Adapter = (*Local)(nil)

// OpenLocal opens (creating if needed) the SQLite database at path and applies
// any pending schema migrations.
func OpenLocal(path string) (*Local, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create data dir: %v", domain.ErrPersist, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open local store: %v", domain.ErrPersist, err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create migration provider: %v", domain.ErrPersist, err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate local store: %v", domain.ErrPersist, err)
	}

	return &Local{db: db}, nil
}

// Load reads the document stored under the fixed key.
// A store that has never been written yields an empty document, not an error.
func (l *Local) Load(ctx context.Context) (domain.Document, error) {
	var payload []byte
	err := l.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE name = ?`, documentKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: read local document: %v", domain.ErrPersist, err)
	}
	return domain.ParseDocument(payload)
}

// Save serializes doc and upserts it under the fixed key.
func (l *Local) Save(ctx context.Context, doc domain.Document) error {
	payload, err := doc.Encode()
	if err != nil {
		return err
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO documents (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		documentKey, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: write local document: %v", domain.ErrPersist, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (l *Local) Close() error {
	return l.db.Close()
}
