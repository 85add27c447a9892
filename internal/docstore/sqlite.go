package docstore

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

// documentName is the key the server document lives under.
// Same table layout as the client-side local store, so the migrations are
// shared.
const documentName = "medidas"

// SQLite stores the document in an embedded SQLite database.
type SQLite struct {
	db *sql.DB
}

// compile-time check: SQLite must satisfy Store.
var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path and applies any
// pending migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create data dir: %v", domain.ErrPersist, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite store: %v", domain.ErrPersist, err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create migration provider: %v", domain.ErrPersist, err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate sqlite store: %v", domain.ErrPersist, err)
	}

	return &SQLite{db: db}, nil
}

// Load reads the stored document, or an empty one when nothing was ever saved.
func (s *SQLite) Load(ctx context.Context) (domain.Document, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE name = ?`, documentName,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: read document: %v", domain.ErrPersist, err)
	}
	return domain.ParseDocument(payload)
}

// Save stamps and upserts the document.
func (s *SQLite) Save(ctx context.Context, doc domain.Document) (domain.Document, error) {
	stamped := stamp(doc)
	payload, err := stamped.Encode()
	if err != nil {
		return domain.Document{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		documentName, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: write document: %v", domain.ErrPersist, err)
	}
	return stamped, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
