package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"

	"github.com/rfcoelho/medidas/internal/domain"
	"github.com/rfcoelho/medidas/migrations"
)

// Postgres stores the document in a Postgres database, for deployments where
// several server instances share one backing store.
type Postgres struct {
	pool *pgxpool.Pool
}

// compile-time check: Postgres must satisfy Store.
var _ Store = (*Postgres)(nil)

// OpenPostgres connects to the database named by dsn, applies any pending
// migrations, and verifies the connection with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	// goose needs database/sql, so migrations run over a short-lived stdlib
	// connection before the pgx pool is opened.
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %v", domain.ErrPersist, err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create migration provider: %v", domain.ErrPersist, err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate postgres store: %v", domain.ErrPersist, err)
	}
	db.Close()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: create pool: %v", domain.ErrPersist, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", domain.ErrPersist, err)
	}

	return &Postgres{pool: pool}, nil
}

// Load reads the stored document, or an empty one when nothing was ever saved.
func (p *Postgres) Load(ctx context.Context) (domain.Document, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx,
		`SELECT payload FROM documents WHERE name = $1`, documentName,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: read document: %v", domain.ErrPersist, err)
	}
	return domain.ParseDocument(payload)
}

// Save stamps and upserts the document.
func (p *Postgres) Save(ctx context.Context, doc domain.Document) (domain.Document, error) {
	stamped := stamp(doc)
	payload, err := stamped.Encode()
	if err != nil {
		return domain.Document{}, err
	}

	const q = `
		INSERT INTO documents (name, payload, updated_at)
		VALUES (@name, @payload, @updated_at)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

	args := pgx.NamedArgs{
		"name":       documentName,
		"payload":    string(payload),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := p.pool.Exec(ctx, q, args); err != nil {
		return domain.Document{}, fmt.Errorf("%w: write document: %v", domain.ErrPersist, err)
	}
	return stamped, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
