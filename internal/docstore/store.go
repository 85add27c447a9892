// Package docstore contains the server-side document persistence.
// Each backend lives in its own file behind the Store interface; the HTTP
// handlers depend on the interface, never on a concrete backend.
package docstore

import (
	"context"
	"fmt"

	"github.com/rfcoelho/medidas/internal/domain"
)

// Store persists the application document on the server.
type Store interface {
	// Load returns the stored document. A store that has never been written
	// yields an empty document, not an error.
	Load(ctx context.Context) (domain.Document, error)

	// Save overwrites the stored document, stamping lastUpdate and the schema
	// version server-side, and returns the document as stored.
	Save(ctx context.Context, doc domain.Document) (domain.Document, error)
}

// Supported driver names for Open.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open selects a Store implementation by driver name.
// path is the file or sqlite database path; dsn is the Postgres connection
// string and is only consulted when driver is "postgres".
func Open(ctx context.Context, driver, path, dsn string) (Store, error) {
	switch driver {
	case DriverFile:
		return NewFile(path), nil
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// stamp normalizes a document before it is written: the server owns the
// lastUpdate timestamp and the schema version, whatever the client sent.
func stamp(doc domain.Document) domain.Document {
	stamped := domain.NewDocument()
	stamped.Measurements = doc.Measurements
	stamped.Sets = doc.Sets
	if stamped.Measurements == nil {
		stamped.Measurements = []domain.Measurement{}
	}
	if stamped.Sets == nil {
		stamped.Sets = []domain.MeasurementSet{}
	}
	return stamped
}
