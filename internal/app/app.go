// Package app orchestrates the client side: it owns the record store, the
// persistence adapter, and the renderer, and sequences every user operation
// as mutate → persist → render. Errors from the store or the adapter are
// converted to user-visible notifications here; none propagate as a crash.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rfcoelho/medidas/internal/domain"
	"github.com/rfcoelho/medidas/internal/persist"
	"github.com/rfcoelho/medidas/internal/render"
	"github.com/rfcoelho/medidas/internal/store"
)

// App wires the client components together. All dependencies are injected;
// there is no package-level instance.
type App struct {
	store    *store.Store
	adapter  persist.Adapter
	renderer *render.Renderer
	out      io.Writer
	log      *slog.Logger
}

// New constructs an App from its dependencies.
func New(st *store.Store, adapter persist.Adapter, renderer *render.Renderer, out io.Writer, log *slog.Logger) *App {
	return &App{store: st, adapter: adapter, renderer: renderer, out: out, log: log}
}

// Load pulls the document from the adapter and hydrates the store.
// A malformed document is refused: the prior (empty) state is kept and the
// failure is surfaced as a notification, never an exit.
func (a *App) Load(ctx context.Context) {
	doc, err := a.adapter.Load(ctx)
	if err != nil {
		a.notifyError("Could not load saved measurements: " + err.Error())
		return
	}
	if err := a.store.Hydrate(doc); err != nil {
		a.notifyError("Saved measurements are malformed and were ignored: " + err.Error())
	}
}

// AddMeasurement validates and stores one measurement, persists, and renders
// the updated view. The returned error carries the validation failure for the
// process exit code; it has already been shown to the user.
func (a *App) AddMeasurement(ctx context.Context, input domain.Measurement) error {
	stored, err := a.store.Add(input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.notifyError("Please fill in all fields correctly: " + err.Error())
			return err
		}
		a.notifyError(err.Error())
		return err
	}

	a.save(ctx)
	a.notifySuccess(fmt.Sprintf("Measurement added (id %s).", stored.ID))
	a.List()
	return nil
}

// RemoveMeasurement deletes a measurement by id, persists, and renders.
// An unknown id is reported and otherwise ignored — it is not a failure of
// the process.
func (a *App) RemoveMeasurement(ctx context.Context, id string) {
	if err := a.store.Remove(id); err != nil {
		a.notifyError("Measurement not found: " + id)
		return
	}

	a.save(ctx)
	a.notifySuccess("Measurement removed.")
	a.List()
}

// List renders the current grouping.
func (a *App) List() {
	ordered := store.DisplayOrder(a.store.Grouped())
	fmt.Fprint(a.out, a.renderer.Sets(ordered))
}

// Export writes the full document, pretty-printed, to a date-stamped file in
// dir and reports the path.
func (a *App) Export(_ context.Context, dir string) error {
	data, err := a.store.Snapshot().Encode()
	if err != nil {
		a.notifyError("Could not export measurements: " + err.Error())
		return err
	}

	name := fmt.Sprintf("medidas_backup_%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.notifyError("Could not write export file: " + err.Error())
		return fmt.Errorf("%w: write export: %v", domain.ErrPersist, err)
	}

	a.notifySuccess("Measurements exported to " + path)
	return nil
}

// Import replaces the in-memory state with the document in the given file and
// persists it. The file must contain a measurements array; anything else is
// refused and the prior state is kept.
func (a *App) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		a.notifyError("Could not read import file: " + err.Error())
		return fmt.Errorf("%w: read import: %v", domain.ErrPersist, err)
	}

	doc, err := domain.ParseDocument(data)
	if err == nil && doc.Measurements == nil {
		err = fmt.Errorf("%w: missing measurements array", domain.ErrFormat)
	}
	if err == nil {
		err = a.store.Hydrate(doc)
	}
	if err != nil {
		a.notifyError("Could not import measurements: " + err.Error())
		return err
	}

	a.save(ctx)
	a.notifySuccess(fmt.Sprintf("Imported %d measurements.", a.store.Len()))
	a.List()
	return nil
}

// save persists the current snapshot. Failures are surfaced as notifications
// and logged; the in-memory mutation is never rolled back.
func (a *App) save(ctx context.Context) {
	if err := a.adapter.Save(ctx, a.store.Snapshot()); err != nil {
		a.log.Warn("save failed", "error", err)
		a.notifyError(err.Error())
	}
}

func (a *App) notifySuccess(message string) {
	fmt.Fprintln(a.out, a.renderer.Success(message))
}

func (a *App) notifyError(message string) {
	fmt.Fprintln(a.out, a.renderer.Error(message))
}
