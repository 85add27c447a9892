// Package store holds the in-memory record state: the flat measurement list
// plus the known measurement sets. All mutations are synchronous and atomic;
// persistence and rendering are side effects sequenced by the caller after a
// successful mutation, never triggered from here.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rfcoelho/medidas/internal/domain"
)

// Store is the single owner of in-memory record state.
// Construct one explicitly and hand it to the app layer; there is no package
// singleton. The mutex makes interleaved mutations from tests and the HTTP
// import path safe.
type Store struct {
	mu           sync.Mutex
	measurements []domain.Measurement
	sets         []domain.MeasurementSet
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Hydrate replaces the in-memory state from a parsed document.
// Every measurement must reconstruct cleanly (non-empty id, name, and unit);
// otherwise ErrFormat is returned and the prior state is kept. Out-of-range
// values in old backups are accepted as-is: the full value invariant is
// enforced at the input boundary (Add), not on reload. Reserved-set records
// in doc.Sets are dropped: the catch-all set is derived state and is rebuilt
// on every grouping pass.
func (s *Store) Hydrate(doc domain.Document) error {
	measurements := make([]domain.Measurement, 0, len(doc.Measurements))
	for i, m := range doc.Measurements {
		if m.ID == "" {
			return fmt.Errorf("%w: measurement %d has no id", domain.ErrFormat, i)
		}
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: measurement %q has no name", domain.ErrFormat, m.ID)
		}
		if strings.TrimSpace(m.Unit) == "" {
			return fmt.Errorf("%w: measurement %q has no unit", domain.ErrFormat, m.ID)
		}
		measurements = append(measurements, m)
	}

	sets := make([]domain.MeasurementSet, 0, len(doc.Sets))
	for i, set := range doc.Sets {
		if set.ID == domain.ReservedSetID {
			continue
		}
		if set.ID == "" || set.Title == "" {
			return fmt.Errorf("%w: set %d is missing id or title", domain.ErrFormat, i)
		}
		set.Members = nil
		sets = append(sets, set)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.measurements = measurements
	s.sets = sets
	return nil
}

// Add validates input and appends it to the flat list.
// Set-defining records (kind == domain.KindSet) find-or-create their set by
// exact title match and attach to it; re-adding an id already tracked is a
// no-op. The stored measurement is returned so callers can report its id.
func (s *Store) Add(input domain.Measurement) (domain.Measurement, error) {
	if err := input.Validate(); err != nil {
		return domain.Measurement{}, err
	}
	if input.ID == "" {
		input.ID = domain.NewID()
	}
	if input.RecordedAt.IsZero() {
		input.RecordedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(input.ID) >= 0 {
		// Idempotent: the record is already tracked.
		return *s.find(input.ID), nil
	}

	if input.IsSet() {
		set := s.findSetByTitle(input.SetTitle)
		if set == nil {
			// The defining record's id doubles as the set id, so removing the
			// record later cascades to everything referencing the set.
			created := domain.NewMeasurementSet(input.ID, input.SetTitle)
			s.sets = append(s.sets, created)
			set = &s.sets[len(s.sets)-1]
		}
		input.SetID = set.ID
		set.UpdatedAt = time.Now().UTC()
	} else if input.SetID != "" {
		// Gaining a member is a membership change, same as losing one.
		if set := s.findSetByID(input.SetID); set != nil {
			set.UpdatedAt = time.Now().UTC()
		}
	}

	s.measurements = append(s.measurements, input)
	return input, nil
}

// Remove deletes the measurement with the given id.
// It detaches the record from its owning set, deletes that set if it became
// empty (never the reserved set), and — when the removed record was itself
// set-defining — cascade-deletes the set and every measurement referencing it.
// Returns domain.ErrNotFound when the id is unknown.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: measurement %q", domain.ErrNotFound, id)
	}
	removed := s.measurements[idx]
	s.measurements = append(s.measurements[:idx], s.measurements[idx+1:]...)

	if removed.SetID != "" {
		s.detachFromSet(removed.SetID)
	}

	if removed.IsSet() {
		setID := removed.SetID
		if setID == "" {
			setID = removed.ID
		}
		s.deleteSetCascade(setID)
	}
	return nil
}

// Snapshot produces a Document of the current state.
// Set member lists are not embedded; membership is rebuilt on hydrate from the
// measurements' set references.
func (s *Store) Snapshot() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := domain.NewDocument()
	doc.Measurements = append(doc.Measurements, s.measurements...)
	for _, set := range s.sets {
		set.Members = nil
		doc.Sets = append(doc.Sets, set)
	}
	return doc
}

// Grouped returns the display grouping of the current state.
// See Group for the algorithm.
func (s *Store) Grouped() map[string]*domain.MeasurementSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Group(s.measurements, s.sets)
}

// Len returns the number of tracked measurements.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.measurements)
}

// --- unexported helpers (callers must hold s.mu) ----------------------------

func (s *Store) indexOf(id string) int {
	for i, m := range s.measurements {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) find(id string) *domain.Measurement {
	if i := s.indexOf(id); i >= 0 {
		return &s.measurements[i]
	}
	return nil
}

func (s *Store) findSetByID(id string) *domain.MeasurementSet {
	for i := range s.sets {
		if s.sets[i].ID == id {
			return &s.sets[i]
		}
	}
	return nil
}

func (s *Store) findSetByTitle(title string) *domain.MeasurementSet {
	for i := range s.sets {
		if s.sets[i].Title == title {
			return &s.sets[i]
		}
	}
	return nil
}

// detachFromSet refreshes the owning set after a member removal and deletes
// the set when its last member is gone. The reserved set is never deleted.
func (s *Store) detachFromSet(setID string) {
	for i := range s.sets {
		if s.sets[i].ID != setID {
			continue
		}
		if s.memberCount(setID) == 0 && setID != domain.ReservedSetID {
			s.sets = append(s.sets[:i], s.sets[i+1:]...)
		} else {
			s.sets[i].UpdatedAt = time.Now().UTC()
		}
		return
	}
}

// deleteSetCascade removes the set and every measurement referencing it.
func (s *Store) deleteSetCascade(setID string) {
	kept := s.measurements[:0]
	for _, m := range s.measurements {
		if m.SetID != setID {
			kept = append(kept, m)
		}
	}
	s.measurements = kept

	for i := range s.sets {
		if s.sets[i].ID == setID {
			s.sets = append(s.sets[:i], s.sets[i+1:]...)
			return
		}
	}
}

func (s *Store) memberCount(setID string) int {
	n := 0
	for _, m := range s.measurements {
		if m.SetID == setID {
			n++
		}
	}
	return n
}
