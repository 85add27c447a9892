// Package domain contains the core data types for the medidas application.
// This package has zero external dependencies beyond the UUID generator and is
// imported by every other internal package (store, persist, handler, app).
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KindSet is the reserved value of Measurement.Kind that marks a record as
// set-defining: adding one creates (or reattaches to) the MeasurementSet named
// by its SetTitle. The literal is "conjunto" because that is what the wire
// format uses; any other kind is a free-form garment or body part label.
const KindSet = "conjunto"

// Measurement is a single recorded body or garment measurement.
// ID is assigned once at creation and never changes.
// SetID is a weak reference: it names the owning set by id but does not own it.
type Measurement struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	SetTitle   string    `json:"setTitle"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recordedAt"`
	SetID      string    `json:"setId,omitempty"`
}

// NewMeasurement builds a Measurement with a fresh UUID and the current time.
// The result is not validated; call Validate before storing it.
func NewMeasurement(kind, setTitle, name string, value float64, unit string) Measurement {
	return Measurement{
		ID:         NewID(),
		Kind:       kind,
		SetTitle:   setTitle,
		Name:       name,
		Value:      value,
		Unit:       unit,
		RecordedAt: time.Now().UTC(),
	}
}

// NewID returns a fresh opaque identifier.
// UUIDs replace the original timestamp+random scheme, whose collision odds
// under rapid successive creation were an open risk.
func NewID() string {
	return uuid.NewString()
}

// Validate checks the measurement invariant: setTitle, name, and unit must be
// non-empty after trimming, and value must be a positive finite number.
// Returns ErrValidation (wrapped with the failing field) when the invariant
// does not hold.
func (m Measurement) Validate() error {
	switch {
	case strings.TrimSpace(m.SetTitle) == "":
		return fieldError("setTitle")
	case strings.TrimSpace(m.Name) == "":
		return fieldError("name")
	case strings.TrimSpace(m.Unit) == "":
		return fieldError("unit")
	case math.IsNaN(m.Value) || math.IsInf(m.Value, 0) || m.Value <= 0:
		return valueError(m.Value)
	}
	return nil
}

// fieldError wraps ErrValidation with the name of the missing field.
func fieldError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}

// valueError wraps ErrValidation for a non-positive or non-finite value.
func valueError(v float64) error {
	return fmt.Errorf("%w: value must be a positive number, got %v", ErrValidation, v)
}

// IsSet reports whether this record is set-defining.
func (m Measurement) IsSet() bool {
	return m.Kind == KindSet
}

// FormattedDate returns RecordedAt in the display format used by the table
// renderer (dd/mm/yyyy, the convention the app has always shown).
func (m Measurement) FormattedDate() string {
	return m.RecordedAt.Format("02/01/2006")
}
