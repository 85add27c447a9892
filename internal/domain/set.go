package domain

import "time"

// ReservedSetID is the id of the synthetic catch-all set that collects
// measurements with no resolvable owner. It is rebuilt on every grouping pass,
// is never persisted as user data, and is never deleted for being empty.
const ReservedSetID = "avulsas"

// ReservedSetTitle is the display title of the reserved set.
const ReservedSetTitle = "Medidas Avulsas"

// MeasurementSet is a named group of measurements.
// Members is an ordered sequence; each measurement belongs to at most one set
// at a time, and every member's SetID equals the owning set's ID.
// Members is display state derived from the flat list — it is not serialized;
// membership is rebuilt from SetID references on hydrate.
type MeasurementSet struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Members   []Measurement `json:"-"`
}

// NewMeasurementSet builds a set with the given id and title, stamped now.
// Pass an empty id to have a fresh UUID assigned.
func NewMeasurementSet(id, title string) MeasurementSet {
	if id == "" {
		id = NewID()
	}
	now := time.Now().UTC()
	return MeasurementSet{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
}

// NewReservedSet returns a fresh, empty reserved set.
func NewReservedSet() MeasurementSet {
	return NewMeasurementSet(ReservedSetID, ReservedSetTitle)
}

// IsReserved reports whether this is the synthetic catch-all set.
func (s *MeasurementSet) IsReserved() bool {
	return s.ID == ReservedSetID
}

// AddMember appends m to the set, idempotent by measurement id: re-adding a
// measurement that is already a member leaves Members unchanged.
// Returns true when the member was actually added.
func (s *MeasurementSet) AddMember(m Measurement) bool {
	for _, existing := range s.Members {
		if existing.ID == m.ID {
			return false
		}
	}
	m.SetID = s.ID
	s.Members = append(s.Members, m)
	s.UpdatedAt = time.Now().UTC()
	return true
}

// FormattedCreatedAt returns the creation date in display format (dd/mm/yyyy).
func (s *MeasurementSet) FormattedCreatedAt() string {
	return s.CreatedAt.Format("02/01/2006")
}

// FormattedUpdatedAt returns the last-update date in display format.
func (s *MeasurementSet) FormattedUpdatedAt() string {
	return s.UpdatedAt.Format("02/01/2006")
}
