package store

import (
	"sort"

	"github.com/rfcoelho/medidas/internal/domain"
)

// Group derives the view-ready grouping of measurements under their owning
// sets. It is a pure function of its inputs and never mutates them.
//
// The reserved catch-all set is created fresh on every call — it is always
// rebuilt, never incrementally maintained. Every measurement lands in exactly
// one set: set-defining records find-or-create their set by id, records with a
// resolvable set reference attach there, and everything else falls into the
// reserved set. Attachment is idempotent by measurement id.
func Group(measurements []domain.Measurement, sets []domain.MeasurementSet) map[string]*domain.MeasurementSet {
	groups := make(map[string]*domain.MeasurementSet, len(sets)+1)

	reserved := domain.NewReservedSet()
	groups[reserved.ID] = &reserved

	for _, set := range sets {
		set.Members = nil
		copied := set
		groups[copied.ID] = &copied
	}

	for _, m := range measurements {
		switch {
		case m.IsSet():
			id := m.SetID
			if id == "" {
				id = m.ID
			}
			set, ok := groups[id]
			if !ok {
				created := domain.MeasurementSet{
					ID:        id,
					Title:     m.SetTitle,
					CreatedAt: m.RecordedAt,
					UpdatedAt: m.RecordedAt,
				}
				set = &created
				groups[id] = set
			}
			attach(set, m)
		case m.SetID != "":
			if set, ok := groups[m.SetID]; ok {
				attach(set, m)
			} else {
				attach(groups[reserved.ID], m)
			}
		default:
			attach(groups[reserved.ID], m)
		}
	}

	return groups
}

// attach adds m to set idempotently by id, without touching UpdatedAt:
// grouping is a derivation, not a membership change, so it must not disturb
// the set's real last-update timestamp the way AddMember does.
func attach(set *domain.MeasurementSet, m domain.Measurement) {
	for _, existing := range set.Members {
		if existing.ID == m.ID {
			return
		}
	}
	m.SetID = set.ID
	set.Members = append(set.Members, m)
}

// DisplayOrder flattens a grouping into render order: the reserved set always
// last, the rest descending by creation time. Sets with no members are
// excluded, except that a lone empty reserved set is kept so the view has
// something to show.
func DisplayOrder(groups map[string]*domain.MeasurementSet) []*domain.MeasurementSet {
	var reserved *domain.MeasurementSet
	ordered := make([]*domain.MeasurementSet, 0, len(groups))

	for _, set := range groups {
		if set.IsReserved() {
			reserved = set
			continue
		}
		if len(set.Members) > 0 {
			ordered = append(ordered, set)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	if reserved != nil && (len(reserved.Members) > 0 || len(ordered) == 0) {
		ordered = append(ordered, reserved)
	}
	return ordered
}
