package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DocumentVersion is the schema version stamped into every serialized document.
const DocumentVersion = "1.0.0"

// Document is the persisted unit: the full application state as one JSON
// value. Timestamps serialize as RFC 3339 strings, so a document survives a
// serialize/parse round trip with ids, values, and timestamps intact.
type Document struct {
	Version      string           `json:"version"`
	LastUpdate   time.Time        `json:"lastUpdate"`
	Measurements []Measurement    `json:"measurements"`
	Sets         []MeasurementSet `json:"sets"`
}

// NewDocument returns an empty document stamped with the current version.
func NewDocument() Document {
	return Document{
		Version:      DocumentVersion,
		LastUpdate:   time.Now().UTC(),
		Measurements: []Measurement{},
		Sets:         []MeasurementSet{},
	}
}

// ParseDocument decodes raw JSON into a Document.
// Any decode failure — including a measurements field that is not an array —
// is reported as ErrFormat; the caller keeps its prior state.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return doc, nil
}

// Encode serializes the document as pretty-printed JSON, the format both the
// server file store and the export file use.
func (d Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return data, nil
}
