package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfcoelho/medidas/internal/domain"
)

func validMeasurement() domain.Measurement {
	return domain.NewMeasurement("waist", "Summer", "waist", 70, "cm")
}

func TestMeasurement_Validate_OK(t *testing.T) {
	require.NoError(t, validMeasurement().Validate())
}

func TestMeasurement_Validate_RejectsBlankFields(t *testing.T) {
	cases := map[string]func(*domain.Measurement){
		"setTitle": func(m *domain.Measurement) { m.SetTitle = "   " },
		"name":     func(m *domain.Measurement) { m.Name = "" },
		"unit":     func(m *domain.Measurement) { m.Unit = "\t" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			m := validMeasurement()
			mutate(&m)

			err := m.Validate()

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, field)
		})
	}
}

func TestMeasurement_Validate_RejectsNonPositiveValues(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		m := validMeasurement()
		m.Value = v

		assert.ErrorIs(t, m.Validate(), domain.ErrValidation, "value %v", v)
	}
}

func TestNewMeasurement_AssignsUniqueIDs(t *testing.T) {
	// Rapid successive creation was the collision risk of the old
	// timestamp+random scheme; UUIDs must not share it.
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		m := validMeasurement()
		require.NotEmpty(t, m.ID)
		require.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestMeasurementSet_AddMember_IdempotentByID(t *testing.T) {
	set := domain.NewMeasurementSet("", "Summer")
	m := validMeasurement()

	require.True(t, set.AddMember(m))
	require.False(t, set.AddMember(m))

	assert.Len(t, set.Members, 1)
	assert.Equal(t, set.ID, set.Members[0].SetID)
}

func TestReservedSet_HasFixedIdentity(t *testing.T) {
	set := domain.NewReservedSet()

	assert.Equal(t, "avulsas", set.ID)
	assert.Equal(t, domain.ReservedSetTitle, set.Title)
	assert.True(t, set.IsReserved())
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := domain.NewDocument()
	m := validMeasurement()
	m.RecordedAt = time.Date(2025, 8, 14, 10, 30, 0, 0, time.UTC)
	doc.Measurements = append(doc.Measurements, m)
	doc.Sets = append(doc.Sets, domain.NewMeasurementSet("s1", "Summer"))

	encoded, err := doc.Encode()
	require.NoError(t, err)

	parsed, err := domain.ParseDocument(encoded)
	require.NoError(t, err)

	require.Len(t, parsed.Measurements, 1)
	got := parsed.Measurements[0]
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Value, got.Value)
	assert.True(t, m.RecordedAt.Equal(got.RecordedAt))

	require.Len(t, parsed.Sets, 1)
	assert.Equal(t, "s1", parsed.Sets[0].ID)
	assert.Equal(t, "Summer", parsed.Sets[0].Title)
}

func TestParseDocument_MalformedJSON(t *testing.T) {
	_, err := domain.ParseDocument([]byte(`{"measurements": 42}`))

	require.ErrorIs(t, err, domain.ErrFormat)
}
