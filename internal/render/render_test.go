package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfcoelho/medidas/internal/domain"
	"github.com/rfcoelho/medidas/internal/render"
)

func member(name string, value float64, unit string) domain.Measurement {
	m := domain.NewMeasurement("medida", "", name, value, unit)
	m.RecordedAt = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	return m
}

func TestSets_EmptyGroupingShowsPlaceholder(t *testing.T) {
	r := render.New()

	out := r.Sets(nil)

	assert.Contains(t, out, "No measurements recorded yet.")
}

func TestSets_LoneEmptyReservedSetShowsPlaceholder(t *testing.T) {
	r := render.New()
	reserved := domain.NewReservedSet()

	out := r.Sets([]*domain.MeasurementSet{&reserved})

	assert.Contains(t, out, "No measurements recorded yet.")
}

func TestSets_RendersTitleTimestampsAndRows(t *testing.T) {
	r := render.New()
	set := domain.NewMeasurementSet("s1", "Summer")
	set.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	set.UpdatedAt = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	set.Members = []domain.Measurement{
		member("waist", 70, "cm"),
		member("chest", 95.5, "cm"),
	}

	out := r.Sets([]*domain.MeasurementSet{&set})

	assert.Contains(t, out, "Summer")
	assert.Contains(t, out, "created 01/08/2026")
	assert.Contains(t, out, "updated 15/08/2026")
	for _, h := range []string{"#", "Name", "Value", "Unit", "Date"} {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "waist")
	assert.Contains(t, out, "70")
	assert.Contains(t, out, "95.5")
	assert.Contains(t, out, "15/08/2026")
}

func TestSets_RowsAreNumberedPerSet(t *testing.T) {
	r := render.New()
	first := domain.NewMeasurementSet("s1", "Summer")
	first.Members = []domain.Measurement{member("waist", 70, "cm"), member("chest", 95, "cm")}
	second := domain.NewMeasurementSet("s2", "Winter")
	second.Members = []domain.Measurement{member("hips", 100, "cm")}

	out := r.Sets([]*domain.MeasurementSet{&first, &second})

	summer := strings.Index(out, "Summer")
	winter := strings.Index(out, "Winter")
	require.GreaterOrEqual(t, summer, 0)
	require.GreaterOrEqual(t, winter, 0)
	assert.Less(t, summer, winter, "sets render in the given order")
	assert.Contains(t, out[winter:], " 1 ", "numbering restarts in each set")
}

func TestSets_SkipsEmptyNonReservedSets(t *testing.T) {
	r := render.New()
	empty := domain.NewMeasurementSet("s1", "Winter")
	full := domain.NewMeasurementSet("s2", "Summer")
	full.Members = []domain.Measurement{member("waist", 70, "cm")}

	out := r.Sets([]*domain.MeasurementSet{&empty, &full})

	assert.NotContains(t, out, "Winter")
	assert.Contains(t, out, "Summer")
}

func TestNotifications(t *testing.T) {
	r := render.New()

	assert.Contains(t, r.Success("saved"), "✓ saved")
	assert.Contains(t, r.Error("broken"), "✗ broken")
}
