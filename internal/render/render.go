// Package render converts a measurement grouping into terminal output.
// It is the only package that knows about presentation: the store and
// grouping stay pure so they can be tested without any styling involved.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rfcoelho/medidas/internal/domain"
)

// column headers of the measurement table.
var headers = []string{"#", "Name", "Value", "Unit", "Date"}

// Renderer holds the styles used for tables and notifications.
type Renderer struct {
	title   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	errored lipgloss.Style
}

// New returns a Renderer with the default styles.
func New() *Renderer {
	return &Renderer{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:    lipgloss.NewStyle().Padding(0, 1),
		muted:   lipgloss.NewStyle().Faint(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errored: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Sets renders the ordered grouping: a header line per set followed by its
// numbered member rows. An empty grouping yields the empty-state placeholder.
func (r *Renderer) Sets(ordered []*domain.MeasurementSet) string {
	total := 0
	for _, set := range ordered {
		total += len(set.Members)
	}
	if total == 0 {
		return r.muted.Render("No measurements recorded yet.") + "\n"
	}

	var sb strings.Builder
	for _, set := range ordered {
		if len(set.Members) == 0 && !set.IsReserved() {
			continue
		}
		sb.WriteString(r.title.Render(set.Title))
		sb.WriteString(" ")
		sb.WriteString(r.muted.Render(fmt.Sprintf("(created %s, updated %s)",
			set.FormattedCreatedAt(), set.FormattedUpdatedAt())))
		sb.WriteString("\n")
		sb.WriteString(r.table(set.Members))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Success returns a styled success notification line.
func (r *Renderer) Success(message string) string {
	return r.success.Render("✓ " + message)
}

// Error returns a styled error notification line.
func (r *Renderer) Error(message string) string {
	return r.errored.Render("✗ " + message)
}

// table renders the member rows with columns sized to their content.
func (r *Renderer) table(members []domain.Measurement) string {
	rows := make([][]string, 0, len(members))
	for i, m := range members {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Name,
			strconv.FormatFloat(m.Value, 'f', -1, 64),
			m.Unit,
			m.FormattedDate(),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(r.header.Width(widths[i] + 2).Render(h))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(r.cell.Width(widths[i] + 2).Render(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
