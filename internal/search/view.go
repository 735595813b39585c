package search

import (
	"fmt"
	"strconv"

	"github.com/openschools-au/schoolsearch-cli/internal/model"
)

// View is the displayed subset derived from a search state. It is never
// stored: every consumer recomputes it from the state plus the current
// filter flag, so counts, exports, and the copy action always agree.
type View struct {
	Rows        []model.Row `json:"rows"`
	Summary     string      `json:"summary"`
	HasAnyEmail bool        `json:"has_any_email"`
}

// ApplyFilter derives the displayed subset. With emailsOnly set, only rows
// with a non-blank contact email are kept; the summary then reports both
// the narrowed count and the full unfiltered total.
func ApplyFilter(state *State, emailsOnly bool) View {
	rows := state.Rows
	if emailsOnly {
		filtered := make([]model.Row, 0, len(rows))
		for _, r := range rows {
			if r.HasEmail() {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	hasAny := false
	for _, r := range state.Rows {
		if r.HasEmail() {
			hasAny = true
			break
		}
	}

	total := len(state.Rows)
	summary := fmt.Sprintf("Found %d %s within %s km of %s (%s).",
		total, plural(total, "school", "schools"),
		formatRadius(state.RadiusKm), state.Center.Label, sectorLabel(state.Sector))
	if emailsOnly {
		summary += fmt.Sprintf(" %d of %d have an email.", len(rows), total)
	}

	return View{
		Rows:        rows,
		Summary:     summary,
		HasAnyEmail: hasAny,
	}
}

func sectorLabel(sector string) string {
	if sector == model.SectorAll {
		return "all sectors"
	}
	return sector + " sector"
}

func formatRadius(radiusKm float64) string {
	return strconv.FormatFloat(radiusKm, 'f', -1, 64)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
