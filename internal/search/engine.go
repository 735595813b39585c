// Package search runs radius searches over the loaded dataset and derives
// the views consumed by the table, export, and email actions.
package search

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openschools-au/schoolsearch-cli/internal/dataset"
	"github.com/openschools-au/schoolsearch-cli/internal/geo"
	"github.com/openschools-au/schoolsearch-cli/internal/model"
	"github.com/openschools-au/schoolsearch-cli/internal/resolver"
)

// ErrInvalidRadius rejects NaN, infinite, and negative radii up front
// instead of letting them silently match zero rows.
var ErrInvalidRadius = eris.New("radius must be a finite, non-negative number")

// Query is one user-initiated search request.
type Query struct {
	Location string  `json:"location"`
	RadiusKm float64 `json:"radius_km"`
	Sector   string  `json:"sector"`
}

// State is the outcome of the last successful search: the resolved center,
// the parameters, and the unfiltered result rows. Views are always derived
// from it so the table, counts, copy action, and exports cannot disagree.
type State struct {
	Center   resolver.Center `json:"center"`
	RadiusKm float64         `json:"radius_km"`
	Sector   string          `json:"sector"`
	Rows     []model.Row     `json:"rows"`
}

// FlavourFunc optionally supplies a decorative regional note for a resolved
// label. It is consulted only after a successful search and may be nil.
type FlavourFunc func(label, regionCode string) string

// Result pairs the new search state with the optional flavour note.
type Result struct {
	State *State `json:"state"`
	Note  string `json:"note,omitempty"`
}

// Session owns the immutable dataset tables and the mutable last-search
// state. Safe for concurrent use.
type Session struct {
	tables     *dataset.Tables
	flavour    FlavourFunc
	maxResults int

	mu    sync.Mutex
	state *State
}

// Option configures a Session.
type Option func(*Session)

// WithFlavour attaches a regional flavour provider.
func WithFlavour(f FlavourFunc) Option {
	return func(s *Session) { s.flavour = f }
}

// WithMaxResults caps the number of rows a search returns. Zero means no cap.
func WithMaxResults(n int) Option {
	return func(s *Session) { s.maxResults = n }
}

// NewSession creates a Session over loaded dataset tables.
func NewSession(tables *dataset.Tables, opts ...Option) *Session {
	s := &Session{tables: tables}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the dataset tables backing this session.
func (s *Session) Tables() *dataset.Tables {
	return s.tables
}

// State returns the last successful search state, or nil if the most recent
// search failed or none has run.
func (s *Session) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Search runs the full pipeline: validate radius, resolve the location,
// filter by sector and distance, sort, and materialize rounded distances.
// The session state is cleared first and repopulated only on success, so a
// failed search never leaves partial rows visible.
func (s *Session) Search(q Query) (*Result, error) {
	s.mu.Lock()
	s.state = nil
	s.mu.Unlock()

	if math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm < 0 {
		return nil, ErrInvalidRadius
	}

	center, err := resolver.Resolve(q.Location, s.tables)
	if err != nil {
		return nil, err
	}

	sector := strings.ToLower(strings.TrimSpace(q.Sector))
	if sector == "" {
		sector = model.SectorAll
	}

	rows := make([]model.Row, 0)
	for _, school := range s.tables.Schools {
		if sector != model.SectorAll && !strings.EqualFold(school.Sector, sector) {
			continue
		}
		d := geo.DistanceKm(center.Lat, center.Lon, school.Lat, school.Lon)
		if d <= q.RadiusKm {
			rows = append(rows, model.Row{School: school, DistanceKm: d})
		}
	}

	// Stable sort keeps dataset order for equal distances, which fixes the
	// table and CSV ordering across identical searches.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DistanceKm < rows[j].DistanceKm
	})

	if s.maxResults > 0 && len(rows) > s.maxResults {
		rows = rows[:s.maxResults]
	}

	// Round once, at materialization time, so re-filtering a view never
	// compounds rounding error.
	for i := range rows {
		rows[i].DistanceKm = math.Round(rows[i].DistanceKm*100) / 100
	}

	state := &State{
		Center:   center,
		RadiusKm: q.RadiusKm,
		Sector:   sector,
		Rows:     rows,
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	result := &Result{State: state}
	if s.flavour != nil {
		result.Note = s.flavour(center.Label, s.tables.RegionCode)
	}

	zap.L().Debug("search complete",
		zap.String("label", center.Label),
		zap.Float64("radius_km", q.RadiusKm),
		zap.String("sector", sector),
		zap.Int("rows", len(rows)),
	)

	return result, nil
}

// IsUserInputError reports whether err stems from invalid user input rather
// than a dataset or infrastructure failure. User-input errors are
// recoverable: the caller surfaces the message and waits for a new search.
func IsUserInputError(err error) bool {
	return eris.Is(err, ErrInvalidRadius) ||
		eris.Is(err, resolver.ErrEmptyQuery) ||
		eris.Is(err, resolver.ErrUnknownPostcode) ||
		eris.Is(err, resolver.ErrUnresolvedLocation)
}
