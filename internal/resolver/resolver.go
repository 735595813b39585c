// Package resolver turns a raw location query into a coordinate and a
// display label, using the fixed postcode and suburb centroid tables.
package resolver

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/openschools-au/schoolsearch-cli/internal/dataset"
)

// User-input resolution errors. Callers match them with eris.Is.
var (
	ErrEmptyQuery         = eris.New("location query is required")
	ErrUnknownPostcode    = eris.New("unknown postcode")
	ErrUnresolvedLocation = eris.New("unresolved location")
)

var postcodeRe = regexp.MustCompile(`^\d{4}$`)

// Center is a resolved search center.
type Center struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// Resolve maps a raw query to a Center in strict priority order: a
// well-formed four-digit postcode is looked up by exact key and never falls
// through to suburb matching; otherwise suburbs are scanned in table order,
// exact case-insensitive matches before substring matches.
func Resolve(rawQuery string, t *dataset.Tables) (Center, error) {
	text := strings.TrimSpace(rawQuery)
	if text == "" {
		return Center{}, ErrEmptyQuery
	}

	if postcodeRe.MatchString(text) {
		c, ok := t.Postcodes[text]
		if !ok {
			return Center{}, eris.Wrapf(ErrUnknownPostcode,
				"no %s coordinate found for postcode %q", t.RegionName, text)
		}
		return Center{Lat: c.Lat, Lon: c.Lon, Label: "Postcode " + text}, nil
	}

	key := strings.ToLower(text)
	for _, s := range t.Suburbs {
		if strings.ToLower(s.Suburb) == key {
			return Center{Lat: s.Lat, Lon: s.Lon, Label: "Suburb " + s.Suburb}, nil
		}
	}
	for _, s := range t.Suburbs {
		if strings.Contains(strings.ToLower(s.Suburb), key) {
			return Center{Lat: s.Lat, Lon: s.Lon, Label: "Suburb " + s.Suburb}, nil
		}
	}

	return Center{}, eris.Wrapf(ErrUnresolvedLocation,
		"could not resolve location %q to %s coordinates", rawQuery, t.RegionName)
}
