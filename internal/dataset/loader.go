// Package dataset loads and normalizes the three documents produced by the
// offline pipeline: school records, postcode centroids, and suburb centroids.
package dataset

import (
	"context"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openschools-au/schoolsearch-cli/internal/config"
	"github.com/openschools-au/schoolsearch-cli/internal/fetcher"
	"github.com/openschools-au/schoolsearch-cli/internal/model"
)

// SuburbCentroid is one entry of the suburb centroid table. The table's
// order is meaningful: the resolver scans it in order, so ties between
// candidate matches are broken by position.
type SuburbCentroid struct {
	Suburb string  `json:"suburb"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Tables holds the loaded dataset. After Load returns, the tables are
// immutable shared state; searches only read them.
type Tables struct {
	Schools    []model.School
	Postcodes  map[string]model.Coordinate
	Suburbs    []SuburbCentroid
	RegionCode string
	RegionName string
}

var titleCaser = cases.Title(language.English)

// Load fetches the three dataset documents concurrently. Any failure aborts
// the whole load; a partially loaded dataset is never returned.
func Load(ctx context.Context, f *fetcher.HTTPFetcher, cfg config.DatasetConfig) (*Tables, error) {
	t := &Tables{
		RegionCode: cfg.RegionCode,
		RegionName: cfg.RegionName,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := f.Open(gctx, cfg.SchoolsSource)
		if err != nil {
			return eris.Wrap(err, "fetch schools")
		}
		defer r.Close() //nolint:errcheck

		schools, err := fetcher.DecodeJSONArray[model.School](r)
		if err != nil {
			return eris.Wrap(err, "decode schools")
		}
		t.Schools = normalizeSchools(schools)
		return nil
	})

	g.Go(func() error {
		r, err := f.Open(gctx, cfg.PostcodesSource)
		if err != nil {
			return eris.Wrap(err, "fetch postcode centroids")
		}
		defer r.Close() //nolint:errcheck

		codes, err := fetcher.DecodeJSONObject[map[string]model.Coordinate](r)
		if err != nil {
			return eris.Wrap(err, "decode postcode centroids")
		}
		t.Postcodes = *codes
		return nil
	})

	g.Go(func() error {
		r, err := f.Open(gctx, cfg.SuburbsSource)
		if err != nil {
			return eris.Wrap(err, "fetch suburb centroids")
		}
		defer r.Close() //nolint:errcheck

		suburbs, err := fetcher.DecodeJSONArray[SuburbCentroid](r)
		if err != nil {
			return eris.Wrap(err, "decode suburb centroids")
		}
		t.Suburbs = normalizeSuburbs(suburbs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "dataset: load")
	}

	zap.L().Info("dataset loaded",
		zap.String("region", t.RegionCode),
		zap.Int("schools", len(t.Schools)),
		zap.Int("postcodes", len(t.Postcodes)),
		zap.Int("suburbs", len(t.Suburbs)),
	)

	return t, nil
}

// normalizeSchools trims text fields, pads postcodes, title-cases all-caps
// suburbs, and drops records without finite coordinates, mirroring the
// cleanup the offline export pipeline applies.
func normalizeSchools(in []model.School) []model.School {
	out := make([]model.School, 0, len(in))
	for _, s := range in {
		if !finite(s.Lat) || !finite(s.Lon) {
			continue
		}
		s.Sector = strings.ToLower(strings.TrimSpace(s.Sector))
		s.Name = strings.TrimSpace(s.Name)
		s.Suburb = normalizeSuburbName(s.Suburb)
		s.Postcode = NormalizePostcode(s.Postcode)
		s.Phone = strings.TrimSpace(s.Phone)
		s.Email = strings.TrimSpace(s.Email)
		s.ContactFormURL = strings.TrimSpace(s.ContactFormURL)
		s.WebsiteURL = strings.TrimSpace(s.WebsiteURL)
		out = append(out, s)
	}
	return out
}

// normalizeSuburbs cleans suburb names while preserving table order.
func normalizeSuburbs(in []SuburbCentroid) []SuburbCentroid {
	out := make([]SuburbCentroid, 0, len(in))
	for _, s := range in {
		s.Suburb = normalizeSuburbName(s.Suburb)
		if s.Suburb == "" || !finite(s.Lat) || !finite(s.Lon) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// normalizeSuburbName trims the name and title-cases it when the source
// carries it in all caps, as the NSW government exports do.
func normalizeSuburbName(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && name == strings.ToUpper(name) {
		name = titleCaser.String(strings.ToLower(name))
	}
	return name
}

// NormalizePostcode keeps only digits and left-pads to the last four,
// matching the offline pipeline's postcode cleanup.
func NormalizePostcode(raw string) string {
	var digits strings.Builder
	for _, ch := range strings.TrimSpace(raw) {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	d := digits.String()
	if d == "" {
		return ""
	}
	for len(d) < 4 {
		d = "0" + d
	}
	return d[len(d)-4:]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
