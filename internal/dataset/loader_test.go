package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openschools-au/schoolsearch-cli/internal/config"
	"github.com/openschools-au/schoolsearch-cli/internal/fetcher"
)

func writeFixtures(t *testing.T, schools, postcodes, suburbs string) config.DatasetConfig {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	return config.DatasetConfig{
		SchoolsSource:   write("schools.min.json", schools),
		PostcodesSource: write("postcode_centroids.min.json", postcodes),
		SuburbsSource:   write("suburb_centroids.min.json", suburbs),
		RegionCode:      "nsw",
		RegionName:      "New South Wales",
	}
}

func TestLoad(t *testing.T) {
	cfg := writeFixtures(t,
		`[
			{"sector":"Government","school_name":" Newtown Public School ","suburb":"NEWTOWN","postcode":"42","phone":"","public_email":" office@school.example ","contact_form_url":"","website_url":"","lat":-33.9,"lon":151.18},
			{"sector":"independent","school_name":"No Coordinates College","suburb":"Nowhere","postcode":"2000","lat":0,"lon":0}
		]`,
		`{"2042":{"lat":-33.9,"lon":151.18},"2000":{"lat":-33.86,"lon":151.21}}`,
		`[{"suburb":"Newtown","lat":-33.9,"lon":151.18},{"suburb":"WEST PENNANT HILLS","lat":-33.74,"lon":151.04}]`,
	)

	tables, err := Load(context.Background(), fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), cfg)
	require.NoError(t, err)

	require.Len(t, tables.Schools, 2)
	s := tables.Schools[0]
	assert.Equal(t, "government", s.Sector)
	assert.Equal(t, "Newtown Public School", s.Name)
	assert.Equal(t, "Newtown", s.Suburb)
	assert.Equal(t, "0042", s.Postcode)
	assert.Equal(t, "office@school.example", s.Email)

	assert.Len(t, tables.Postcodes, 2)
	assert.InDelta(t, -33.86, tables.Postcodes["2000"].Lat, 0.001)

	require.Len(t, tables.Suburbs, 2)
	assert.Equal(t, "Newtown", tables.Suburbs[0].Suburb)
	assert.Equal(t, "West Pennant Hills", tables.Suburbs[1].Suburb)

	assert.Equal(t, "nsw", tables.RegionCode)
	assert.Equal(t, "New South Wales", tables.RegionName)
}

func TestLoad_PreservesSuburbOrder(t *testing.T) {
	cfg := writeFixtures(t,
		`[]`,
		`{}`,
		`[{"suburb":"Springfield","lat":-33.5,"lon":151.0},{"suburb":"West Springfield","lat":-33.6,"lon":151.1},{"suburb":"Springfield Lakes","lat":-33.7,"lon":151.2}]`,
	)

	tables, err := Load(context.Background(), fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), cfg)
	require.NoError(t, err)

	names := make([]string, 0, len(tables.Suburbs))
	for _, s := range tables.Suburbs {
		names = append(names, s.Suburb)
	}
	assert.Equal(t, []string{"Springfield", "West Springfield", "Springfield Lakes"}, names)
}

func TestLoad_MissingFileAbortsEverything(t *testing.T) {
	cfg := writeFixtures(t, `[]`, `{}`, `[]`)
	cfg.PostcodesSource = filepath.Join(t.TempDir(), "missing.json")

	tables, err := Load(context.Background(), fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), cfg)
	require.Error(t, err)
	assert.Nil(t, tables)
	assert.Contains(t, err.Error(), "dataset: load")
}

func TestLoad_MalformedDocument(t *testing.T) {
	cfg := writeFixtures(t, `{"not":"an array"}`, `{}`, `[]`)

	tables, err := Load(context.Background(), fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), cfg)
	require.Error(t, err)
	assert.Nil(t, tables)
}

func TestNormalizePostcode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2000", "2000"},
		{" 2042 ", "2042"},
		{"42", "0042"},
		{"NSW 2000", "2000"},
		{"02000", "2000"},
		{"", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePostcode(tt.in))
		})
	}
}
