package resolver

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openschools-au/schoolsearch-cli/internal/dataset"
	"github.com/openschools-au/schoolsearch-cli/internal/model"
)

func testTables() *dataset.Tables {
	return &dataset.Tables{
		Postcodes: map[string]model.Coordinate{
			"2000": {Lat: -33.86, Lon: 151.21},
			"2042": {Lat: -33.90, Lon: 151.18},
		},
		Suburbs: []dataset.SuburbCentroid{
			{Suburb: "Springfield", Lat: -33.50, Lon: 151.00},
			{Suburb: "West Springfield", Lat: -33.60, Lon: 151.10},
			{Suburb: "Newtown", Lat: -33.90, Lon: 151.18},
		},
		RegionCode: "nsw",
		RegionName: "New South Wales",
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := Resolve(q, testTables())
		assert.True(t, eris.Is(err, ErrEmptyQuery), "query %q", q)
	}
}

func TestResolve_PostcodeHit(t *testing.T) {
	c, err := Resolve(" 2000 ", testTables())
	require.NoError(t, err)
	assert.InDelta(t, -33.86, c.Lat, 0.001)
	assert.InDelta(t, 151.21, c.Lon, 0.001)
	assert.Equal(t, "Postcode 2000", c.Label)
}

func TestResolve_PostcodeMissNeverFallsThrough(t *testing.T) {
	tables := testTables()
	// A suburb whose name contains the digits must not rescue a bad postcode.
	tables.Suburbs = append(tables.Suburbs, dataset.SuburbCentroid{Suburb: "Area 9999 Estate", Lat: -33, Lon: 151})

	_, err := Resolve("9999", tables)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownPostcode))
	assert.False(t, eris.Is(err, ErrUnresolvedLocation))
	assert.Contains(t, err.Error(), "9999")
	assert.Contains(t, err.Error(), "New South Wales")
}

func TestResolve_ExactSuburbBeatsSubstring(t *testing.T) {
	// "springfield" is a substring of "West Springfield" (earlier in scan for
	// substring pass would not matter: exact pass runs first).
	c, err := Resolve("springfield", testTables())
	require.NoError(t, err)
	assert.Equal(t, "Suburb Springfield", c.Label)
	assert.InDelta(t, -33.50, c.Lat, 0.001)
}

func TestResolve_SubstringMatchFirstInTableOrder(t *testing.T) {
	c, err := Resolve("spring", testTables())
	require.NoError(t, err)
	// No exact match; the first table entry containing "spring" wins.
	assert.Equal(t, "Suburb Springfield", c.Label)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	c, err := Resolve("NEWTOWN", testTables())
	require.NoError(t, err)
	assert.Equal(t, "Suburb Newtown", c.Label)
}

func TestResolve_Unresolved(t *testing.T) {
	_, err := Resolve("Atlantis", testTables())
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnresolvedLocation))
	assert.Contains(t, err.Error(), `"Atlantis"`)
	assert.Contains(t, err.Error(), "New South Wales")
}

func TestResolve_FiveDigitsIsNotAPostcode(t *testing.T) {
	_, err := Resolve("20000", testTables())
	require.Error(t, err)
	// Five digits is treated as a place-name query, which resolves nothing.
	assert.True(t, eris.Is(err, ErrUnresolvedLocation))
}
