package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	// One degree of longitude on the equator.
	d := DistanceKm(0, 0, 0, 1)
	assert.InDelta(t, 111.19, d, 0.1)

	// Sydney CBD to Parramatta.
	d = DistanceKm(-33.8688, 151.2093, -33.8150, 151.0010)
	assert.InDelta(t, 20.0, d, 1.0)
}

func TestDistanceKm_SamePoint(t *testing.T) {
	assert.InDelta(t, 0, DistanceKm(-33.87, 151.21, -33.87, 151.21), 0.0001)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := DistanceKm(-33.8688, 151.2093, -32.9283, 151.7817)
	b := DistanceKm(-32.9283, 151.7817, -33.8688, 151.2093)
	assert.InDelta(t, a, b, 1e-9)
}
