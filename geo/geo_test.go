package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	for _, tc := range []struct {
		name                 string
		aLat, aLon, bLat, bLon float64
		wantM                float64
		tolerance            float64
	}{
		{"same point", 49.0069, 8.4037, 49.0069, 8.4037, 0, 0.01},
		// Karlsruhe Marktplatz to roughly 1km north, eyeballed.
		{"north-south ~1km", 49.0069, 8.4037, 49.0159, 8.4037, 1000, 50},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Haversine(tc.aLat, tc.aLon, tc.bLat, tc.bLon)
			assert.GreaterOrEqual(t, got, float64(0))
			assert.InDelta(t, tc.wantM, got, tc.tolerance)
		})
	}
}

func TestBearingCompass(t *testing.T) {
	for _, tc := range []struct {
		name                   string
		fromLat, fromLon, toLat, toLon float64
		want                   string
	}{
		{"due north", 0, 0, 1, 0, "Norden"},
		{"due east", 0, 0, 0, 1, "Osten"},
		{"due south", 0, 0, -1, 0, "Süden"},
		{"due west", 0, 0, 0, -1, "Westen"},
		{"northeast", 0, 0, 1, 1, "Nordosten"},
		{"wraps at 0/360 boundary", 0, 0, 0.999, -0.01, "Norden"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := BearingCompass(tc.fromLat, tc.fromLon, tc.toLat, tc.toLon)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWalkingDirections(t *testing.T) {
	lines := WalkingDirections(0, 0, 1, 0, 1.5)
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Gehen Sie")
	assert.Contains(t, lines[0], "Norden")
	assert.Contains(t, lines[1], "Gehzeit")
}
