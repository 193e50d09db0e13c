// Package directions renders the two-line walking directive attached
// to a walking Segment (C8 of SPEC_FULL.md, a thin collaborator over
// geo's bearing/distance math).
package directions

import "karlsruhe.dev/transit/geo"

// Render returns the German walking directive ("Gehen Sie ... in
// Richtung ...", "Gehzeit: ca. ... Minuten") for a walk between two
// coordinates at the given speed.
func Render(fromLat, fromLon, toLat, toLon, speedMS float64) []string {
	return geo.WalkingDirections(fromLat, fromLon, toLat, toLon, speedMS)
}
