// Package geo holds the small set of geometric helpers the routing
// engine needs: great-circle distance, compass bearing and the
// walking-directions text that's rendered from them.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusM = 6371000

// Haversine returns the great-circle distance between two decimal
// degree coordinates, in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := lat2Rad - lat1Rad
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// BearingCompass buckets the bearing from (fromLat,fromLon) to
// (toLat,toLon) into one of the eight German compass labels. Note
// that the angle is computed as atan2(Δlon, Δlat), not the more usual
// atan2(Δlat, Δlon) — this matches the source and yields the
// conventional "0° = north" reading when coordinates are treated as
// planar over short distances.
func BearingCompass(fromLat, fromLon, toLat, toLon float64) string {
	deltaLat := toLat - fromLat
	deltaLon := toLon - fromLon

	angle := math.Atan2(deltaLon, deltaLat) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle >= 337.5 || angle < 22.5:
		return "Norden"
	case angle < 67.5:
		return "Nordosten"
	case angle < 112.5:
		return "Osten"
	case angle < 157.5:
		return "Südosten"
	case angle < 202.5:
		return "Süden"
	case angle < 247.5:
		return "Südwesten"
	case angle < 292.5:
		return "Westen"
	default:
		return "Nordwesten"
	}
}

// WalkingDirections renders the two-line German directive used
// throughout the CLI and journey reconstruction: distance rounded to
// the nearest meter, and walking time in whole minutes at speedMS.
func WalkingDirections(fromLat, fromLon, toLat, toLon, speedMS float64) []string {
	distance := Haversine(fromLat, fromLon, toLat, toLon)
	compass := BearingCompass(fromLat, fromLon, toLat, toLon)
	minutes := int(distance / speedMS / 60)

	return []string{
		fmt.Sprintf("Gehen Sie %.0fm in Richtung %s", distance, compass),
		fmt.Sprintf("Gehzeit: ca. %d Minuten", minutes),
	}
}
