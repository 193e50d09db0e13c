// Package config holds the immutable configuration threaded into the
// calendar evaluator, connection builder and router. There is no
// global singleton here: callers build a Config once at startup (see
// NewDefault) and pass it explicitly, per the redesign note in
// SPEC_FULL.md.
package config

import "time"

// Config is the set of knobs in SPEC_FULL.md §5 / spec.md §6.
type Config struct {
	// Radius for the walking overlay and nearest-stop search, in
	// meters.
	MaxWalkingDistanceM float64

	// Walking speed used for time estimates, in meters/second.
	WalkingSpeedMS float64

	// Minimum dwell time required between two connections using
	// different route_ids.
	TransferTime time.Duration

	// Category -> priority. Lower is preferred.
	TransportPriorities map[string]int

	// GTFS route_type integer -> category.
	GTFSRouteTypes map[int]string

	// Stop-ID prefix for which the walking radius is doubled when
	// both endpoints match (the Karlsruhe feed's local operator
	// prefix).
	LocalRegionPrefix string

	MaxIterations int
	MaxResults    int

	// AllowEmptyServiceFallback controls the open question from
	// spec.md §9: whether an empty active-service set for a date
	// widens to "every service in calendar.txt". Off by default —
	// an empty result is more honest than silently running
	// services on days they shouldn't run.
	AllowEmptyServiceFallback bool
}

// NewDefault returns the configuration spec.md §6 lists as defaults.
func NewDefault() *Config {
	return &Config{
		MaxWalkingDistanceM: 500,
		WalkingSpeedMS:      1.5,
		TransferTime:        60 * time.Second,
		TransportPriorities: map[string]int{
			"rail":   1,
			"subway": 1,
			"tram":   2,
			"bus":    3,
		},
		GTFSRouteTypes: map[int]string{
			0:    "tram",
			1:    "subway",
			2:    "rail",
			3:    "bus",
			100:  "rail",
			109:  "rail",
			400:  "subway",
			700:  "bus",
			900:  "tram",
			1000: "rail",
			1100: "tram",
			1200: "bus",
		},
		LocalRegionPrefix:         "de:08212:",
		MaxIterations:             10000,
		MaxResults:                3,
		AllowEmptyServiceFallback: false,
	}
}

// Category maps a GTFS route_type integer to one of the four
// categories, falling back to "bus" for unknown codes.
func (c *Config) Category(routeType int) string {
	if cat, ok := c.GTFSRouteTypes[routeType]; ok {
		return cat
	}
	return "bus"
}

// Priority returns the routing priority for a GTFS route_type,
// defaulting to the bus priority (3) when the category is unknown.
func (c *Config) Priority(routeType int) int {
	if p, ok := c.TransportPriorities[c.Category(routeType)]; ok {
		return p
	}
	return 3
}
