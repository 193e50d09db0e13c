// Package resolver turns a user-typed location — a stop name or a
// street address — into the stop IDs and/or walking anchor the router
// needs to start or end a search (C4 of SPEC_FULL.md).
package resolver

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"karlsruhe.dev/transit/config"
	"karlsruhe.dev/transit/geo"
	"karlsruhe.dev/transit/graph"
	"karlsruhe.dev/transit/gtfs"
	"karlsruhe.dev/transit/model"
	"karlsruhe.dev/transit/station"
)

// ErrUnresolvedLocation is returned when an input matches neither a
// stop name nor a known address.
var ErrUnresolvedLocation = errors.New("location could not be resolved to a stop or address")

// Resolver looks up stops by name or proximity and addresses by
// street name, using the loaded GTFS tables, the station hierarchy,
// and (optionally) an address table.
type Resolver struct {
	tables    *gtfs.Tables
	hierarchy *station.Hierarchy
	addresses *Addresses
	cfg       *config.Config
}

// New builds a Resolver. addresses may be nil when no address CSV was
// configured, in which case address fallback is skipped.
func New(tables *gtfs.Tables, hierarchy *station.Hierarchy, addresses *Addresses, cfg *config.Config) *Resolver {
	return &Resolver{tables: tables, hierarchy: hierarchy, addresses: addresses, cfg: cfg}
}

// FindStopsByName matches stop names case-insensitively: an exact
// match wins; absent that, every stop whose name contains the query
// is returned.
func (r *Resolver) FindStopsByName(name string) []model.Stop {
	needle := strings.ToLower(name)

	var exact []model.Stop
	for _, s := range r.tables.Stops {
		if strings.ToLower(s.Name) == needle {
			exact = append(exact, s)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var contains []model.Stop
	for _, s := range r.tables.Stops {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			contains = append(contains, s)
		}
	}
	return contains
}

// NearestStops returns up to cfg.MaxResults stops within
// cfg.MaxWalkingDistanceM of (lat, lon), nearest first.
func (r *Resolver) NearestStops(lat, lon float64) []model.NearbyStop {
	var nearby []model.NearbyStop

	for _, s := range r.tables.Stops {
		if !s.HasCoordinates() {
			continue
		}
		dist := geo.Haversine(lat, lon, s.Lat, s.Lon)
		if dist > r.cfg.MaxWalkingDistanceM {
			continue
		}
		nearby = append(nearby, model.NearbyStop{
			Stop:             s,
			WalkingDistanceM: dist,
			WalkingTime:      time.Duration(dist/r.cfg.WalkingSpeedMS) * time.Second,
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].WalkingDistanceM < nearby[j].WalkingDistanceM
	})

	if len(nearby) > r.cfg.MaxResults {
		nearby = nearby[:r.cfg.MaxResults]
	}
	return nearby
}

// ResolveLocation resolves a user-typed location to the stop IDs the
// router should treat as the start (or end) of the search, plus an
// optional WalkingAnchor when the input resolved via an address
// rather than a stop. It tries stop names first, then falls back to
// the address table.
//
// When resolving via stop name, the result is filtered to stop IDs
// present in connIndex (i.e. every stop that actually appears as a
// from_stop_id somewhere in the built connection graph). This is the
// corrected form of the historical loop-variable bug noted in spec §9:
// membership is checked against the index, nothing is reassigned
// mid-loop. When none of the expanded stops is in the index, the first
// expanded stop is returned on its own.
func (r *Resolver) ResolveLocation(input string, connIndex *graph.Index) ([]model.Stop, *model.WalkingAnchor, error) {
	stops := r.FindStopsByName(input)
	if len(stops) > 0 {
		expanded := r.expandWithChildren(stops)
		valid := filterByIndexMembership(expanded, connIndex)
		if len(valid) == 0 && len(expanded) > 0 {
			valid = expanded[:1]
		}
		return valid, nil, nil
	}

	if r.addresses == nil {
		return nil, nil, ErrUnresolvedLocation
	}

	matches := r.addresses.FindAddress(input)
	if len(matches) == 0 {
		return nil, nil, ErrUnresolvedLocation
	}

	best := matches[0]
	nearby := r.NearestStops(best.Lat, best.Lon)

	stopsOut := make([]model.Stop, 0, len(nearby))
	for _, n := range nearby {
		stopsOut = append(stopsOut, n.Stop)
	}

	anchor := &model.WalkingAnchor{Lat: best.Lat, Lon: best.Lon}
	return stopsOut, anchor, nil
}

// expandWithChildren follows the original's cap of the first three
// name matches, each expanded to the first three IDs of its station
// set (the match itself counts among them, so a parent contributes at
// most two children), five results total — avoids returning an
// unbounded stop list for a generic query like "Karlsruhe Hauptbahnhof".
func (r *Resolver) expandWithChildren(stops []model.Stop) []model.Stop {
	const (
		maxNameMatches = 3
		maxChildren    = 3
		maxTotal       = 5
	)

	seen := map[string]bool{}
	var out []model.Stop

	add := func(s model.Stop) bool {
		if seen[s.ID] || len(out) >= maxTotal {
			return false
		}
		seen[s.ID] = true
		out = append(out, s)
		return true
	}

	if len(stops) > maxNameMatches {
		stops = stops[:maxNameMatches]
	}

	for _, s := range stops {
		add(s)
		childIDs := r.hierarchy.Expand(s.ID)
		if len(childIDs) > maxChildren {
			childIDs = childIDs[:maxChildren]
		}
		for _, cid := range childIDs {
			if cid == s.ID {
				continue
			}
			if child, ok := r.tables.StopsByID[cid]; ok {
				add(child)
			}
		}
	}

	return out
}

func filterByIndexMembership(stops []model.Stop, connIndex *graph.Index) []model.Stop {
	if connIndex == nil {
		return stops
	}
	var valid []model.Stop
	for _, s := range stops {
		if _, ok := connIndex.ByFromStop[s.ID]; ok {
			valid = append(valid, s)
		}
	}
	return valid
}
