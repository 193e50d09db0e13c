// Package graph builds the time-expanded connection graph (C6 of
// SPEC_FULL.md): one edge per consecutive stop pair of every active
// trip, plus a walking overlay between nearby stops.
package graph

import (
	"fmt"
	"sort"
	"time"

	"karlsruhe.dev/transit/config"
	"karlsruhe.dev/transit/geo"
	"karlsruhe.dev/transit/gtfs"
	"karlsruhe.dev/transit/model"
)

// Index is the built connection graph: every Connection, indexed by
// its origin stop for O(1) relaxation during search.
type Index struct {
	ByFromStop map[string][]model.Connection
}

// Build constructs the connection graph for the trips whose
// service_id is in activeServices. A nil activeServices means "apply
// no service filter" (every trip's connections are built, used by
// callers that only care about the walking overlay); a non-nil,
// possibly-empty slice means "filter by this active set" — an empty
// one (no service runs on this date) yields a graph with zero transit
// connections, not an unfiltered one.
//
// Phase A expands every multi-stop trip into consecutive-stop
// connections, wrapping arrival times that cross midnight and
// discarding hops whose travel time isn't in (0, 3h] — a malformed or
// multi-day stop_times row, same sanity bound the original applies.
// Phase B indexes the result by from_stop_id. Phase C overlays
// bidirectional walking edges between every pair of coordinate-bearing
// stops within cfg.MaxWalkingDistanceM, doubling the radius when both
// stops belong to the configured local region (their stop_id shares
// cfg.LocalRegionPrefix).
func Build(tables *gtfs.Tables, activeServices []string, cfg *config.Config) (*Index, error) {
	var active map[string]bool
	if activeServices != nil {
		active = make(map[string]bool, len(activeServices))
		for _, id := range activeServices {
			active[id] = true
		}
		if len(active) == 0 {
			fmt.Println("graph: no active services for this date, building graph with zero transit connections")
		}
	}

	byTrip := groupStopTimesByTrip(tables.StopTimes)

	var connections []model.Connection
	for _, trip := range tables.Trips {
		if active != nil && !active[trip.ServiceID] {
			continue
		}

		stopTimes := byTrip[trip.ID]
		if len(stopTimes) < 2 {
			continue
		}

		route, ok := tables.RoutesByID[trip.RouteID]
		if !ok {
			route = model.Route{ID: trip.RouteID, ShortName: "N/A", Type: model.RouteTypeBus}
		}

		for i := 1; i < len(stopTimes); i++ {
			from := stopTimes[i-1]
			to := stopTimes[i]

			dep := from.Departure
			arr := to.Arrival
			if arr < dep {
				arr += 24 * time.Hour
			}

			travel := arr - dep
			if travel <= 0 || travel > 3*time.Hour {
				continue
			}

			connections = append(connections, model.Connection{
				TripID:         trip.ID,
				RouteID:        route.ID,
				RouteShortName: route.ShortName,
				RouteLongName:  route.LongName,
				RouteType:      route.Type,
				FromStopID:     from.StopID,
				ToStopID:       to.StopID,
				Departure:      dep,
				Arrival:        arr,
				Headsign:       trip.Headsign,
				Priority:       cfg.Priority(int(route.Type)),
			})
		}
	}

	idx := &Index{ByFromStop: map[string][]model.Connection{}}
	for _, c := range connections {
		idx.ByFromStop[c.FromStopID] = append(idx.ByFromStop[c.FromStopID], c)
	}

	addWalkingOverlay(idx, tables.Stops, cfg)

	return idx, nil
}

func groupStopTimesByTrip(stopTimes []model.StopTime) map[string][]model.StopTime {
	grouped := make(map[string][]model.StopTime)
	for _, st := range stopTimes {
		grouped[st.TripID] = append(grouped[st.TripID], st)
	}
	for _, v := range grouped {
		sort.Slice(v, func(i, j int) bool { return v[i].StopSequence < v[j].StopSequence })
	}
	return grouped
}

func addWalkingOverlay(idx *Index, stops []model.Stop, cfg *config.Config) {
	var valid []model.Stop
	for _, s := range stops {
		if s.HasCoordinates() {
			valid = append(valid, s)
		}
	}

	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			a, b := valid[i], valid[j]
			dist := geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)

			maxDist := cfg.MaxWalkingDistanceM
			if isLocalRegion(a.ID, cfg) && isLocalRegion(b.ID, cfg) {
				maxDist *= 2
			}
			if dist > maxDist {
				continue
			}

			walkSeconds := dist / cfg.WalkingSpeedMS
			if walkSeconds < 30 {
				walkSeconds = 30
			}
			walkDuration := time.Duration(walkSeconds) * time.Second

			for _, pair := range [][2]model.Stop{{a, b}, {b, a}} {
				from, to := pair[0], pair[1]
				idx.ByFromStop[from.ID] = append(idx.ByFromStop[from.ID], model.Connection{
					RouteID:         model.WalkRouteID,
					RouteShortName:  "Fußweg",
					RouteLongName:   fmt.Sprintf("Fußweg (%.0fm)", dist),
					RouteType:       model.RouteTypeBus,
					FromStopID:      from.ID,
					ToStopID:        to.ID,
					Departure:       0,
					Arrival:         walkDuration,
					Headsign:        fmt.Sprintf("zu %s", to.ID),
					Priority:        cfg.Priority(int(model.RouteTypeBus)),
					IsWalking:       true,
					WalkingDuration: walkDuration,
				})
			}
		}
	}
}

func isLocalRegion(stopID string, cfg *config.Config) bool {
	if cfg.LocalRegionPrefix == "" {
		return false
	}
	return len(stopID) >= len(cfg.LocalRegionPrefix) && stopID[:len(cfg.LocalRegionPrefix)] == cfg.LocalRegionPrefix
}
