// Package router implements the modified Dijkstra search over the
// time-expanded connection graph (C7 of SPEC_FULL.md) and reconstructs
// ranked itineraries from the resulting paths.
package router

import (
	"container/heap"
	"sort"
	"strings"
	"time"

	"karlsruhe.dev/transit/config"
	"karlsruhe.dev/transit/directions"
	"karlsruhe.dev/transit/geo"
	"karlsruhe.dev/transit/graph"
	"karlsruhe.dev/transit/gtfs"
	"karlsruhe.dev/transit/model"
	"karlsruhe.dev/transit/resolver"
)

const transferPenaltyPerMinute = time.Minute

var fallbackOffsets = []time.Duration{0, -15 * time.Minute, 15 * time.Minute, 30 * time.Minute}

// Router answers journey queries against a built connection Index.
type Router struct {
	index    *graph.Index
	resolver *resolver.Resolver
	tables   *gtfs.Tables
	cfg      *config.Config
}

func New(index *graph.Index, res *resolver.Resolver, tables *gtfs.Tables, cfg *config.Config) *Router {
	return &Router{index: index, resolver: res, tables: tables, cfg: cfg}
}

// FindRoutes resolves origin and destination, then searches every
// resolved (start stop, end stop) pair — trying the requested
// departure time first and, failing that, the -15/+15/+30 minute
// fallback offsets — returning the first non-empty, sorted, k-journey
// result. Returns (nil, nil) rather than an error when nothing is
// found; an error is only returned when a location cannot be resolved
// at all.
func (r *Router) FindRoutes(origin, destination string, departureTime time.Duration, mode model.TransportMode, k int) ([]model.Journey, error) {
	originStops, originAnchor, err := r.resolver.ResolveLocation(origin, r.index)
	if err != nil {
		return nil, err
	}
	destStops, destAnchor, err := r.resolver.ResolveLocation(destination, r.index)
	if err != nil {
		return nil, err
	}
	if len(originStops) == 0 || len(destStops) == 0 {
		return nil, nil
	}

	// Marktplatz is ambiguous between two nearby platforms; prefer
	// Kaiserstraße over Pyramide for that one station, per spec.
	if strings.Contains(strings.ToLower(destination), "marktplatz") {
		preferKaiserstrasse(destStops)
	}

	for _, start := range originStops {
		for _, end := range destStops {
			for _, offset := range fallbackOffsets {
				adjusted := departureTime + offset
				if adjusted < 0 {
					continue
				}

				paths := r.search(start.ID, end.ID, adjusted, mode)
				if len(paths) == 0 {
					continue
				}

				journeys := make([]model.Journey, 0, len(paths))
				for _, p := range paths {
					journeys = append(journeys, r.buildJourney(p.path, adjusted, p.arrival, start.ID, end.ID, originAnchor, destAnchor))
				}
				sortJourneys(journeys)
				if len(journeys) > k {
					journeys = journeys[:k]
				}
				return journeys, nil
			}
		}
	}

	return nil, nil
}

type foundPath struct {
	path    []model.Connection
	arrival time.Duration
}

// search runs the modified Dijkstra from originID to destID starting
// at departureTime, returning every path recorded when destID was
// popped (up to 3), honoring the transfer cap and iteration bound.
func (r *Router) search(originID, destID string, departureTime time.Duration, mode model.TransportMode) []foundPath {
	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &queueItem{stopID: originID, currentTime: departureTime})

	visited := map[string]time.Duration{}
	var results []foundPath
	seq := 1
	iterations := 0

	for pq.Len() > 0 && len(results) < 3 && iterations < r.cfg.MaxIterations {
		iterations++
		item := heap.Pop(pq).(*queueItem)

		if item.stopID == destID {
			results = append(results, foundPath{path: item.path, arrival: item.currentTime})
			continue
		}

		if best, ok := visited[item.stopID]; ok && best <= item.currentTime {
			continue
		}
		visited[item.stopID] = item.currentTime

		if item.transfers >= 3 {
			continue
		}

		for _, edge := range r.index.ByFromStop[item.stopID] {
			if !edgeAllowed(edge, mode, r.cfg) {
				continue
			}

			var depTime, arrTime time.Duration
			if edge.IsWalking {
				depTime = item.currentTime
				arrTime = item.currentTime + edge.WalkingDuration
				if arrTime <= item.currentTime {
					continue
				}
			} else {
				if edge.Departure < item.currentTime {
					continue
				}
				depTime, arrTime = edge.Departure, edge.Arrival
				if arrTime <= depTime {
					continue
				}
			}

			newTransfers := item.transfers
			if item.lastRouteID != "" && item.lastRouteID != edge.RouteID {
				if depTime-item.currentTime < r.cfg.TransferTime {
					continue
				}
				newTransfers++
			}

			if arrTime-departureTime <= 0 {
				continue
			}

			if best, ok := visited[edge.ToStopID]; ok && best <= arrTime {
				continue
			}

			materialized := edge
			materialized.Departure = depTime
			materialized.Arrival = arrTime

			newPath := make([]model.Connection, len(item.path), len(item.path)+1)
			copy(newPath, item.path)
			newPath = append(newPath, materialized)

			priority := (arrTime - departureTime) + time.Duration(newTransfers)*transferPenaltyPerMinute

			heap.Push(pq, &queueItem{
				priorityKey: priority,
				transfers:   newTransfers,
				seq:         seq,
				stopID:      edge.ToStopID,
				currentTime: arrTime,
				lastRouteID: edge.RouteID,
				path:        newPath,
			})
			seq++
		}
	}

	return results
}

func edgeAllowed(edge model.Connection, mode model.TransportMode, cfg *config.Config) bool {
	if edge.IsWalking || mode == model.TransportModeAll {
		return true
	}
	switch cfg.Category(int(edge.RouteType)) {
	case "rail", "subway", "tram":
		return true
	default:
		return false
	}
}

func preferKaiserstrasse(stops []model.Stop) {
	sort.SliceStable(stops, func(i, j int) bool {
		iPref := strings.Contains(strings.ToLower(stops[i].Name), "kaiserstraße")
		jPref := strings.Contains(strings.ToLower(stops[j].Name), "kaiserstraße")
		return iPref && !jPref
	})
}

func sortJourneys(journeys []model.Journey) {
	sort.SliceStable(journeys, func(i, j int) bool {
		a, b := journeys[i], journeys[j]
		if a.Transfers != b.Transfers {
			return a.Transfers < b.Transfers
		}
		if a.TotalDuration != b.TotalDuration {
			return a.TotalDuration < b.TotalDuration
		}
		return firstSegmentPriority(a) < firstSegmentPriority(b)
	})
}

func firstSegmentPriority(j model.Journey) int {
	if len(j.Segments) == 0 {
		return 0
	}
	return j.Segments[0].Priority
}

// buildJourney merges consecutive same-route_id connections into
// transit segments and prepends/appends walking legs for any
// WalkingAnchor carried by the resolved origin/destination. An empty
// path means origin and destination resolved to the same stop; that
// collapses to a single zero-duration "already at destination" leg
// when a walking anchor is present (an address was resolved down to
// that stop), per spec.md §8, and to an empty, zero-duration journey
// otherwise.
func (r *Router) buildJourney(path []model.Connection, departureTime, arrivalTime time.Duration, originStopID, destStopID string, originAnchor, destAnchor *model.WalkingAnchor) model.Journey {
	if len(path) == 0 {
		return r.buildSameLocationJourney(departureTime, arrivalTime, originStopID, destStopID, originAnchor, destAnchor)
	}

	// The journey departs with its first connection, not at the time
	// the search started from.
	departureTime = path[0].Departure

	var segments []model.Segment
	var totalWalkDist float64

	if originAnchor != nil {
		first := r.tables.StopsByID[path[0].FromStopID]
		dist := geo.Haversine(originAnchor.Lat, originAnchor.Lon, first.Lat, first.Lon)
		segments = append(segments, model.Segment{
			Mode:              model.SegmentWalking,
			ToStopID:          first.ID,
			ToStopName:        first.Name,
			WalkingDirections: directions.Render(originAnchor.Lat, originAnchor.Lon, first.Lat, first.Lon, r.cfg.WalkingSpeedMS),
			WalkingDistanceM:  dist,
		})
		totalWalkDist += dist
	}

	i := 0
	for i < len(path) {
		j := i + 1
		for j < len(path) && path[j].RouteID == path[i].RouteID {
			j++
		}
		run := path[i:j]
		first, last := run[0], run[len(run)-1]
		fromStop := r.tables.StopsByID[first.FromStopID]
		toStop := r.tables.StopsByID[last.ToStopID]

		if first.RouteID == model.WalkRouteID {
			dist := geo.Haversine(fromStop.Lat, fromStop.Lon, toStop.Lat, toStop.Lon)
			segments = append(segments, model.Segment{
				Mode:              model.SegmentWalking,
				FromStopID:        fromStop.ID,
				ToStopID:          toStop.ID,
				FromStopName:      fromStop.Name,
				ToStopName:        toStop.Name,
				Departure:         first.Departure,
				Arrival:           last.Arrival,
				WalkingDirections: directions.Render(fromStop.Lat, fromStop.Lon, toStop.Lat, toStop.Lon, r.cfg.WalkingSpeedMS),
				WalkingDistanceM:  dist,
				Priority:          first.Priority,
			})
			totalWalkDist += dist
		} else {
			name := first.RouteShortName
			if name == "" {
				name = first.RouteLongName
			}
			segments = append(segments, model.Segment{
				Mode:           model.SegmentTransit,
				FromStopID:     fromStop.ID,
				ToStopID:       toStop.ID,
				FromStopName:   fromStop.Name,
				ToStopName:     toStop.Name,
				Departure:      first.Departure,
				Arrival:        last.Arrival,
				RouteName:      name,
				RouteDirection: first.Headsign,
				Priority:       first.Priority,
			})
		}

		i = j
	}

	if destAnchor != nil {
		last := r.tables.StopsByID[path[len(path)-1].ToStopID]
		dist := geo.Haversine(last.Lat, last.Lon, destAnchor.Lat, destAnchor.Lon)
		segments = append(segments, model.Segment{
			Mode:              model.SegmentWalking,
			FromStopID:        last.ID,
			FromStopName:      last.Name,
			WalkingDirections: directions.Render(last.Lat, last.Lon, destAnchor.Lat, destAnchor.Lon, r.cfg.WalkingSpeedMS),
			WalkingDistanceM:  dist,
		})
		totalWalkDist += dist
	}

	transitSegments := 0
	for _, s := range segments {
		if s.Mode == model.SegmentTransit {
			transitSegments++
		}
	}
	transfers := transitSegments - 1
	if transfers < 0 {
		transfers = 0
	}

	return model.Journey{
		Segments:              segments,
		TotalDuration:         arrivalTime - departureTime,
		TotalWalkingDistanceM: totalWalkDist,
		Departure:             departureTime,
		Arrival:               arrivalTime,
		Transfers:             transfers,
	}
}

// buildSameLocationJourney handles the origin == destination case: a
// single zero-duration "already at destination" walking segment when
// an address was resolved to that stop (so there's something to walk
// from/to), otherwise a journey with no segments at all.
func (r *Router) buildSameLocationJourney(departureTime, arrivalTime time.Duration, originStopID, destStopID string, originAnchor, destAnchor *model.WalkingAnchor) model.Journey {
	var segments []model.Segment

	if originAnchor != nil || destAnchor != nil {
		stop := r.tables.StopsByID[destStopID]
		if stop.ID == "" {
			stop = r.tables.StopsByID[originStopID]
		}

		segments = append(segments, model.Segment{
			Mode:              model.SegmentWalking,
			FromStopID:        stop.ID,
			ToStopID:          stop.ID,
			FromStopName:      stop.Name,
			ToStopName:        stop.Name,
			Departure:         departureTime,
			Arrival:           arrivalTime,
			WalkingDirections: []string{"Sie sind bereits am Ziel."},
		})
	}

	return model.Journey{
		Segments:      segments,
		TotalDuration: arrivalTime - departureTime,
		Departure:     departureTime,
		Arrival:       arrivalTime,
	}
}
