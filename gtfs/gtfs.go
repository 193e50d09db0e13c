// Package gtfs loads the GTFS CSV tables (C2 of SPEC_FULL.md) into
// typed in-memory structures. Coordinates, route types, stop
// sequences, weekday flags and stop times are parsed at load time.
package gtfs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"karlsruhe.dev/transit/model"
)

// Tables holds every GTFS table loaded from a feed directory, plus
// the indices downstream components need for O(1) lookup.
type Tables struct {
	Stops         []model.Stop
	Routes        []model.Route
	Trips         []model.Trip
	StopTimes     []model.StopTime
	Calendar      []model.Calendar
	CalendarDates []model.CalendarDate

	StopsByID  map[string]model.Stop
	RoutesByID map[string]model.Route
	TripsByID  map[string]model.Trip
}

// mandatory files, in load order. calendar_dates.txt is optional and
// handled separately.
var mandatoryFiles = []string{
	"stops.txt",
	"routes.txt",
	"trips.txt",
	"stop_times.txt",
	"calendar.txt",
}

// LoadTables reads the five mandatory GTFS files and the optional
// calendar_dates.txt from dir. A missing mandatory file fails
// initialization with ErrMissingGTFSFile; this is non-recoverable for
// the process per spec.md §7.
func LoadTables(dir string) (*Tables, error) {
	for _, name := range mandatoryFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return nil, missingFileError(name)
		}
	}

	stops, err := parseFile(dir, "stops.txt", parseStops)
	if err != nil {
		return nil, errors.Wrap(err, "parsing stops.txt")
	}

	routes, err := parseFile(dir, "routes.txt", parseRoutes)
	if err != nil {
		return nil, errors.Wrap(err, "parsing routes.txt")
	}

	trips, err := parseFile(dir, "trips.txt", parseTrips)
	if err != nil {
		return nil, errors.Wrap(err, "parsing trips.txt")
	}

	stopTimes, err := parseFile(dir, "stop_times.txt", parseStopTimes)
	if err != nil {
		return nil, errors.Wrap(err, "parsing stop_times.txt")
	}

	calendar, err := parseFile(dir, "calendar.txt", parseCalendar)
	if err != nil {
		return nil, errors.Wrap(err, "parsing calendar.txt")
	}

	var calendarDates []model.CalendarDate
	if _, statErr := os.Stat(filepath.Join(dir, "calendar_dates.txt")); statErr == nil {
		calendarDates, err = parseFile(dir, "calendar_dates.txt", parseCalendarDates)
		if err != nil {
			return nil, errors.Wrap(err, "parsing calendar_dates.txt")
		}
	}

	tables := &Tables{
		Stops:         stops,
		Routes:        routes,
		Trips:         trips,
		StopTimes:     stopTimes,
		Calendar:      calendar,
		CalendarDates: calendarDates,
		StopsByID:     map[string]model.Stop{},
		RoutesByID:    map[string]model.Route{},
		TripsByID:     map[string]model.Trip{},
	}
	for _, s := range stops {
		tables.StopsByID[s.ID] = s
	}
	for _, r := range routes {
		tables.RoutesByID[r.ID] = r
	}
	for _, t := range trips {
		tables.TripsByID[t.ID] = t
	}

	return tables, nil
}

// parseFile opens name under dir, strips a leading BOM (gocsv chokes
// on one, as the teacher's parse.ParseStatic notes), and hands the
// result to parse. The file is always closed before returning.
func parseFile[T any](dir, name string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return zero, err
	}
	defer f.Close()

	return parse(bom.NewReader(f))
}
