// Package testutil provides fixture builders for tests across the
// routing engine, in the spirit of the teacher's testutil package:
// fill in minimal dummy content for any GTFS file the caller didn't
// specify, then parse the result.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"karlsruhe.dev/transit/gtfs"
)

// BuildTables writes files (keyed by GTFS filename, valued as a list
// of CSV lines including the header) to a temp directory, filling in
// minimal defaults for any mandatory file the caller omitted, then
// loads the result via gtfs.LoadTables.
func BuildTables(t testing.TB, files map[string][]string) *gtfs.Tables {
	t.Helper()

	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id,stop_name,stop_lat,stop_lon,parent_station"}
	}
	if files["routes.txt"] == nil {
		files["routes.txt"] = []string{"route_id,route_short_name,route_long_name,route_type"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"trip_id,route_id,service_id,trip_headsign"}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{"trip_id,stop_sequence,stop_id,arrival_time,departure_time"}
	}
	if files["calendar.txt"] == nil {
		files["calendar.txt"] = []string{"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date"}
	}

	dir := t.TempDir()
	for name, lines := range files {
		path := filepath.Join(dir, name)
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	tables, err := gtfs.LoadTables(dir)
	require.NoError(t, err)

	return tables
}

// WriteAddresses writes an address CSV (full_address,lat,lon rows,
// header included) to a temp directory and returns its path.
func WriteAddresses(t testing.TB, lines []string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "addresses.csv")
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}
