package gtfs

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"karlsruhe.dev/transit/model"
)

type stopCSV struct {
	ID            string  `csv:"stop_id"`
	Name          string  `csv:"stop_name"`
	Lat           float64 `csv:"stop_lat"`
	Lon           float64 `csv:"stop_lon"`
	ParentStation string  `csv:"parent_station"`
}

// parseStops unmarshals stops.txt. A stop referencing an unknown
// parent_station is logged and kept with its parent link cleared,
// rather than failing the whole load.
func parseStops(r io.Reader) ([]model.Stop, error) {
	rows := []*stopCSV{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling stops.txt: %w", err)
	}

	known := map[string]bool{}
	for _, row := range rows {
		known[row.ID] = true
	}

	stops := make([]model.Stop, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			continue
		}
		if row.ParentStation != "" && !known[row.ParentStation] {
			fmt.Printf("gtfs: stop %q references unknown parent_station %q, dropping parent link\n", row.ID, row.ParentStation)
			row.ParentStation = ""
		}

		stops = append(stops, model.Stop{
			ID:            row.ID,
			Name:          row.Name,
			Lat:           row.Lat,
			Lon:           row.Lon,
			ParentStation: row.ParentStation,
		})
	}

	return stops, nil
}
