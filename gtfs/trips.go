package gtfs

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"karlsruhe.dev/transit/model"
)

type tripCSV struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
}

func parseTrips(r io.Reader) ([]model.Trip, error) {
	rows := []*tripCSV{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling trips.txt: %w", err)
	}

	trips := make([]model.Trip, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" || row.RouteID == "" {
			continue
		}
		trips = append(trips, model.Trip{
			ID:        row.ID,
			RouteID:   row.RouteID,
			ServiceID: row.ServiceID,
			Headsign:  row.Headsign,
		})
	}

	return trips, nil
}
