package gtfs

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"karlsruhe.dev/transit/model"
)

type routeCSV struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
}

func parseRoutes(r io.Reader) ([]model.Route, error) {
	rows := []*routeCSV{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling routes.txt: %w", err)
	}

	routes := make([]model.Route, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			continue
		}

		routeType, err := strconv.Atoi(row.Type)
		if err != nil {
			fmt.Printf("gtfs: route %q has non-numeric route_type %q, defaulting to bus\n", row.ID, row.Type)
			routeType = int(model.RouteTypeBus)
		}

		routes = append(routes, model.Route{
			ID:        row.ID,
			ShortName: row.ShortName,
			LongName:  row.LongName,
			Type:      model.RouteType(routeType),
		})
	}

	return routes, nil
}
