package router_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karlsruhe.dev/transit/calendar"
	"karlsruhe.dev/transit/config"
	"karlsruhe.dev/transit/graph"
	"karlsruhe.dev/transit/gtfs"
	"karlsruhe.dev/transit/model"
	"karlsruhe.dev/transit/resolver"
	"karlsruhe.dev/transit/router"
	"karlsruhe.dev/transit/station"
	"karlsruhe.dev/transit/testutil"
)

var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func newRouter(t *testing.T, tables *gtfs.Tables, cfg *config.Config) *router.Router {
	t.Helper()
	active, _ := calendar.ActiveServices(tables, monday, cfg)
	idx, err := graph.Build(tables, active, cfg)
	require.NoError(t, err)
	hier := station.NewHierarchy(tables.Stops)
	res := resolver.New(tables, hier, nil, cfg)
	return router.New(idx, res, tables, cfg)
}

func TestFindRoutes_SingleDirectTrip(t *testing.T) {
	tables := testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"A,A,49.00,8.40,",
			"B,B,49.01,8.41,",
			"C,C,49.02,8.42,",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Route One,3",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,WD,Destination",
		},
		"stop_times.txt": {
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T1,1,A,08:00:00,08:00:00",
			"T1,2,B,08:05:00,08:05:00",
			"T1,3,C,08:12:00,08:12:00",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WD,1,1,1,1,1,0,0,20240101,20241231",
		},
	})

	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	journeys, err := r.FindRoutes("A", "C", 7*time.Hour+55*time.Minute, model.TransportModeAll, 3)
	require.NoError(t, err)
	require.Len(t, journeys, 1)

	j := journeys[0]
	assert.Equal(t, 0, j.Transfers)
	assert.Equal(t, 8*time.Hour, j.Departure)
	assert.Equal(t, 8*time.Hour+12*time.Minute, j.Arrival)
	require.Len(t, j.Segments, 1)
	assert.Equal(t, model.SegmentTransit, j.Segments[0].Mode)
	assert.Equal(t, "A", j.Segments[0].FromStopID)
	assert.Equal(t, "C", j.Segments[0].ToStopID)
}

func transferFixture(t *testing.T, r2Departure string) *gtfs.Tables {
	t.Helper()
	return testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"A,A,49.00,8.40,",
			"B,B,49.01,8.41,",
			"C,C,49.02,8.42,",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Route One,3",
			"R2,2,Route Two,3",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,WD,Destination",
			"T2,R2,WD,Destination",
		},
		"stop_times.txt": {
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T1,1,A,08:00:00,08:00:00",
			"T1,2,B,08:10:00,08:10:00",
			"T2,1,B," + r2Departure + "," + r2Departure,
			"T2,2,C,08:20:00,08:20:00",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WD,1,1,1,1,1,0,0,20240101,20241231",
		},
	})
}

func TestFindRoutes_TransferRequired(t *testing.T) {
	tables := transferFixture(t, "08:12:00")
	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	journeys, err := r.FindRoutes("A", "C", 7*time.Hour+55*time.Minute, model.TransportModeAll, 3)
	require.NoError(t, err)
	require.NotEmpty(t, journeys)

	j := journeys[0]
	assert.Equal(t, 1, j.Transfers)
	assert.Equal(t, 8*time.Hour+20*time.Minute, j.Arrival)
}

func TestFindRoutes_TransferDwellRuleDropsConnection(t *testing.T) {
	tables := transferFixture(t, "08:10:30")
	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	journeys, err := r.FindRoutes("A", "C", 7*time.Hour+55*time.Minute, model.TransportModeAll, 3)
	require.NoError(t, err)
	for _, j := range journeys {
		assert.NotEqual(t, 8*time.Hour+20*time.Minute, j.Arrival)
	}
}

func TestFindRoutes_ModeFilterRailOnly(t *testing.T) {
	tables := testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"A,A,49.00,8.40,",
			"B,B,49.01,8.41,",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Rail Route,2",
			"R2,2,Bus Route,3",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,WD,Destination",
			"T2,R2,WD,Destination",
		},
		"stop_times.txt": {
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T1,1,A,08:00:00,08:00:00",
			"T1,2,B,08:10:00,08:10:00",
			"T2,1,A,08:00:00,08:00:00",
			"T2,2,B,08:10:00,08:10:00",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WD,1,1,1,1,1,0,0,20240101,20241231",
		},
	})

	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	journeys, err := r.FindRoutes("A", "B", 7*time.Hour+55*time.Minute, model.TransportModeRail, 3)
	require.NoError(t, err)
	require.NotEmpty(t, journeys)
	for _, seg := range journeys[0].Segments {
		if seg.Mode == model.SegmentTransit {
			// Transit segments carry the short name; "2" is the bus route R2.
			assert.NotEqual(t, "2", seg.RouteName)
		}
	}
}

func TestFindRoutes_ModeFilterEmptyWhenOnlyBusExists(t *testing.T) {
	tables := testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"A,A,0,0,",
			"B,B,0,0,",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R2,2,Bus Route,3",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T2,R2,WD,Destination",
		},
		"stop_times.txt": {
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T2,1,A,08:00:00,08:00:00",
			"T2,2,B,08:10:00,08:10:00",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WD,1,1,1,1,1,0,0,20240101,20241231",
		},
	})

	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	journeys, err := r.FindRoutes("A", "B", 7*time.Hour+55*time.Minute, model.TransportModeRail, 3)
	require.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestFindRoutes_WalkingOverlayOnly(t *testing.T) {
	tables := testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"X,X,49.0000,8.40000,",
			"Y,Y,49.0027,8.40000,",
		},
	})

	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	journeys, err := r.FindRoutes("X", "Y", 7*time.Hour, model.TransportModeAll, 3)
	require.NoError(t, err)
	require.Len(t, journeys, 1)
	assert.Equal(t, 0, journeys[0].Transfers)
	require.Len(t, journeys[0].Segments, 1)
	assert.Equal(t, model.SegmentWalking, journeys[0].Segments[0].Mode)
}

func TestFindRoutes_StationClosureSurfacesChildWithTrips(t *testing.T) {
	tables := testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"P,Parent,0,0,",
			"P1,Parent Platform 1,0,0,P",
			"P2,Parent Platform 2,0,0,P",
			"D,Destination,0,0,",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Route One,3",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,WD,Destination",
		},
		"stop_times.txt": {
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T1,1,P2,08:00:00,08:00:00",
			"T1,2,D,08:10:00,08:10:00",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WD,1,1,1,1,1,0,0,20240101,20241231",
		},
	})

	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	journeys, err := r.FindRoutes("Parent", "Destination", 7*time.Hour+55*time.Minute, model.TransportModeAll, 3)
	require.NoError(t, err)
	require.NotEmpty(t, journeys)
	assert.Equal(t, "P2", journeys[0].Segments[0].FromStopID)
}

func TestFindRoutes_DepartureTimeWidening(t *testing.T) {
	tables := testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"A,A,0,0,",
			"B,B,0,0,",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Route One,3",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,WD,Destination",
		},
		"stop_times.txt": {
			"trip_id,stop_sequence,stop_id,arrival_time,departure_time",
			"T1,1,A,09:00:00,09:00:00",
			"T1,2,B,09:10:00,09:10:00",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WD,1,1,1,1,1,0,0,20240101,20241231",
		},
	})

	cfg := config.NewDefault()
	r := newRouter(t, tables, cfg)

	// At 09:05 the 09:00 trip has already left; only the -15 minute
	// retry (08:50) reaches it.
	journeys, err := r.FindRoutes("A", "B", 9*time.Hour+5*time.Minute, model.TransportModeAll, 3)
	require.NoError(t, err)
	require.Len(t, journeys, 1)
	assert.Equal(t, 9*time.Hour+10*time.Minute, journeys[0].Arrival)
}

func TestFindRoutes_OriginEqualsDestinationReturnsAlreadyAtDestination(t *testing.T) {
	tables := testutil.BuildTables(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,parent_station",
			"A,A,49.009,8.404,",
		},
	})

	addressesPath := testutil.WriteAddresses(t, []string{
		"full_address,lat,lon",
		`"Kaiserstraße 1, 76131 Karlsruhe",49.009,8.404`,
	})
	addresses, err := resolver.LoadAddresses(addressesPath)
	require.NoError(t, err)

	cfg := config.NewDefault()
	active, _ := calendar.ActiveServices(tables, monday, cfg)
	idx, err := graph.Build(tables, active, cfg)
	require.NoError(t, err)
	hier := station.NewHierarchy(tables.Stops)
	res := resolver.New(tables, hier, addresses, cfg)
	r := router.New(idx, res, tables, cfg)

	journeys, err := r.FindRoutes("Kaiserstraße 1", "Kaiserstraße 1", 8*time.Hour, model.TransportModeAll, 3)
	require.NoError(t, err)
	require.Len(t, journeys, 1)

	j := journeys[0]
	assert.Equal(t, 0, j.Transfers)
	assert.Equal(t, time.Duration(0), j.TotalDuration)
	require.Len(t, j.Segments, 1)
	assert.Equal(t, model.SegmentWalking, j.Segments[0].Mode)
	assert.Equal(t, "A", j.Segments[0].FromStopID)
}
