// Package model holds all external facing types shared by the GTFS
// routing engine.
package model

import "time"

type RouteType int

const (
	RouteTypeTram   RouteType = 0
	RouteTypeSubway RouteType = 1
	RouteTypeRail   RouteType = 2
	RouteTypeBus    RouteType = 3
)

// TransportMode is the user-facing filter applied to Connections
// before routing.
type TransportMode int

const (
	// TransportModeRail restricts the search to rail/subway/tram
	// categories. Walking connections are always retained.
	TransportModeRail TransportMode = 1
	// TransportModeAll allows every category.
	TransportModeAll TransportMode = 2
)

type Stop struct {
	ID            string
	Name          string
	Lat           float64
	Lon           float64
	ParentStation string
}

// HasCoordinates reports whether the stop carries a usable lat/lon;
// GTFS allows these to be absent for generic nodes and boarding
// areas, and malformed feeds sometimes leave them at zero.
func (s Stop) HasCoordinates() bool {
	return s.Lat != 0 && s.Lon != 0
}

type Route struct {
	ID        string
	ShortName string
	LongName  string
	Type      RouteType
}

type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  string
}

type StopTime struct {
	TripID       string
	StopSequence uint32
	StopID       string
	Arrival      time.Duration
	Departure    time.Duration
}

type Calendar struct {
	ServiceID string
	StartDate string  // YYYYMMDD
	EndDate   string  // YYYYMMDD
	Weekday   [7]bool // index 0=Monday ... 6=Sunday
}

type ExceptionType int8

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
)

type CalendarDate struct {
	ServiceID     string
	Date          string // YYYYMMDD
	ExceptionType ExceptionType
}

// WalkRouteID is the sentinel route_id used for synthesized walking
// connections.
const WalkRouteID = "WALK"

// Connection is a single time-expanded edge: "ride this trip from
// FromStopID to ToStopID" or, when IsWalking is set, "walk between
// these two stops". A single flat struct with a discriminator flag
// avoids per-edge interface allocation and makes the common
// route_id == "WALK" check a cheap field compare.
type Connection struct {
	TripID          string
	RouteID         string
	RouteShortName  string
	RouteLongName   string
	RouteType       RouteType
	FromStopID      string
	ToStopID        string
	Departure       time.Duration
	Arrival         time.Duration
	Headsign        string
	Priority        int
	IsWalking       bool
	WalkingDuration time.Duration // only meaningful when IsWalking
}

// SegmentMode distinguishes the two kinds of itinerary segments.
type SegmentMode int

const (
	SegmentWalking SegmentMode = iota
	SegmentTransit
)

type Segment struct {
	Mode              SegmentMode
	FromStopID        string
	ToStopID          string
	FromStopName      string
	ToStopName        string
	Departure         time.Duration
	Arrival           time.Duration
	RouteName         string
	RouteDirection    string
	WalkingDirections []string
	WalkingDistanceM  float64
	Priority          int
}

type Journey struct {
	Segments             []Segment
	TotalDuration         time.Duration
	TotalWalkingDistanceM float64
	Departure             time.Duration
	Arrival               time.Duration
	Transfers             int
}

// WalkingAnchor carries the original coordinates of an address query
// so that a start/end walking leg can be rendered, even though the
// route search itself always operates between stops.
type WalkingAnchor struct {
	Lat float64
	Lon float64
}

// Address is a row from the address lookup table.
type Address struct {
	FullAddress string
	Lat         float64
	Lon         float64
}

// NearbyStop pairs a Stop with its walking distance/time from some
// query point.
type NearbyStop struct {
	Stop             Stop
	WalkingDistanceM float64
	WalkingTime      time.Duration
}
