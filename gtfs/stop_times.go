package gtfs

import (
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"

	"karlsruhe.dev/transit/model"
)

type stopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopSequence  uint32 `csv:"stop_sequence"`
	StopID        string `csv:"stop_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
}

// parseStopTimes unmarshals stop_times.txt and returns rows sorted by
// (trip_id, stop_sequence), the invariant spec.md §3 requires within a
// trip.
func parseStopTimes(r io.Reader) ([]model.StopTime, error) {
	rows := []*stopTimeCSV{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling stop_times.txt: %w", err)
	}

	stopTimes := make([]model.StopTime, 0, len(rows))
	for _, row := range rows {
		if row.TripID == "" || row.StopID == "" {
			continue
		}

		stopTimes = append(stopTimes, model.StopTime{
			TripID:       row.TripID,
			StopSequence: row.StopSequence,
			StopID:       row.StopID,
			Arrival:      ParseGTFSTime(row.ArrivalTime),
			Departure:    ParseGTFSTime(row.DepartureTime),
		})
	}

	sort.SliceStable(stopTimes, func(i, j int) bool {
		if stopTimes[i].TripID != stopTimes[j].TripID {
			return stopTimes[i].TripID < stopTimes[j].TripID
		}
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	return stopTimes, nil
}
