package gtfs

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"karlsruhe.dev/transit/model"
)

type calendarCSV struct {
	ServiceID string `csv:"service_id"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

func parseCalendar(r io.Reader) ([]model.Calendar, error) {
	rows := []*calendarCSV{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar.txt: %w", err)
	}

	calendars := make([]model.Calendar, 0, len(rows))
	for _, row := range rows {
		if row.ServiceID == "" {
			continue
		}

		calendars = append(calendars, model.Calendar{
			ServiceID: row.ServiceID,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			Weekday: [7]bool{
				row.Monday == 1,
				row.Tuesday == 1,
				row.Wednesday == 1,
				row.Thursday == 1,
				row.Friday == 1,
				row.Saturday == 1,
				row.Sunday == 1,
			},
		})
	}

	return calendars, nil
}
