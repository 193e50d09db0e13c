package gtfs

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"karlsruhe.dev/transit/model"
)

type calendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

func parseCalendarDates(r io.Reader) ([]model.CalendarDate, error) {
	rows := []*calendarDateCSV{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates.txt: %w", err)
	}

	dates := make([]model.CalendarDate, 0, len(rows))
	for _, row := range rows {
		if row.ServiceID == "" {
			continue
		}
		if row.ExceptionType != 1 && row.ExceptionType != 2 {
			fmt.Printf("gtfs: calendar_dates row for %q has illegal exception_type %d, skipping\n", row.ServiceID, row.ExceptionType)
			continue
		}

		dates = append(dates, model.CalendarDate{
			ServiceID:     row.ServiceID,
			Date:          row.Date,
			ExceptionType: model.ExceptionType(row.ExceptionType),
		})
	}

	return dates, nil
}
