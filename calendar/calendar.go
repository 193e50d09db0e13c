// Package calendar evaluates which GTFS services are active on a
// given date (C5 of SPEC_FULL.md), combining calendar.txt's weekday
// patterns with calendar_dates.txt's exceptions.
package calendar

import (
	"sort"
	"time"

	"karlsruhe.dev/transit/config"
	"karlsruhe.dev/transit/gtfs"
	"karlsruhe.dev/transit/model"
)

// weekdayIndex maps a time.Weekday (Sunday=0) to the Monday=0..Sunday=6
// index used by model.Calendar.Weekday.
func weekdayIndex(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// ActiveServices returns the set of service_ids active on date,
// applying calendar_dates.txt exceptions. The second return value
// reports whether the empty-active-service fallback (spec.md §9's
// open question) was used, so callers can log it; the fallback only
// fires when cfg.AllowEmptyServiceFallback is set.
func ActiveServices(tables *gtfs.Tables, date time.Time, cfg *config.Config) ([]string, bool) {
	dateStr := date.Format("20060102")
	widx := weekdayIndex(date.Weekday())

	active := map[string]bool{}
	for _, c := range tables.Calendar {
		if !c.Weekday[widx] {
			continue
		}
		if c.StartDate > c.EndDate {
			continue
		}
		if c.StartDate > dateStr || c.EndDate < dateStr {
			continue
		}
		active[c.ServiceID] = true
	}

	usedFallback := false
	if len(active) == 0 && cfg.AllowEmptyServiceFallback {
		usedFallback = true
		for _, c := range tables.Calendar {
			active[c.ServiceID] = true
		}
	}

	for _, cd := range tables.CalendarDates {
		if cd.Date != dateStr {
			continue
		}
		switch cd.ExceptionType {
		case model.ExceptionAdded:
			active[cd.ServiceID] = true
		case model.ExceptionRemoved:
			delete(active, cd.ServiceID)
		}
	}

	ids := make([]string, 0, len(active))
	for id := range active {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, usedFallback
}
