package gtfs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseGTFSTime parses a GTFS "H[H]:MM[:SS]" time-of-day string into a
// duration from midnight. Hours may exceed 23 (the GTFS convention for
// trips that run past midnight). On any parse failure it returns a
// zero duration rather than an error — a lenient policy that matches
// the source, which never failed a trip over one bad time string.
func ParseGTFSTime(s string) time.Duration {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0
		}
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
}

// FormatGTFSTime is the inverse of ParseGTFSTime for durations in
// [0, 24h): it renders "HH:MM:SS". Durations with hours >= 24 are
// rendered with an un-padded, possibly multi-digit hour field, as GTFS
// itself does.
func FormatGTFSTime(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
