package gtfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseGTFSTime(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want time.Duration
	}{
		{"HH:MM:SS", "08:05:30", 8*time.Hour + 5*time.Minute + 30*time.Second},
		{"H:MM:SS single digit hour", "8:05:30", 8*time.Hour + 5*time.Minute + 30*time.Second},
		{"HH:MM without seconds", "08:05", 8*time.Hour + 5*time.Minute},
		{"hours >= 24", "25:10:00", 25*time.Hour + 10*time.Minute},
		{"midnight", "00:00:00", 0},
		{"garbage returns zero", "not-a-time", 0},
		{"empty returns zero", "", 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseGTFSTime(tc.in))
		})
	}
}

func TestParseGTFSTime_RoundTrip(t *testing.T) {
	for _, in := range []string{"00:00:00", "08:05:30", "23:59:59"} {
		d := ParseGTFSTime(in)
		assert.Equal(t, in, FormatGTFSTime(d))
	}
}

func TestParseGTFSTime_DayComponent(t *testing.T) {
	d := ParseGTFSTime("25:10:00")
	days := int(d.Hours()) / 24
	assert.NotZero(t, days)
}
