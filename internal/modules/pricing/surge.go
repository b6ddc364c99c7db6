// README: Time-of-day surge multiplier evaluated in the business time zone.
package pricing

import (
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	SurgeNone  = 1.0
	SurgePeak  = 1.25
	SurgeNight = 1.15
)

// SurgeMultiplier: peak 08-11 and 17-21, night 22-05, otherwise none.
// A nil time means "no schedule" and never surges.
func SurgeMultiplier(scheduledAt *time.Time, loc *time.Location) float64 {
	if scheduledAt == nil {
		return SurgeNone
	}
	if loc == nil {
		loc = time.UTC
	}
	h := scheduledAt.In(loc).Hour()
	switch {
	case (h >= 8 && h <= 11) || (h >= 17 && h <= 21):
		return SurgePeak
	case h >= 22 || h <= 5:
		return SurgeNight
	}
	return SurgeNone
}

func SurgeLabel(m float64) string {
	switch m {
	case SurgePeak:
		return "Peak Hour Surge applied"
	case SurgeNight:
		return "Night Charges applied"
	}
	return ""
}

// ParseScheduledAt combines an HTML date ("2006-01-02") and time ("15:04")
// in loc. Missing or unparseable input yields nil.
func ParseScheduledAt(date, clock string, loc *time.Location) *time.Time {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
			return &t
		}
	}
	return nil
}
