package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"butikpos/backend/internal/domain"
)

var ErrInvalidRange = errors.New("invalid date range")

// PresetDays are the quick ranges offered by the summary page.
var PresetDays = []int{7, 30, 90}

// ParseRange builds a DateRange from optional YYYY-MM-DD strings. Empty input
// on either side leaves the range open. Malformed dates and a start after the
// end are rejected so callers can report them before aggregating.
func ParseRange(start string, end string) (domain.DateRange, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	var rng domain.DateRange
	if start != "" {
		parsed, err := time.Parse(domain.DateLayout, start)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidRange, start)
		}
		rng.Start = &parsed
	}
	if end != "" {
		parsed, err := time.Parse(domain.DateLayout, end)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidRange, end)
		}
		rng.End = &parsed
	}
	if rng.Bounded() && rng.Start.After(*rng.End) {
		return domain.DateRange{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start, end)
	}
	return rng, nil
}

// LastDays returns the inclusive range [today-days, today] in loc.
func LastDays(now time.Time, loc *time.Location, days int) domain.DateRange {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -days)
	return domain.DateRange{Start: &start, End: &end}
}

// IsPreset reports whether days is one of PresetDays.
func IsPreset(days int) bool {
	for _, preset := range PresetDays {
		if preset == days {
			return true
		}
	}
	return false
}

// Today formats the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(domain.DateLayout)
}
