// Package schedule computes job slots from a set of daily alert times in a
// configured timezone, treating Saturday and Sunday as non-trading days.
package schedule

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"sp500-advisor/internal/logger"
)

// AlertTime is a time of day, timezone-relative.
type AlertTime struct {
	Hour   int
	Minute int
}

func (a AlertTime) String() string {
	return time.Date(0, 1, 1, a.Hour, a.Minute, 0, 0, time.UTC).Format("15:04")
}

// DefaultAlertTimes covers a market open check and a pre-close check.
var DefaultAlertTimes = []AlertTime{{Hour: 9, Minute: 30}, {Hour: 15, Minute: 30}}

// ParseAlertTimes parses a comma-separated list of HH:MM tokens. Malformed
// tokens are skipped with a logged warning; an empty result falls back to
// the defaults. The returned list is always sorted ascending.
func ParseAlertTimes(s string) []AlertTime {
	var times []AlertTime
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		at, ok := parseToken(tok)
		if !ok {
			logger.Warn(context.Background(), "Skipping malformed alert time", "token", tok)
			continue
		}
		times = append(times, at)
	}

	if len(times) == 0 {
		times = append(times, DefaultAlertTimes...)
	}

	sort.Slice(times, func(i, j int) bool {
		if times[i].Hour != times[j].Hour {
			return times[i].Hour < times[j].Hour
		}
		return times[i].Minute < times[j].Minute
	})
	return times
}

func parseToken(tok string) (AlertTime, bool) {
	parts := strings.Split(tok, ":")
	if len(parts) != 2 {
		return AlertTime{}, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return AlertTime{}, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return AlertTime{}, false
	}
	return AlertTime{Hour: h, Minute: m}, true
}

// NextRun returns the next job slot strictly after now. Weekends are
// skipped entirely: a Saturday or Sunday now, or a weekday with no slots
// remaining, resolves to the first alert time on the next weekday.
func NextRun(now time.Time, times []AlertTime, loc *time.Location) time.Time {
	now = now.In(loc)

	if isWeekend(now.Weekday()) {
		return firstSlotOn(nextWeekday(now), times, loc)
	}

	for _, at := range times {
		slot := time.Date(now.Year(), now.Month(), now.Day(), at.Hour, at.Minute, 0, 0, loc)
		if slot.After(now) {
			return slot
		}
	}

	return firstSlotOn(nextWeekday(now), times, loc)
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// nextWeekday returns the first day strictly after t that is not a
// Saturday or Sunday.
func nextWeekday(t time.Time) time.Time {
	t = t.AddDate(0, 0, 1)
	for isWeekend(t.Weekday()) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func firstSlotOn(day time.Time, times []AlertTime, loc *time.Location) time.Time {
	at := DefaultAlertTimes[0]
	if len(times) > 0 {
		at = times[0]
	}
	return time.Date(day.Year(), day.Month(), day.Day(), at.Hour, at.Minute, 0, 0, loc)
}
