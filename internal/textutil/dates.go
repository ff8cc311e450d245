package textutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ruMonths = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

// ParseRussianDate parses the site's free-text air date, e.g.
// "2 декабря 10:00". The site omits the year, so the date resolves to the
// current year; when that lands in the future relative to now (a December
// episode scraped in January) the year is rolled back by one.
func ParseRussianDate(raw string, now time.Time) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) < 2 {
		return time.Time{}, fmt.Errorf("unexpected date format: %q", raw)
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected day in date %q: %w", raw, err)
	}

	month, ok := ruMonths[fields[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month in date %q", raw)
	}

	var hour, minute int
	if len(fields) > 2 {
		if _, err := fmt.Sscanf(fields[2], "%d:%d", &hour, &minute); err != nil {
			hour, minute = 0, 0
		}
	}

	parsed := time.Date(now.Year(), month, day, hour, minute, 0, 0, time.UTC)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	parsedDay := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if parsedDay.After(today) {
		parsed = time.Date(now.Year()-1, month, day, 0, 0, 0, 0, time.UTC)
	}

	return parsed, nil
}
