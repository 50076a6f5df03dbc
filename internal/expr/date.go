package expr

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/nextset/crate-builder/internal/models"
)

// parseDatePayload parses a date-selector payload (§4.3): an optional
// comparator prefix, then either an ISO calendar-unit prefix or a relative
// duration. now anchors relative durations.
func parseDatePayload(source string, offset int, payload string, now time.Time) (models.DateSpec, error) {
	comparator, rest := splitComparator(payload)
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return models.DateSpec{}, &models.ExpressionError{Source: source, Offset: offset, Message: "empty date payload"}
	}

	if y, m, d, precision, ok := parseISODate(rest); ok {
		start, end := calendarInterval(y, m, d, precision)
		return models.DateSpec{
			Kind:       models.DateSpecInterval,
			Comparator: comparator,
			Start:      start,
			End:        end,
		}, nil
	}

	if years, months, weeks, days, ok := parseRelativeDuration(rest); ok {
		ref := now.AddDate(-years, -months, -(weeks*7 + days))
		return models.DateSpec{
			Kind:       models.DateSpecPoint,
			Comparator: comparator,
			Reference:  ref,
		}, nil
	}

	return models.DateSpec{}, &models.ExpressionError{Source: source, Offset: offset, Message: "malformed date payload: " + rest}
}

func splitComparator(payload string) (models.DateComparator, string) {
	switch {
	case strings.HasPrefix(payload, "<="):
		return models.DateLE, payload[2:]
	case strings.HasPrefix(payload, ">="):
		return models.DateGE, payload[2:]
	case strings.HasPrefix(payload, "<"):
		return models.DateLT, payload[1:]
	case strings.HasPrefix(payload, ">"):
		return models.DateGT, payload[1:]
	default:
		return models.DateNone, payload
	}
}

// parseISODate recognizes YYYY, YYYY-MM, or YYYY-MM-DD. precision is 1, 2,
// or 3 respectively.
func parseISODate(s string) (year, month, day, precision int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) < 1 || len(parts) > 3 {
		return 0, 0, 0, 0, false
	}
	for _, p := range parts {
		if p == "" || !allDigits(p) {
			return 0, 0, 0, 0, false
		}
	}
	if len(parts[0]) != 4 {
		return 0, 0, 0, 0, false
	}
	year, _ = strconv.Atoi(parts[0])
	month, day = 1, 1
	if len(parts) >= 2 {
		month, _ = strconv.Atoi(parts[1])
		if month < 1 || month > 12 {
			return 0, 0, 0, 0, false
		}
	}
	if len(parts) == 3 {
		day, _ = strconv.Atoi(parts[2])
		if day < 1 || day > 31 {
			return 0, 0, 0, 0, false
		}
	}
	return year, month, day, len(parts), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func calendarInterval(year, month, day, precision int) (start, end time.Time) {
	switch precision {
	case 1:
		start = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	case 2:
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	default:
		start = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
	}
	return start, end
}

// parseRelativeDuration recognizes "NyNmNwNd" where each component is
// optional but at least one must be present, in that unit order.
func parseRelativeDuration(s string) (years, months, weeks, days int, ok bool) {
	units := []byte{'y', 'm', 'w', 'd'}
	unitIdx := 0
	i := 0
	found := false

	for i < len(s) {
		start := i
		for i < len(s) && unicode.IsDigit(rune(s[i])) {
			i++
		}
		if i == start {
			return 0, 0, 0, 0, false
		}
		n, _ := strconv.Atoi(s[start:i])
		if i >= len(s) {
			return 0, 0, 0, 0, false
		}
		unit := s[i]
		i++

		advanced := false
		for unitIdx < len(units) {
			if units[unitIdx] == unit {
				advanced = true
				break
			}
			unitIdx++
		}
		if !advanced {
			return 0, 0, 0, 0, false
		}

		switch unit {
		case 'y':
			years = n
		case 'm':
			months = n
		case 'w':
			weeks = n
		case 'd':
			days = n
		}
		unitIdx++
		found = true
	}
	return years, months, weeks, days, found
}
