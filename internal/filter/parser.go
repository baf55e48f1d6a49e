package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthAlt = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	sameMonthRange  = regexp.MustCompile(`(?i)^` + monthAlt + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthAlt + `\s+(\d{1,2})\s*-\s*` + monthAlt + `\s+(\d{1,2})$`)
	wholeMonth      = regexp.MustCompile(`(?i)^` + monthAlt + `$`)
)

// ParseDateRange parses a human date-range string into an inclusive window.
//
// Supported forms: "Nov 1-15" (same month), "Nov 20 - Dec 6" (cross-month,
// end rolls into next year when its month precedes the start's), and "Nov"
// (the whole month). The year is inferred: months already past are assumed
// to mean next year. Start is at 00:00:00 UTC, end at 23:59:59 UTC.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}
	now := time.Now().UTC()

	if m := sameMonthRange.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		day1, day2, err := parseDays(m[2], m[3])
		if err != nil {
			return nil, nil, err
		}
		year := yearForMonth(month, now)
		return window(
			time.Date(year, month, day1, 0, 0, 0, 0, time.UTC),
			time.Date(year, month, day2, 23, 59, 59, 0, time.UTC),
		)
	}

	if m := crossMonthRange.FindStringSubmatch(input); m != nil {
		month1 := parseMonth(m[1])
		month2 := parseMonth(m[3])
		day1, day2, err := parseDays(m[2], m[4])
		if err != nil {
			return nil, nil, err
		}
		year1 := yearForMonth(month1, now)
		year2 := year1
		if month2 < month1 {
			year2++
		}
		return window(
			time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC),
			time.Date(year2, month2, day2, 23, 59, 59, 0, time.UTC),
		)
	}

	if m := wholeMonth.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearForMonth(month, now)
		return window(
			time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC),
		)
	}

	return nil, nil, fmt.Errorf("invalid date range %q: use 'Nov 1-15', 'Nov 20 - Dec 6', or 'Nov'", input)
}

func window(from, to time.Time) (*time.Time, *time.Time, error) {
	if from.After(to) {
		return nil, nil, fmt.Errorf("start date must be before end date")
	}
	return &from, &to, nil
}

func parseDays(a, b string) (int, int, error) {
	day1, err := strconv.Atoi(a)
	if err != nil || day1 < 1 || day1 > 31 {
		return 0, 0, fmt.Errorf("invalid day: %s", a)
	}
	day2, err := strconv.Atoi(b)
	if err != nil || day2 < 1 || day2 > 31 {
		return 0, 0, fmt.Errorf("invalid day: %s", b)
	}
	return day1, day2, nil
}

func parseMonth(name string) time.Month {
	switch strings.ToLower(name[:3]) {
	case "jan":
		return time.January
	case "feb":
		return time.February
	case "mar":
		return time.March
	case "apr":
		return time.April
	case "may":
		return time.May
	case "jun":
		return time.June
	case "jul":
		return time.July
	case "aug":
		return time.August
	case "sep":
		return time.September
	case "oct":
		return time.October
	case "nov":
		return time.November
	default:
		return time.December
	}
}

// yearForMonth assumes a month already behind us refers to next year.
func yearForMonth(month time.Month, now time.Time) int {
	if month < now.Month() {
		return now.Year() + 1
	}
	return now.Year()
}
