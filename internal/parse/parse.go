package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openswim/swim-meets/internal/meeting"
)

var (
	ordinalPattern = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)`)
	digitsPattern  = regexp.MustCompile(`\d+`)
	spacePattern   = regexp.MustCompile(`\s+`)

	meetLinkPattern   = regexp.MustCompile(`meet=(\d+)`)
	nameSuffixPattern = regexp.MustCompile(`-\s*(\w+)\s*$`)

	coursePattern = regexp.MustCompile(`(?i)(Short|Long)\s*Course`)
	levelPattern  = regexp.MustCompile(`(?i)Level\s*(\d+)`)
	eventPattern  = regexp.MustCompile(`(?i)(Club Champs|Club|County|Regional|National)`)

	// Region candidates come from the fixed reference table, longest name
	// first so "East Midlands" wins over "East".
	regionPattern = buildRegionPattern()
)

func buildRegionPattern() *regexp.Regexp {
	names := meeting.RegionNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)\s*Region`)
}

// Layouts observed on source listing pages, tried in order after ordinal
// suffixes are stripped ("18thNov 2025" becomes "18Nov 2025").
var dateLayouts = []string{
	"2Jan 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses a listing date, stripping ordinal suffixes first.
// The second return value is false when no layout matches.
func ParseDate(text string) (time.Time, bool) {
	cleaned := ordinalPattern.ReplaceAllString(strings.TrimSpace(text), "$1")
	cleaned = spacePattern.ReplaceAllString(cleaned, " ")
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCourseType classifies a course-type cell. It accepts "25"/"short"/"sc"
// and "50"/"long"/"lc" in any case; anything else is absent.
func ParseCourseType(text string) (string, bool) {
	up := strings.ToUpper(strings.TrimSpace(text))
	switch {
	case up == "":
		return "", false
	case strings.Contains(up, "25") || strings.Contains(up, "SHORT") || strings.Contains(up, "SC"):
		return meeting.CourseShort, true
	case strings.Contains(up, "50") || strings.Contains(up, "LONG") || strings.Contains(up, "LC"):
		return meeting.CourseLong, true
	default:
		return "", false
	}
}

// ParseLicenseLevel extracts the first run of digits as an integer.
func ParseLicenseLevel(text string) (int, bool) {
	match := digitsPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	level, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return level, true
}

// Details is the tagged result of decomposing a free-text details blob.
// Each field is independently optional: a zero value means that pass found
// nothing, it never blocks the other passes.
type Details struct {
	Region       string // resolved region name, "" when unmatched
	CourseType   string // "25", "50", or ""
	LicenseLevel int    // 0 when absent
	EventType    string // "Club", "Club Champs", "County", "Regional", "National", or ""
}

// ParseMeetingDetails decomposes a blob like
// "North East RegionShort CourseLevel 4Club" with four independent regex
// passes. Failure of any one pass leaves only that field unset.
func ParseMeetingDetails(text string) Details {
	var d Details

	if m := regionPattern.FindStringSubmatch(text); m != nil {
		if r, ok := meeting.FindRegionByName(m[1]); ok {
			d.Region = r.Name
		}
	}

	if m := coursePattern.FindStringSubmatch(text); m != nil {
		if strings.EqualFold(m[1], "Short") {
			d.CourseType = meeting.CourseShort
		} else {
			d.CourseType = meeting.CourseLong
		}
	}

	if m := levelPattern.FindStringSubmatch(text); m != nil {
		if level, err := strconv.Atoi(m[1]); err == nil {
			d.LicenseLevel = level
		}
	}

	if m := eventPattern.FindStringSubmatch(text); m != nil {
		d.EventType = canonicalEventType(m[1])
	}

	return d
}

func canonicalEventType(match string) string {
	for _, known := range []string{"Club Champs", "Club", "County", "Regional", "National"} {
		if strings.EqualFold(match, known) {
			return known
		}
	}
	return match
}

// ExtractMeetNumber derives the meet number for a listing row. A numeric id
// in the link target ("meet.php?meet=85856") wins over a trailing "- <token>"
// suffix in the name ("Darlington ASC Club Gala 4 2025 - 4NE252206").
func ExtractMeetNumber(name, href string) (string, bool) {
	if m := meetLinkPattern.FindStringSubmatch(href); m != nil {
		return m[1], true
	}
	if m := nameSuffixPattern.FindStringSubmatch(strings.TrimSpace(name)); m != nil {
		return m[1], true
	}
	return "", false
}
