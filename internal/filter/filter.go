// Package filter narrows meeting listings by user criteria.
//
// Filters combine a date window, region codes, a course type, a maximum
// license level, and free-text city matching. All active criteria must hold
// for a meeting to pass; an empty filter passes everything.
//
// Example:
//
//	f := filter.New()
//	f.Regions = []string{"NE"}
//	f.CourseType = meeting.CourseShort
//	shortCourseNE := f.Apply(meetings)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/openswim/swim-meets/internal/meeting"
)

// Filter holds meeting selection criteria. Zero values mean "no constraint".
type Filter struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Regions restricts to the given region codes (case-insensitive).
	Regions []string `json:"regions,omitempty"`

	// CourseType restricts to "25" or "50".
	CourseType string `json:"course_type,omitempty"`

	// MaxLevel keeps meetings licensed at this level or below; license
	// level 1 is the highest grade of competition. Meetings without a
	// level always pass.
	MaxLevel int `json:"max_level,omitempty"`

	// Cities restricts by case-insensitive substring match on the city.
	Cities []string `json:"cities,omitempty"`

	// WeekendsOnly keeps meetings starting on a Saturday or Sunday.
	WeekendsOnly bool `json:"weekends_only,omitempty"`
}

// New creates an empty filter that matches every meeting.
func New() *Filter {
	return &Filter{}
}

// IsEmpty reports whether the filter has no active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Regions) == 0 &&
		f.CourseType == "" &&
		f.MaxLevel == 0 &&
		len(f.Cities) == 0 &&
		!f.WeekendsOnly
}

// Matches reports whether the meeting satisfies every active criterion.
func (f *Filter) Matches(m *meeting.LiveMeeting) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DateFrom != nil && m.StartDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && m.StartDate.After(*f.DateTo) {
		return false
	}

	if f.WeekendsOnly {
		wd := m.StartDate.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			return false
		}
	}

	if len(f.Regions) > 0 {
		matched := false
		for _, code := range f.Regions {
			if strings.EqualFold(m.RegionCode, code) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.CourseType != "" && m.CourseType != f.CourseType {
		return false
	}

	if f.MaxLevel > 0 && m.LicenseLevel > 0 && m.LicenseLevel > f.MaxLevel {
		return false
	}

	if len(f.Cities) > 0 {
		matched := false
		city := strings.ToLower(m.City)
		for _, c := range f.Cities {
			if strings.Contains(city, strings.ToLower(c)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the meetings that pass the filter. An empty filter returns
// the input slice unchanged.
func (f *Filter) Apply(meetings []*meeting.LiveMeeting) []*meeting.LiveMeeting {
	if f.IsEmpty() {
		return meetings
	}

	var filtered []*meeting.LiveMeeting
	for _, m := range meetings {
		if f.Matches(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// String renders the active criteria for display.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}
	if len(f.Regions) > 0 {
		parts = append(parts, fmt.Sprintf("Regions: %s", strings.Join(f.Regions, ", ")))
	}
	if f.CourseType != "" {
		parts = append(parts, fmt.Sprintf("Course: %sm", f.CourseType))
	}
	if f.MaxLevel > 0 {
		parts = append(parts, fmt.Sprintf("Level %d or below", f.MaxLevel))
	}
	if len(f.Cities) > 0 {
		parts = append(parts, fmt.Sprintf("Cities: %s", strings.Join(f.Cities, ", ")))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}
	return strings.Join(parts, " | ")
}
