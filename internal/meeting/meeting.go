package meeting

import (
	"fmt"
	"time"
)

// Course type values as stored on a LiveMeeting.
const (
	CourseShort = "25" // 25m short course pool
	CourseLong  = "50" // 50m long course pool
)

// LiveMeeting represents a swim meet scraped from a federation listing page.
type LiveMeeting struct {
	// MeetNumber is the federation license/entry code (e.g. "4NE252206" or a
	// numeric site id). Unique across all meetings when present; empty when
	// the source listing carries no code.
	MeetNumber   string    `json:"meet_number,omitempty"`
	Name         string    `json:"name"`
	RegionCode   string    `json:"region_code,omitempty"`
	County       string    `json:"county,omitempty"`
	City         string    `json:"city,omitempty"`
	Venue        string    `json:"venue,omitempty"`
	CourseType   string    `json:"course_type"` // "25" or "50"
	LicenseLevel int       `json:"license_level,omitempty"`
	EventType    string    `json:"event_type,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date,omitempty"`
	ExternalURL  string    `json:"external_url,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	FirstSeen    time.Time `json:"first_seen,omitempty"`
}

// Key returns the identity key for a live meeting: the meet number when one
// is present, otherwise the (name, start date) pair. Snapshot maps and upsert
// lookups are keyed by this value.
func (m *LiveMeeting) Key() string {
	if m.MeetNumber != "" {
		return "meet:" + m.MeetNumber
	}
	return fmt.Sprintf("name:%s|%s", m.Name, m.StartDate.Format("2006-01-02"))
}

// Validate checks the invariants enforced before a meeting is persisted.
func (m *LiveMeeting) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("live meeting: name is required")
	}
	if m.StartDate.IsZero() {
		return fmt.Errorf("live meeting %q: start date is required", m.Name)
	}
	if m.CourseType != CourseShort && m.CourseType != CourseLong {
		return fmt.Errorf("live meeting %q: course type must be %q or %q, got %q",
			m.Name, CourseShort, CourseLong, m.CourseType)
	}
	return nil
}

// CourseTypeDisplay returns a human-readable label for the course type.
func (m *LiveMeeting) CourseTypeDisplay() string {
	if m.CourseType == CourseShort {
		return "25m (Short Course)"
	}
	return "50m (Long Course)"
}

// Ongoing reports whether the meeting is in progress on the given day.
// A meeting with no end date is treated as open-ended once it has started.
func (m *LiveMeeting) Ongoing(on time.Time) bool {
	day := on.Truncate(24 * time.Hour)
	if m.StartDate.After(day) {
		return false
	}
	return m.EndDate.IsZero() || !m.EndDate.Before(day)
}

// Meeting is a canonical meet record imported from official qualifying-standard
// documents. It is matched, not owned: at most one LiveMeeting corresponds to it.
type Meeting struct {
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	StartDate     time.Time `json:"start_date,omitempty"`
}
