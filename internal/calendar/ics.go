// Package calendar renders meetings as iCalendar (.ics) documents.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/openswim/swim-meets/internal/meeting"
)

// GenerateICS renders one meeting as a VCALENDAR document. Meetings without
// an end date are rendered as a single all-day event.
func GenerateICS(m *meeting.LiveMeeting, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//swim-meets//openswim//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@swim-meets\r\n", uid(m)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", now.UTC().Format("20060102T150405Z")))

	// All-day events use date values; DTEND is exclusive per RFC 5545.
	end := m.StartDate
	if !m.EndDate.IsZero() {
		end = m.EndDate
	}
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", m.StartDate.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.AddDate(0, 0, 1).Format("20060102")))

	summary := m.Name
	if m.CourseType != "" {
		summary = fmt.Sprintf("%s (%s)", m.Name, m.CourseTypeDisplay())
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	var details []string
	if m.MeetNumber != "" {
		details = append(details, fmt.Sprintf("License: %s", m.MeetNumber))
	}
	if m.LicenseLevel > 0 {
		details = append(details, fmt.Sprintf("Level %d", m.LicenseLevel))
	}
	if m.EventType != "" {
		details = append(details, m.EventType)
	}
	if len(details) > 0 {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(strings.Join(details, "\n"))))
	}

	var location []string
	if m.Venue != "" {
		location = append(location, m.Venue)
	}
	if m.City != "" {
		location = append(location, m.City)
	}
	if len(location) > 0 {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(strings.Join(location, ", "))))
	}

	if m.ExternalURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", m.ExternalURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func uid(m *meeting.LiveMeeting) string {
	if m.MeetNumber != "" {
		return m.MeetNumber
	}
	slug := strings.ToLower(strings.ReplaceAll(m.Name, " ", "-"))
	return slug + "-" + m.StartDate.Format("20060102")
}

// escapeICS escapes text values per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
