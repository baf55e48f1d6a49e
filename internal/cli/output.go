package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/openswim/swim-meets/internal/meeting"
)

// OutputFormat specifies how command results are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScrapeReport summarizes one scrape pass for output.
type ScrapeReport struct {
	CheckedAt    time.Time              `json:"checked_at"`
	Source       string                 `json:"source"`
	Saved        int                    `json:"saved"`
	SkippedDates []string               `json:"skipped_dates,omitempty"`
	NewMeetings  []*meeting.LiveMeeting `json:"new_meetings"`
	NewCount     int                    `json:"new_count"`
}

// WriteScrapeReport writes a scrape summary in the requested format.
func WriteScrapeReport(w io.Writer, r *ScrapeReport, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, r)
	}

	fmt.Fprintf(w, "Scraped %s: %d meetings saved", r.Source, r.Saved)
	if len(r.SkippedDates) > 0 {
		fmt.Fprintf(w, ", %d dates skipped", len(r.SkippedDates))
	}
	fmt.Fprintln(w)

	if r.NewCount == 0 {
		fmt.Fprintln(w, "No new meetings found.")
		return nil
	}
	fmt.Fprintf(w, "\n%d new meetings:\n", r.NewCount)
	for _, m := range r.NewMeetings {
		writeMeetingLine(w, m, "NEW", verbose)
	}
	return nil
}

// MeetingList is the payload for list and match output.
type MeetingList struct {
	Meetings []*meeting.LiveMeeting `json:"meetings"`
	Count    int                    `json:"count"`
	Filter   string                 `json:"filter,omitempty"`
}

// WriteMeetings writes a meeting listing in the requested format.
func WriteMeetings(w io.Writer, meetings []*meeting.LiveMeeting, filterDesc string, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, &MeetingList{Meetings: meetings, Count: len(meetings), Filter: filterDesc})
	}

	if len(meetings) == 0 {
		fmt.Fprintln(w, "No meetings found.")
		return nil
	}
	for _, m := range meetings {
		writeMeetingLine(w, m, "", verbose)
	}
	fmt.Fprintf(w, "\nTotal: %d meetings\n", len(meetings))
	return nil
}

func writeMeetingLine(w io.Writer, m *meeting.LiveMeeting, prefix string, verbose bool) {
	line := fmt.Sprintf("%s  %-4s %-3s  %s", m.StartDate.Format("2006-01-02"), m.RegionCode, m.CourseType+"m", m.Name)
	if m.MeetNumber != "" {
		line += fmt.Sprintf(" [%s]", m.MeetNumber)
	}
	if prefix != "" {
		line = prefix + ": " + line
	}
	fmt.Fprintln(w, line)

	if verbose {
		if m.Venue != "" || m.City != "" {
			fmt.Fprintf(w, "      Venue: %s\n", joinNonEmpty(m.Venue, m.City))
		}
		if m.LicenseLevel > 0 {
			fmt.Fprintf(w, "      Level: %d\n", m.LicenseLevel)
		}
		if m.EventType != "" {
			fmt.Fprintf(w, "      Type: %s\n", m.EventType)
		}
		if m.ExternalURL != "" {
			fmt.Fprintf(w, "      URL: %s\n", m.ExternalURL)
		}
	}
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
