package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"

	"github.com/openswim/swim-meets/internal/config"
	"github.com/openswim/swim-meets/internal/logger"
	"github.com/openswim/swim-meets/internal/meeting"
	"github.com/openswim/swim-meets/internal/observability"
	"github.com/openswim/swim-meets/internal/parse"
)

// Row skip reasons, also used as metric labels.
const (
	skipEmpty    = "empty"    // no td cells (header or spacer row)
	skipParse    = "parse"    // required fields could not be parsed
	skipExisting = "existing" // record already in the store
)

// ExistsChecker is the store capability consulted before deep-parsing a row.
type ExistsChecker interface {
	ExistsByMeetNumber(number string) bool
	ExistsByNameAndDate(name string, start time.Time) bool
}

// Extractor normalizes listing rows into LiveMeeting records for one source
// profile. For profiles that skip already-stored records, existence lookups
// are fronted by a TTL cache so a re-scrape over an unchanged listing page
// does not hammer the store.
type Extractor struct {
	source   config.Source
	exists   ExistsChecker
	seen     *gocache.Cache
	metrics  *observability.Metrics
	minCells int
}

// NewExtractor creates an extractor for the given source profile.
func NewExtractor(source config.Source, exists ExistsChecker, cacheTTL time.Duration, metrics *observability.Metrics) *Extractor {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Extractor{
		source:   source,
		exists:   exists,
		seen:     gocache.New(cacheTTL, 2*cacheTTL),
		metrics:  metrics,
		minCells: minCells(source.Cells),
	}
}

func minCells(cells config.CellMap) int {
	max := 0
	for _, idx := range []int{cells.Date, cells.Name, cells.Details, cells.Number, cells.Region, cells.City, cells.Venue, cells.Course, cells.Level} {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// Extract enumerates listing rows and returns the normalized records.
// pageDate is the date the page was fetched for; sources without a date cell
// stamp it onto every row. A failure in one row is logged and skipped, it
// never aborts extraction of the remaining rows.
func (e *Extractor) Extract(doc *goquery.Document, pageDate time.Time) []*meeting.LiveMeeting {
	var meetings []*meeting.LiveMeeting

	doc.Find(e.source.RowSelector).Each(func(i int, row *goquery.Selection) {
		if e.source.SkipHeader && i == 0 {
			return
		}
		m, reason := e.extractRow(row, pageDate)
		if reason != "" {
			if reason == skipParse {
				logger.Warn("skipping row", logger.Fields{
					"source": e.source.Name,
					"row":    i,
					"text":   strings.TrimSpace(row.Text()),
				})
			}
			e.metrics.RowsSkipped.WithLabelValues(reason).Inc()
			return
		}
		e.metrics.RowsExtracted.Inc()
		meetings = append(meetings, m)
	})

	return meetings
}

// extractRow normalizes a single row; the returned reason is empty on success.
func (e *Extractor) extractRow(row *goquery.Selection, pageDate time.Time) (*meeting.LiveMeeting, string) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return nil, skipEmpty
	}
	if cells.Length() < e.minCells {
		return nil, skipParse
	}
	layout := e.source.Cells

	startDate := pageDate
	if layout.Date >= 0 {
		parsed, ok := parse.ParseDate(cells.Eq(layout.Date).Text())
		if !ok {
			return nil, skipParse
		}
		startDate = parsed
	}
	if startDate.IsZero() {
		return nil, skipParse
	}

	nameCell := cells.Eq(layout.Name)
	name := strings.TrimSpace(nameCell.Text())
	if name == "" {
		return nil, skipParse
	}

	href := findHref(nameCell, row)

	var meetNumber string
	if layout.Number >= 0 {
		meetNumber = strings.TrimSpace(cells.Eq(layout.Number).Text())
	} else {
		meetNumber, _ = parse.ExtractMeetNumber(name, href)
	}

	// Existence check before deep parsing, only for sources whose listing
	// rows never change once published. Sources that mutate rows in place
	// must reach the upsert so the stored record's fields get refreshed.
	if e.source.SkipExisting && e.alreadyStored(meetNumber, name, startDate) {
		logger.Debug("skipping existing meeting", logger.Fields{"name": name})
		return nil, skipExisting
	}

	m := &meeting.LiveMeeting{
		MeetNumber:  meetNumber,
		Name:        name,
		StartDate:   startDate,
		ExternalURL: absoluteURL(e.source.BaseURL, href),
	}

	if layout.Details >= 0 {
		details := parse.ParseMeetingDetails(cells.Eq(layout.Details).Text())
		if r, ok := meeting.FindRegionByName(details.Region); ok {
			m.RegionCode = r.Code
		}
		m.CourseType = details.CourseType
		m.LicenseLevel = details.LicenseLevel
		m.EventType = details.EventType
	}
	if layout.Region >= 0 {
		if r, ok := meeting.FindRegionByName(cells.Eq(layout.Region).Text()); ok {
			m.RegionCode = r.Code
		}
	}
	if layout.City >= 0 {
		m.City = strings.TrimSpace(cells.Eq(layout.City).Text())
	}
	if layout.Venue >= 0 {
		m.Venue = strings.TrimSpace(cells.Eq(layout.Venue).Text())
	}
	if layout.Course >= 0 {
		course, _ := parse.ParseCourseType(cells.Eq(layout.Course).Text())
		m.CourseType = course
	}
	if layout.Level >= 0 {
		level, _ := parse.ParseLicenseLevel(cells.Eq(layout.Level).Text())
		m.LicenseLevel = level
	}

	if m.CourseType == "" {
		m.CourseType = meeting.CourseShort
	}
	return m, ""
}

func (e *Extractor) alreadyStored(meetNumber, name string, start time.Time) bool {
	key := (&meeting.LiveMeeting{MeetNumber: meetNumber, Name: name, StartDate: start}).Key()
	if _, found := e.seen.Get(key); found {
		return true
	}

	var exists bool
	if meetNumber != "" {
		exists = e.exists.ExistsByMeetNumber(meetNumber)
	} else {
		exists = e.exists.ExistsByNameAndDate(name, start)
	}
	if exists {
		// Only positive results are cached: absent records are created by the
		// current pass and found in the store on the next one.
		e.seen.SetDefault(key, struct{}{})
	}
	return exists
}

func findHref(nameCell, row *goquery.Selection) string {
	if link := nameCell.Find("a").First(); link.Length() > 0 {
		return link.AttrOr("href", "")
	}
	if link := row.Find("a").First(); link.Length() > 0 {
		return link.AttrOr("href", "")
	}
	return ""
}

func absoluteURL(base, href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return base + href
	default:
		return base + "/" + href
	}
}
