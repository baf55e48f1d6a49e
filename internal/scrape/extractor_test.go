package scrape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openswim/swim-meets/internal/config"
	"github.com/openswim/swim-meets/internal/meeting"
	"github.com/openswim/swim-meets/internal/observability"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	return doc
}

func licensedSource(t *testing.T) config.Source {
	t.Helper()
	src, ok := config.Default().Scrape.Sources["licensed-meets"]
	require.True(t, ok)
	return src
}

func streamingSource(t *testing.T) config.Source {
	t.Helper()
	src, ok := config.Default().Scrape.Sources["streaming-results"]
	require.True(t, ok)
	return src
}

// countingExists records every store lookup so tests can observe the
// read-through cache in front of it.
type countingExists struct {
	numbers   map[string]bool
	nameDates map[string]bool
	calls     int
}

func newCountingExists() *countingExists {
	return &countingExists{
		numbers:   make(map[string]bool),
		nameDates: make(map[string]bool),
	}
}

func (c *countingExists) ExistsByMeetNumber(number string) bool {
	c.calls++
	return c.numbers[number]
}

func (c *countingExists) ExistsByNameAndDate(name string, start time.Time) bool {
	c.calls++
	return c.nameDates[name+"|"+start.Format("2006-01-02")]
}

func TestExtractLicensedMeets(t *testing.T) {
	doc := loadFixture(t, "licensed_meets.html")
	e := NewExtractor(licensedSource(t), newCountingExists(), time.Minute, observability.NewMetricsForTesting())

	got := e.Extract(doc, time.Time{})
	require.Len(t, got, 3, "broken row must be skipped, not abort extraction")

	darlington := got[0]
	assert.Equal(t, "85856", darlington.MeetNumber, "link id wins over name suffix")
	assert.Equal(t, "Darlington ASC Club Gala 4 2025 - 4NE252206", darlington.Name)
	assert.Equal(t, time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC), darlington.StartDate)
	assert.Equal(t, "NE", darlington.RegionCode)
	assert.Equal(t, meeting.CourseShort, darlington.CourseType)
	assert.Equal(t, 4, darlington.LicenseLevel)
	assert.Equal(t, "Club", darlington.EventType)
	assert.Equal(t, "https://www.swimmingresults.org/meet.php?meet=85856", darlington.ExternalURL)

	guildford := got[1]
	assert.Equal(t, "3SE251839", guildford.MeetNumber, "falls back to the name suffix")
	assert.Equal(t, "SE", guildford.RegionCode)
	assert.Equal(t, meeting.CourseLong, guildford.CourseType)
	assert.Equal(t, 3, guildford.LicenseLevel)
	assert.Equal(t, "County", guildford.EventType)
	assert.Equal(t, "https://www.swimmingresults.org/meets/guildford-winter", guildford.ExternalURL)

	small := got[2]
	assert.Empty(t, small.MeetNumber)
	assert.Equal(t, "Small Club Meet", small.Name)
	assert.Equal(t, time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC), small.StartDate)
	assert.Equal(t, meeting.CourseShort, small.CourseType, "course type defaults to short course")
	assert.Equal(t, 1, small.LicenseLevel)
	assert.Empty(t, small.ExternalURL)
}

func TestExtractStreamingResults(t *testing.T) {
	doc := loadFixture(t, "streaming_results.html")
	e := NewExtractor(streamingSource(t), newCountingExists(), time.Minute, observability.NewMetricsForTesting())

	pageDate := time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC)
	got := e.Extract(doc, pageDate)
	require.Len(t, got, 2, "the nameless row must be skipped")

	sheffield := got[0]
	assert.Equal(t, "90011", sheffield.MeetNumber)
	assert.Equal(t, "Sheffield Sprint Series", sheffield.Name)
	assert.Equal(t, pageDate, sheffield.StartDate, "page date stamps rows without a date cell")
	assert.Equal(t, "NE", sheffield.RegionCode)
	assert.Equal(t, "Sheffield", sheffield.City)
	assert.Equal(t, "Ponds Forge", sheffield.Venue)
	assert.Equal(t, meeting.CourseLong, sheffield.CourseType)
	assert.Equal(t, 2, sheffield.LicenseLevel)
	assert.Equal(t, "https://www.streamingresults.org/meet/90011", sheffield.ExternalURL)

	bristol := got[1]
	assert.Equal(t, "90012", bristol.MeetNumber)
	assert.Equal(t, "SW", bristol.RegionCode)
	assert.Equal(t, "Hengrove Park", bristol.Venue)
	assert.Equal(t, meeting.CourseShort, bristol.CourseType)
	assert.Equal(t, 3, bristol.LicenseLevel)
}

func TestExtractSkipsExistingMeetings(t *testing.T) {
	doc := loadFixture(t, "licensed_meets.html")
	exists := newCountingExists()
	exists.numbers["85856"] = true
	e := NewExtractor(licensedSource(t), exists, time.Minute, observability.NewMetricsForTesting())

	got := e.Extract(doc, time.Time{})
	require.Len(t, got, 2)
	assert.Equal(t, "3SE251839", got[0].MeetNumber)
	assert.Equal(t, "Small Club Meet", got[1].Name)
}

func TestExtractCachesPositiveExistenceLookups(t *testing.T) {
	doc := loadFixture(t, "licensed_meets.html")
	exists := newCountingExists()
	exists.numbers["85856"] = true
	e := NewExtractor(licensedSource(t), exists, time.Minute, observability.NewMetricsForTesting())

	e.Extract(doc, time.Time{})
	firstPass := exists.calls

	e.Extract(loadFixture(t, "licensed_meets.html"), time.Time{})
	secondPass := exists.calls - firstPass

	assert.Equal(t, firstPass-1, secondPass, "cached positive lookup must not reach the store again")
}

func TestExtractStreamingReparsesExistingMeetings(t *testing.T) {
	doc := loadFixture(t, "streaming_results.html")
	exists := newCountingExists()
	exists.numbers["90011"] = true
	e := NewExtractor(streamingSource(t), exists, time.Minute, observability.NewMetricsForTesting())

	got := e.Extract(doc, time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC))
	require.Len(t, got, 2, "stored records must be re-extracted so the upsert can refresh them")
	assert.Equal(t, "90011", got[0].MeetNumber)
	assert.Zero(t, exists.calls, "rows that mutate in place are never existence-checked")
}
