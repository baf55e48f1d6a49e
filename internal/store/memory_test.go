package store

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openswim/swim-meets/internal/meeting"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) (*Memory, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(day(2025, time.November, 17))
	return NewMemory(clock), clock
}

func TestUpsertCreates(t *testing.T) {
	s, clock := newTestStore(t)

	m := &meeting.LiveMeeting{
		MeetNumber: "4NE252206",
		Name:       "Darlington ASC Club Gala 4 2025 - 4NE252206",
		CourseType: meeting.CourseShort,
		StartDate:  day(2025, time.November, 18),
	}

	saved, created, err := s.Upsert(m)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, clock.Now().UTC(), saved.FirstSeen)

	found, ok := s.FindByMeetNumber("4NE252206")
	require.True(t, ok)
	assert.Equal(t, saved, found)
	assert.True(t, s.ExistsByMeetNumber("4NE252206"))
	assert.True(t, s.ExistsByNameAndDate(m.Name, m.StartDate))
}

func TestUpsertOverwritesInPlace(t *testing.T) {
	s, _ := newTestStore(t)

	first := &meeting.LiveMeeting{
		MeetNumber: "85856",
		Name:       "City of Leeds Spring Open",
		CourseType: meeting.CourseShort,
		StartDate:  day(2026, time.March, 1),
	}
	_, created, err := s.Upsert(first)
	require.NoError(t, err)
	require.True(t, created)

	update := &meeting.LiveMeeting{
		MeetNumber:   "85856",
		Name:         "City of Leeds Spring Open Meet",
		RegionCode:   "NE",
		CourseType:   meeting.CourseLong,
		LicenseLevel: 2,
		StartDate:    day(2026, time.March, 2),
	}
	saved, created, err := s.Upsert(update)
	require.NoError(t, err)
	assert.False(t, created, "second upsert must not create a duplicate")
	assert.Equal(t, "City of Leeds Spring Open Meet", saved.Name)
	assert.Equal(t, meeting.CourseLong, saved.CourseType)
	assert.Equal(t, 2, saved.LicenseLevel)

	assert.Len(t, s.All(), 1)
	// The (name, date) index follows the overwrite.
	_, ok := s.FindByNameAndDate("City of Leeds Spring Open", day(2026, time.March, 1))
	assert.False(t, ok)
	_, ok = s.FindByNameAndDate("City of Leeds Spring Open Meet", day(2026, time.March, 2))
	assert.True(t, ok)
}

func TestUpsertByNameAndDate(t *testing.T) {
	s, _ := newTestStore(t)

	m := &meeting.LiveMeeting{
		Name:       "Guildford Winter Open",
		CourseType: meeting.CourseShort,
		StartDate:  day(2025, time.December, 6),
	}
	_, created, err := s.Upsert(m)
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = s.Upsert(m)
	require.NoError(t, err)
	assert.False(t, created, "re-upserting the same (name, date) must be idempotent")
	assert.Len(t, s.All(), 1)
}

func TestUpsertRejectsInvalid(t *testing.T) {
	s, _ := newTestStore(t)

	invalid := &meeting.LiveMeeting{
		Name:       "Bad Course Meet",
		CourseType: "33",
		StartDate:  day(2025, time.December, 6),
	}
	_, _, err := s.Upsert(invalid)
	require.Error(t, err)
	assert.Empty(t, s.All(), "failed validation must leave the store unchanged")
}

func TestFindByNameContaining(t *testing.T) {
	s, _ := newTestStore(t)

	_, _, err := s.Upsert(&meeting.LiveMeeting{
		Name:       "Darlington ASC Club Gala 4 2025 - 4NE252206",
		CourseType: meeting.CourseShort,
		StartDate:  day(2025, time.November, 18),
	})
	require.NoError(t, err)

	found, ok := s.FindByNameContaining("4NE252206")
	require.True(t, ok)
	assert.Contains(t, found.Name, "4NE252206")

	_, ok = s.FindByNameContaining("9ZZ999999")
	assert.False(t, ok)
	_, ok = s.FindByNameContaining("")
	assert.False(t, ok)
}

func TestQueryHelpers(t *testing.T) {
	s, _ := newTestStore(t)
	now := day(2025, time.November, 17)

	meets := []*meeting.LiveMeeting{
		{Name: "Past Meet", CourseType: "25", StartDate: day(2025, time.November, 10), RegionCode: "NE"},
		{Name: "Tomorrow Meet", CourseType: "25", StartDate: day(2025, time.November, 18), RegionCode: "NE"},
		{Name: "Next Week Meet", CourseType: "50", StartDate: day(2025, time.November, 23), RegionCode: "SE"},
		{Name: "Next Month Meet", CourseType: "50", StartDate: day(2025, time.December, 20), RegionCode: "SE"},
	}
	for _, m := range meets {
		_, _, err := s.Upsert(m)
		require.NoError(t, err)
	}

	upcoming := s.Upcoming(now)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "Tomorrow Meet", upcoming[0].Name, "upcoming must be sorted soonest first")

	week := s.ThisWeek(now)
	require.Len(t, week, 2)

	ne := s.ByRegion("ne")
	assert.Len(t, ne, 2)
}

func TestNewMemoryFromSnapshot(t *testing.T) {
	clock := clockwork.NewFakeClockAt(day(2025, time.November, 17))
	firstSeen := day(2025, time.November, 1)
	snap := meeting.CreateSnapshot([]*meeting.LiveMeeting{
		{MeetNumber: "4NE252206", Name: "Darlington ASC Club Gala", CourseType: "25", StartDate: day(2025, time.November, 18), FirstSeen: firstSeen},
	}, "2025-11-01T00:00:00Z")

	s := NewMemoryFromSnapshot(clock, snap)
	found, ok := s.FindByMeetNumber("4NE252206")
	require.True(t, ok)
	assert.Equal(t, firstSeen, found.FirstSeen, "FirstSeen must survive snapshot round trips")
}

func TestUpsertAdoptsLateMeetNumber(t *testing.T) {
	s, clock := newTestStore(t)
	start := day(2025, time.November, 22)

	first, created, err := s.Upsert(&meeting.LiveMeeting{
		Name:       "Small Club Meet",
		CourseType: meeting.CourseShort,
		StartDate:  start,
	})
	require.NoError(t, err)
	require.True(t, created)
	firstSeen := first.FirstSeen

	clock.Advance(time.Hour)
	updated, created, err := s.Upsert(&meeting.LiveMeeting{
		MeetNumber: "1NE250001",
		Name:       "Small Club Meet",
		Venue:      "Dolphin Centre",
		CourseType: meeting.CourseShort,
		StartDate:  start,
	})
	require.NoError(t, err)
	assert.False(t, created, "a record gaining its number must not be duplicated")
	assert.Same(t, first, updated)
	assert.Equal(t, "1NE250001", updated.MeetNumber)
	assert.Equal(t, "Dolphin Centre", updated.Venue)
	assert.Equal(t, firstSeen, updated.FirstSeen)
	assert.Len(t, s.All(), 1)

	byNumber, ok := s.FindByMeetNumber("1NE250001")
	require.True(t, ok)
	assert.Same(t, first, byNumber)
}

func TestUpsertKeepsDistinctMeetsWithSharedNameAndDate(t *testing.T) {
	s, _ := newTestStore(t)
	start := day(2026, time.January, 10)

	_, _, err := s.Upsert(&meeting.LiveMeeting{
		MeetNumber: "2NE260001",
		Name:       "New Year Open",
		CourseType: meeting.CourseShort,
		StartDate:  start,
	})
	require.NoError(t, err)

	// A numbered record is never adopted by a different number.
	_, created, err := s.Upsert(&meeting.LiveMeeting{
		MeetNumber: "2SE260002",
		Name:       "New Year Open",
		CourseType: meeting.CourseLong,
		StartDate:  start,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, s.All(), 2)
}
