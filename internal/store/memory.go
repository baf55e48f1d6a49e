package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openswim/swim-meets/internal/meeting"
)

// Memory is an in-memory Store keyed by meet number and (name, start date).
type Memory struct {
	mu         sync.RWMutex
	clock      clockwork.Clock
	byNumber   map[string]*meeting.LiveMeeting
	byNameDate map[string]*meeting.LiveMeeting
	order      []*meeting.LiveMeeting
}

// NewMemory creates an empty in-memory store. The clock stamps FirstSeen on
// newly created meetings.
func NewMemory(clock clockwork.Clock) *Memory {
	return &Memory{
		clock:      clock,
		byNumber:   make(map[string]*meeting.LiveMeeting),
		byNameDate: make(map[string]*meeting.LiveMeeting),
	}
}

// NewMemoryFromSnapshot creates a store pre-populated from a persisted
// snapshot, preserving FirstSeen timestamps.
func NewMemoryFromSnapshot(clock clockwork.Clock, snap *meeting.Snapshot) *Memory {
	m := NewMemory(clock)
	if snap == nil {
		return m
	}
	for _, lm := range snap.Meetings {
		copied := *lm
		m.insert(&copied)
	}
	return m
}

func nameDateKey(name string, start time.Time) string {
	return name + "|" + start.Format("2006-01-02")
}

func (s *Memory) insert(m *meeting.LiveMeeting) {
	if m.MeetNumber != "" {
		s.byNumber[m.MeetNumber] = m
	}
	s.byNameDate[nameDateKey(m.Name, m.StartDate)] = m
	s.order = append(s.order, m)
}

// FindByMeetNumber returns the meeting with the given unique meet number.
func (s *Memory) FindByMeetNumber(number string) (*meeting.LiveMeeting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byNumber[number]
	return m, ok
}

// FindByNameAndDate returns the meeting with the exact (name, start date) pair.
func (s *Memory) FindByNameAndDate(name string, start time.Time) (*meeting.LiveMeeting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byNameDate[nameDateKey(name, start)]
	return m, ok
}

// FindByNameContaining returns the first meeting whose name contains substr.
// Used by the matcher for license codes embedded in free-text names.
func (s *Memory) FindByNameContaining(substr string) (*meeting.LiveMeeting, bool) {
	if substr == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.order {
		if strings.Contains(m.Name, substr) {
			return m, true
		}
	}
	return nil, false
}

// ExistsByMeetNumber reports whether a meeting with the meet number exists.
func (s *Memory) ExistsByMeetNumber(number string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byNumber[number]
	return ok
}

// ExistsByNameAndDate reports whether a meeting with the pair exists.
func (s *Memory) ExistsByNameAndDate(name string, start time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byNameDate[nameDateKey(name, start)]
	return ok
}

// Upsert implements Store.
func (s *Memory) Upsert(m *meeting.LiveMeeting) (*meeting.LiveMeeting, bool, error) {
	if err := m.Validate(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *meeting.LiveMeeting
	if m.MeetNumber != "" {
		existing = s.byNumber[m.MeetNumber]
		if existing == nil {
			// A meet first listed without a number may gain one later.
			// Adopt the numberless record instead of duplicating it.
			if candidate := s.byNameDate[nameDateKey(m.Name, m.StartDate)]; candidate != nil && candidate.MeetNumber == "" {
				existing = candidate
			}
		}
	} else {
		existing = s.byNameDate[nameDateKey(m.Name, m.StartDate)]
	}

	if existing == nil {
		copied := *m
		copied.FirstSeen = s.clock.Now().UTC()
		s.insert(&copied)
		return &copied, true, nil
	}

	oldKey := nameDateKey(existing.Name, existing.StartDate)
	if m.MeetNumber != "" && existing.MeetNumber == "" {
		existing.MeetNumber = m.MeetNumber
		s.byNumber[m.MeetNumber] = existing
	}
	existing.Name = m.Name
	existing.RegionCode = m.RegionCode
	existing.County = m.County
	existing.City = m.City
	existing.Venue = m.Venue
	existing.CourseType = m.CourseType
	existing.LicenseLevel = m.LicenseLevel
	existing.EventType = m.EventType
	existing.StartDate = m.StartDate
	existing.EndDate = m.EndDate
	existing.ExternalURL = m.ExternalURL

	newKey := nameDateKey(existing.Name, existing.StartDate)
	if newKey != oldKey {
		delete(s.byNameDate, oldKey)
		s.byNameDate[newKey] = existing
	}
	return existing, false, nil
}

// All returns every stored meeting in insertion order.
func (s *Memory) All() []*meeting.LiveMeeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*meeting.LiveMeeting, len(s.order))
	copy(out, s.order)
	return out
}

// Upcoming returns meetings starting on or after the given day, soonest first.
func (s *Memory) Upcoming(now time.Time) []*meeting.LiveMeeting {
	day := now.Truncate(24 * time.Hour)
	var out []*meeting.LiveMeeting
	for _, m := range s.All() {
		if !m.StartDate.Before(day) {
			out = append(out, m)
		}
	}
	sortByStartDate(out)
	return out
}

// ThisWeek returns meetings starting within [now, now+7d].
func (s *Memory) ThisWeek(now time.Time) []*meeting.LiveMeeting {
	day := now.Truncate(24 * time.Hour)
	cutoff := day.AddDate(0, 0, 7)
	var out []*meeting.LiveMeeting
	for _, m := range s.All() {
		if !m.StartDate.Before(day) && !m.StartDate.After(cutoff) {
			out = append(out, m)
		}
	}
	sortByStartDate(out)
	return out
}

// ByRegion returns meetings whose resolved region matches the code.
func (s *Memory) ByRegion(code string) []*meeting.LiveMeeting {
	var out []*meeting.LiveMeeting
	for _, m := range s.All() {
		if strings.EqualFold(m.RegionCode, code) {
			out = append(out, m)
		}
	}
	return out
}

func sortByStartDate(meetings []*meeting.LiveMeeting) {
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartDate.Before(meetings[j].StartDate)
	})
}
