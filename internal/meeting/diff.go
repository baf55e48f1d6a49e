package meeting

import (
	"sort"
	"strings"
)

// Snapshot is the set of live meetings known at a point in time, keyed by
// LiveMeeting.Key. Snapshots persist between scrape runs so newly listed
// meets can be reported.
type Snapshot struct {
	Meetings  map[string]*LiveMeeting `json:"meetings"`
	UpdatedAt string                  `json:"updated_at"` // RFC3339
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Meetings: make(map[string]*LiveMeeting),
	}
}

// CreateSnapshot builds a snapshot from a list of meetings.
func CreateSnapshot(meetings []*LiveMeeting, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt
	for _, m := range meetings {
		snap.Meetings[m.Key()] = m
	}
	return snap
}

// DiffResult holds the meetings that appear in the current scrape but not in
// the previous snapshot.
type DiffResult struct {
	NewMeetings []*LiveMeeting
	ByRegion    map[string][]*LiveMeeting // keyed by region code; "" for unresolved regions
}

// Diff compares the current scrape against a previous snapshot and returns
// the newly listed meetings, optionally restricted to one region code.
func Diff(previous *Snapshot, current []*LiveMeeting, regionFilter string) *DiffResult {
	result := &DiffResult{
		NewMeetings: make([]*LiveMeeting, 0),
		ByRegion:    make(map[string][]*LiveMeeting),
	}

	if previous == nil {
		previous = NewSnapshot()
	}

	for _, m := range current {
		if regionFilter != "" && !strings.EqualFold(regionFilter, "ALL") {
			if !strings.EqualFold(m.RegionCode, regionFilter) {
				continue
			}
		}

		if _, exists := previous.Meetings[m.Key()]; exists {
			continue
		}
		result.NewMeetings = append(result.NewMeetings, m)
		result.ByRegion[m.RegionCode] = append(result.ByRegion[m.RegionCode], m)
	}

	sort.Slice(result.NewMeetings, func(i, j int) bool {
		a, b := result.NewMeetings[i], result.NewMeetings[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.Name < b.Name
	})
	for code := range result.ByRegion {
		group := result.ByRegion[code]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].StartDate.Equal(group[j].StartDate) {
				return group[i].StartDate.Before(group[j].StartDate)
			}
			return group[i].Name < group[j].Name
		})
	}

	return result
}
