package store

import (
	"time"

	"github.com/openswim/swim-meets/internal/meeting"
)

// Store is the record-store contract the pipeline depends on.
type Store interface {
	FindByMeetNumber(number string) (*meeting.LiveMeeting, bool)
	FindByNameAndDate(name string, start time.Time) (*meeting.LiveMeeting, bool)
	FindByNameContaining(substr string) (*meeting.LiveMeeting, bool)
	ExistsByMeetNumber(number string) bool
	ExistsByNameAndDate(name string, start time.Time) bool

	// Upsert locates an existing meeting by meet number, else by
	// (name, start date), overwrites its mutable fields in place, or creates
	// it. The returned bool reports creation. Validation failures are
	// returned as errors and leave the store unchanged.
	Upsert(m *meeting.LiveMeeting) (*meeting.LiveMeeting, bool, error)

	All() []*meeting.LiveMeeting
}
